// Command restmapper inspects and exercises the object catalog of a
// REST API: it lists objects, derives schemas including tenant custom
// fields, converts raw API JSON into records and builds update payloads.
package main

func main() {
	Run()
}
