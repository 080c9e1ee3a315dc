// Package match provides the fuzzy name matching behind "did you mean"
// hints for unknown object and field names.
package match
