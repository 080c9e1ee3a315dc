// Package coerce converts JSON scalar wire values to the Go values of
// primitive semantic types.
//
// Every field has an exact JSON representation (numbers for int, long and
// double; strings for string, bytes and timestamp; booleans for boolean).
// The remote API does not always use it: it serializes some numbers and
// booleans as strings. Each Category enables one family of alternative
// representations, and a converter is configured with a bit set of them.
package coerce
