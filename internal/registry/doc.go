// Package registry maps object names to their descriptors.
//
// A Registry is filled once at startup, validated with ValidateGraph and
// then sealed with Freeze. After that it is read-only and safe for
// unrestricted concurrent use without locking; populating it concurrently
// with readers is the caller's mistake to avoid.
//
// Nested type references are plain object names, which keeps the
// composition graph an arena keyed by name. ValidateGraph walks that graph
// depth-first and rejects dangling references and reference cycles, so
// recursive schema derivation over a validated registry always terminates.
package registry
