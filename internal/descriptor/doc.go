// Package descriptor holds the declarative model of remote API objects.
//
// An Object describes one API object: its name, its kind (a top-level
// record or a nested-only structure) and its ordered list of Fields.
// Fields reference nested objects by name only, so the composition graph
// is an arena keyed by object name rather than a web of pointers. The
// registry package resolves those names and rejects reference cycles.
//
// Descriptors are immutable: constructors validate their input and the
// resulting values only expose accessors.
//
// Key types:
//   - SemanticType: wire-level field type (boolean, int, long, double,
//     string, bytes, timestamp, array, object)
//   - Field: one field of one object
//   - Object: ordered set of fields with a unique name and a kind
package descriptor
