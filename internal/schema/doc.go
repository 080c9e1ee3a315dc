// Package schema derives structured schemas from object descriptors.
//
// A Schema is an ordered tree of typed fields: primitive fields, nested
// objects carrying their own Schema, and arrays of either. Derive walks
// an object's declared fields in order, recursing into nested objects,
// then appends tenant custom fields discovered at runtime. When a custom
// field has the same name as a declared field the declared field wins
// and the collision is recorded on the schema; Diagnostics reports it.
// Objects with a custom field suffix only accept custom fields whose
// names carry it.
//
// Every derived field is nullable: the remote API may omit any field in
// any response, whatever the declaration says.
//
// Schemas are built fresh on every call unless the Deriver was created
// with WithCache, which keeps a bounded LRU of recent derivations.
// Returned schemas must be treated as read-only; cached
// schemas are shared between callers.
package schema
