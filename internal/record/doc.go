// Package record holds converted API records and the converter between
// raw JSON payloads and records.
//
// FromJSON reads a JSON object field by field as dictated by a derived
// schema. Keys that are absent or null become nil values, scalars are
// coerced according to the converter's coerce.Category, nested objects
// and arrays recurse. ToJSON builds update payloads: only writable
// fields are emitted, and nil values are emitted as explicit JSON null
// only when the caller lists the field in fieldsToNull.
package record
