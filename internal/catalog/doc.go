// Package catalog loads object descriptors from a declarative YAML file.
//
// A catalog lists API objects and their fields:
//
//	version: "1"
//	objects:
//	  - name: Subscription
//	    kind: top_level
//	    description: A customer subscription
//	    related: [Account]
//	    fields:
//	      - name: id
//	        type: string
//	        select: true
//	      - name: initialTerm
//	        label: Initial Term
//	        type: object|TermItem
//	        update: true
//	      - name: ratePlans
//	        type: array|RatePlan
//	        update: true
//	  - name: TermItem
//	    kind: nested
//	    fields:
//	      - name: period
//	        type: integer
//	        update: true
//
// # Field types
//
// Scalar types are written by name (boolean, int, long, double, string,
// bytes, timestamp and their synonyms such as integer or date-time).
// Containers use a "|" argument:
//
//	object|TermItem    nested object
//	array|RatePlan     array of nested objects
//	array|string       array of scalars
//
// # Field options
//
//   - label: human readable name, defaults to the field name
//   - nullable: false when the API always sends the field (default true)
//   - custom: tenant-defined field declared statically
//   - update: field may appear in create/update payloads
//   - select: field may appear in select/filter requests
//
// Validate collects every structural problem into diagnostics instead of
// stopping at the first one. Build turns a valid catalog into a frozen
// registry; reference cycles are reported there.
//
// Default returns the catalog embedded in the binary.
package catalog
