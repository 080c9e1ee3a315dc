// Package metadata supplies the tenant custom fields that are appended
// to derived schemas.
//
// A Source answers per tenant and object. Static serves a fixed table,
// usually loaded from YAML. Store keeps a bbolt snapshot of earlier
// answers, and Cached combines a live source with a snapshot so that
// derivation keeps working while the remote metadata endpoint is down.
package metadata
