// Package diagnostic collects severity-tagged findings produced while
// loading object catalogs and deriving schemas.
//
// Errors block registry construction. Warnings, such as a tenant custom
// field shadowed by a declared field, are reported and otherwise ignored.
package diagnostic
