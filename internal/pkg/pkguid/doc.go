// Package pkguid provides helpers for generating unique identifiers.
//
// Callers depend on the StringID and NumberID interfaces rather than a
// concrete strategy. UUIDs back request correlation IDs; Snowflake IDs label
// long-running background tasks.
package pkguid
