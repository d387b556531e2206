// Package pkgrouter wraps HTTP routing and common middleware used by the API.
//
// It provides a small router abstraction over httprouter plus the shared
// request pipeline: the error responder, the request context boundary that
// scopes log fields to a request and logs its failures, correlation IDs, and
// per-route access logs.
package pkgrouter
