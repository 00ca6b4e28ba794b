// Package auth implements the authentication and authorization primitives
// of the service: password hashing, bearer token issue and verification,
// identity resolution, the request guard that combines the two, and the
// task ownership check.
//
// Every failure is reported as one of the sentinel errors in errors.go so the
// transport layer can map it to a status code without inspecting messages.
package auth
