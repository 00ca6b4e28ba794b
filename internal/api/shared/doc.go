// Package shared holds the request decoding, validation and response
// envelope helpers used by the handlers and middleware of the api package.
package shared
