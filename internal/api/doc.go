// Package api implements the HTTP transport of the service: request and
// response models, handlers for the auth and task endpoints, the mapping
// from internal errors to status codes, and the chi router that ties them to
// the middleware chain.
package api
