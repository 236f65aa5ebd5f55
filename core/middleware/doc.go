// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the
// handler.
//
// # Components
//
//   - Auth: Implements static API key validation protecting the
//     administrative surface (token and history management).
//   - RayID: Generates a unique Request ID (RayID) for every incoming
//     request, injecting it into the context and response headers for
//     tracing.
//
// The bearer-token guard for the warehouse sync API lives with the token
// feature, since it depends on the credential validator.
package middleware
