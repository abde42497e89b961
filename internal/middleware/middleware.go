// Package middleware holds the global and route-level Echo middleware:
// request ids, request-scoped loggers, New Relic tracing, rate limiting,
// CORS, panic recovery and the global error handler.
package middleware
