// Package errs defines the application error shape shared by every layer.
//
// Services return *HTTPError values directly; the global error handler
// serializes them as-is and converts anything else (driver errors, echo
// errors) into one first.
package errs
