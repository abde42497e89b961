// Package validation binds request data and turns validator failures into
// field-level errs.FieldError values the client can act on.
package validation
