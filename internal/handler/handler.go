// Package handler is the HTTP layer of the records API.
//
// Each handler binds its request into a typed payload, lets the
// validation package check it and calls the college service. Errors are
// returned unchanged and rendered by the global error handler.
package handler
