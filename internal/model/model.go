// Package model holds the college records entities and the request
// payloads the HTTP layer binds into them.
//
// Entities double as the external DTO shapes: a Student or Subject
// returned from an aggregate query is the same {id, name} projection
// the API serializes.
package model

import "github.com/go-playground/validator/v10"

const (
	// MinMark and MaxMark bound a mark value, inclusive.
	MinMark = 0
	MaxMark = 100
)

var validate = validator.New()
