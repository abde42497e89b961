package model

// Query payloads bind from the URL query string of the read and
// bulk-delete endpoints.

type StudentMarksQuery struct {
	Student string `query:"student" validate:"required"`
	Subject string `query:"subject" validate:"required"`
}

func (q *StudentMarksQuery) Validate() error {
	return validate.Struct(q)
}

// BestStudentsQuery selects the global ranking, or the ranking on one
// subject when Subject is set.
type BestStudentsQuery struct {
	N       int    `query:"n" validate:"gte=0"`
	Subject string `query:"subject"`
}

func (q *BestStudentsQuery) Validate() error {
	return validate.Struct(q)
}

// Numeric filters are pointers so an omitted parameter fails "required"
// instead of binding as 0.

type SubjectMarkQuery struct {
	Subject string `query:"subject" validate:"required"`
	Mark    *int   `query:"mark" validate:"required"`
}

func (q *SubjectMarkQuery) Validate() error {
	return validate.Struct(q)
}

type ThresholdQuery struct {
	Threshold *int `query:"threshold" validate:"required"`
}

func (q *ThresholdQuery) Validate() error {
	return validate.Struct(q)
}

type CountQuery struct {
	Count *int `query:"count" validate:"required,gte=0"`
}

func (q *CountQuery) Validate() error {
	return validate.Struct(q)
}

// EmptyRequest is bound by endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}
