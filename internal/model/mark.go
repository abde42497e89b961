package model

// Mark links one student to one subject with a grade value.
// ID is assigned by the store on insert.
type Mark struct {
	ID        int64 `json:"id" db:"id"`
	Value     int   `json:"mark" db:"mark"`
	StudentID int64 `json:"studentId" db:"student_id"`
	SubjectID int64 `json:"subjectId" db:"subject_id"`
}

// ValidValue reports whether v lies within [MinMark, MaxMark].
func ValidValue(v int) bool {
	return v >= MinMark && v <= MaxMark
}

// AddMarkPayload is the body of POST /marks.
//
// Mark is a pointer so that an omitted value fails "required" while an
// explicit 0 is still accepted.
type AddMarkPayload struct {
	StudentID int64 `json:"studentId" validate:"required,gt=0"`
	SubjectID int64 `json:"subjectId" validate:"required,gt=0"`
	Mark      *int  `json:"mark" validate:"required,min=0,max=100"`
}

func (p *AddMarkPayload) Validate() error {
	return validate.Struct(p)
}

func (p *AddMarkPayload) ToMark() Mark {
	m := Mark{StudentID: p.StudentID, SubjectID: p.SubjectID}
	if p.Mark != nil {
		m.Value = *p.Mark
	}
	return m
}
