package model

// Subject is a row of the subjects table. ID is assigned by the caller.
type Subject struct {
	ID          int64  `json:"id" db:"id"`
	SubjectName string `json:"subjectName" db:"subject_name"`
}

// AddSubjectPayload is the body of POST /subjects.
type AddSubjectPayload struct {
	ID          int64  `json:"id" validate:"required,gt=0"`
	SubjectName string `json:"subjectName" validate:"required,min=1,max=255"`
}

func (p *AddSubjectPayload) Validate() error {
	return validate.Struct(p)
}

func (p *AddSubjectPayload) ToSubject() Subject {
	return Subject{ID: p.ID, SubjectName: p.SubjectName}
}
