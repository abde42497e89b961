package model

// Student is a row of the students table. ID is assigned by the caller.
type Student struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// AddStudentPayload is the body of POST /students.
type AddStudentPayload struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name" validate:"required,min=1,max=255"`
}

func (p *AddStudentPayload) Validate() error {
	return validate.Struct(p)
}

// ToStudent converts the payload into the entity it creates.
func (p *AddStudentPayload) ToStudent() Student {
	return Student{ID: p.ID, Name: p.Name}
}
