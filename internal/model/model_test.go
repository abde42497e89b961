package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidValue(t *testing.T) {
	assert.True(t, ValidValue(MinMark))
	assert.True(t, ValidValue(MaxMark))
	assert.False(t, ValidValue(-1))
	assert.False(t, ValidValue(101))
}

func TestPayloadConversions(t *testing.T) {
	assert.Equal(t, Student{ID: 1, Name: "Ann"}, (&AddStudentPayload{ID: 1, Name: "Ann"}).ToStudent())
	assert.Equal(t, Subject{ID: 10, SubjectName: "Math"}, (&AddSubjectPayload{ID: 10, SubjectName: "Math"}).ToSubject())

	v := 90
	assert.Equal(t, Mark{StudentID: 1, SubjectID: 10, Value: 90}, (&AddMarkPayload{StudentID: 1, SubjectID: 10, Mark: &v}).ToMark())
}

func TestQueryValidation(t *testing.T) {
	assert.NoError(t, (&BestStudentsQuery{N: 0}).Validate())
	assert.Error(t, (&BestStudentsQuery{N: -1}).Validate())
	assert.Error(t, (&StudentMarksQuery{Student: "Ann"}).Validate())

	negative, zero, seventy := -2, 0, 70
	assert.Error(t, (&CountQuery{Count: &negative}).Validate())
	assert.NoError(t, (&CountQuery{Count: &zero}).Validate())
	assert.NoError(t, (&SubjectMarkQuery{Subject: "Math", Mark: &seventy}).Validate())
	assert.NoError(t, (&ThresholdQuery{Threshold: &zero}).Validate())
}

func TestQueryValidation_MissingNumbers(t *testing.T) {
	assert.Error(t, (&ThresholdQuery{}).Validate())
	assert.Error(t, (&CountQuery{}).Validate())
	assert.Error(t, (&SubjectMarkQuery{Subject: "Math"}).Validate())
}
