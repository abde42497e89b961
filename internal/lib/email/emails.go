package email

import (
	"fmt"

	"github.com/deppfellow/college-records/internal/model"
)

// StudentsRemovedReport is the data of the students_removed template.
type StudentsRemovedReport struct {
	Reason    string
	RemovedAt string
	Students  []model.Student
}

// SendStudentsRemovedEmail sends the roster of a bulk delete.
func (c *Client) SendStudentsRemovedEmail(to string, report StudentsRemovedReport) error {
	return c.SendEmail(
		to,
		fmt.Sprintf("%d students removed from the register", len(report.Students)),
		TemplateStudentsRemoved,
		report,
	)
}
