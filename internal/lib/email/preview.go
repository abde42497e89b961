package email

import "github.com/deppfellow/college-records/internal/model"

// PreviewData holds sample data for every template, keyed by template.
var PreviewData = map[Template]any{
	TemplateStudentsRemoved: StudentsRemovedReport{
		Reason:    "their average mark was below 60",
		RemovedAt: "2024-06-01 12:00:00",
		Students: []model.Student{
			{ID: 7, Name: "John Doe"},
			{ID: 12, Name: "Jane Roe"},
		},
	},
}
