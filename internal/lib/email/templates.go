package email

import "embed"

// Template names an HTML file under templates/.
type Template string

const (
	TemplateStudentsRemoved Template = "students_removed"
)

//go:embed templates/*.html
var templateFS embed.FS
