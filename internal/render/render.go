// Package render turns planner state into HTML.
package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
)

//go:embed templates/*.html
var files embed.FS

// Page is the name of the full planner page template.
const Page = "index.html"

var templates = template.Must(template.ParseFS(files, "templates/*.html"))

// Templates returns the parsed template set, ready for gin's SetHTMLTemplate.
func Templates() *template.Template {
	return templates
}

// Subjects writes one block per subject, replacing whatever was shown before.
func Subjects(w io.Writer, subjects []model.Subject) error {
	return templates.ExecuteTemplate(w, "subjects", subjects)
}

// Timetable writes one labelled table per day. A nil timetable renders nothing.
func Timetable(w io.Writer, tt *model.Timetable) error {
	return templates.ExecuteTemplate(w, "timetable", tt)
}
