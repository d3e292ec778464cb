package model

// PlannerPageData feeds index.html.
type PlannerPageData struct {
	Subjects  []Subject
	Timetable *Timetable
	Notice    string
	Form      SubjectForm
}

// SubjectForm carries the values shown in the add-subject form.
type SubjectForm struct {
	Name    string
	Average string
}
