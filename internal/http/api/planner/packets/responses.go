package packets

import "github.com/Nixie-Tech-LLC/study-planner/internal/model"

// RESPONSES FOR /api/*

// SubjectResponse mirrors model.Subject plus its position, which is the
// value to pass to DELETE /api/subjects/:index.
type SubjectResponse struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Average string `json:"average"`
}

type SubjectsResponse struct {
	Subjects []SubjectResponse `json:"subjects"`
	Changed  bool              `json:"changed"`
}

type TimetableResponse struct {
	Timetable *model.Timetable `json:"timetable"`
	Notice    string           `json:"notice,omitempty"`
}

func NewSubjectsResponse(subjects []model.Subject, changed bool) SubjectsResponse {
	out := make([]SubjectResponse, 0, len(subjects))
	for i, s := range subjects {
		out = append(out, SubjectResponse{Index: i, Name: s.Name, Average: s.Average})
	}
	return SubjectsResponse{Subjects: out, Changed: changed}
}
