package model

// Snapshot is the serialisable state of one planner workspace.
type Snapshot struct {
	Subjects  []Subject  `json:"subjects"`
	Timetable *Timetable `json:"timetable,omitempty"`
}
