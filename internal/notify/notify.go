// Package notify pushes generated timetables to subscribers outside the
// browser session, e.g. a classroom display listening on MQTT.
package notify

import "github.com/Nixie-Tech-LLC/study-planner/internal/model"

type Publisher interface {
	PublishTimetable(sessionID string, tt *model.Timetable) error
	Close()
}

// Nop discards everything. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishTimetable(string, *model.Timetable) error { return nil }

func (Nop) Close() {}
