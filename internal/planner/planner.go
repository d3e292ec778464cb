// Package planner applies user actions to a workspace: the subject registry
// and the timetable currently on display.
package planner

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/study-planner/internal/backend"
	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
	"github.com/Nixie-Tech-LLC/study-planner/internal/registry"
)

// User facing notices.
const (
	NoticeNoSubjects   = "Add at least one subject first!"
	NoticeNoTimetable  = "No timetable generated"
	NoticeBackendError = "Error connecting to backend"
)

// Fetcher retrieves a freshly generated timetable.
type Fetcher interface {
	FetchTimetable(ctx context.Context) (*model.Timetable, error)
}

// Result describes what an action did, so the caller knows what to render.
type Result struct {
	// Changed is true when the workspace state was modified.
	Changed bool
	// ResetForm is true when the add-subject form should be cleared.
	ResetForm bool
	Notice    string
}

type Workspace struct {
	subjects  *registry.Registry
	timetable *model.Timetable
}

// Restore rebuilds a workspace from a stored snapshot.
func Restore(s model.Snapshot) *Workspace {
	return &Workspace{
		subjects:  registry.New(s.Subjects...),
		timetable: s.Timetable.Clone(),
	}
}

func (w *Workspace) Snapshot() model.Snapshot {
	return model.Snapshot{
		Subjects:  w.subjects.Snapshot(),
		Timetable: w.timetable.Clone(),
	}
}

func (w *Workspace) Subjects() []model.Subject { return w.subjects.Snapshot() }

func (w *Workspace) Timetable() *model.Timetable { return w.timetable.Clone() }

// AddSubject appends a subject when both fields are present. Invalid input is
// dropped silently and the form keeps its values.
func (w *Workspace) AddSubject(name, average string) Result {
	_, ok := w.subjects.Add(name, average)
	return Result{Changed: ok, ResetForm: ok}
}

// RemoveSubject drops the subject at index, ignoring unknown positions.
func (w *Workspace) RemoveSubject(index int) Result {
	_, ok := w.subjects.RemoveAt(index)
	return Result{Changed: ok}
}

// GenerateTimetable asks the service for a timetable and, when one comes
// back, replaces the one on display. Nothing is fetched while the registry is
// empty. Failures leave the displayed timetable as it was.
func (w *Workspace) GenerateTimetable(ctx context.Context, f Fetcher) Result {
	if w.subjects.Len() == 0 {
		return Result{Notice: NoticeNoSubjects}
	}

	tt, err := f.FetchTimetable(ctx)
	switch {
	case errors.Is(err, backend.ErrNoTimetable):
		return Result{Notice: NoticeNoTimetable}
	case err != nil:
		log.Error().Err(err).Msg("failed to fetch timetable")
		return Result{Notice: NoticeBackendError}
	}

	w.timetable = tt
	return Result{Changed: true}
}
