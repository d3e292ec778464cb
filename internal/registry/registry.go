// Package registry holds the ordered list of subjects a student has entered.
// Position is the only identity a subject has.
package registry

import (
	"strings"

	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
)

type Registry struct {
	items []model.Subject
}

// New restores a registry from a previously taken snapshot.
func New(items ...model.Subject) *Registry {
	return &Registry{items: append([]model.Subject(nil), items...)}
}

// Add appends a subject. Name and average are trimmed; if either ends up
// empty the registry is left untouched and ok is false.
func (r *Registry) Add(name, average string) (snapshot []model.Subject, ok bool) {
	name = strings.TrimSpace(name)
	average = strings.TrimSpace(average)
	if name == "" || average == "" {
		return r.Snapshot(), false
	}
	r.items = append(r.items, model.Subject{Name: name, Average: average})
	return r.Snapshot(), true
}

// RemoveAt drops the subject at index. Out of range indexes are ignored.
func (r *Registry) RemoveAt(index int) (snapshot []model.Subject, ok bool) {
	if index < 0 || index >= len(r.items) {
		return r.Snapshot(), false
	}
	r.items = append(r.items[:index], r.items[index+1:]...)
	return r.Snapshot(), true
}

func (r *Registry) Len() int { return len(r.items) }

// Snapshot returns a copy of the subjects in display order.
func (r *Registry) Snapshot() []model.Subject {
	out := make([]model.Subject, len(r.items))
	copy(out, r.items)
	return out
}
