package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Session is one scheduled slot within a day.
type Session struct {
	Time    string `json:"time"`
	Subject string `json:"subject"`
}

// Day groups the sessions scheduled under one day label.
type Day struct {
	Label    string
	Sessions []Session
}

// Timetable is a day-keyed schedule produced by the timetable service.
// On the wire it is a JSON object; Days keeps the object's key order.
type Timetable struct {
	Days []Day
}

// UnmarshalJSON decodes {"<day>": [{"time": "...", "subject": "..."}], ...}
// keeping the days in the order they appear in the document.
func (t *Timetable) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("timetable: expected object, got %v", tok)
	}

	days := make([]Day, 0)
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("timetable: unexpected key %v", tok)
		}

		var sessions []Session
		if err := dec.Decode(&sessions); err != nil {
			return fmt.Errorf("timetable: day %q: %w", label, err)
		}
		if sessions == nil {
			sessions = []Session{}
		}

		// duplicate keys: last value wins, first position is kept
		if i, dup := seen[label]; dup {
			days[i].Sessions = sessions
			continue
		}
		seen[label] = len(days)
		days = append(days, Day{Label: label, Sessions: sessions})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	t.Days = days
	return nil
}

// MarshalJSON writes the timetable back as an object in Days order.
func (t Timetable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range t.Days {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Label)
		if err != nil {
			return nil, err
		}
		sessions := d.Sessions
		if sessions == nil {
			sessions = []Session{}
		}
		val, err := json.Marshal(sessions)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SessionCount returns the number of sessions across all days.
func (t *Timetable) SessionCount() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, d := range t.Days {
		n += len(d.Sessions)
	}
	return n
}

// Clone returns a deep copy so callers can hand the timetable out safely.
func (t *Timetable) Clone() *Timetable {
	if t == nil {
		return nil
	}
	out := &Timetable{Days: make([]Day, len(t.Days))}
	for i, d := range t.Days {
		out.Days[i] = Day{Label: d.Label, Sessions: append([]Session{}, d.Sessions...)}
	}
	return out
}
