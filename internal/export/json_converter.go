package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
)

type JSONConverter struct {
	Pretty bool
}

type jsonDocument struct {
	Timetable *model.Timetable `json:"timetable"`
}

// Write emits {"timetable": {...}}, the same shape the service returns.
func (j JSONConverter) Write(w io.Writer, tt *model.Timetable) error {
	if tt == nil {
		return fmt.Errorf("export: nothing to write")
	}
	enc := json.NewEncoder(w)
	if j.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(jsonDocument{Timetable: tt})
}

func (JSONConverter) ContentType() string { return "application/json" }

func (JSONConverter) Extension() string { return "json" }
