// Package export writes a timetable out as a downloadable file.
package export

import (
	"io"

	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
)

type Converter interface {
	Write(w io.Writer, tt *model.Timetable) error
	ContentType() string
	Extension() string
}

// ByName returns the converter registered under name, or nil.
func ByName(name string) Converter {
	switch name {
	case "json":
		return JSONConverter{Pretty: true}
	case "xlsx":
		return XLSXConverter{}
	default:
		return nil
	}
}
