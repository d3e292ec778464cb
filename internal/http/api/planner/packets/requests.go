package packets

// REQUESTS FOR the planner routes

// AddSubjectRequest is bound from the HTML form or a JSON body. Fields are
// not marked required: empty values are dropped silently by the registry.
type AddSubjectRequest struct {
	Name    string `form:"name" json:"name"`
	Average string `form:"average" json:"average"`
}

// IndexURI binds the :index path segment.
type IndexURI struct {
	Index int `uri:"index"`
}

// ExportQuery binds ?format=. An empty format falls back to xlsx.
type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=json xlsx"`
}
