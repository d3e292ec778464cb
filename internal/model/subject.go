package model

// Subject is a course name paired with the average the student is tracking.
// Average is kept as entered, it is rendered with a "%" suffix.
type Subject struct {
	Name    string `json:"name"`
	Average string `json:"average"`
}
