package models

// ClassTeacher identifies one teacher involved with a class on a given day.
// For a substituted slot both the substitute (flagged, with the back-reference)
// and the originally assigned teacher appear as distinct entries.
type ClassTeacher struct {
	Name            string `json:"name"`
	IsSubstituted   bool   `json:"is_substituted"`
	OriginalTeacher string `json:"original_teacher,omitempty"`
}

// ClassReadiness aggregates one class's completion state for a single day.
// Derived, never persisted.
type ClassReadiness struct {
	ClassName string         `json:"class_name"`
	IsReady   bool           `json:"is_ready"`
	Progress  int            `json:"progress"`
	Total     int            `json:"total"`
	Teachers  []ClassTeacher `json:"teachers"`
}
