package dto

// Syllabus describes an uploaded syllabus and its extracted topics. The
// upload response carries a message instead of a creation timestamp; the
// fetch response does the reverse.
type Syllabus struct {
	ID        int64    `json:"id,omitempty"`
	Topics    []string `json:"topics,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
	Message   string   `json:"message,omitempty"`
}
