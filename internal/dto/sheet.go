package dto

// Answer sheet processing states as reported by the backend.
const (
	SheetStatusProcessing = "processing"
	SheetStatusProcessed  = "processed"
	SheetStatusError      = "error"
)

// AnswerSheet is one uploaded answer sheet and its processing state.
type AnswerSheet struct {
	ID          int64   `json:"id"`
	FileName    string  `json:"file_name"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at"`
}

// UploadAck acknowledges an answer-sheet upload. Grading happens
// asynchronously on the backend, so the acknowledged status is always
// "processing" regardless of how fast the analysis completes.
type UploadAck struct {
	ID      int64  `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
