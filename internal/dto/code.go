package dto

// AccessCode is the client's view of a server-owned access code: an opaque
// token plus timestamps for display. Validity is enforced server-side.
// Timestamps are carried verbatim as the backend formats them.
type AccessCode struct {
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at"`
	CreatedAt string `json:"created_at"`
}
