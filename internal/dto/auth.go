package dto

// LoginRequest carries credential login payloads.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CodeLoginRequest carries access-code login payloads. The code is
// normalized to uppercase before transmission; whether the backend compares
// case-sensitively is its own concern.
type CodeLoginRequest struct {
	AccessCode string `json:"access_code" validate:"required,len=6,alphanum"`
	StudentID  string `json:"student_id" validate:"required"`
}

// GenerateCodeRequest asks the backend to issue a new access code.
type GenerateCodeRequest struct {
	TeacherID int64 `json:"teacher_id" validate:"required"`
}
