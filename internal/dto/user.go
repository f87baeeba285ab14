package dto

// Role enumerates the account roles the backend assigns at login.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// User is the identity record returned by both login endpoints. StudentID is
// the optional business identifier, distinct from the numeric ID, and is
// only ever present for students.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	StudentID string `json:"student_id,omitempty"`
}

// IsTeacher reports whether the user holds the teacher role.
func (u *User) IsTeacher() bool {
	return u != nil && u.Role == RoleTeacher
}

// IsStudent reports whether the user holds the student role.
func (u *User) IsStudent() bool {
	return u != nil && u.Role == RoleStudent
}
