package models

type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is what the upstream /api/login answers.
type AuthResponse struct {
	Token string `json:"token"`
	User  `json:"user"`
}

type User struct {
	Id    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type Role string

const (
	Admin      Role = "ADMIN"
	Accounting Role = "ACCOUNTING"
	Courier    Role = "COURIER"
)
