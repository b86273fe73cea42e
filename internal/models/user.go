package models

// Manager roles.
const (
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"` // never serialized
}
