package model

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Ctime        int64  `json:"ctime"`
	Mtime        int64  `json:"mtime"`
}
