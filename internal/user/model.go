package user

import (
	"strings"
	"time"
)

// DefaultImageName is the profile image assigned to new users
const DefaultImageName = "/image/users/default_user.jpg"

// User represents a user in the system. It never carries the credential.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ImageName string    `json:"image_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserWithPassword is the full users row, returned only by GetByEmailWithPassword
type UserWithPassword struct {
	User
	Password string `json:"-"`
}

// columns is the allow-list of users columns safe to return to callers.
// The password column is deliberately absent.
var columns = []string{"id", "name", "email", "image_name", "created_at", "updated_at"}

// Columns returns the allow-listed users columns, qualified with alias when
// it is not empty, for use in SELECT and RETURNING clauses.
func Columns(alias string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}

	qualified := make([]string, len(columns))
	for i, c := range columns {
		qualified[i] = alias + "." + c
	}
	return strings.Join(qualified, ", ")
}

// ScanDest returns Scan destinations matching Columns, in order
func (u *User) ScanDest() []any {
	return []any{&u.ID, &u.Name, &u.Email, &u.ImageName, &u.CreatedAt, &u.UpdatedAt}
}
