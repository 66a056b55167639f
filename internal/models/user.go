package models

import "time"

type UserRole string

const (
	UserRoleMember UserRole = "member"
	UserRoleAdmin  UserRole = "admin"
)

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Name         string
	PhotoURL     *string
	Role         UserRole
	CreatedAt    time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// CanModify reports whether u may edit or delete something authored by authorID.
func (u User) CanModify(authorID string) bool {
	return u.ID == authorID || u.IsAdmin()
}
