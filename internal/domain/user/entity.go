package user

import (
	"strings"
	"time"
)

// User is the identity record the kernel consumes from the user collaborator.
// Account lifecycle lives elsewhere; saved cards hang off the same record.
type User struct {
	id        string
	email     Email
	role      Role
	createdAt time.Time
}

func NewUser(id string, email Email, role Role, now time.Time) (*User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidUserID
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &User{id: id, email: email, role: role, createdAt: now}, nil
}

func ReconstructUser(id string, email Email, role Role, createdAt time.Time) *User {
	return &User{id: id, email: email, role: role, createdAt: createdAt}
}

func (u *User) ID() string           { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
