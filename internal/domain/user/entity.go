package user

import (
	"github.com/google/uuid"
)

// User entity. Carries only what auth needs.
type User struct {
	id           uuid.UUID
	name         string
	email        Email
	passwordHash string
	role         Role
	isActive     bool
}

func NewUser(name string, email Email, passwordHash string, role Role) *User {
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
