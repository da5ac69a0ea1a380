package request

import (
	"fleet-rental/internal/domain/user"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r RegisterRequest) ToCredentials() (user.Credentials, error) {
	return user.NewCredentials(r.Email, r.Password)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) ToCredentials() (user.Credentials, error) {
	return user.NewCredentials(r.Email, r.Password)
}
