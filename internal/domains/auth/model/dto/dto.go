package dto

import (
	"strings"

	sessionModel "tripplanner/internal/domains/session/model"
	userModel "tripplanner/internal/domains/user/model"
	"tripplanner/shared/constant"
)

const (
	loggedOutLabel = "Login / Sign Up"
	greeting       = "Hi, "
)

type SignupRequest struct {
	Name     string `json:"name"     validate:"max=100"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required"`
}

// Normalize trims the name and case-folds the email. The password is kept as typed.
func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
}

func (r *SignupRequest) ToUserModel(hashedPassword string) userModel.User {
	return userModel.User{
		Name:     r.Name,
		Email:    r.Email,
		Password: hashedPassword,
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
}

type SessionResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *SessionResponse) FromModel(session sessionModel.Session) {
	s.Name = session.Name
	s.Email = session.Email
}

// StateResponse is what the account button shows.
type StateResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Label    string `json:"label"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

func (s *StateResponse) FromSession(session *sessionModel.Session) {
	if session == nil {
		s.LoggedIn = false
		s.Label = loggedOutLabel

		return
	}

	s.LoggedIn = true
	s.Name = session.Name
	s.Email = session.Email
	s.Label = session.Email

	if session.Name != constant.Empty {
		s.Label = greeting + session.Name
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
