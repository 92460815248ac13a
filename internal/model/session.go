package model

import "time"

// Role identifies which credential collection authenticates a login.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether r is one of the three fixed roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleDoctor || r == RolePatient
}

// AdminCredential is the singleton admin account.
type AdminCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Session is the single current authenticated identity for the running
// process. Starting a new session silently replaces any prior one.
type Session struct {
	ID             string    `json:"id"`
	Role           Role      `json:"role"`
	Name           string    `json:"name"`
	Username       string    `json:"username,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	Email          string    `json:"email,omitempty"`
	PatientUserID  string    `json:"patientUserId,omitempty"`
	MobileNumber   string    `json:"mobileNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type PatientLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
