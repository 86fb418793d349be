package models

import "time"

// User types mirror the account roles the platform serves.
const (
	UserTypeCommuter   = "COMMUTER"
	UserTypeSaccoOwner = "SACCO_OWNER"
	UserTypeOperator   = "OPERATOR"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	FullName     string    `json:"fullName"`
	UserType     string    `json:"userType"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	IsVerified   bool      `json:"isVerified"`
	DateJoined   time.Time `json:"dateJoined"`
}

// ValidUserType reports whether t is one of the known account roles.
func ValidUserType(t string) bool {
	switch t {
	case UserTypeCommuter, UserTypeSaccoOwner, UserTypeOperator:
		return true
	}
	return false
}

// Profile holds the editable display fields; changes go through OTP
// confirmation before being applied.
type Profile struct {
	UserID      int64     `json:"-"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	PhoneNumber string    `json:"phoneNumber"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
