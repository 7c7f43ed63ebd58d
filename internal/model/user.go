package model

import (
	"errors"
	"time"
)

// User is a person known to the desk. Admins manage the catalog, regular
// users only see what is assigned to them.
type User struct {
	ID            string   `json:"id"`
	FullName      string   `json:"fullName"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	Role          string   `json:"role"`
	JobTitle      string   `json:"jobTitle"`
	Department    string   `json:"department"`
	Organization  string   `json:"organization"`
	Site          []string `json:"site"`
	BusinessPhone string   `json:"businessPhone"`
	MobileNo      string   `json:"mobileNo"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	PostalCode    string   `json:"postalCode"`
	LinkedIn      string   `json:"linkedin"`
	Twitter       string   `json:"twitter"`
	UserStatus    string   `json:"userStatus"`
	DateOfJoining string   `json:"dateOfJoining"`
	Notes         string   `json:"notes"`
	AvatarMime    string   `json:"avatarMime,omitempty"`
	PasswordHash  string   `json:"-"`

	PlatformAccounts []PlatformAccount   `json:"platformAccounts,omitempty"`
	History          []AssignmentHistory `json:"history,omitempty"`

	CreatedBy    string    `json:"createdBy"`
	ModifiedBy   string    `json:"modifiedBy"`
	CreatedDate  time.Time `json:"createdDate"`
	ModifiedDate time.Time `json:"modifiedDate"`
}

// Ref returns the embedded view of the user.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, FullName: u.FullName, Email: u.Email, Department: u.Department}
}

// UserRef is a user as embedded in assets, requests and tasks. It is always
// resolved from the users table on read.
type UserRef struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// PlatformAccount is an external account held by a user.
type PlatformAccount struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Platform    string    `json:"platform"`
	AccountType string    `json:"accountType"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	CreatedDate time.Time `json:"createdDate"`
}

// Roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User statuses.
const (
	UserStatusActive   = "Active"
	UserStatusInactive = "Inactive"
)

// RoleAtLeast checks if role meets or exceeds the minimum required role.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleAdmin: 2,
		RoleUser:  1,
	}
	r, ok := levels[role]
	m, okMin := levels[minimum]
	return ok && okMin && r >= m
}

// ValidRole reports whether role is a known role.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// ValidatePassword checks a new password against the password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
