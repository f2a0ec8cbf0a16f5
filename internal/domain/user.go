package domain

import (
	"regexp"
	"strings"
	"time"
)

// DocumentType represents the kind of identity document a user registers with.
type DocumentType string

const (
	DocumentNationalID DocumentType = "national-id"
	DocumentPassport   DocumentType = "passport"
	DocumentLicense    DocumentType = "drivers-license"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a registered rider.
type User struct {
	ID              string       `json:"id"`
	FirstName       string       `json:"firstName"`
	MiddleName      string       `json:"middleName"`
	LastName1       string       `json:"lastName1"`
	LastName2       string       `json:"lastName2"`
	Email           string       `json:"email"`
	DocumentType    DocumentType `json:"documentType"`
	DocumentNumber  string       `json:"document"`
	Address         string       `json:"address"`
	Phone           string       `json:"phone"`
	RegisteredAt    time.Time    `json:"registeredAt"`
	ActiveRentalIDs []string     `json:"activeRentalIds"`
	Active          bool         `json:"active"`
}

// Validate returns every violated field rule.
func (u *User) Validate() []string {
	var violations []string

	if strings.TrimSpace(u.FirstName) == "" {
		violations = append(violations, "first name is required")
	}
	if strings.TrimSpace(u.LastName1) == "" {
		violations = append(violations, "last name is required")
	}
	if !emailPattern.MatchString(u.Email) {
		violations = append(violations, "email is not a valid address")
	}
	switch u.DocumentType {
	case DocumentNationalID, DocumentPassport, DocumentLicense:
	default:
		violations = append(violations, "document type must be one of national-id, passport, drivers-license")
	}
	if strings.TrimSpace(u.DocumentNumber) == "" {
		violations = append(violations, "document number is required")
	}
	if strings.TrimSpace(u.Phone) == "" {
		violations = append(violations, "phone is required")
	}

	return violations
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	parts := []string{u.FirstName, u.MiddleName, u.LastName1, u.LastName2}
	var nonEmpty []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// HasActiveRental reports whether the given rental is on the user's
// active list.
func (u *User) HasActiveRental(rentalID string) bool {
	for _, id := range u.ActiveRentalIDs {
		if id == rentalID {
			return true
		}
	}
	return false
}

// AddActiveRental records a rental as active for the user.
func (u *User) AddActiveRental(rentalID string) {
	if !u.HasActiveRental(rentalID) {
		u.ActiveRentalIDs = append(u.ActiveRentalIDs, rentalID)
	}
}

// RemoveActiveRental clears a rental from the user's active list.
func (u *User) RemoveActiveRental(rentalID string) {
	for i, id := range u.ActiveRentalIDs {
		if id == rentalID {
			u.ActiveRentalIDs = append(u.ActiveRentalIDs[:i], u.ActiveRentalIDs[i+1:]...)
			return
		}
	}
}

// PublicProfile is the password-free projection of a user stored under
// the session key.
type PublicProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile returns the user's public profile.
func (u *User) Profile() PublicProfile {
	return PublicProfile{ID: u.ID, Name: u.FullName(), Email: u.Email}
}
