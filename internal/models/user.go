package models

import "time"

// User is the stored profile record. Verification is one-way: once
// AadharVerified flips true it never reverts.
type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	AadharVerified   bool       `json:"aadharVerified"`
	AadharNumber     string     `json:"aadharNumber,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	AadharVerifiedAt *time.Time `json:"aadharVerifiedAt,omitempty"`
}

// PublicUser is the subset of User safe to show other users.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
