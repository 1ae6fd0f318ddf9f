// Package models defines the server-side records persisted in the database
// and returned by the JSON API.
package models

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Account is an administrator permitted to modify site content. Accounts
// are created by the bootstrap tool only.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AccountView is the public projection of an account used in auth responses.
type AccountView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (a *Account) View() AccountView {
	return AccountView{ID: a.ID, Email: a.Email, Name: a.Name}
}

// NormalizeEmail returns the canonical stored form of an email address:
// NFKC-normalised, trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(email)))
}
