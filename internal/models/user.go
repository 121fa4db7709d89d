package models

import "time"

// User represents a registered user account.
//
// Users are created by seeding only. The acting user of a request is resolved
// by an auth.IdentityResolver; login is available only when AUTH_MODE=jwt.
type User struct {
	// ID is the store-assigned identifier.
	ID int64

	// Email is the user's email address (unique, required).
	Email string

	// Password is the bcrypt hash of the user's password. It is never
	// serialized.
	Password string

	FirstName string
	LastName  string

	// SubscriptionDate is when the user signed up. Zero if unknown.
	SubscriptionDate time.Time
}

// FullName returns "First Last".
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
