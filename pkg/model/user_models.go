package model

import "time"

// User is an authenticated identity. The password never appears here; it
// lives only as a bcrypt hash inside the local users table.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	ProfilePic string    `json:"profilePic"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}

// UserInfo carries user fields for add and update operations. Password is the
// plaintext input; the storage layer hashes it before persisting.
type UserInfo struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	ProfilePic string
	Password   string
}

// UserFilter selects which UserInfo fields an operation should consider.
type UserFilter struct {
	ID         bool
	Name       bool
	Email      bool
	Phone      bool
	ProfilePic bool
	Password   bool
}
