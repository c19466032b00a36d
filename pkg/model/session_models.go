package model

import "time"

// Session represents one interactive session of the client.
type Session struct {
	ID           string
	User         *User
	Admin        bool
	LastActivity time.Time
}
