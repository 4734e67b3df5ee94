package model

import "time"

// Session is a server-side login session. Token is the signed bearer value
// handed to the client; only the other fields are stored.
type Session struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ListOptions controls ordering and joins for collection listings.
type ListOptions struct {
	OrderBy     string // column name; empty means the collection default
	Descending  bool
	WithCompany bool // contacts only: embed the linked company summary
}

// AuthSession is what a successful sign-in or sign-up returns to the client.
type AuthSession struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}
