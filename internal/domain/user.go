package domain

import "time"

// User is a registered account holder. HashedPassword is opaque outside
// the password hasher.
type User struct {
	ID             string
	Username       string
	HashedPassword string
	AccountID      string
	CreatedAt      time.Time
}

// Identity is the verified subject of a bearer token.
type Identity struct {
	UserID string
}
