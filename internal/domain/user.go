package domain

import "time"

// User is the persisted account that tokens refer to.
type User struct {
	ID           int64
	Email        string
	Gender       string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
