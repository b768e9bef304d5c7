package domain

import "time"

// Token describes an issued access token.
type Token struct {
	ID        string
	UserID    int64
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
