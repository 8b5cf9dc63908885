package domain

import (
	"errors"
	"time"
)

// PlayerID is the storage identifier handed out in tokens.
type PlayerID string

// Handle is the client-chosen unique player identifier.
type Handle string

type Name string

// Score is kept as text so values like "5/15" survive untouched.
type Score string

type Player struct {
	ID         PlayerID  `db:"id"`
	Name       Name      `db:"name"`
	Handle     Handle    `db:"player"`
	Score      Score     `db:"score"`
	Registered time.Time `db:"created_at"`
}

// NewPlayer is a registration request before validation.
type NewPlayer struct {
	Name   string `json:"name" validate:"required"`
	Handle string `json:"player" validate:"required"`
	Score  string `json:"score" validate:"required"`
}

type Registration struct {
	Player Player
	Token  string
}

var ErrPlayerExists = errors.New("player already exists")

// ErrDuplicateHandle comes from the store when the unique index rejects an insert.
var ErrDuplicateHandle = errors.New("duplicate player handle")

var ErrTokenNotIssued = errors.New("token not issued")
