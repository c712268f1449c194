package models

import "errors"

// Custom errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidMatch  = errors.New("invalid match record")
	ErrEmptyRoster   = errors.New("roster is empty")
	ErrDuplicateTeam = errors.New("duplicate team in roster")
)
