package session

import "errors"

var (
	ErrCorruptSession = errors.New("stored session is corrupt")
	ErrNoSession      = errors.New("no session stored")
)
