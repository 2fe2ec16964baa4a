package core

import "errors"

// Routing drop reasons. Callers log them; they are never surfaced to the
// sender.
var (
	ErrNotRegistered   = errors.New("sender not registered")
	ErrTargetNotFound  = errors.New("target not connected")
	ErrTargetElsewhere = errors.New("target in a different room")
)
