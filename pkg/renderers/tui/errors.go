package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when answers are still invalid after the
	// configured number of rounds.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
)
