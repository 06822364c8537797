package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined
	// the submit confirmation.
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalid is returned when the form is still invalid after the
	// configured number of attempts.
	ErrInvalid = errors.New("tui: form is invalid")
)
