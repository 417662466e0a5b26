package tui

import "github.com/JonMunkholm/dashboard/internal/view"

// bulkMsg reports a finished dispatch, confirm or cancel step.
type bulkMsg struct {
	res view.DispatchResult
	err error
}

// ErrMsg carries an error to display in the status line.
type ErrMsg struct{ Err error }

// DoneMsg carries a confirmation to display in the status line.
type DoneMsg string
