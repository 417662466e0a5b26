// Package core error codes.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// Error codes are grouped by category:
//
// # Selection and Bulk Action Errors (SEL001-SEL004)
//
//	SEL001 - No items selected
//	         Action: Select one or more rows, then choose an action
//	         Patterns: "no items selected"
//
//	SEL002 - Nothing is waiting for confirmation
//	         Action: Choose the action again to get a new confirmation
//	         Patterns: "no bulk action awaiting confirmation"
//
//	SEL003 - Unknown action
//	         Action: Choose one of the actions offered for this list
//	         Patterns: "unknown bulk action"
//
//	SEL004 - The confirmation has expired
//	         Action: Choose the action again and confirm promptly
//	         Patterns: "confirmation expired"
//
// # Collection Errors (COL001-COL002)
//
//	COL001 - Collection not found
//	         Action: Verify the collection name is correct
//	         Patterns: "collection not found"
//
//	COL002 - Item not found
//	         Action: The item may have been deleted. Refresh the list
//	         Patterns: "item not found"
//
// # Validation Errors (VAL001-VAL006)
//
//	VAL001 - Invalid date format detected
//	         Action: Use YYYY-MM-DD, MM/DD/YYYY, or Jan 15, 2024
//	         Patterns: "invalid date"
//
//	VAL002 - Invalid number format detected
//	         Action: Remove letters and use a standard decimal format
//	         Patterns: "invalid number"
//
//	VAL003 - Required field is empty
//	         Action: Fill in every required field
//	         Patterns: "required field"
//
//	VAL004 - Required column is missing from CSV
//	         Action: Check that all required columns are present in your file
//	         Patterns: "missing required column"
//
//	VAL005 - Invalid email address
//	         Action: Use an address like name@example.com
//	         Patterns: "invalid email"
//
//	VAL006 - Value is not in the allowed list
//	         Action: Check the allowed values for this field
//	         Patterns: "invalid enum"
//
// # File Errors (FILE001-FILE005)
//
//	FILE001 - File exceeds maximum size limit
//	          Action: Split the file into smaller chunks
//	          Patterns: "file too large"
//
//	FILE002 - File is not a valid CSV
//	          Action: Ensure file is comma-separated with consistent columns
//	          Patterns: "invalid csv"
//
//	FILE003 - File contains invalid characters
//	          Action: Save file as UTF-8 encoding
//	          Patterns: "encoding error"
//
//	FILE004 - No file was selected
//	          Action: Please select a CSV file to import
//	          Patterns: "no file provided"
//
//	FILE005 - The imported file is empty
//	          Action: Please import a CSV file with data rows
//	          Patterns: "empty file"
//
// # Export Errors (EXP001)
//
//	EXP001 - Unsupported export format
//	         Action: Choose CSV, PDF or JSON
//	         Patterns: "unsupported export format"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//	RATE002 - Import queue full
//	          Patterns: "too many concurrent imports"
//
// # Request Errors (REQ001-REQ002)
//
//	REQ001 - Request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	REQ002 - Request timed out
//	         Action: Try a narrower query or try again later
//	         Patterns: "context deadline exceeded"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches:
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Selection and Bulk Action Errors (SEL001-SEL004)
	// These errors occur when a bulk action cannot run against the selection.
	// =========================================================================
	{
		pattern: "no items selected",
		msg: UserMessage{
			Message: "No items selected",
			Action:  "Select one or more rows, then choose an action",
			Code:    "SEL001",
		},
	},
	{
		pattern: "no bulk action awaiting confirmation",
		msg: UserMessage{
			Message: "Nothing is waiting for confirmation",
			Action:  "Choose the action again to get a new confirmation",
			Code:    "SEL002",
		},
	},
	{
		pattern: "unknown bulk action",
		msg: UserMessage{
			Message: "Unknown action",
			Action:  "Choose one of the actions offered for this list",
			Code:    "SEL003",
		},
	},
	{
		pattern: "confirmation expired",
		msg: UserMessage{
			Message: "The confirmation has expired",
			Action:  "Choose the action again and confirm promptly",
			Code:    "SEL004",
		},
	},

	// =========================================================================
	// Collection Errors (COL001-COL002)
	// These errors occur when a collection or an item in it cannot be found.
	// =========================================================================
	{
		pattern: "collection not found",
		msg: UserMessage{
			Message: "Collection not found",
			Action:  "Verify the collection name is correct",
			Code:    "COL001",
		},
	},
	{
		pattern: "item not found",
		msg: UserMessage{
			Message: "Item not found",
			Action:  "The item may have been deleted. Refresh the list",
			Code:    "COL002",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001-VAL006)
	// These errors occur when data doesn't match expected formats.
	// =========================================================================
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid date format detected",
			Action:  "Use YYYY-MM-DD, MM/DD/YYYY, or Jan 15, 2024",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Invalid number format detected",
			Action:  "Remove letters and use a standard decimal format",
			Code:    "VAL002",
		},
	},
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Required field is empty",
			Action:  "Fill in every required field",
			Code:    "VAL003",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from CSV",
			Action:  "Check that all required columns are present in your file",
			Code:    "VAL004",
		},
	},
	{
		pattern: "invalid email",
		msg: UserMessage{
			Message: "Invalid email address",
			Action:  "Use an address like name@example.com",
			Code:    "VAL005",
		},
	},
	{
		pattern: "invalid enum",
		msg: UserMessage{
			Message: "Value is not in the allowed list",
			Action:  "Check the allowed values for this field",
			Code:    "VAL006",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE005)
	// These errors occur when processing imported files.
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent columns",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save file as UTF-8 encoding",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to import",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The imported file is empty",
			Action:  "Please import a CSV file with data rows",
			Code:    "FILE005",
		},
	},

	// =========================================================================
	// Export Errors (EXP001)
	// These errors occur when an export cannot be produced.
	// =========================================================================
	{
		pattern: "unsupported export format",
		msg: UserMessage{
			Message: "Unsupported export format",
			Action:  "Choose CSV, PDF or JSON",
			Code:    "EXP001",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// These errors occur when request limits are exceeded.
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "too many concurrent imports",
		msg: UserMessage{
			Message: "The server is busy with other imports",
			Action:  "Please try the import again in a few seconds",
			Code:    "RATE002",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ002)
	// These errors occur when a request ends before it completes.
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a narrower query or try again later",
			Code:    "REQ002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
//
// Example:
//
//	msg := MapError(view.ErrNoSelection)
//	// msg.Code == "SEL001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message. Error
// returns the message; Unwrap returns the technical error.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. It returns nil for a nil err.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{Technical: err, User: MapError(err)}
}
