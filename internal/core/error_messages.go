package core

// error_messages.go maps technical errors to messages shown next to the file
// picker or returned in JSON error bodies.
//
// Codes, for support reference:
//
//	FILE001 - File too large             Patterns: "file too large", "request body too large"
//	FILE002 - Invalid CSV                Sentinel: ErrInvalidCSV
//	FILE003 - Not a multipart upload     Patterns: "multipart"
//	FILE004 - No file selected           Sentinel: ErrNoFile
//
//	UPL001  - Superseded by newer upload Sentinel: ErrStaleUpload
//	UPL002  - Too many reads in flight   Sentinel: ErrTooManyReads
//	UPL004  - Request cancelled          Patterns: "context canceled"
//	UPL005  - Request timed out          Patterns: "context deadline exceeded"
//
//	CHT001  - Unknown entity             Sentinel: ErrUnknownEntity
//	CHT002  - No dataset loaded          Sentinel: ErrNoDataset
//
//	RATE001 - Rate limited               Patterns: "rate limit"
//	AUTH001 - Missing or invalid API key Patterns: "api key"
//
//	ERR000  - Anything else
//
// Sentinels are checked with errors.Is first; string patterns are a
// case-insensitive strings.Contains fallback for errors from other packages.
// The first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoFile is returned when the upload form carries no file part.
var ErrNoFile = errors.New("no file provided")

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrInvalidCSV, UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Check quoting and make sure the file is comma-separated",
		Code:    "FILE002",
	}},
	{ErrNoFile, UserMessage{
		Message: "No file was selected",
		Action:  "Please select a CSV file to upload",
		Code:    "FILE004",
	}},
	{ErrStaleUpload, UserMessage{
		Message: "A newer upload replaced this one",
		Action:  "The chart shows the most recently selected file",
		Code:    "UPL001",
	}},
	{ErrTooManyReads, UserMessage{
		Message: "The server is busy reading other files",
		Action:  "Please wait a moment and try again",
		Code:    "UPL002",
	}},
	{ErrUnknownEntity, UserMessage{
		Message: "That series is not configured",
		Action:  "Hover one of the layers listed in the legend",
		Code:    "CHT001",
	}},
	{ErrNoDataset, UserMessage{
		Message: "No data loaded yet",
		Action:  "Upload a CSV file first",
		Code:    "CHT002",
	}},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is the fallback for errors without a sentinel.
// Specific patterns must come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Upload a smaller file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Upload a smaller file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "multipart",
		msg: UserMessage{
			Message: "The upload form was malformed",
			Action:  "Reload the page and pick the file again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "api key",
		msg: UserMessage{
			Message: "Missing or invalid API key",
			Action:  "Send a configured key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
//	msg := MapError(fmt.Errorf("commit: %w", ErrStaleUpload))
//	// msg.Code == "UPL001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
