package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"wrapped invalid csv", fmt.Errorf("%w: bare quote", ErrInvalidCSV), "FILE002"},
		{"no file", ErrNoFile, "FILE004"},
		{"stale upload wrapped", fmt.Errorf("commit: %w", ErrStaleUpload), "UPL001"},
		{"busy", ErrTooManyReads, "UPL002"},
		{"unknown entity", fmt.Errorf("%w: Mistral", ErrUnknownEntity), "CHT001"},
		{"no dataset", ErrNoDataset, "CHT002"},
		{"max bytes", errors.New("read upload: http: request body too large"), "FILE001"},
		{"cancelled", fmt.Errorf("read: %w", context.Canceled), "UPL004"},
		{"deadline", context.DeadlineExceeded, "UPL005"},
		{"case insensitive", errors.New("RATE LIMIT exceeded"), "RATE001"},
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Errorf("MapError(%v).Message is empty", tt.err)
			}
		})
	}
}

func TestMapError_SentinelBeatsPattern(t *testing.T) {
	// Mentions "context canceled" but is really a superseded upload.
	err := fmt.Errorf("%w (context canceled)", ErrStaleUpload)
	if got := MapError(err).Code; got != "UPL001" {
		t.Errorf("code = %q, want UPL001", got)
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(ErrNoDataset)
	want := "No data loaded yet (Code: CHT002). Upload a CSV file first"
	if got != want {
		t.Errorf("FormatUserError = %q, want %q", got, want)
	}
}
