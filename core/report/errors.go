package report

import (
	"fmt"
	"strings"
)

// DecodeError reports that no supported encoding/delimiter combination
// produced a usable table. The file is unreadable as CSV.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Reason == "" {
		return "file could not be read as CSV with any supported encoding or delimiter"
	}
	return fmt.Sprintf("file could not be read as CSV: %s", e.Reason)
}

// ResolutionError reports that the file was readable but required identity
// columns could not be located in it.
type ResolutionError struct {
	Missing []string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("required columns not found: %s", strings.Join(e.Missing, ", "))
}
