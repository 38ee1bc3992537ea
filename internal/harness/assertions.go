package harness

import (
	"fmt"

	"github.com/roach88/rpath/internal/render"
)

// CheckExpect compares a result against an expect clause and returns one
// message per mismatch.
func CheckExpect(expect Expect, result *Result) []string {
	var errors []string

	failed := result.ErrorCode != "" || result.Error != ""

	switch {
	case expect.Error != "":
		if !failed {
			return append(errors, fmt.Sprintf("expected error %s, got %s", expect.Error, describe(result)))
		}
		if result.ErrorCode != expect.Error {
			errors = append(errors, fmt.Sprintf("expected error %s, got %s: %s", expect.Error, codeOrUnknown(result.ErrorCode), result.Error))
		}

	case failed:
		errors = append(errors, fmt.Sprintf("unexpected error: %s", result.Error))

	case expect.Absent:
		if !result.Absent {
			errors = append(errors, fmt.Sprintf("expected absent, got %s", describe(result)))
		}

	default:
		want, err := render.Text(expect.Value)
		if err != nil {
			return append(errors, fmt.Sprintf("expected value cannot be rendered: %v", err))
		}
		got := describe(result)
		if got != want {
			errors = append(errors, fmt.Sprintf("value mismatch: expected %s, got %s", want, got))
		}
	}

	return errors
}

// describe renders the result value as canonical JSON, or <absent>.
func describe(result *Result) string {
	if result.Absent {
		return render.Absent
	}
	text, err := render.Text(result.Value)
	if err != nil {
		return fmt.Sprintf("<unrenderable %T>", result.Value)
	}
	return text
}

func codeOrUnknown(code string) string {
	if code == "" {
		return "uncoded error"
	}
	return code
}
