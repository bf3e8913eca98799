package output

import (
	"strings"
	"testing"
)

func TestCLIErrorBuilders(t *testing.T) {
	err := NewCLIError("session name invalid").
		WithCause("names may not contain ':' or '.'").
		WithHint("muxmon --session my-session").
		WithCode("E_SESSION_NAME")

	if err.Error() != "session name invalid" {
		t.Errorf("Error() = %q", err.Error())
	}

	// Formatting under a pipe (tests never run on a tty here) is plain text.
	got := FormatCLIError(err)
	for _, want := range []string{
		"Error: session name invalid [E_SESSION_NAME]",
		"Cause: names may not contain",
		"Hint: muxmon --session my-session",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("formatted error missing %q:\n%s", want, got)
		}
	}
}

func TestFormatCLIErrorOmitsEmptyFields(t *testing.T) {
	got := FormatCLIError(NewCLIError("boom"))
	if strings.Contains(got, "Cause:") || strings.Contains(got, "Hint:") || strings.Contains(got, "[") {
		t.Errorf("empty fields leaked into output:\n%s", got)
	}
	if !strings.HasPrefix(got, "Error: boom") {
		t.Errorf("unexpected prefix: %q", got)
	}
}
