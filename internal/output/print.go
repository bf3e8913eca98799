package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Palette shared by all styled output. Adaptive colors keep the text
// readable on both light and dark terminal backgrounds.
var (
	colorError   = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"}
	colorWarn    = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"}
	colorInfo    = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	colorSubtext = lipgloss.AdaptiveColor{Light: "#6C6F85", Dark: "#A6ADC8"}
	colorOverlay = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"}
)

// useStdoutColor reports whether stdout should receive styled output.
func useStdoutColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// Success prints a green checkmark line to stdout.
func Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if useStdoutColor() {
		style := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
		fmt.Println(style.Render("✓ ") + msg)
		return
	}
	fmt.Println("✓ " + msg)
}

// Info prints a neutral informational line to stdout.
func Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if useStdoutColor() {
		style := lipgloss.NewStyle().Foreground(colorInfo)
		fmt.Println(style.Render("→ ") + msg)
		return
	}
	fmt.Println("→ " + msg)
}

// Warn prints a warning line to stderr.
func Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if isStderrTerminal() && os.Getenv("NO_COLOR") == "" {
		style := lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
		fmt.Fprintln(os.Stderr, style.Render("! ")+msg)
		return
	}
	fmt.Fprintln(os.Stderr, "! "+msg)
}

// Dim renders subdued text when color is available.
func Dim(s string) string {
	if useStdoutColor() {
		return lipgloss.NewStyle().Foreground(colorOverlay).Render(s)
	}
	return s
}

// Bold renders emphasized text when color is available.
func Bold(s string) string {
	if useStdoutColor() {
		return lipgloss.NewStyle().Bold(true).Render(s)
	}
	return s
}
