// Package printer formats taskatlas console output: pipeline stage
// announcements, run summaries, recoverable-problem notices, and
// structured errors with suggested fixes.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

func init() {
	// Force color output even when not connected to TTY
	// Users can disable with NO_COLOR environment variable
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

// Output destinations. Tests swap these for buffers.
var (
	Out    io.Writer = os.Stdout
	ErrOut io.Writer = os.Stderr
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a green confirmation line with a checkmark prefix.
// Each command prints exactly one on its happy path.
func Success(format string, a ...any) {
	green.Fprintf(Out, "✓ %s", fmt.Sprintf(format, a...))
}

// Info prints plain informational output (row counts, listen addresses)
func Info(format string, a ...any) {
	fmt.Fprintf(Out, format, a...)
}

// Warning prints a yellow notice for recoverable problems: an
// unreachable cache, a failed reload while watching. The run continues.
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		yellow.Fprintf(Out, "⚠️  %s", msg)
		return
	}
	yellow.Fprint(Out, msg)
}

// Step announces the start of a pipeline stage
func Step(format string, a ...any) {
	cyan.Fprintf(Out, "→ %s", fmt.Sprintf(format, a...))
}

// Error prints a formatted failure (title, explanation, suggested
// fixes) to stderr and returns a bare error carrying only the title,
// which is what main prints on exit.
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(ErrOut, "%s\n\n", title)

	if explanation != "" {
		fmt.Fprintf(ErrOut, "%s\n", explanation)
	}

	switch len(suggestions) {
	case 0:
	case 1:
		fmt.Fprintf(ErrOut, "\n%s\n", suggestions[0])
	default:
		fmt.Fprintf(ErrOut, "\nTry one of:\n")
		for i, suggestion := range suggestions {
			fmt.Fprintf(ErrOut, "  %d. %s\n", i+1, suggestion)
		}
	}

	return fmt.Errorf("%s", title)
}
