package ui

import (
	"io"
)

// Severity classifies the visual weight of a piece of inline text, mirroring
// the five output methods on UI.
type Severity uint8

const (
	SeverityInfo     Severity = iota // plain
	SeveritySuccess                  // green, resolved / submitted
	SeverityWarn                     // yellow, loading or needs attention
	SeverityError                    // red, unresolved / failed
	SeverityCritical                 // bold, must-review before signing
)

// StyledText pairs a plain string with a Severity annotation. Pass it to
// [UI.Style] to get the coloured form for embedding in a format call:
//
//	u.Info("Recipient: %s", u.Style(ui.StyledText{Text: name, Severity: ui.SeveritySuccess}))
type StyledText struct {
	Text     string
	Severity Severity
}

// UI provides all terminal interaction for payroll commands.
//
// Production code uses TerminalUI (stdout/stdin); tests use RecordingUI,
// which captures output and serves scripted inputs. Implementations must be
// safe to call from multiple goroutines because resolution and submission
// callbacks report progress asynchronously.
//
// Typical interactive recipient flow:
//
//	u.Info("Recipient (address or ENS name, empty line to finish)")
//	line := u.Ask(nil)
//	u.Interpret("0xd8dA...6045 (vitalik.eth)")
type UI interface {
	// Style returns t coloured according to its Severity. When colours are
	// disabled the plain text is returned unchanged.
	Style(t StyledText) string

	// Info writes a neutral status line.
	Info(format string, args ...any)

	// Success writes a positive outcome in green.
	Success(format string, args ...any)

	// Warn writes a non-fatal warning in yellow.
	Warn(format string, args ...any)

	// Error writes a failure in red. It does not exit.
	Error(format string, args ...any)

	// Critical writes data the user must review before an irreversible
	// action, such as the batch they are about to sign or the hash of the
	// transaction they just broadcast.
	Critical(format string, args ...any)

	// Section writes a visual separator centred around a title.
	Section(title string)

	// KeyValue renders an aligned 2-column block.
	KeyValue(rows [][2]string)

	// Table renders a bordered table with an optional header row.
	Table(headers []string, rows [][]string)

	// Spinner starts an animated spinner and returns its stop function.
	// In RecordingUI and non-terminal contexts only the message is kept.
	Spinner(msg string) func()

	// Interpret writes what payroll understood from the last input line.
	Interpret(value string)

	// Ask displays a "> " prompt and reads a line, looping until validate
	// returns nil. A nil validate accepts anything. At end of input Ask
	// returns the empty string.
	Ask(validate func(string) error) string

	// Confirm asks a yes/no question.
	Confirm(prompt string, defaultYes bool) bool

	// Choose prints a numbered list and returns the 0-based chosen index.
	Choose(prompt string, options []string) int

	// Indent returns a child UI one level deeper sharing the same streams.
	Indent() UI

	// Writer returns an io.Writer that prefixes the current indentation.
	Writer() io.Writer
}
