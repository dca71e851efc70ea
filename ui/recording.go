package ui

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Entry records a single UI method call for test assertions.
type Entry struct {
	Method string
	Value  string // the formatted string passed to the method (or input for Ask)
}

// sharedState is shared by a RecordingUI and every child created with
// Indent, so nested Ask calls advance the same input cursor.
type sharedState struct {
	mu      sync.Mutex
	entries []Entry
	inputs  []string
	nextIdx int
	buf     bytes.Buffer
}

// RecordingUI implements UI for tests.
//
// All output is captured in an entry log inspected with Entries and
// HasMessage. Input is served in order from the scripted inputs given to
// NewRecordingUI. Ask returns "" once the script is exhausted, which the
// interactive recipient loop treats as end of input; Confirm and Choose
// panic instead since a missing answer there is a broken test script.
type RecordingUI struct {
	shared      *sharedState
	indentLevel int
}

// NewRecordingUI creates a RecordingUI with the given scripted inputs.
func NewRecordingUI(scriptedInputs ...string) *RecordingUI {
	return &RecordingUI{
		shared: &sharedState{inputs: scriptedInputs},
	}
}

func (r *RecordingUI) record(method, value string) {
	r.shared.mu.Lock()
	defer r.shared.mu.Unlock()
	r.shared.entries = append(r.shared.entries, Entry{Method: method, Value: value})
}

func (r *RecordingUI) nextInput() (string, bool) {
	r.shared.mu.Lock()
	defer r.shared.mu.Unlock()
	if r.shared.nextIdx >= len(r.shared.inputs) {
		return "", false
	}
	input := r.shared.inputs[r.shared.nextIdx]
	r.shared.nextIdx++
	return input, true
}

func (r *RecordingUI) mustNextInput(caller string) string {
	input, ok := r.nextInput()
	if !ok {
		panic(fmt.Sprintf("RecordingUI: no scripted input left for %s", caller))
	}
	return input
}

// Style returns the plain text of t.
func (r *RecordingUI) Style(t StyledText) string {
	return t.Text
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Critical(format string, args ...any) {
	r.record("Critical", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string) {
	r.record("Section", title)
}

// KeyValue records each row as "label: value".
func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", row[0]+": "+row[1])
	}
}

// Table records the header and each row as a " | " joined line.
func (r *RecordingUI) Table(headers []string, rows [][]string) {
	if len(headers) > 0 {
		r.record("TableHeader", strings.Join(headers, " | "))
	}
	for _, row := range rows {
		r.record("TableRow", strings.Join(row, " | "))
	}
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

func (r *RecordingUI) Interpret(value string) {
	r.record("Interpret", value)
}

// Ask returns the next scripted input, or "" when the script is exhausted.
// Input that fails validate panics: there is no user to correct it.
func (r *RecordingUI) Ask(validate func(string) error) string {
	input, _ := r.nextInput()
	r.record("Ask", input)
	if validate != nil {
		if err := validate(input); err != nil {
			panic(fmt.Sprintf(
				"RecordingUI: scripted input %q failed validation in Ask: %s",
				input, err,
			))
		}
	}
	return input
}

// Confirm interprets the next scripted input: "y"/"yes" is true, "n"/"no"
// is false and "" takes defaultYes.
func (r *RecordingUI) Confirm(prompt string, defaultYes bool) bool {
	r.record("Confirm", prompt)
	input := strings.ToLower(strings.TrimSpace(r.mustNextInput("Confirm")))
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}

// Choose accepts a 1-based number or the option text (case-insensitive).
func (r *RecordingUI) Choose(prompt string, options []string) int {
	r.record("Choose", prompt)
	input := r.mustNextInput("Choose")
	if idx, err := strconv.Atoi(strings.TrimSpace(input)); err == nil {
		if idx >= 1 && idx <= len(options) {
			return idx - 1
		}
	}
	for i, opt := range options {
		if strings.EqualFold(input, opt) {
			return i
		}
	}
	panic(fmt.Sprintf(
		"RecordingUI: scripted input %q does not match any option in Choose(%q, %v)",
		input, prompt, options,
	))
}

func (r *RecordingUI) Indent() UI {
	return &RecordingUI{
		shared:      r.shared,
		indentLevel: r.indentLevel + 1,
	}
}

// Writer appends to an internal buffer without indentation.
func (r *RecordingUI) Writer() io.Writer {
	return lockedWriter{r.shared}
}

type lockedWriter struct {
	s *sharedState
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	return w.s.buf.Write(p)
}

// Entries returns a copy of all recorded calls in order.
func (r *RecordingUI) Entries() []Entry {
	r.shared.mu.Lock()
	defer r.shared.mu.Unlock()
	return append([]Entry(nil), r.shared.entries...)
}

func (r *RecordingUI) InfoMessages() []string {
	return r.methodValues("Info")
}

func (r *RecordingUI) WarnMessages() []string {
	return r.methodValues("Warn")
}

func (r *RecordingUI) ErrorMessages() []string {
	return r.methodValues("Error")
}

func (r *RecordingUI) CriticalMessages() []string {
	return r.methodValues("Critical")
}

// HasMessage reports whether any recorded value contains substr,
// case-insensitively.
func (r *RecordingUI) HasMessage(substr string) bool {
	lower := strings.ToLower(substr)
	for _, e := range r.Entries() {
		if strings.Contains(strings.ToLower(e.Value), lower) {
			return true
		}
	}
	return false
}

// Output returns everything written to Writer().
func (r *RecordingUI) Output() string {
	r.shared.mu.Lock()
	defer r.shared.mu.Unlock()
	return r.shared.buf.String()
}

func (r *RecordingUI) methodValues(method string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Method == method {
			out = append(out, e.Value)
		}
	}
	return out
}
