package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
)

const (
	indentUnit      = "  "
	sectionWidth    = 50
	promptPrefix    = "> "
	interpretPrefix = "→ "
)

// TerminalUI is the production UI. It writes coloured output and reads
// line-based input. Children created with Indent share the parent's
// streams and output lock, so asynchronous progress lines never interleave
// mid-line with prompts.
type TerminalUI struct {
	indentLevel int
	out         io.Writer
	in          *bufio.Reader
	au          aurora.Aurora
	animate     bool
	mu          *sync.Mutex
}

// NewTerminalUI creates a TerminalUI on os.Stdout and os.Stdin. Colours
// and the spinner animation are enabled when stdout is a real terminal.
func NewTerminalUI() *TerminalUI {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	u := NewTerminalUIWith(os.Stdin, os.Stdout, isTTY)
	u.animate = isTTY
	return u
}

// NewTerminalUIWith creates a TerminalUI on arbitrary streams. The spinner
// never animates on these streams.
func NewTerminalUIWith(in io.Reader, out io.Writer, colors bool) *TerminalUI {
	return &TerminalUI{
		out: out,
		in:  bufio.NewReader(in),
		au:  aurora.NewAurora(colors),
		mu:  &sync.Mutex{},
	}
}

func (u *TerminalUI) prefix() string {
	return strings.Repeat(indentUnit, u.indentLevel)
}

func (u *TerminalUI) writeLine(line string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, "%s%s\n", u.prefix(), line)
}

func (u *TerminalUI) Style(t StyledText) string {
	switch t.Severity {
	case SeveritySuccess:
		return u.au.Green(t.Text).String()
	case SeverityWarn:
		return u.au.Yellow(t.Text).String()
	case SeverityError:
		return u.au.Red(t.Text).String()
	case SeverityCritical:
		return u.au.Bold(t.Text).String()
	default:
		return t.Text
	}
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.writeLine(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.writeLine(u.au.Green(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Warn(format string, args ...any) {
	u.writeLine(u.au.Yellow(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.writeLine(u.au.Red(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Critical(format string, args ...any) {
	u.writeLine(u.au.Bold(fmt.Sprintf(format, args...)).String())
}

// Section prints a separator line centred around the title, surrounded by
// blank lines:
//
//	=========== Confirm payout batch ===========
func (u *TerminalUI) Section(title string) {
	titled := " " + title + " "
	bars := sectionWidth - runewidth.StringWidth(titled)
	if bars < 6 {
		bars = 6
	}
	left := bars / 2
	right := bars - left
	line := strings.Repeat("=", left) + titled + strings.Repeat("=", right)

	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, "\n%s%s\n\n", u.prefix(), line)
}

func (u *TerminalUI) Interpret(value string) {
	u.writeLine(indentUnit + interpretPrefix + u.au.Cyan(value).String())
}

func (u *TerminalUI) Ask(validate func(string) error) string {
	for {
		u.mu.Lock()
		fmt.Fprintf(u.out, "%s%s", u.prefix(), promptPrefix)
		u.mu.Unlock()

		text, err := u.in.ReadString('\n')
		input := strings.TrimRight(text, "\r\n")
		if err != nil && errors.Is(err, io.EOF) && input == "" {
			return ""
		}
		if validate == nil {
			return input
		}
		verr := validate(input)
		if verr == nil {
			return input
		}
		u.writeLine(u.au.Red(verr.Error()).String())
		if err != nil {
			return ""
		}
	}
}

// Confirm prints the question with [Y/n] or [y/N]. An empty answer takes
// the default.
func (u *TerminalUI) Confirm(prompt string, defaultYes bool) bool {
	options := "[Y/n]"
	if !defaultYes {
		options = "[y/N]"
	}
	u.Info("%s %s", prompt, options)
	input := strings.ToLower(strings.TrimSpace(u.Ask(func(s string) error {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "y", "yes", "n", "no":
			return nil
		}
		return fmt.Errorf("please enter y or n")
	})))
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}

func (u *TerminalUI) Choose(prompt string, options []string) int {
	for i, opt := range options {
		u.Info("%d. %s", i+1, opt)
	}
	u.Info("%s [1-%d]", prompt, len(options))
	input := u.Ask(func(s string) error {
		idx, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || idx < 1 || idx > len(options) {
			return fmt.Errorf("please enter a number between 1 and %d", len(options))
		}
		return nil
	})
	idx, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0
	}
	return idx - 1
}

// KeyValue right-pads the label column to the widest label.
func (u *TerminalUI) KeyValue(rows [][2]string) {
	if len(rows) == 0 {
		return
	}
	maxLabel := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r[0]); w > maxLabel {
			maxLabel = w
		}
	}
	p := u.prefix()

	u.mu.Lock()
	defer u.mu.Unlock()
	for _, r := range rows {
		fmt.Fprintf(u.out, "%s%s  %s\n", p, runewidth.FillRight(r[0], maxLabel), r[1])
	}
}

func cellWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

func padCell(s string, w int) string {
	visible := cellWidth(s)
	if visible >= w {
		return s
	}
	return s + strings.Repeat(" ", w-visible)
}

// Table renders a bordered table. ANSI codes embedded in cells (from
// Style) are ignored when computing column widths. When headers is empty no
// header row is rendered.
func (u *TerminalUI) Table(headers []string, rows [][]string) {
	if len(headers) == 0 && len(rows) == 0 {
		return
	}
	ncols := len(headers)
	for _, r := range rows {
		if len(r) > ncols {
			ncols = len(r)
		}
	}

	widths := make([]int, ncols)
	for i, h := range headers {
		widths[i] = cellWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row); i++ {
			if w := cellWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	border := func(s string) string { return borderStyle.Render(s) }

	dashes := make([]string, ncols)
	for i, w := range widths {
		dashes[i] = strings.Repeat("─", w+2)
	}
	top := border("┌" + strings.Join(dashes, "┬") + "┐")
	sep := border("├" + strings.Join(dashes, "┼") + "┤")
	bottom := border("└" + strings.Join(dashes, "┴") + "┘")

	renderRow := func(cells []string) string {
		parts := make([]string, ncols)
		for i := 0; i < ncols; i++ {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			parts[i] = " " + padCell(val, widths[i]) + " "
		}
		return border("│") + strings.Join(parts, border("│")) + border("│")
	}

	p := u.prefix()
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, "%s%s\n", p, top)
	if len(headers) > 0 {
		fmt.Fprintf(u.out, "%s%s\n", p, renderRow(headers))
		fmt.Fprintf(u.out, "%s%s\n", p, sep)
	}
	for _, row := range rows {
		fmt.Fprintf(u.out, "%s%s\n", p, renderRow(row))
	}
	fmt.Fprintf(u.out, "%s%s\n", p, bottom)
}

// Spinner animates only on a real terminal; elsewhere it prints msg once.
func (u *TerminalUI) Spinner(msg string) func() {
	if !u.animate {
		u.writeLine(msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Suffix = " " + msg
	s.Start()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.Stop()
			// spinner clears the line with \r but leaves the cursor on it
			u.mu.Lock()
			fmt.Fprintf(u.out, "\n")
			u.mu.Unlock()
		})
	}
}

func (u *TerminalUI) Indent() UI {
	return &TerminalUI{
		indentLevel: u.indentLevel + 1,
		out:         u.out,
		in:          u.in,
		au:          u.au,
		animate:     u.animate,
		mu:          u.mu,
	}
}

func (u *TerminalUI) Writer() io.Writer {
	if u.indentLevel == 0 {
		return u.out
	}
	return indent.NewWriter(u.out, u.prefix())
}
