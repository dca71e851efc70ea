package ui

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTerminal(input string) (*TerminalUI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewTerminalUIWith(strings.NewReader(input), out, false), out
}

func TestTerminalAskReadsLines(t *testing.T) {
	u, out := newTestTerminal("alice.eth\n0xabc\n")
	assert.Equal(t, "alice.eth", u.Ask(nil))
	assert.Equal(t, "0xabc", u.Ask(nil))
	assert.Equal(t, "", u.Ask(nil), "EOF reads as empty input")
	assert.Equal(t, 3, strings.Count(out.String(), promptPrefix))
}

func TestTerminalAskRetriesUntilValid(t *testing.T) {
	u, out := newTestTerminal("nope\nok\n")
	got := u.Ask(func(s string) error {
		if s != "ok" {
			return errors.New("say ok")
		}
		return nil
	})
	assert.Equal(t, "ok", got)
	assert.Contains(t, out.String(), "say ok")
}

func TestTerminalConfirm(t *testing.T) {
	u, _ := newTestTerminal("\ny\nno\n")
	assert.True(t, u.Confirm("send?", true))
	assert.True(t, u.Confirm("send?", false))
	assert.False(t, u.Confirm("send?", true))
}

func TestTerminalChoose(t *testing.T) {
	u, _ := newTestTerminal("5\n2\n")
	assert.Equal(t, 1, u.Choose("pick", []string{"a", "b", "c"}))
}

func TestTerminalTableAlignsStyledCells(t *testing.T) {
	out := &bytes.Buffer{}
	u := NewTerminalUIWith(strings.NewReader(""), out, true)
	u.Table([]string{"Name", "Address"}, [][]string{
		{u.Style(StyledText{Text: "alice.eth", Severity: SeveritySuccess}), "0xAbC1...dEaD"},
		{"bob", "0x1234...5678"},
	})

	lines := strings.Split(strings.TrimRight(ansi.Strip(out.String()), "\n"), "\n")
	require.Len(t, lines, 6)
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), l)
	}
	assert.Contains(t, lines[3], "alice.eth")
}

func TestTerminalIndentSharesStreams(t *testing.T) {
	u, out := newTestTerminal("x\n")
	child := u.Indent()
	child.Info("nested")
	assert.Equal(t, "x", child.Ask(nil))
	assert.Contains(t, out.String(), indentUnit+"nested\n")

	_, err := child.Writer().Write([]byte("line\n"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), indentUnit+"line\n")
}

func TestTerminalSpinnerWithoutTTYPrintsOnce(t *testing.T) {
	u, out := newTestTerminal("")
	stop := u.Spinner("Resolving alice.eth")
	stop()
	assert.Equal(t, "Resolving alice.eth\n", out.String())
}

func TestTerminalConcurrentWritesKeepLinesWhole(t *testing.T) {
	u, out := newTestTerminal("")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u.Indent().Info("resolved")
		}()
	}
	wg.Wait()
	for _, l := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		assert.Equal(t, indentUnit+"resolved", l)
	}
}

func TestRecordingUI(t *testing.T) {
	r := NewRecordingUI("alice.eth", "y", "2")
	assert.Equal(t, "alice.eth", r.Ask(nil))
	assert.True(t, r.Confirm("submit?", false))
	assert.Equal(t, 1, r.Indent().Choose("pick", []string{"a", "b"}))
	assert.Equal(t, "", r.Ask(nil), "exhausted script reads as end of input")
	assert.Panics(t, func() { r.Confirm("again?", true) })

	r.Table([]string{"Name", "Address"}, [][]string{{"alice.eth", "0xAbC1"}})
	r.Warn("lookup failed for %s", "bob.eth")
	assert.Equal(t, []string{"lookup failed for bob.eth"}, r.WarnMessages())
	assert.True(t, r.HasMessage("ALICE.ETH | 0xabc1"))
}

func TestRecordingUIEntriesIsACopy(t *testing.T) {
	r := NewRecordingUI()
	r.Info("one")
	entries := r.Entries()
	entries[0].Value = "changed"
	assert.Equal(t, []string{"one"}, r.InfoMessages())
}

func TestLoggerRoutesThroughUI(t *testing.T) {
	r := NewRecordingUI()
	log := NewLogger(r, 1).WithName("resolver").WithValues("input", "alice.eth")

	log.Info("lookup dispatched", "token", 3)
	log.V(1).Info("verbose detail")
	log.V(2).Info("too verbose")
	log.Error(errors.New("rpc down"), "lookup failed")

	infos := r.InfoMessages()
	require.Len(t, infos, 2)
	assert.True(t, strings.HasPrefix(infos[0], "resolver: "))
	assert.Contains(t, infos[0], `"msg"="lookup dispatched"`)
	assert.Contains(t, infos[0], `"input"="alice.eth"`)
	assert.Contains(t, infos[0], `"token"=3`)
	assert.Contains(t, infos[1], "verbose detail")

	warns := r.WarnMessages()
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], `"error"="rpc down"`)
}

func TestLoggerDisabled(t *testing.T) {
	r := NewRecordingUI()
	log := NewLogger(r, -1)
	log.Info("hidden")
	log.Error(errors.New("x"), "hidden")
	assert.Empty(t, r.Entries())
}
