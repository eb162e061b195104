// Package teatest drives bubbletea models synchronously in tests. Each
// message goes straight through Update; the Cmds it returns are executed in
// order and their messages fed back until the queue is empty.
package teatest

import (
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// MaxSteps bounds the Cmds executed for a single Send.
const MaxSteps = 100

// cmdTimeout bounds a single Cmd. Chart loads against in-memory SQLite
// finish well inside it; tickers and blinks never do and are dropped.
const cmdTimeout = 200 * time.Millisecond

// Driver wraps a tea.Model under test.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a Cmd yields tea.QuitMsg; later sends are ignored.
	Quitting bool

	// Messages counts deliveries to Update, drained Cmd results included.
	Messages int
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call DrainInit to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(d.Model.Init())
}

// Send delivers msg and runs everything it triggers.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.run(d.deliver(msg))
}

func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.press(tea.KeyEnter) }
func (d *Driver) PressUp()    { d.T.Helper(); d.press(tea.KeyUp) }
func (d *Driver) PressDown()  { d.T.Helper(); d.press(tea.KeyDown) }
func (d *Driver) PressLeft()  { d.T.Helper(); d.press(tea.KeyLeft) }
func (d *Driver) PressRight() { d.T.Helper(); d.press(tea.KeyRight) }

func (d *Driver) press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// PlainView returns the model's view with ANSI styling removed.
func (d *Driver) PlainView() string {
	return ansiPattern.ReplaceAllString(d.Model.View(), "")
}

// RequireViewContains fails the test unless the plain view contains s.
func (d *Driver) RequireViewContains(s string) {
	d.T.Helper()
	if v := d.PlainView(); !strings.Contains(v, s) {
		d.T.Fatalf("view does not contain %q:\n%s", s, v)
	}
}

func (d *Driver) deliver(msg tea.Msg) tea.Cmd {
	d.Messages++
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	return cmd
}

// run executes queued Cmds breadth first. Batches are flattened into the
// queue; a quit stops the drain.
func (d *Driver) run(first tea.Cmd) {
	d.T.Helper()
	queue := []tea.Cmd{first}
	for steps := 0; len(queue) > 0; steps++ {
		if steps == MaxSteps {
			d.T.Logf("teatest: gave up after %d commands", MaxSteps)
			return
		}
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}

		switch msg := exec(cmd).(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			d.Quitting = true
			d.Model, _ = d.Model.Update(msg)
			return
		default:
			queue = append(queue, d.deliver(msg))
		}
	}
}

// exec runs cmd, giving up after cmdTimeout.
func exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
