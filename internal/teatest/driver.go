// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is run to completion
// before the next input, so assertions see a settled model without a
// running tea.Program.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds Cmd chains so a model that keeps scheduling work cannot
// hang a test.
const maxDepth = 50

// cmdTimeout skips Cmds that block on timers, such as cursor blinks.
const cmdTimeout = 50 * time.Millisecond

// Driver feeds input to a model and drains the resulting Cmds.
type Driver struct {
	t     *testing.T
	model tea.Model

	// Quit is set once the model returns tea.Quit.
	Quit bool
}

// New wraps model and runs its Init command.
func New(t *testing.T, model tea.Model) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	d.drain(model.Init(), 0)
	return d
}

// Model returns the current model for type assertions.
func (d *Driver) Model() tea.Model { return d.model }

// View renders the current model.
func (d *Driver) View() string { return d.model.View() }

// Send dispatches msg and drains every Cmd it produces.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quit {
		return
	}
	next, cmd := d.model.Update(msg)
	d.model = next
	d.drain(cmd, 0)
}

// Press sends one key per rune in keys.
func (d *Driver) Press(keys string) {
	d.t.Helper()
	for _, r := range keys {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// PressType sends a special key such as tea.KeyEnter or tea.KeyDown.
func (d *Driver) PressType(k tea.KeyType) {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Fatalf("teatest: command chain deeper than %d", maxDepth)
	}

	msg, ok := run(cmd)
	if !ok || msg == nil {
		return
	}
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quit = true
	default:
		next, nextCmd := d.model.Update(msg)
		d.model = next
		d.drain(nextCmd, depth+1)
	}
}

func run(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}
