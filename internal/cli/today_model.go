package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/cli/formatter"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type todayKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Done key.Binding
	Skip key.Binding
	Help key.Binding
	Quit key.Binding
}

func defaultTodayKeys() todayKeyMap {
	return todayKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Done: key.NewBinding(key.WithKeys("d", "enter"), key.WithHelp("d", "done")),
		Skip: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k todayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Done, k.Skip, k.Help, k.Quit}
}

func (k todayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Done, k.Skip}, {k.Help, k.Quit}}
}

// itemUpdatedMsg carries the outcome of a done/skip action.
type itemUpdatedMsg struct {
	itemID string
	want   domain.ItemStatus
	res    *app.UpdateStatusResult
	err    error
}

// todayModel is an interactive checklist over one day's plan.
type todayModel struct {
	ctx      context.Context
	status   app.StatusUseCase
	deviceID string
	plan     *app.PlanResponse
	now      time.Time

	cursor int
	keys   todayKeyMap
	help   help.Model
	flash  string
}

func newTodayModel(ctx context.Context, status app.StatusUseCase, deviceID string, plan *app.PlanResponse, now time.Time) todayModel {
	m := todayModel{
		ctx:      ctx,
		status:   status,
		deviceID: deviceID,
		plan:     plan,
		now:      now,
		keys:     defaultTodayKeys(),
		help:     help.New(),
	}
	m.cursor = m.firstPending()
	return m
}

func (m todayModel) Init() tea.Cmd { return nil }

func (m todayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case itemUpdatedMsg:
		m.applyUpdate(msg)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.plan.Items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Done):
			return m, m.setStatus(domain.StatusCompleted)
		case key.Matches(msg, m.keys.Skip):
			return m, m.setStatus(domain.StatusSkipped)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m todayModel) setStatus(want domain.ItemStatus) tea.Cmd {
	if len(m.plan.Items) == 0 {
		return nil
	}
	item := m.plan.Items[m.cursor]
	req := app.UpdateStatusRequest{
		DeviceID: m.deviceID,
		Date:     m.plan.Date,
		ItemID:   item.ID,
		Status:   want,
	}
	status, ctx := m.status, m.ctx
	return func() tea.Msg {
		res, err := status.UpdateStatus(ctx, req)
		return itemUpdatedMsg{itemID: item.ID, want: want, res: res, err: err}
	}
}

func (m *todayModel) applyUpdate(msg itemUpdatedMsg) {
	if msg.err != nil {
		m.flash = formatter.StyleRed.Render(describeError(msg.err).Error())
		return
	}
	m.flash = strings.TrimRight(formatter.FormatItemUpdate(msg.itemID, msg.want, msg.res), "\n")
	if !msg.res.Found || !msg.res.Applied {
		return
	}
	for i := range m.plan.Items {
		if m.plan.Items[i].ID == msg.itemID {
			m.plan.Items[i].Status = msg.res.Item.Status
		}
	}
	if next := m.firstPending(); next >= 0 {
		m.cursor = next
	}
}

// firstPending returns the index of the earliest pending item, or the
// current cursor when everything is handled.
func (m todayModel) firstPending() int {
	for i, it := range m.plan.Items {
		if it.Status == domain.StatusPending {
			return i
		}
	}
	return m.cursor
}

func (m todayModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Plan · " + formatter.HumanDay(m.plan.Date, m.now)))
	b.WriteString("\n\n")

	for i, it := range m.plan.Items {
		marker := "  "
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("▸ ")
		}
		title := formatter.TypeStyle(it.Type).Render(formatter.TypeIcon(it.Type) + " " + it.Title)
		if it.Status.Terminal() {
			title = formatter.Dim(formatter.TypeIcon(it.Type) + " " + it.Title)
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n", marker, formatter.Bold(it.Time), title, formatter.StatusPill(it.Status))
		if i == m.cursor && it.Description != "" {
			fmt.Fprintf(&b, "         %s\n", formatter.Dim(it.Description))
		}
	}

	b.WriteString("\n")
	b.WriteString(formatter.RenderDayProgress(m.plan.Items, 20))
	b.WriteString("\n")
	if m.flash != "" {
		b.WriteString("\n" + m.flash + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func runTodayTUI(ctx context.Context, a *App, plan *app.PlanResponse) error {
	_, err := tea.NewProgram(newTodayModel(ctx, a.Status, a.DeviceID, plan, a.now())).Run()
	return err
}
