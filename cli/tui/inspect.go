package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pithecene-io/ezcrash/cli/reader"
)

// InspectModel shows a crash summary above a scrollable report.
type InspectModel struct {
	data     *reader.InspectCrashResponse
	viewport viewport.Model
	ready    bool
	quitting bool
}

// NewInspectModel creates a new inspect model.
func NewInspectModel(data *reader.InspectCrashResponse) InspectModel {
	return InspectModel{data: data}
}

// Init implements tea.Model.
func (m InspectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-lipgloss.Height(m.summary())-2, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.data.Text())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m InspectModel) View() string {
	if m.quitting {
		return ""
	}

	body := m.data.Text()
	if m.ready {
		body = m.viewport.View()
	}
	help := HelpStyle.Render("↑/↓ scroll • q quit")
	return m.summary() + "\n" + body + "\n" + help
}

func (m InspectModel) summary() string {
	d := m.data

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Crash Report"))
	b.WriteString("\n")

	rows := [][]string{
		{"Source", d.Source},
		{"Kind", d.Kind},
		{"Code", d.Code},
		{"Address", d.Address},
	}
	if d.Access != "" {
		rows = append(rows, []string{"Access", d.Access})
	}
	if d.IncidentID != "" {
		rows = append(rows, []string{"Incident", d.IncidentID})
	}
	if d.Timestamp != "" {
		rows = append(rows, []string{"Time", d.Timestamp})
	}
	rows = append(rows, []string{"Frames", fmt.Sprintf("%d", d.Frames)})

	for _, row := range rows {
		value := ValueStyle.Render(row[1])
		if row[0] == "Kind" {
			value = FaultStyle.Render(row[1])
		}
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render(row[0]+":"), value)
	}

	return BoxStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

// keyMap defines key bindings.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// RunInspectTUI runs the inspect TUI.
func RunInspectTUI(data any) error {
	resp, ok := data.(*reader.InspectCrashResponse)
	if !ok {
		return fmt.Errorf("invalid data type for %s: %T", ViewInspectCrash, data)
	}
	p := tea.NewProgram(NewInspectModel(resp), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderInspectStatic renders the inspect view without running a program.
func RenderInspectStatic(data *reader.InspectCrashResponse) string {
	return lipgloss.NewStyle().Padding(1, 2).Render(NewInspectModel(data).View())
}
