//go:build !windows

package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// TerminalPresenter draws the message inside a bordered box on a terminal
// stream. It does not wait for input.
type TerminalPresenter struct {
	Out io.Writer
}

// Verify TerminalPresenter implements Presenter.
var _ Presenter = (*TerminalPresenter)(nil)

var (
	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#EF4444"))

	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#EF4444")).
			Padding(0, 1)
)

// NewPresenter returns a terminal presenter writing to stderr.
func NewPresenter() Presenter {
	return &TerminalPresenter{Out: os.Stderr}
}

// Show writes the boxed message.
func (p *TerminalPresenter) Show(title, text string) error {
	body := lipgloss.JoinVertical(lipgloss.Left, dialogTitleStyle.Render(title), "", text)
	if _, err := fmt.Fprintln(p.Out, dialogBoxStyle.Render(body)); err != nil {
		return fmt.Errorf("write dialog: %w", err)
	}
	return nil
}
