//go:build windows

package sink

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// MessageBox style flags.
const (
	mbOK          = 0x00000000
	mbIconError   = 0x00000010
	mbSystemModal = 0x00001000
)

// MessageBoxPresenter shows a system-modal error message box.
type MessageBoxPresenter struct{}

// Verify MessageBoxPresenter implements Presenter.
var _ Presenter = MessageBoxPresenter{}

// NewPresenter returns the Windows message box presenter.
func NewPresenter() Presenter {
	return MessageBoxPresenter{}
}

// Show blocks until the user closes the message box.
func (MessageBoxPresenter) Show(title, text string) error {
	t, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return fmt.Errorf("encode dialog text: %w", err)
	}
	c, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return fmt.Errorf("encode dialog title: %w", err)
	}
	if _, err := windows.MessageBox(0, t, c, mbOK|mbIconError|mbSystemModal); err != nil {
		return fmt.Errorf("message box: %w", err)
	}
	return nil
}
