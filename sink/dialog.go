package sink

import (
	"context"

	"github.com/pithecene-io/ezcrash/report"
)

// Presenter shows a modal message to the user.
// Show returns once the user has dismissed the message.
type Presenter interface {
	Show(title, text string) error
}

// Dialog presents the report text with the title "Crash".
type Dialog struct {
	presenter Presenter
}

// Verify Dialog implements Sink.
var _ Sink = (*Dialog)(nil)

// NewDialog creates a dialog sink. A nil presenter uses the platform default.
func NewDialog(p Presenter) *Dialog {
	if p == nil {
		p = NewPresenter()
	}
	return &Dialog{presenter: p}
}

// Name returns "dialog".
func (d *Dialog) Name() string { return NameDialog }

// Deliver blocks until the dialog is dismissed.
func (d *Dialog) Deliver(_ context.Context, r *report.Report) error {
	return d.presenter.Show(report.Title, r.String())
}
