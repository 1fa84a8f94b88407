package sink

import (
	"github.com/pithecene-io/ezcrash/config"
	"github.com/pithecene-io/ezcrash/log"
)

// Deps supplies the collaborators of the configured sinks.
// Zero values select the defaults.
type Deps struct {
	// Logger backs the log sink.
	Logger *log.Logger
	// Presenter backs the dialog sink.
	Presenter Presenter
}

// FromConfig returns the enabled sinks in delivery order:
// file, archive, log, dialog. The dialog comes last because it blocks.
func FromConfig(cfg config.Configuration, deps Deps) []Sink {
	var sinks []Sink
	if cfg.OutputPath != "" {
		sinks = append(sinks, NewFile(cfg.OutputPath))
	}
	if cfg.ArchiveDir != "" {
		sinks = append(sinks, NewArchive(cfg.ArchiveDir))
	}
	if cfg.EmitLog {
		sinks = append(sinks, NewLog(deps.Logger))
	}
	if cfg.ShowDialog {
		sinks = append(sinks, NewDialog(deps.Presenter))
	}
	return sinks
}

// Names returns the sink names in order.
func Names(sinks []Sink) []string {
	names := make([]string, len(sinks))
	for i, s := range sinks {
		names[i] = s.Name()
	}
	return names
}
