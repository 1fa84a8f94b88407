package cmd

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/ezcrash/cli/render"
	"github.com/pithecene-io/ezcrash/config"
	"github.com/pithecene-io/ezcrash/sink"
)

// ConfigResponse is the effective configuration of a config file.
type ConfigResponse struct {
	Source               string `json:"source"`
	ShowDialog           bool   `json:"show_dialog"`
	EmitLog              bool   `json:"emit_log"`
	OutputPath           string `json:"output_path"`
	IncludeStackTrace    bool   `json:"include_stack_trace"`
	IncludeThreadContext bool   `json:"include_thread_context"`
	ArchiveDir           string `json:"archive_dir"`
	MaxFrames            int    `json:"max_frames"`
	// Sinks lists the enabled sinks in delivery order.
	Sinks string `json:"sinks"`
}

// ConfigCommand returns the config command.
// Without a path it shows the built-in default.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:      "config",
		Usage:     "Show the effective crash configuration of a YAML file",
		ArgsUsage: "[config-file]",
		Flags:     ReadOnlyFlags(),
		Action:    configAction,
	}
}

func configAction(c *cli.Context) error {
	if err := rejectTUI(c); err != nil {
		return err
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	source := "default"
	cfg := config.Default()
	if c.NArg() > 0 {
		source = c.Args().First()
		loaded, err := config.Load(source)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		cfg = *loaded
	}

	return r.Render(newConfigResponse(source, cfg))
}

func newConfigResponse(source string, cfg config.Configuration) *ConfigResponse {
	// Sink construction has no side effects; nothing is opened until delivery.
	sinks := sink.FromConfig(cfg, sink.Deps{Presenter: noPresenter{}})
	return &ConfigResponse{
		Source:               source,
		ShowDialog:           cfg.ShowDialog,
		EmitLog:              cfg.EmitLog,
		OutputPath:           cfg.OutputPath,
		IncludeStackTrace:    cfg.IncludeStackTrace,
		IncludeThreadContext: cfg.IncludeThreadContext,
		ArchiveDir:           cfg.ArchiveDir,
		MaxFrames:            cfg.FrameLimit(),
		Sinks:                strings.Join(sink.Names(sinks), ","),
	}
}

// noPresenter stands in for the dialog when only sink names are needed.
type noPresenter struct{}

func (noPresenter) Show(string, string) error { return nil }
