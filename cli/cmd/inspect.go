package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/ezcrash/cli/reader"
	"github.com/pithecene-io/ezcrash/cli/render"
	"github.com/pithecene-io/ezcrash/cli/tui"
)

// InspectCommand returns the inspect command.
// Inspect reads one saved crash file, text or msgpack record.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Inspect a saved crash report or archived record",
		ArgsUsage: "<crash-file>",
		Flags:     ReadOnlyFlags(),
		Action:    inspectAction,
	}
}

func inspectAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("crash-file required", 1)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	resp, err := reader.InspectCrash(c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.Bool("tui") {
		return r.RenderTUI(tui.ViewInspectCrash, resp)
	}
	return r.Render(resp)
}
