package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/ezcrash/cli/reader"
	"github.com/pithecene-io/ezcrash/cli/render"
)

// listWarningThreshold is the number of items above which we warn about using --limit.
const listWarningThreshold = 100

// isStderrTTY returns true if stderr is a TTY.
func isStderrTTY() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// ListCommand returns the list command.
// List returns one thin row per archived record, newest first.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List the records of a crash archive",
		ArgsUsage: "<archive-dir>",
		Flags: append(ReadOnlyFlags(),
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Filter by fault kind name",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of records to return (0 = no limit)",
				Value: 0,
			},
		),
		Action: listAction,
	}
}

func listAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("archive-dir required", 1)
	}
	if err := rejectTUI(c); err != nil {
		return err
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	entries, err := reader.ListArchive(c.Context, c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if kind := c.String("kind"); kind != "" {
		info, err := reader.Classify(kind)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		filtered := entries[:0]
		for _, e := range entries {
			if e.Kind == info.Name {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	limit := c.Int("limit")
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	if len(entries) > listWarningThreshold && limit == 0 && isStderrTTY() {
		fmt.Fprintf(os.Stderr, "Warning: returning %d results. Consider using --limit to reduce output.\n\n", len(entries))
	}

	return r.Render(entries)
}
