package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/ezcrash/cli/reader"
	"github.com/pithecene-io/ezcrash/cli/render"
)

// ClassifyCommand returns the classify command.
func ClassifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "Look up a fault code or kind name",
		ArgsUsage: "<code|name>",
		Flags:     ReadOnlyFlags(),
		Action:    classifyAction,
	}
}

func classifyAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("code or name required", 1)
	}
	if err := rejectTUI(c); err != nil {
		return err
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	info, err := reader.Classify(c.Args().First())
	if err != nil {
		// Exit code 2 distinguishes "not in the table" from usage errors.
		return cli.Exit(err.Error(), 2)
	}
	return r.Render(info)
}

// CodesCommand returns the codes command.
func CodesCommand() *cli.Command {
	return &cli.Command{
		Name:   "codes",
		Usage:  "List every classified fault code",
		Flags:  ReadOnlyFlags(),
		Action: codesAction,
	}
}

func codesAction(c *cli.Context) error {
	if err := rejectTUI(c); err != nil {
		return err
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}
	return r.Render(reader.Codes())
}
