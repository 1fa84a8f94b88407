// Package cmd provides CLI commands for the ezcrash binary.
package cmd

import "github.com/urfave/cli/v2"

// Shared flags for read-only commands.
var (
	// FormatFlag selects output format: json, table, yaml, text.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml, text",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// TUIFlag enables Bubble Tea interactive mode.
	// Only valid for inspect.
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Enable interactive TUI mode (inspect only)",
	}
)

// ReadOnlyFlags returns the shared flags for all commands.
// Includes --tui so that unsupported commands can provide explicit error messages
// instead of generic "flag not defined" errors.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
		TUIFlag,
	}
}

// Commands returns every ezcrash command.
func Commands(commit string) []*cli.Command {
	return []*cli.Command{
		InspectCommand(),
		ListCommand(),
		ClassifyCommand(),
		CodesCommand(),
		ConfigCommand(),
		VersionCommand(commit),
	}
}

// rejectTUI returns an exit error when --tui is set on a command without TUI.
func rejectTUI(c *cli.Context) error {
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for "+c.Command.Name+" command", 1)
	}
	return nil
}
