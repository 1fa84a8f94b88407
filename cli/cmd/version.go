package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/ezcrash/cli/render"
	"github.com/pithecene-io/ezcrash/types"
)

// VersionResponse is the response for the version command.
type VersionResponse struct {
	Version       string `json:"version"`
	RecordVersion int    `json:"record_version"`
	Commit        string `json:"commit"`
}

// VersionCommand returns the version command.
func VersionCommand(commit string) *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show version information",
		Flags:  ReadOnlyFlags(),
		Action: versionAction(commit),
	}
}

func versionAction(commit string) cli.ActionFunc {
	return func(c *cli.Context) error {
		if err := rejectTUI(c); err != nil {
			return err
		}

		r, err := render.NewRenderer(c)
		if err != nil {
			return err
		}

		return r.Render(VersionResponse{
			Version:       types.Version,
			RecordVersion: types.RecordVersion,
			Commit:        commit,
		})
	}
}
