package commands

import (
	"runtime/debug"

	"github.com/m1ck43l/web-ui/internal/cli/output"
	"github.com/spf13/cobra"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
}

// withVCS fills fields left unset at link time from the module build info.
func (b BuildInfo) withVCS() BuildInfo {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if b.GoVersion == "" {
		b.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" || b.Commit == "unknown" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.BuildDate == "" || b.BuildDate == "unknown" {
				b.BuildDate = s.Value
			}
		}
	}
	return b
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display webui version and build information.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContext(cmd).Renderer
			bi := info.withVCS()

			if r.Mode() == output.ModeJSON {
				return r.JSON(bi)
			}

			r.Println("webui v" + bi.Version)
			rows := [][]string{}
			for _, row := range [][2]string{
				{"Commit", bi.Commit},
				{"Built", bi.BuildDate},
				{"Go", bi.GoVersion},
			} {
				if row[1] != "" {
					rows = append(rows, []string{row[0], row[1]})
				}
			}
			if len(rows) > 0 {
				r.Table("Build", []output.Column{{Header: "Field"}, {Header: "Value"}}, rows)
			}
			return nil
		},
	}
}
