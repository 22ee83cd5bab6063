package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/content"
)

// version is overridden with -ldflags "-X .../cmd.version=v1.2.3".
var version = ""

// buildVersion falls back to the module version stamped by `go install`.
func buildVersion() (v, rev string) {
	v = version
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v, ""
	}
	if v == "" {
		v = info.Main.Version
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			rev = s.Value[:7]
		}
	}
	return v, rev
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build and content pack format versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v, rev := buildVersion()
		if v == "" {
			v = "(devel)"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "quizdeck %s\n", v)
		printFields(out,
			field{"Commit", rev},
			field{"Go", runtime.Version()},
			field{"Pack format", content.CurrentVersion},
		)
	},
}
