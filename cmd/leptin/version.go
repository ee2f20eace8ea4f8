package leptin

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/omriBer/diet/cmd/leptin.buildVersion=...".
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "leptin %s (commit %s, built %s, %s)\n", buildVersion, buildCommit, buildDate, runtime.Version())
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
