package leptin

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/omriBer/diet/internal/logging"
)

var (
	dbPath   string
	logLevel string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "leptin",
	Short: "leptin tracks the 13-week Leptin Method from your terminal",
	Long:  "leptin is a local-first daily habit tracker for the 13-week Leptin Method: week rules, daily compliance score, streaks, and maintenance tracks.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (default $LEPTIN_DB or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "Diagnostic log level: debug|info|warn|error")
}
