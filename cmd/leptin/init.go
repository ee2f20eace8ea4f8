package leptin

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/omriBer/diet/internal/app"
	"github.com/omriBer/diet/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local leptin database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := db.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		if err := db.ApplyMigrations(sqldb); err != nil {
			return err
		}
		version, err := db.SchemaVersion(sqldb)
		if err != nil {
			return err
		}
		logger.Debug("database ready", zap.String("path", path), zap.Int("schema_version", version))

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized leptin database at %s (schema v%d)\n", path, version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
