package leptin

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/omriBer/diet/internal/service"
)

var (
	exportFormat string
	exportOut    string
	importFormat string
	importIn     string
	importMode   string
	importDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export local data (json or csv)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		return withDB(func(sqldb *sql.DB) error {
			data, err := service.ExportDataSnapshot(sqldb)
			if err != nil {
				return err
			}
			switch strings.ToLower(strings.TrimSpace(exportFormat)) {
			case "json":
				b, err := json.MarshalIndent(data, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal export json: %w", err)
				}
				if err := os.WriteFile(exportOut, b, 0o644); err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
			case "csv":
				f, err := os.Create(exportOut)
				if err != nil {
					return fmt.Errorf("create export csv: %w", err)
				}
				defer f.Close()
				if err := service.WriteLogsCSV(f, data.Logs); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported --format %q (use json or csv)", exportFormat)
			}
			logger.Debug("exported data", zap.String("path", exportOut), zap.Int("logs", len(data.Logs)))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d day(s) to %s\n", len(data.Logs), exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import local data (json or csv)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		mode, err := service.ParseImportMode(importMode)
		if err != nil {
			return err
		}
		var payload *service.ExportData
		switch strings.ToLower(strings.TrimSpace(importFormat)) {
		case "json":
			raw, err := os.ReadFile(importIn)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			payload = &service.ExportData{}
			if err := json.Unmarshal(raw, payload); err != nil {
				return fmt.Errorf("parse import json: %w", err)
			}
		case "csv":
			f, err := os.Open(importIn)
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()
			payload, err = service.ReadLogsCSV(f)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported --format %q (use json or csv)", importFormat)
		}
		return withDB(func(sqldb *sql.DB) error {
			now, err := currentTime(sqldb)
			if err != nil {
				return err
			}
			report, err := service.ImportDataSnapshotWithOptions(sqldb, payload, service.ImportOptions{Mode: mode, DryRun: importDryRun, Now: now})
			if err != nil {
				return err
			}
			for _, w := range report.Warnings {
				logger.Warn("import warning", zap.String("detail", w))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Inserted: %d | Updated: %d | Skipped: %d | Conflicts: %d\n", report.Inserted, report.Updated, report.Skipped, report.Conflicts)
			for _, w := range report.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			if importDryRun {
				fmt.Fprintf(out, "Dry-run import validated %s\n", importIn)
				return nil
			}
			fmt.Fprintf(out, "Imported data from %s\n", importIn)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json or csv")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path")
	importCmd.Flags().StringVar(&importFormat, "format", "json", "Import format: json or csv")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
	importCmd.Flags().StringVar(&importMode, "mode", "merge", "Import mode: fail|skip|merge|replace")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and report without writing data")
}
