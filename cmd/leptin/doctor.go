package leptin

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omriBer/diet/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			now, err := currentTime(sqldb)
			if err != nil {
				return err
			}
			report, err := service.RunDoctor(sqldb, doctorFix, now)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Invalid date keys: %d %s\n", len(report.InvalidDateKeys), strings.Join(report.InvalidDateKeys, " "))
			fmt.Fprintf(out, "Future logs: %d %s\n", len(report.FutureLogs), strings.Join(report.FutureLogs, " "))
			fmt.Fprintf(out, "Overfilled counters: %d %s\n", len(report.OverfilledCounter), strings.Join(report.OverfilledCounter, " "))
			if report.StartDateProblem != "" {
				fmt.Fprintf(out, "Start date: %s\n", report.StartDateProblem)
			}
			if report.EarlyTrack {
				fmt.Fprintln(out, "Track chosen before week 9")
			}
			if doctorFix {
				fmt.Fprintf(out, "Fixed rows: %d\n", report.FixedRows)
				report, err = service.RunDoctor(sqldb, false, now)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Attempt safe auto-fixes")
}
