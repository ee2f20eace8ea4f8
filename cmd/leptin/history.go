package leptin

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omriBer/diet/internal/service"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent days with score and streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			now, err := currentTime(sqldb)
			if err != nil {
				return err
			}
			report, err := service.RecentHistory(sqldb, now, historyLimit)
			if err != nil {
				return err
			}
			if historyJSON {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			if len(report.Days) == 0 {
				fmt.Fprintln(out, "אין היסטוריה")
				return nil
			}
			fmt.Fprintf(out, "רצף נוכחי: %d ימים | longest run: %d\n", report.CurrentStreak, report.LongestRun)
			for _, d := range report.Days {
				treat := ""
				if d.TreatDay {
					treat = " 🎉"
				}
				fmt.Fprintf(out, "%s %s (%s) - %d%%%s\n", scoreIcon(d.Score), d.Date, hebrewWeekdays[d.Weekday], d.Score, treat)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", service.DefaultHistoryDays, "Number of days to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
}
