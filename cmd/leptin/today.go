package leptin

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/omriBer/diet/internal/program"
	"github.com/omriBer/diet/internal/service"
)

var (
	todayDate string
	todayJSON bool
)

var rescueActions = []string{
	"💧 מים: הוסף 1-2 ליטר!",
	"🥗 ירקות: הגדל 50%!",
	"⏰ דחייה: מחר דחה ארוחה!",
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's week rules, score, and streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			target, err := targetDay(sqldb, todayDate)
			if err != nil {
				return err
			}
			status, err := service.TodaySummary(sqldb, target)
			if err != nil {
				return notStartedHint(err)
			}
			if status.LogCreated {
				logger.Debug("created daily log", zap.String("date", status.Date))
			}
			if todayJSON {
				return writeJSON(cmd, status)
			}
			printToday(cmd, status)
			return nil
		})
	},
}

func printToday(cmd *cobra.Command, s *service.TodayStatus) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "שלום %s!\n", s.Name)
	fmt.Fprintf(out, "%s %s\n", s.Rule.Icon, s.Rule.Title)
	fmt.Fprintf(out, "Day %d | Week %d of %d | %s\n", s.Position.Day, s.Position.Week, program.ProgramWeeks, s.Rule.PhaseLabel)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Score:  %3d%% %s\n", s.Score, progressBar(s.Score))
	fmt.Fprintf(out, "Streak: %d days\n", s.Streak)
	fmt.Fprintf(out, "💡 %s\n", s.Tip)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "🎯 %s\n", s.Rule.Focus)
	fmt.Fprintln(out)
	for _, c := range s.Breakdown {
		if c.Points < 0 {
			if c.Earned {
				fmt.Fprintf(out, "  ⚠️  %-34s %+d\n", c.Label, c.Points)
			}
			continue
		}
		fmt.Fprintf(out, "  %s %-34s %+d\n", checkMark(c.Earned), c.Label, c.Points)
	}
	fmt.Fprintf(out, "  water %.1fL | before meals %d/3 | window %.1fh | fats %d\n",
		s.Log.Water, s.Log.WaterBeforeMeals, s.Log.EatingWindowHours, s.Log.FatsCount)
	if s.Log.TreatDay {
		fmt.Fprintln(out, "  🎉 treat day")
	}

	if len(s.Rule.Instructions) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "📖 הנחיות השבוע")
		for _, inst := range s.Rule.Instructions {
			fmt.Fprintf(out, "  • %s\n", inst)
		}
	}

	if s.CanSelectTrack {
		fmt.Fprintln(out)
		if s.Track != nil {
			fmt.Fprintf(out, "🛤️ %s %s | carbs: %s | treats: %s\n", s.Track.Icon, s.Track.Name, s.Track.Carbs, s.Track.Treats)
		} else {
			fmt.Fprintln(out, "🛤️ Choose a maintenance track: leptin track list")
		}
	}

	if s.NeedsRescue {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "🆘 גלגלי הצלה")
		for _, a := range rescueActions {
			fmt.Fprintf(out, "  %s\n", a)
		}
	}
	if s.Log.Completed {
		fmt.Fprintln(out)
		fmt.Fprintln(out, verdictMessage(program.VerdictFor(s.Score)))
	}
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output as JSON")
}
