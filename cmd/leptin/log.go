package leptin

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/omriBer/diet/internal/model"
	"github.com/omriBer/diet/internal/program"
	"github.com/omriBer/diet/internal/service"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record and inspect daily logs",
}

var (
	logDate       string
	logWater      float64
	logBefore     int
	logVeggies    bool
	logProtein    bool
	logWindow     float64
	logFats       int
	logTreat      bool
	logSlip       bool
	logNotes      string
	logFirstMeal  string
	logLastMeal   string
	logShowJSON   bool
	logAdjustDate string
)

var logSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set fields on a day's log",
	RunE: func(cmd *cobra.Command, args []string) error {
		u := service.DailyLogUpdate{}
		f := cmd.Flags()
		if f.Changed("water") {
			u.Water = &logWater
		}
		if f.Changed("water-before") {
			u.WaterBeforeMeals = &logBefore
		}
		if f.Changed("veggies") {
			u.Veggies = &logVeggies
		}
		if f.Changed("protein") {
			u.Protein = &logProtein
		}
		if f.Changed("window") {
			u.EatingWindowHours = &logWindow
		}
		if f.Changed("fats") {
			u.FatsCount = &logFats
		}
		if f.Changed("treat") {
			u.TreatDay = &logTreat
		}
		if f.Changed("slip") {
			u.Slip = &logSlip
		}
		if f.Changed("notes") {
			u.Notes = &logNotes
		}
		if f.Changed("first-meal") {
			u.FirstMeal = &logFirstMeal
		}
		if f.Changed("last-meal") {
			u.LastMeal = &logLastMeal
		}
		if u.Empty() {
			return fmt.Errorf("set at least one field flag")
		}
		return withDB(func(sqldb *sql.DB) error {
			target, pos, err := startedDay(sqldb, logDate)
			if err != nil {
				return err
			}
			if u.Slip != nil && *u.Slip && !pos.ShowsSlipCheck() {
				return fmt.Errorf("forbidden-food tracking starts in week 3 (currently week %d)", pos.Week)
			}
			log, err := service.UpdateDailyLog(sqldb, program.DateKey(target), u)
			if err != nil {
				return err
			}
			logger.Debug("updated daily log", zap.String("date", log.Date))
			printLogLine(cmd, log)
			return nil
		})
	},
}

var logShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's log and score",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			target, err := targetDay(sqldb, logDate)
			if err != nil {
				return err
			}
			date := program.DateKey(target)
			log, err := service.GetDailyLog(sqldb, date)
			if err != nil {
				return err
			}
			if log == nil {
				return fmt.Errorf("no log for %s", date)
			}
			if logShowJSON {
				return writeJSON(cmd, struct {
					Date      string              `json:"date"`
					Log       model.DailyLog      `json:"log"`
					Score     int                 `json:"score"`
					Breakdown []program.Criterion `json:"breakdown"`
				}{date, *log, program.Score(*log), program.Breakdown(*log)})
			}
			printLogDetail(cmd, *log)
			return nil
		})
	},
}

var logWaterBeforeCmd = &cobra.Command{
	Use:   "water-before up|down|N",
	Short: "Step the two-glasses-before-a-meal counter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := parseDelta(args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			target, _, err := startedDay(sqldb, logAdjustDate)
			if err != nil {
				return err
			}
			log, err := service.AdjustWaterBeforeMeals(sqldb, program.DateKey(target), delta)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "2 כוסות לפני ארוחה: %d/3\n", log.WaterBeforeMeals)
			return nil
		})
	},
}

var logFatsCmd = &cobra.Command{
	Use:   "fats up|down|N",
	Short: "Step the fat-portion counter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := parseDelta(args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			target, _, err := startedDay(sqldb, logAdjustDate)
			if err != nil {
				return err
			}
			log, err := service.AdjustFats(sqldb, program.DateKey(target), delta)
			if err != nil {
				return err
			}
			mark := "✅"
			if log.FatsCount > 3 {
				mark = "⚠️"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "שומנים: %d כפות %s\n", log.FatsCount, mark)
			return nil
		})
	},
}

// startedDay resolves --date and the program position on that day, failing
// before onboarding.
func startedDay(sqldb *sql.DB, date string) (time.Time, program.Position, error) {
	target, err := targetDay(sqldb, date)
	if err != nil {
		return time.Time{}, program.Position{}, err
	}
	_, pos, err := service.ProgramPosition(sqldb, target)
	if err != nil {
		return time.Time{}, program.Position{}, notStartedHint(err)
	}
	return target, pos, nil
}

func printLogLine(cmd *cobra.Command, log model.DailyLog) {
	score := program.Score(log)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s score %d%%\n", scoreIcon(score), log.Date, score)
}

func printLogDetail(cmd *cobra.Command, log model.DailyLog) {
	out := cmd.OutOrStdout()
	printLogLine(cmd, log)
	fmt.Fprintf(out, "💧 מים: %.1fL | לפני ארוחה: %d/3\n", log.Water, log.WaterBeforeMeals)
	fmt.Fprintf(out, "🥗 ירקות: %s | 🍗 חלבון: %s\n", checkMark(log.Veggies), checkMark(log.Protein))
	fmt.Fprintf(out, "⏰ חלון אכילה: %.1fh", log.EatingWindowHours)
	if log.FirstMeal != "" || log.LastMeal != "" {
		fmt.Fprintf(out, " (%s-%s)", log.FirstMeal, log.LastMeal)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "🧈 שומנים: %d\n", log.FatsCount)
	if log.TreatDay {
		fmt.Fprintln(out, "🎉 יום פינוק")
	}
	if log.Slip {
		fmt.Fprintln(out, "⚠️ אכלתי מזון אסור")
	}
	if log.Notes != "" {
		fmt.Fprintf(out, "📝 %s\n", log.Notes)
	}
	if log.Completed {
		fmt.Fprintln(out, "✔ day completed")
	}
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logSetCmd, logShowCmd, logWaterBeforeCmd, logFatsCmd)

	logSetCmd.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default today)")
	logSetCmd.Flags().Float64Var(&logWater, "water", 0, "Liters of water")
	logSetCmd.Flags().IntVar(&logBefore, "water-before", 0, "Meals preceded by two glasses of water")
	logSetCmd.Flags().BoolVar(&logVeggies, "veggies", false, "Half the plate cleansing veggies in two meals")
	logSetCmd.Flags().BoolVar(&logProtein, "protein", false, "Protein in every meal")
	logSetCmd.Flags().Float64Var(&logWindow, "window", 0, "Eating window in hours")
	logSetCmd.Flags().IntVar(&logFats, "fats", 0, "Fat portions")
	logSetCmd.Flags().BoolVar(&logTreat, "treat", false, "Treat day")
	logSetCmd.Flags().BoolVar(&logSlip, "slip", false, "Ate forbidden food (from week 3)")
	logSetCmd.Flags().StringVar(&logNotes, "notes", "", "Free-text notes")
	logSetCmd.Flags().StringVar(&logFirstMeal, "first-meal", "", "First meal time HH:MM")
	logSetCmd.Flags().StringVar(&logLastMeal, "last-meal", "", "Last meal time HH:MM")

	logShowCmd.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default today)")
	logShowCmd.Flags().BoolVar(&logShowJSON, "json", false, "Output as JSON")

	for _, c := range []*cobra.Command{logWaterBeforeCmd, logFatsCmd} {
		c.Flags().StringVar(&logAdjustDate, "date", "", "Date YYYY-MM-DD (default today)")
	}
}
