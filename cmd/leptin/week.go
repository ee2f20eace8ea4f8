package leptin

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/omriBer/diet/internal/program"
	"github.com/omriBer/diet/internal/service"
)

var weekJSON bool

var weekCmd = &cobra.Command{
	Use:   "week [N]",
	Short: "Show the rules for the current or a given week",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 || n > program.ProgramWeeks {
				return fmt.Errorf("invalid week %q (expected 1-%d)", args[0], program.ProgramWeeks)
			}
			return printWeek(cmd, program.Lookup(n))
		}
		return withDB(func(sqldb *sql.DB) error {
			now, err := currentTime(sqldb)
			if err != nil {
				return err
			}
			_, pos, err := service.ProgramPosition(sqldb, now)
			if err != nil {
				return notStartedHint(err)
			}
			return printWeek(cmd, program.Lookup(pos.Week))
		})
	},
}

func printWeek(cmd *cobra.Command, r program.WeekRule) error {
	if weekJSON {
		return writeJSON(cmd, r)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s (%s)\n", r.Icon, r.Title, r.PhaseLabel)
	fmt.Fprintf(out, "🎯 %s\n", r.Focus)
	for _, inst := range r.Instructions {
		fmt.Fprintf(out, "  • %s\n", inst)
	}
	fmt.Fprintf(out, "✅ מזון מותר: %s\n", r.Allowed)
	fmt.Fprintf(out, "🚫 מזון אסור: %s\n", r.Forbidden)
	if r.HasTreatRules() {
		fmt.Fprintf(out, "🎉 כללי יום פינוק: %s\n", r.TreatRules)
	}
	if r.Exercise != "" {
		fmt.Fprintf(out, "🏃 %s\n", r.Exercise)
	}
	for _, tip := range r.Tips {
		fmt.Fprintf(out, "💡 %s\n", tip)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(weekCmd)
	weekCmd.Flags().BoolVar(&weekJSON, "json", false, "Output as JSON")
}
