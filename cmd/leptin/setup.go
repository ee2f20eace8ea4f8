package leptin

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omriBer/diet/internal/program"
	"github.com/omriBer/diet/internal/service"
)

var (
	setupName      string
	setupStartDate string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Start the program: your name and start date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			now, err := currentTime(sqldb)
			if err != nil {
				return err
			}
			s, err := service.SetupProgram(sqldb, service.SetupInput{Name: setupName, StartDate: setupStartDate}, now)
			if err != nil {
				return err
			}
			pos, err := program.ResolveDate(s.StartDate, now)
			if err != nil {
				return err
			}
			rule := program.Lookup(pos.Week)
			fmt.Fprintf(cmd.OutOrStdout(), "ברוך הבא %s! 🌱\n", s.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Start date: %s\n", s.StartDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Day %d | Week %d of %d | %s %s\n", pos.Day, pos.Week, program.ProgramWeeks, rule.Icon, rule.Title)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().StringVar(&setupName, "name", "", "Display name (default "+service.DefaultDisplayName+")")
	setupCmd.Flags().StringVar(&setupStartDate, "start-date", "", "Program start date YYYY-MM-DD (default today)")
}
