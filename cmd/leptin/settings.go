package leptin

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omriBer/diet/internal/program"
	"github.com/omriBer/diet/internal/service"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change your program settings",
}

var (
	settingsName      string
	settingsStartDate string
)

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show program settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			now, err := currentTime(sqldb)
			if err != nil {
				return err
			}
			s, pos, err := service.ProgramPosition(sqldb, now)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", s.Name)
			if err != nil {
				fmt.Fprintf(out, "Start date: not set (%v)\n", err)
				return nil
			}
			fmt.Fprintf(out, "Start date: %s\n", s.StartDate)
			fmt.Fprintf(out, "Day %d | Week %d of %d\n", pos.Day, pos.Week, program.ProgramWeeks)
			if t, ok := program.Track(s.Track); ok {
				fmt.Fprintf(out, "Track: %s %s\n", t.Icon, t.Name)
			} else {
				fmt.Fprintln(out, "Track: not chosen")
			}
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update name or start date",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.UpdateSettingsInput{}
		if cmd.Flags().Changed("name") {
			in.Name = &settingsName
		}
		if cmd.Flags().Changed("start-date") {
			in.StartDate = &settingsStartDate
		}
		if in.Name == nil && in.StartDate == nil {
			return fmt.Errorf("set at least one flag")
		}
		return withDB(func(sqldb *sql.DB) error {
			now, err := currentTime(sqldb)
			if err != nil {
				return err
			}
			s, err := service.UpdateSettings(sqldb, in, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "נשמר! %s, start %s\n", s.Name, s.StartDate)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	settingsSetCmd.Flags().StringVar(&settingsName, "name", "", "Display name")
	settingsSetCmd.Flags().StringVar(&settingsStartDate, "start-date", "", "Program start date YYYY-MM-DD")
}
