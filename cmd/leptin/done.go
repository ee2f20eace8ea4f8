package leptin

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omriBer/diet/internal/program"
	"github.com/omriBer/diet/internal/service"
)

var doneDate string

var doneCmd = &cobra.Command{
	Use:   "done",
	Short: "Finish the day and see how it went",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			target, _, err := startedDay(sqldb, doneDate)
			if err != nil {
				return err
			}
			log, err := service.CompleteDay(sqldb, program.DateKey(target))
			if err != nil {
				return err
			}
			score := program.Score(log)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d%%)\n", verdictMessage(program.VerdictFor(score)), score)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
	doneCmd.Flags().StringVar(&doneDate, "date", "", "Date YYYY-MM-DD (default today)")
}
