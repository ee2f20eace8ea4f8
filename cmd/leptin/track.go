package leptin

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omriBer/diet/internal/model"
	"github.com/omriBer/diet/internal/program"
	"github.com/omriBer/diet/internal/service"
)

var trackForce bool

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Choose a maintenance track (from week 9)",
}

var trackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List maintenance tracks",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, t := range program.Tracks() {
			fmt.Fprintf(out, "%s %s [%s]\n", t.Icon, t.Name, t.ID)
			fmt.Fprintf(out, "  carbs: %s\n", t.Carbs)
			fmt.Fprintf(out, "  treats: %s\n", t.Treats)
			for _, tip := range t.Tips {
				fmt.Fprintf(out, "  • %s\n", tip)
			}
		}
		return nil
	},
}

var trackSetCmd = &cobra.Command{
	Use:   "set fast|cleanse|moderate",
	Short: "Save your maintenance track",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := model.ParseTrackID(args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			now, err := currentTime(sqldb)
			if err != nil {
				return err
			}
			if err := service.SetTrack(sqldb, id, now, trackForce); err != nil {
				if errors.Is(err, service.ErrTrackChosen) {
					return fmt.Errorf("%w; pass --force to replace it", err)
				}
				return notStartedHint(err)
			}
			t, _ := program.Track(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Track saved: %s %s\n", t.Icon, t.Name)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.AddCommand(trackListCmd, trackSetCmd)
	trackSetCmd.Flags().BoolVar(&trackForce, "force", false, "Replace a track that is already saved")
}
