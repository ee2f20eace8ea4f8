package leptin

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omriBer/diet/internal/program"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Reference: cleansing veggies, fat portions, drinks, tracks",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "🥬 ירקות מנקים")
		fmt.Fprintf(out, "  %s\n", strings.Join(program.CleansingVeggies(), ", "))
		fmt.Fprintf(out, "  לא נחשבים: %s\n", strings.Join(program.NotCountedVeggies(), ", "))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "🧈 מנת שומן")
		for _, p := range program.FatPortions() {
			fmt.Fprintf(out, "  • %s\n", p)
		}
		for _, n := range program.ReferenceNotes() {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s\n  %s\n", n.Topic, n.Text)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "🛤️ מסלולים")
		for _, t := range program.Tracks() {
			fmt.Fprintf(out, "  %s %s: %s\n", t.Icon, t.Name, t.Carbs)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
