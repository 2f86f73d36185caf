package standings

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fsrleague/standings-manager-go/pkg/cmd/common"
	"github.com/fsrleague/standings-manager-go/pkg/service"
)

var uptoRound int

func NewStandingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings <season-id>",
		Short: "prints the driver and team standings of a season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seasonID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid season id %q: %w", args[0], err)
			}
			return printStandings(cmd, seasonID)
		},
	}
	cmd.Flags().IntVar(&uptoRound, "upto-round", 0,
		"only count races up to this round number")
	return cmd
}

func printStandings(cmd *cobra.Command, seasonID int) error {
	common.SetupLogging()
	pool := common.ConnectDB()
	defer pool.Close()

	tables, err := service.InitStandingsService(pool).Standings(
		cmd.Context(), seasonID, uptoRound)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Pos\tDriver\tPoints\tGap")
	for _, row := range tables.Drivers {
		fmt.Fprintf(w, "%s\t%s\t%g\t%s\n",
			row.Label, row.Name, row.Points, row.Gap.ToLeader)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(tables.Teams) == 0 {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout())
	w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Pos\tTeam\tPoints\tDrivers")
	for _, row := range tables.Teams {
		name := row.Name
		if row.Disqualified {
			name += " (DSQ)"
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%d\n",
			row.Label, name, row.Points, len(row.Drivers))
	}
	return w.Flush()
}
