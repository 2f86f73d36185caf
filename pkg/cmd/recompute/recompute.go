package recompute

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fsrleague/standings-manager-go/pkg/cmd/common"
	"github.com/fsrleague/standings-manager-go/pkg/service"
)

var (
	seasonID int
	records  bool
)

func NewRecomputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recompute [race-id]",
		Short: "recomputes points, season stats and track records",
		Long: `Recomputes derived data. With a race id only that race's points are
recalculated. With --season the whole season is recomputed including the
cached season stats. --records rebuilds the all-time track records.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return recompute(cmd, args)
		},
	}
	cmd.Flags().IntVar(&seasonID, "season", 0,
		"recompute all races and stats of this season")
	cmd.Flags().BoolVar(&records, "records", false,
		"rebuild the track records")
	return cmd
}

func recompute(cmd *cobra.Command, args []string) error {
	common.SetupLogging()
	pool := common.ConnectDB()
	defer pool.Close()
	srv := service.InitRecomputeService(pool)

	done := false
	if len(args) == 1 {
		raceID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid race id %q: %w", args[0], err)
		}
		if err := srv.RecomputeRace(cmd.Context(), raceID); err != nil {
			return err
		}
		done = true
	}
	if seasonID > 0 {
		if err := srv.RecomputeSeason(cmd.Context(), seasonID); err != nil {
			return err
		}
		done = true
	}
	if records {
		if err := srv.UpdateTrackRecords(cmd.Context()); err != nil {
			return err
		}
		done = true
	}
	if !done {
		return fmt.Errorf("nothing to do: pass a race id, --season or --records")
	}
	return nil
}
