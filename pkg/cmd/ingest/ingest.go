package ingest

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fsrleague/standings-manager-go/pkg/cmd/common"
	"github.com/fsrleague/standings-manager-go/pkg/service"
)

func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <race-id> <file>",
		Short: "processes a timing log file for a race",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raceID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid race id %q: %w", args[0], err)
			}
			return ingestFile(cmd, raceID, args[1])
		},
	}
	return cmd
}

func ingestFile(cmd *cobra.Command, raceID int, fileName string) error {
	common.SetupLogging()
	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}
	pool := common.ConnectDB()
	defer pool.Close()

	summary, err := service.InitIngestService(pool).Ingest(
		cmd.Context(), raceID, data)
	if err != nil {
		return err
	}

	cmd.Printf("processed %s session for race %d: %d drivers, %d new results\n",
		summary.Session, summary.RaceID, summary.Drivers, summary.CreatedResults)
	for _, dup := range summary.Duplicates {
		cmd.Printf("duplicate %s %q: ids %v, using %d\n",
			dup.Kind, dup.Key, dup.IDs, dup.ChosenID)
	}
	for _, lapErr := range summary.LapErrors {
		cmd.Printf("lap error: %s lap %d\n", lapErr.Driver, lapErr.LapNumber)
	}
	return nil
}
