package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/fsrleague/standings-manager-go/log"
	"github.com/fsrleague/standings-manager-go/pkg/cmd/common"
	"github.com/fsrleague/standings-manager-go/pkg/identity"
	"github.com/fsrleague/standings-manager-go/pkg/model"
	driverrepos "github.com/fsrleague/standings-manager-go/pkg/repository/driver"
	racerepos "github.com/fsrleague/standings-manager-go/pkg/repository/race"
	resultrepos "github.com/fsrleague/standings-manager-go/pkg/repository/result"
	seasonrepos "github.com/fsrleague/standings-manager-go/pkg/repository/season"
	teamrepos "github.com/fsrleague/standings-manager-go/pkg/repository/team"
)

// results without a penalty carry this marker in the exports
const noPenalty = "No penalty imposed."

type scheduleResult struct {
	Driver  string `json:"driver"`
	Team    string `json:"team"`
	Pos     int    `json:"pos"`
	QPos    int    `json:"qpos"`
	Penalty string `json:"penalty"`
}

type scheduleRace struct {
	RaceNumber int              `json:"race_number"`
	Track      string           `json:"track"`
	ShortName  string           `json:"short_name"`
	StartTime  string           `json:"start_time"`
	Results    []scheduleResult `json:"results"`
}

func NewScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule <file> <season-id>",
		Short: "imports a JSON schedule/results export into a season",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seasonID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid season id %q: %w", args[1], err)
			}
			return importSchedule(cmd, args[0], seasonID)
		},
	}
	return cmd
}

func importSchedule(cmd *cobra.Command, fileName string, seasonID int) error {
	common.SetupLogging()
	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}
	var races []scheduleRace
	if err := json.Unmarshal(data, &races); err != nil {
		return fmt.Errorf("parsing schedule file: %w", err)
	}

	pool := common.ConnectDB()
	defer pool.Close()
	ctx := cmd.Context()
	mySeason, err := seasonrepos.LoadByID(ctx, pool, seasonID)
	if err != nil {
		return err
	}

	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		resolver, err := buildResolver(ctx, tx)
		if err != nil {
			return err
		}
		for i := range races {
			if err := importRace(ctx, tx, mySeason, &races[i], resolver); err != nil {
				return err
			}
			cmd.Printf("%d %s: %d results\n",
				races[i].RaceNumber, races[i].Track, len(races[i].Results))
		}
		return nil
	})
}

func importRace(
	ctx context.Context,
	conn pgx.Tx,
	mySeason *model.Season,
	sr *scheduleRace,
	resolver *identity.Resolver,
) error {
	startTime, err := time.ParseInLocation("2006-01-02 15:04:05", sr.StartTime, time.UTC)
	if err != nil {
		return fmt.Errorf("race %d has invalid start time %q: %w",
			sr.RaceNumber, sr.StartTime, err)
	}
	myRace := &model.Race{
		SeasonID:    mySeason.ID,
		RoundNumber: sr.RaceNumber,
		Name:        sr.Track,
		ShortName:   sr.ShortName,
		StartTime:   startTime,
	}
	created, err := racerepos.GetOrCreate(ctx, conn, myRace)
	if err != nil {
		return err
	}
	if created {
		log.Info("race created",
			log.Int("round", myRace.RoundNumber), log.String("name", myRace.Name))
	}

	for i := range sr.Results {
		if err := importResult(ctx, conn, myRace.ID, &sr.Results[i], resolver); err != nil {
			return err
		}
	}
	return nil
}

func importResult(
	ctx context.Context,
	conn pgx.Tx,
	raceID int,
	sr *scheduleResult,
	resolver *identity.Resolver,
) error {
	myDriver, ok := resolver.ResolveDriver(sr.Driver)
	if !ok {
		myDriver = &model.Driver{Name: sr.Driver}
		if err := driverrepos.Create(ctx, conn, myDriver); err != nil {
			return err
		}
		resolver.AddDriver(myDriver)
	}
	myTeam, ok := resolver.ResolveTeam(sr.Team)
	if !ok {
		myTeam = &model.Team{Name: sr.Team}
		if err := teamrepos.Create(ctx, conn, myTeam); err != nil {
			return err
		}
		resolver.AddTeam(myTeam)
	}

	res, _, err := resultrepos.GetOrCreate(ctx, conn, raceID, myDriver.ID, myTeam.ID)
	if err != nil {
		return err
	}
	res.Position = sr.Pos
	res.Qualifying = sr.QPos
	if sr.Penalty != "" && sr.Penalty != noPenalty {
		res.Note = sr.Penalty
	}
	return resultrepos.Update(ctx, conn, res)
}

func buildResolver(ctx context.Context, conn pgx.Tx) (*identity.Resolver, error) {
	drivers, err := driverrepos.LoadAll(ctx, conn)
	if err != nil {
		return nil, err
	}
	teams, err := teamrepos.LoadAll(ctx, conn)
	if err != nil {
		return nil, err
	}
	driverCounts, err := driverrepos.ResultCounts(ctx, conn)
	if err != nil {
		return nil, err
	}
	teamCounts, err := teamrepos.ResultCounts(ctx, conn)
	if err != nil {
		return nil, err
	}
	return identity.NewResolver(drivers, teams, driverCounts, teamCounts), nil
}
