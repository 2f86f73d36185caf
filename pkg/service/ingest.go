package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fsrleague/standings-manager-go/log"
	"github.com/fsrleague/standings-manager-go/pkg/identity"
	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/parser"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
	driverrepos "github.com/fsrleague/standings-manager-go/pkg/repository/driver"
	laprepos "github.com/fsrleague/standings-manager-go/pkg/repository/lap"
	racerepos "github.com/fsrleague/standings-manager-go/pkg/repository/race"
	resultrepos "github.com/fsrleague/standings-manager-go/pkg/repository/result"
	seasonrepos "github.com/fsrleague/standings-manager-go/pkg/repository/season"
	teamrepos "github.com/fsrleague/standings-manager-go/pkg/repository/team"
)

// IngestSummary reports what one timing log ingestion did.
type IngestSummary struct {
	RaceID         int                  `json:"raceId"`
	Session        string               `json:"session"`
	Drivers        int                  `json:"drivers"`
	CreatedResults int                  `json:"createdResults"`
	Duplicates     []identity.Duplicate `json:"duplicates"`
	LapErrors      []parser.LapError    `json:"lapErrors"`
}

type IngestService struct {
	pool *pgxpool.Pool
}

func InitIngestService(pool *pgxpool.Pool) *IngestService {
	ingestService := IngestService{pool: pool}
	return &ingestService
}

// Ingest parses a timing log and persists its session data for the race,
// then reruns the points calculation. The whole pipeline runs in one
// transaction holding the race's advisory lock, so concurrent ingests of the
// same race serialize. Re-ingesting the same log is a no-op update.
func (s *IngestService) Ingest(ctx context.Context, raceID int, data []byte) (
	*IngestSummary, error,
) {
	session, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}

	summary := &IngestSummary{
		RaceID:    raceID,
		Session:   session.Type,
		Drivers:   len(session.Drivers),
		LapErrors: session.LapErrors,
	}
	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			"select pg_advisory_xact_lock($1)", raceID); err != nil {
			return err
		}
		myRace, err := racerepos.LoadByID(ctx, tx, raceID)
		if err != nil {
			return err
		}
		mySeason, err := seasonrepos.LoadByID(ctx, tx, myRace.SeasonID)
		if err != nil {
			return err
		}

		resolver, err := buildResolver(ctx, tx)
		if err != nil {
			return err
		}
		summary.Duplicates = resolver.Duplicates()

		for i := range session.Drivers {
			created, err := s.persistDriver(ctx, tx, raceID, session.Type,
				&session.Drivers[i], resolver)
			if err != nil {
				return err
			}
			if created {
				summary.CreatedResults++
			}
		}
		return recomputeRace(ctx, tx, myRace, mySeason)
	})
	if err != nil {
		return nil, err
	}

	log.Debug("ingested timing log",
		log.Int("race", raceID),
		log.String("session", summary.Session),
		log.Int("drivers", summary.Drivers))
	return summary, nil
}

func buildResolver(ctx context.Context, conn repository.Querier) (
	*identity.Resolver, error,
) {
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

//nolint:funlen // sequential persist steps
func (s *IngestService) persistDriver(
	ctx context.Context,
	conn repository.Querier,
	raceID int,
	sessionType string,
	d *parser.DriverResult,
	resolver *identity.Resolver,
) (created bool, err error) {
	myDriver, ok := resolver.ResolveDriver(d.Name)
	if !ok {
		myDriver = &model.Driver{Name: d.Name}
		if err := driverrepos.Create(ctx, conn, myDriver); err != nil {
			return false, err
		}
		resolver.AddDriver(myDriver)
	}
	myTeam, ok := resolver.ResolveTeam(d.Team)
	if !ok {
		myTeam = &model.Team{Name: d.Team}
		if err := teamrepos.Create(ctx, conn, myTeam); err != nil {
			return false, err
		}
		resolver.AddTeam(myTeam)
	}

	res, created, err := resultrepos.GetOrCreate(ctx, conn,
		raceID, myDriver.ID, myTeam.ID)
	if err != nil {
		return false, err
	}

	if sessionType == model.SessionQualify {
		res.Qualifying = d.Position
		res.QualifyingLaps = d.LapCount
		res.QualifyingTime = d.TotalTime
		res.QualifyingFastestLapTime = d.FastestLap
		res.QualifyingFastestLap = d.FastestLapHolder
	} else {
		res.Position = d.Position
		res.RaceLaps = d.LapCount
		res.RaceTime = d.TotalTime
		res.Car = d.Car
		res.CarClass = d.CarClass
		res.DNFReason = d.DNFReason
		res.RaceFastestLap = d.FastestLap
		// without a qualifying log the grid stands in for the
		// qualifying classification
		if res.QualifyingLaps == 0 && res.QualifyingTime == 0 {
			res.Qualifying = d.GridPosition
		}
	}
	res.TeamID = myTeam.ID
	if err := resultrepos.Update(ctx, conn, res); err != nil {
		return false, err
	}

	for i := range d.Laps {
		if err := persistLap(ctx, conn, res.ID, sessionType, &d.Laps[i]); err != nil {
			return false, err
		}
	}
	return created, nil
}

func persistLap(
	ctx context.Context,
	conn repository.Querier,
	resultID int,
	sessionType string,
	l *parser.LapRecord,
) error {
	myLap, _, err := laprepos.GetOrCreate(ctx, conn, resultID, sessionType, l.Number)
	if err != nil {
		return err
	}
	myLap.Position = l.Position
	myLap.Pitstop = l.Pitstop
	myLap.Sector1 = l.Sector1
	myLap.Sector2 = l.Sector2
	myLap.Sector3 = l.Sector3
	myLap.LapTime = l.LapTime
	myLap.RaceTime = l.RaceTime
	myLap.Compound = l.Compound
	return laprepos.Update(ctx, conn, myLap)
}
