package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/fsrleague/standings-manager-go/log"
	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/processing/points"
	"github.com/fsrleague/standings-manager-go/pkg/processing/stats"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
	laprepos "github.com/fsrleague/standings-manager-go/pkg/repository/lap"
	pointsystemrepos "github.com/fsrleague/standings-manager-go/pkg/repository/pointsystem"
	racerepos "github.com/fsrleague/standings-manager-go/pkg/repository/race"
	resultrepos "github.com/fsrleague/standings-manager-go/pkg/repository/result"
	seasonrepos "github.com/fsrleague/standings-manager-go/pkg/repository/season"
	seasonpenaltyrepos "github.com/fsrleague/standings-manager-go/pkg/repository/seasonpenalty"
	seasonstatsrepos "github.com/fsrleague/standings-manager-go/pkg/repository/seasonstats"
	sortcriteriarepos "github.com/fsrleague/standings-manager-go/pkg/repository/sortcriteria"
	trackrecordrepos "github.com/fsrleague/standings-manager-go/pkg/repository/trackrecord"
)

type RecomputeService struct {
	pool      *pgxpool.Pool
	standings *StandingsService
}

func InitRecomputeService(pool *pgxpool.Pool) *RecomputeService {
	recomputeService := RecomputeService{
		pool:      pool,
		standings: InitStandingsService(pool),
	}
	return &recomputeService
}

// RecomputeRace reruns the points calculation for one race under its
// advisory lock.
func (s *RecomputeService) RecomputeRace(ctx context.Context, raceID int) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
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
		return recomputeRace(ctx, tx, myRace, mySeason)
	})
}

// RecomputeSeason reruns the points calculation for every race of the
// season, then rebuilds the cached season stats.
func (s *RecomputeService) RecomputeSeason(ctx context.Context, seasonID int) error {
	mySeason, err := seasonrepos.LoadByID(ctx, s.pool, seasonID)
	if err != nil {
		return err
	}
	races, err := racerepos.LoadBySeason(ctx, s.pool, seasonID)
	if err != nil {
		return err
	}
	for _, r := range races {
		if err := s.RecomputeRace(ctx, r.ID); err != nil {
			return err
		}
	}
	if err := s.recomputeSeasonStats(ctx, mySeason, races); err != nil {
		return err
	}
	log.Info("season recomputed",
		log.Int("season", seasonID), log.Int("races", len(races)))
	return nil
}

// UpdateTrackRecords rebuilds the all-time lap records from every stored
// result.
func (s *RecomputeService) UpdateTrackRecords(ctx context.Context) error {
	candidates, err := s.collectRecordCandidates(ctx)
	if err != nil {
		return err
	}
	records := stats.BestRecords(candidates)
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		byTrack := lo.GroupBy(records, func(r *model.TrackRecord) int {
			return r.TrackID
		})
		for trackID, trackRecords := range byTrack {
			if _, err := trackrecordrepos.DeleteByTrack(ctx, tx, trackID); err != nil {
				return err
			}
			for _, rec := range trackRecords {
				if err := trackrecordrepos.Upsert(ctx, tx, rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *RecomputeService) collectRecordCandidates(ctx context.Context) (
	[]stats.Candidate, error,
) {
	seasons, err := seasonrepos.LoadAll(ctx, s.pool)
	if err != nil {
		return nil, err
	}
	candidates := []stats.Candidate{}
	for _, mySeason := range seasons {
		races, err := racerepos.LoadBySeason(ctx, s.pool, mySeason.ID)
		if err != nil {
			return nil, err
		}
		for _, myRace := range races {
			if myRace.TrackID == nil {
				continue
			}
			results, err := resultrepos.LoadByRace(ctx, s.pool, myRace.ID)
			if err != nil {
				return nil, err
			}
			for _, res := range results {
				candidates = append(candidates, stats.Candidate{
					TrackID:     *myRace.TrackID,
					SeasonID:    mySeason.ID,
					RaceID:      myRace.ID,
					RaceRound:   myRace.RoundNumber,
					DriverID:    res.DriverID,
					SessionType: model.SessionRace,
					LapTime:     res.RaceFastestLap,
				}, stats.Candidate{
					TrackID:     *myRace.TrackID,
					SeasonID:    mySeason.ID,
					RaceID:      myRace.ID,
					RaceRound:   myRace.RoundNumber,
					DriverID:    res.DriverID,
					SessionType: model.SessionQualify,
					LapTime:     res.QualifyingFastestLapTime,
				})
			}
		}
	}
	return candidates, nil
}

func (s *RecomputeService) recomputeSeasonStats(
	ctx context.Context,
	mySeason *model.Season,
	races []*model.Race,
) error {
	results, err := resultrepos.LoadBySeason(ctx, s.pool, mySeason.ID, 0)
	if err != nil {
		return err
	}
	lapsByResult := map[int][]*model.Lap{}
	for _, myRace := range races {
		laps, err := laprepos.LoadByRace(ctx, s.pool, myRace.ID, model.SessionRace)
		if err != nil {
			return err
		}
		for _, l := range laps {
			lapsByResult[l.ResultID] = append(lapsByResult[l.ResultID], l)
		}
	}
	tables, err := s.standings.Standings(ctx, mySeason.ID, 0)
	if err != nil {
		return err
	}
	positions := map[int]int{}
	for _, row := range tables.Drivers {
		positions[row.DriverID] = row.Position
	}

	rows := stats.Compute(&stats.Input{
		Season:    mySeason,
		Results:   results,
		Laps:      lapsByResult,
		Positions: positions,
	})
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := seasonstatsrepos.DeleteBySeason(ctx, tx, mySeason.ID); err != nil {
			return err
		}
		for _, row := range rows {
			if err := seasonstatsrepos.Upsert(ctx, tx, row); err != nil {
				return err
			}
		}
		return nil
	})
}

// recomputeRace loads the full race scope, runs the calculator and persists
// the computed fields. Finalized results keep their stored values.
func recomputeRace(
	ctx context.Context,
	conn repository.Querier,
	myRace *model.Race,
	mySeason *model.Season,
) error {
	systemID, err := points.EffectiveSystemID(myRace, mySeason)
	if err != nil {
		return err
	}
	system, err := pointsystemrepos.LoadByID(ctx, conn, systemID)
	if err != nil {
		return err
	}
	results, err := resultrepos.LoadByRace(ctx, conn, myRace.ID)
	if err != nil {
		return err
	}
	raceLaps, err := laprepos.LoadByRace(ctx, conn, myRace.ID, model.SessionRace)
	if err != nil {
		return err
	}
	penalties, err := seasonpenaltyrepos.LoadBySeason(ctx, conn, mySeason.ID)
	if err != nil {
		return err
	}

	err = points.Compute(&points.Input{
		Season:  mySeason,
		System:  system,
		Results: results,
		Laps: lo.GroupBy(raceLaps, func(l *model.Lap) int {
			return l.ResultID
		}),
		Penalties: penalties,
	})
	if err != nil {
		return err
	}

	for _, res := range results {
		if _, err := resultrepos.UpdateComputed(ctx, conn, res); err != nil {
			return err
		}
		if res.Position > 0 && res.Classified {
			if err := sortcriteriarepos.Upsert(ctx, conn,
				mySeason.ID, res.DriverID, res.Position); err != nil {
				return err
			}
		}
	}
	return nil
}
