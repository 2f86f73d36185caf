package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/processing/standings"
	driverrepos "github.com/fsrleague/standings-manager-go/pkg/repository/driver"
	resultrepos "github.com/fsrleague/standings-manager-go/pkg/repository/result"
	seasonrepos "github.com/fsrleague/standings-manager-go/pkg/repository/season"
	seasonpenaltyrepos "github.com/fsrleague/standings-manager-go/pkg/repository/seasonpenalty"
	sortcriteriarepos "github.com/fsrleague/standings-manager-go/pkg/repository/sortcriteria"
	teamrepos "github.com/fsrleague/standings-manager-go/pkg/repository/team"
)

type StandingsService struct {
	pool *pgxpool.Pool
}

func InitStandingsService(pool *pgxpool.Pool) *StandingsService {
	standingsService := StandingsService{pool: pool}
	return &standingsService
}

// Standings loads the season scope and folds it into the ranked tables.
// uptoRound > 0 bounds the scope to races up to that round.
func (s *StandingsService) Standings(
	ctx context.Context,
	seasonID, uptoRound int,
) (*standings.Tables, error) {
	mySeason, err := seasonrepos.LoadByID(ctx, s.pool, seasonID)
	if err != nil {
		return nil, err
	}
	drivers, err := driverrepos.LoadAll(ctx, s.pool)
	if err != nil {
		return nil, err
	}
	teams, err := teamrepos.LoadAll(ctx, s.pool)
	if err != nil {
		return nil, err
	}
	results, err := resultrepos.LoadBySeason(ctx, s.pool, seasonID, uptoRound)
	if err != nil {
		return nil, err
	}
	bestFinish, err := sortcriteriarepos.LoadBySeason(ctx, s.pool, seasonID)
	if err != nil {
		return nil, err
	}
	penalties, err := seasonpenaltyrepos.LoadBySeason(ctx, s.pool, seasonID)
	if err != nil {
		return nil, err
	}

	return standings.Compute(&standings.Input{
		Season: mySeason,
		Drivers: lo.SliceToMap(drivers, func(d *model.Driver) (int, *model.Driver) {
			return d.ID, d
		}),
		Teams: lo.SliceToMap(teams, func(t *model.Team) (int, *model.Team) {
			return t.ID, t
		}),
		Results:    results,
		BestFinish: bestFinish,
		Penalties:  penalties,
	}), nil
}
