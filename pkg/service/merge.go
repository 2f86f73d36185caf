package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fsrleague/standings-manager-go/log"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
	driverrepos "github.com/fsrleague/standings-manager-go/pkg/repository/driver"
	resultrepos "github.com/fsrleague/standings-manager-go/pkg/repository/result"
	teamrepos "github.com/fsrleague/standings-manager-go/pkg/repository/team"
)

type MergeService struct {
	pool *pgxpool.Pool
}

func InitMergeService(pool *pgxpool.Pool) *MergeService {
	mergeService := MergeService{pool: pool}
	return &mergeService
}

// MergeDrivers reassigns all results of the source drivers to the target.
// Each source moves in its own transaction, so a failure midway leaves the
// already moved sources merged and the rest untouched. Callers serialize
// merges of the same target.
func (s *MergeService) MergeDrivers(
	ctx context.Context,
	targetID int,
	sourceIDs []int,
	deleteSources bool,
) error {
	if targetID == 0 {
		return fmt.Errorf("driver merge: %w", repository.ErrNoTarget)
	}
	if _, err := driverrepos.LoadByID(ctx, s.pool, targetID); err != nil {
		return fmt.Errorf("driver merge target %d: %w", targetID, err)
	}
	for _, sourceID := range sourceIDs {
		if sourceID == targetID {
			continue
		}
		err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			moved, err := resultrepos.ReassignDriver(ctx, tx, sourceID, targetID)
			if err != nil {
				return err
			}
			log.Info("driver merged",
				log.Int("source", sourceID),
				log.Int("target", targetID),
				log.Int("results", moved))
			if deleteSources {
				_, err = driverrepos.DeleteByID(ctx, tx, sourceID)
			}
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// MergeTeams is the team counterpart of MergeDrivers.
func (s *MergeService) MergeTeams(
	ctx context.Context,
	targetID int,
	sourceIDs []int,
	deleteSources bool,
) error {
	if targetID == 0 {
		return fmt.Errorf("team merge: %w", repository.ErrNoTarget)
	}
	if _, err := teamrepos.LoadByID(ctx, s.pool, targetID); err != nil {
		return fmt.Errorf("team merge target %d: %w", targetID, err)
	}
	for _, sourceID := range sourceIDs {
		if sourceID == targetID {
			continue
		}
		err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			moved, err := resultrepos.ReassignTeam(ctx, tx, sourceID, targetID)
			if err != nil {
				return err
			}
			log.Info("team merged",
				log.Int("source", sourceID),
				log.Int("target", targetID),
				log.Int("results", moved))
			if deleteSources {
				_, err = teamrepos.DeleteByID(ctx, tx, sourceID)
			}
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}
