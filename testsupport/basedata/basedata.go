package basedata

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	leaguerepos "github.com/fsrleague/standings-manager-go/pkg/repository/league"
	pointsystemrepos "github.com/fsrleague/standings-manager-go/pkg/repository/pointsystem"
	racerepos "github.com/fsrleague/standings-manager-go/pkg/repository/race"
	seasonrepos "github.com/fsrleague/standings-manager-go/pkg/repository/season"
	trackrepos "github.com/fsrleague/standings-manager-go/pkg/repository/track"
)

func TestTime() time.Time {
	t, _ := time.Parse(time.RFC3339, "2024-04-28T14:00:00Z")
	return t
}

func SamplePointSystem() *model.PointSystem {
	return &model.PointSystem{
		Name:             "testsystem",
		RacePoints:       "25,18,15,12,10,8,6,4,2,1",
		QualifyingPoints: "3,2,1",
		PolePosition:     1,
		FastestLap:       1,
	}
}

func SampleTrack() *model.Track {
	return &model.Track{
		Name:    "testtrack",
		Length:  5.891,
		Version: "2024",
		Country: "GB",
	}
}

// SampleScope holds one fully wired season with a single race.
type SampleScope struct {
	League      *model.League
	Division    *model.Division
	PointSystem *model.PointSystem
	Track       *model.Track
	Season      *model.Season
	Race        *model.Race
}

// CreateSampleScope sets up league, division, point system, track, season
// and one race in a single transaction.
func CreateSampleScope(db *pgxpool.Pool) *SampleScope {
	ctx := context.Background()
	scope := &SampleScope{
		League:      &model.League{Name: "testleague"},
		PointSystem: SamplePointSystem(),
		Track:       SampleTrack(),
	}
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		if err := leaguerepos.Create(ctx, tx, scope.League); err != nil {
			return err
		}
		scope.Division = &model.Division{
			LeagueID: scope.League.ID,
			Name:     "testdivision",
		}
		if err := leaguerepos.CreateDivision(ctx, tx, scope.Division); err != nil {
			return err
		}
		if err := pointsystemrepos.Create(ctx, tx, scope.PointSystem); err != nil {
			return err
		}
		if err := trackrepos.Create(ctx, tx, scope.Track); err != nil {
			return err
		}
		scope.Season = &model.Season{
			DivisionID:    scope.Division.ID,
			Name:          "testseason",
			StartDate:     TestTime(),
			EndDate:       TestTime().AddDate(0, 6, 0),
			PointSystemID: &scope.PointSystem.ID,
		}
		if err := seasonrepos.Create(ctx, tx, scope.Season); err != nil {
			return err
		}
		scope.Race = &model.Race{
			SeasonID:    scope.Season.ID,
			RoundNumber: 1,
			Name:        "testrace",
			ShortName:   "tr",
			StartTime:   TestTime(),
			TrackID:     &scope.Track.ID,
		}
		return racerepos.Create(ctx, tx, scope.Race)
	})
	if err != nil {
		log.Fatalf("createSampleScope: %v\n", err)
	}
	return scope
}
