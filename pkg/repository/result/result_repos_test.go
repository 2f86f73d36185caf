//nolint:errcheck // test code
package result

import (
	"context"
	"log"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gotest.tools/v3/assert"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	driverrepos "github.com/fsrleague/standings-manager-go/pkg/repository/driver"
	racerepos "github.com/fsrleague/standings-manager-go/pkg/repository/race"
	teamrepos "github.com/fsrleague/standings-manager-go/pkg/repository/team"
	"github.com/fsrleague/standings-manager-go/testsupport/basedata"
	"github.com/fsrleague/standings-manager-go/testsupport/testdb"
)

func createCompetitors(db *pgxpool.Pool, names ...string) []*model.Driver {
	ctx := context.Background()
	ret := []*model.Driver{}
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		for _, name := range names {
			d := &model.Driver{Name: name}
			if err := driverrepos.Create(ctx, tx, d); err != nil {
				return err
			}
			ret = append(ret, d)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("createCompetitors: %v\n", err)
	}
	return ret
}

func createTeam(db *pgxpool.Pool, name string) *model.Team {
	ctx := context.Background()
	t := &model.Team{Name: name}
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		return teamrepos.Create(ctx, tx, t)
	})
	if err != nil {
		log.Fatalf("createTeam: %v\n", err)
	}
	return t
}

func TestGetOrCreate(t *testing.T) {
	pool := testdb.InitTestDB()
	scope := basedata.CreateSampleScope(pool)
	drivers := createCompetitors(pool, "Test Driver")
	team := createTeam(pool, "Test Team")
	ctx := context.Background()

	res, created, err := GetOrCreate(ctx, pool, scope.Race.ID, drivers[0].ID, team.ID)
	assert.NilError(t, err)
	assert.Assert(t, created)
	assert.Equal(t, 1.0, res.PointsMultiplier)
	assert.Equal(t, "-", res.Gap)

	again, created, err := GetOrCreate(ctx, pool, scope.Race.ID, drivers[0].ID, team.ID)
	assert.NilError(t, err)
	assert.Assert(t, !created)
	assert.Equal(t, res.ID, again.ID)
}

func TestUniqueResultPerRaceAndDriver(t *testing.T) {
	pool := testdb.InitTestDB()
	scope := basedata.CreateSampleScope(pool)
	drivers := createCompetitors(pool, "Test Driver")
	team := createTeam(pool, "Test Team")
	ctx := context.Background()

	first := &model.Result{
		RaceID: scope.Race.ID, DriverID: drivers[0].ID, TeamID: team.ID,
		PointsMultiplier: 1.0,
	}
	assert.NilError(t, Create(ctx, pool, first))

	dup := &model.Result{
		RaceID: scope.Race.ID, DriverID: drivers[0].ID, TeamID: team.ID,
		PointsMultiplier: 1.0,
	}
	assert.Assert(t, Create(ctx, pool, dup) != nil)
}

func TestUpdateComputedSkipsFinalized(t *testing.T) {
	pool := testdb.InitTestDB()
	scope := basedata.CreateSampleScope(pool)
	drivers := createCompetitors(pool, "Test Driver")
	team := createTeam(pool, "Test Team")
	ctx := context.Background()

	res, _, err := GetOrCreate(ctx, pool, scope.Race.ID, drivers[0].ID, team.ID)
	assert.NilError(t, err)
	res.Points = 25
	res.Finalized = true
	assert.NilError(t, Update(ctx, pool, res))

	res.Points = 10
	rows, err := UpdateComputed(ctx, pool, res)
	assert.NilError(t, err)
	assert.Equal(t, 0, rows)

	stored, err := LoadByID(ctx, pool, res.ID)
	assert.NilError(t, err)
	assert.Equal(t, 25.0, stored.Points)

	_, err = UnfinalizeByRace(ctx, pool, scope.Race.ID)
	assert.NilError(t, err)
	rows, err = UpdateComputed(ctx, pool, res)
	assert.NilError(t, err)
	assert.Equal(t, 1, rows)
}

func TestReassignDriver(t *testing.T) {
	pool := testdb.InitTestDB()
	scope := basedata.CreateSampleScope(pool)
	drivers := createCompetitors(pool, "Driver A", "Driver B")
	team := createTeam(pool, "Test Team")
	ctx := context.Background()

	// driver B raced in a second race, the reassign must not collide with
	// the unique (race, driver) index
	secondRace := &model.Race{
		SeasonID:    scope.Season.ID,
		RoundNumber: 2,
		Name:        "testrace2",
		ShortName:   "tr2",
		StartTime:   basedata.TestTime().AddDate(0, 1, 0),
	}
	assert.NilError(t, racerepos.Create(ctx, pool, secondRace))

	_, _, err := GetOrCreate(ctx, pool, scope.Race.ID, drivers[0].ID, team.ID)
	assert.NilError(t, err)
	_, _, err = GetOrCreate(ctx, pool, secondRace.ID, drivers[1].ID, team.ID)
	assert.NilError(t, err)

	counts, err := driverrepos.ResultCounts(ctx, pool)
	assert.NilError(t, err)
	before := counts[drivers[0].ID] + counts[drivers[1].ID]

	moved, err := ReassignDriver(ctx, pool, drivers[1].ID, drivers[0].ID)
	assert.NilError(t, err)
	assert.Equal(t, 1, moved)

	counts, err = driverrepos.ResultCounts(ctx, pool)
	assert.NilError(t, err)
	assert.Equal(t, before, counts[drivers[0].ID])
	assert.Equal(t, 0, counts[drivers[1].ID])
}
