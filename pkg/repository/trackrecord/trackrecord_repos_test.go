//nolint:errcheck // test code
package trackrecord

import (
	"context"
	"log"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"gotest.tools/v3/assert"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	driverrepos "github.com/fsrleague/standings-manager-go/pkg/repository/driver"
	"github.com/fsrleague/standings-manager-go/testsupport/basedata"
	"github.com/fsrleague/standings-manager-go/testsupport/testdb"
)

func createDriver(db *pgxpool.Pool, name string) *model.Driver {
	d := &model.Driver{Name: name}
	if err := driverrepos.Create(context.Background(), db, d); err != nil {
		log.Fatalf("createDriver: %v\n", err)
	}
	return d
}

func TestUpsertKeepsFasterRecord(t *testing.T) {
	pool := testdb.InitTestDB()
	scope := basedata.CreateSampleScope(pool)
	driver := createDriver(pool, "Test Driver")
	ctx := context.Background()

	first := &model.TrackRecord{
		TrackID: scope.Track.ID, SeasonID: scope.Season.ID,
		RaceID: scope.Race.ID, DriverID: driver.ID,
		SessionType: model.SessionRace, LapTime: 82.5,
	}
	assert.NilError(t, Upsert(ctx, pool, first))

	// slower candidate leaves the record untouched
	slower := &model.TrackRecord{
		TrackID: scope.Track.ID, SeasonID: scope.Season.ID,
		RaceID: scope.Race.ID, DriverID: driver.ID,
		SessionType: model.SessionRace, LapTime: 83.0,
	}
	assert.NilError(t, Upsert(ctx, pool, slower))
	stored, err := LoadByTrackAndSession(ctx, pool, scope.Track.ID, model.SessionRace)
	assert.NilError(t, err)
	assert.Equal(t, 82.5, stored.LapTime)

	// equal time keeps the earlier holder as well
	equal := &model.TrackRecord{
		TrackID: scope.Track.ID, SeasonID: scope.Season.ID,
		RaceID: scope.Race.ID, DriverID: driver.ID,
		SessionType: model.SessionRace, LapTime: 82.5,
	}
	assert.NilError(t, Upsert(ctx, pool, equal))

	faster := &model.TrackRecord{
		TrackID: scope.Track.ID, SeasonID: scope.Season.ID,
		RaceID: scope.Race.ID, DriverID: driver.ID,
		SessionType: model.SessionRace, LapTime: 81.9,
	}
	assert.NilError(t, Upsert(ctx, pool, faster))
	stored, err = LoadByTrackAndSession(ctx, pool, scope.Track.ID, model.SessionRace)
	assert.NilError(t, err)
	assert.Equal(t, 81.9, stored.LapTime)
}
