package service

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	driverrepos "github.com/fsrleague/standings-manager-go/pkg/repository/driver"
	resultrepos "github.com/fsrleague/standings-manager-go/pkg/repository/result"
	"github.com/fsrleague/standings-manager-go/testsupport/basedata"
	"github.com/fsrleague/standings-manager-go/testsupport/testdb"
)

const raceLog = `<?xml version="1.0"?>
<rFactorXML version="1.0">
  <RaceResults>
    <Race>
      <Driver>
        <Name>Max Winner</Name>
        <CarType>Apex GP</CarType>
        <CarClass>F1</CarClass>
        <VehFile>apex_01.veh</VehFile>
        <GridPos>2</GridPos>
        <Position>1</Position>
        <Laps>2</Laps>
        <FinishStatus>Finished Normally</FinishStatus>
        <FinishTime>165.100</FinishTime>
        <LapRankIncludingDiscos>1</LapRankIncludingDiscos>
        <Lap num="1" p="1" s1="28.1" s2="27.5" s3="27.0" pit="0" fcompound="0,Soft">82.600</Lap>
        <Lap num="2" p="1" s1="27.9" s2="27.4" s3="26.9" pit="0" fcompound="0,Soft">82.500</Lap>
      </Driver>
      <Driver>
        <Name>Slow Steady</Name>
        <CarType>Midfield Racing</CarType>
        <CarClass>F1</CarClass>
        <VehFile>mid_07.veh</VehFile>
        <GridPos>5</GridPos>
        <Position>2</Position>
        <Laps>2</Laps>
        <FinishStatus>Finished Normally</FinishStatus>
        <FinishTime>170.000</FinishTime>
        <LapRankIncludingDiscos>2</LapRankIncludingDiscos>
        <Lap num="1" p="2" s1="29.0" s2="28.0" s3="28.0" pit="0" fcompound="1,Medium">85.000</Lap>
        <Lap num="2" p="2" s1="28.8" s2="27.9" s3="27.8" pit="0" fcompound="1,Medium">85.000</Lap>
      </Driver>
    </Race>
  </RaceResults>
</rFactorXML>`

const qualifyLog = `<?xml version="1.0"?>
<rFactorXML version="1.0">
  <RaceResults>
    <Qualify>
      <Driver>
        <Name>Slow Steady</Name>
        <CarType>Midfield Racing</CarType>
        <CarClass>F1</CarClass>
        <VehFile>mid_07.veh</VehFile>
        <GridPos>1</GridPos>
        <Position>1</Position>
        <Laps>1</Laps>
        <FinishStatus>Finished Normally</FinishStatus>
        <LapRankIncludingDiscos>1</LapRankIncludingDiscos>
        <Lap num="1" p="1" s1="27.5" s2="27.1" s3="26.8" pit="0" fcompound="0,Soft">81.400</Lap>
      </Driver>
    </Qualify>
  </RaceResults>
</rFactorXML>`

func resultsByDriverName(t *testing.T, svc *IngestService, raceID int) map[string]*model.Result {
	t.Helper()
	ctx := context.Background()
	drivers, err := driverrepos.LoadAll(ctx, svc.pool)
	assert.NilError(t, err)
	names := map[int]string{}
	for _, d := range drivers {
		names[d.ID] = d.Name
	}
	results, err := resultrepos.LoadByRace(ctx, svc.pool, raceID)
	assert.NilError(t, err)
	ret := map[string]*model.Result{}
	for _, r := range results {
		ret[names[r.DriverID]] = r
	}
	return ret
}

func TestIngestRaceLogFillsQualifyingFromGrid(t *testing.T) {
	pool := testdb.InitTestDB()
	scope := basedata.CreateSampleScope(pool)
	svc := InitIngestService(pool)
	ctx := context.Background()

	summary, err := svc.Ingest(ctx, scope.Race.ID, []byte(raceLog))
	assert.NilError(t, err)
	assert.Equal(t, model.SessionRace, summary.Session)
	assert.Equal(t, 2, summary.CreatedResults)

	results := resultsByDriverName(t, svc, scope.Race.ID)
	assert.Equal(t, 2, results["Max Winner"].Qualifying)
	assert.Equal(t, 5, results["Slow Steady"].Qualifying)
}

func TestIngestQualifyingLogOverridesGrid(t *testing.T) {
	pool := testdb.InitTestDB()
	scope := basedata.CreateSampleScope(pool)
	svc := InitIngestService(pool)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, scope.Race.ID, []byte(raceLog))
	assert.NilError(t, err)
	_, err = svc.Ingest(ctx, scope.Race.ID, []byte(qualifyLog))
	assert.NilError(t, err)

	results := resultsByDriverName(t, svc, scope.Race.ID)
	assert.Equal(t, 1, results["Slow Steady"].Qualifying)
	assert.Equal(t, 1, results["Slow Steady"].QualifyingLaps)

	// re-ingesting the race log must not clobber the qualifying session
	_, err = svc.Ingest(ctx, scope.Race.ID, []byte(raceLog))
	assert.NilError(t, err)
	results = resultsByDriverName(t, svc, scope.Race.ID)
	assert.Equal(t, 1, results["Slow Steady"].Qualifying)
}
