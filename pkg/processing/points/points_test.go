package points

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
)

func testSystem() *model.PointSystem {
	return &model.PointSystem{
		ID:               1,
		RacePoints:       "25,18,15,12,10,8,6,4,2,1",
		QualifyingPoints: "3,2,1",
		PolePosition:     1,
		FastestLap:       1,
		LeadLap:          0,
		MostLapsLead:     0,
	}
}

func testSeason() *model.Season {
	psID := 1
	return &model.Season{ID: 1, PointSystemID: &psID}
}

func raceResults() []*model.Result {
	return []*model.Result{
		{ID: 1, DriverID: 1, Position: 1, Qualifying: 2, RaceLaps: 30, RaceTime: 3000.0, RaceFastestLap: 82.511, PointsMultiplier: 1.0},
		{ID: 2, DriverID: 2, Position: 2, Qualifying: 1, RaceLaps: 30, RaceTime: 3065.5, RaceFastestLap: 81.998, PointsMultiplier: 1.0},
		{ID: 3, DriverID: 3, Position: 3, Qualifying: 3, RaceLaps: 28, RaceTime: 2980.0, RaceFastestLap: 0, PointsMultiplier: 1.0},
	}
}

func TestEffectiveSystemID(t *testing.T) {
	seasonPS, racePS := 1, 2
	season := &model.Season{ID: 1, PointSystemID: &seasonPS}

	id, err := EffectiveSystemID(&model.Race{ID: 5, PointSystemID: &racePS}, season)
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	id, err = EffectiveSystemID(&model.Race{ID: 5}, season)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	_, err = EffectiveSystemID(&model.Race{ID: 5}, &model.Season{ID: 1})
	assert.True(t, errors.Is(err, repository.ErrConfiguration))
}

func TestComputeRequiresSystem(t *testing.T) {
	err := Compute(&Input{Season: testSeason(), Results: raceResults()})
	assert.True(t, errors.Is(err, repository.ErrConfiguration))
}

func TestComputeGaps(t *testing.T) {
	in := &Input{Season: testSeason(), System: testSystem(), Results: raceResults()}
	require.NoError(t, Compute(in))

	assert.Equal(t, "-", in.Results[0].Gap)
	assert.Equal(t, "1m05.500", in.Results[1].Gap)
	assert.Equal(t, "2 laps down", in.Results[2].Gap)
}

func TestComputePoints(t *testing.T) {
	in := &Input{Season: testSeason(), System: testSystem(), Results: raceResults()}
	require.NoError(t, Compute(in))

	// P1 + Q2: 25 + 2
	assert.Equal(t, 27.0, in.Results[0].Points)
	// P2 + Q1 + pole + fastest lap: 18 + 3 + 1 + 1
	assert.Equal(t, 23.0, in.Results[1].Points)
	// P3 + Q3: 15 + 1
	assert.Equal(t, 16.0, in.Results[2].Points)
}

func TestComputeIdempotent(t *testing.T) {
	in := &Input{Season: testSeason(), System: testSystem(), Results: raceResults()}
	require.NoError(t, Compute(in))

	first := make([]model.Result, len(in.Results))
	for i, r := range in.Results {
		first[i] = *r
	}
	require.NoError(t, Compute(in))
	for i, r := range in.Results {
		if diff := cmp.Diff(first[i], *r); diff != "" {
			t.Errorf("result %d changed on second run (-first +second):\n%s", i, diff)
		}
	}
}

func TestComputeMaxPointsBound(t *testing.T) {
	sys := testSystem()
	sys.LeadLap = 1
	sys.MostLapsLead = 5
	laps := map[int][]*model.Lap{}
	for _, r := range raceResults() {
		for i := 1; i <= r.RaceLaps; i++ {
			pos := r.Position
			if r.ID == 1 {
				pos = 1
			}
			laps[r.ID] = append(laps[r.ID],
				&model.Lap{ResultID: r.ID, Session: model.SessionRace, LapNumber: i, Position: pos, LapTime: 90.0})
		}
	}
	in := &Input{Season: testSeason(), System: sys, Results: raceResults(), Laps: laps}
	require.NoError(t, Compute(in))

	// naive per-driver maximum: best race + best quali + all four bonuses
	// with every lap lead
	maxPoints := 25.0 + 3 + 1 + 1 + 5 + float64(30*sys.LeadLap)
	for _, r := range in.Results {
		assert.LessOrEqual(t, r.Points, maxPoints)
	}
}

func TestFastestLapSelection(t *testing.T) {
	in := &Input{Season: testSeason(), System: testSystem(), Results: raceResults()}
	require.NoError(t, Compute(in))

	assert.False(t, in.Results[0].FastestLap)
	assert.True(t, in.Results[1].FastestLap)
	assert.False(t, in.Results[2].FastestLap)
}

func TestFastestLapFallsBackToRawLaps(t *testing.T) {
	results := raceResults()
	for _, r := range results {
		r.RaceFastestLap = 0
	}
	laps := map[int][]*model.Lap{
		1: {{LapTime: 84.0}, {LapTime: 83.2}},
		2: {{LapTime: 85.0}, {LapTime: 0}},
		3: {{LapTime: 82.9}, {LapTime: 90.1}},
	}
	in := &Input{Season: testSeason(), System: testSystem(), Results: results, Laps: laps}
	require.NoError(t, Compute(in))

	assert.False(t, results[0].FastestLap)
	assert.False(t, results[1].FastestLap)
	assert.True(t, results[2].FastestLap)
}

func TestClassificationLapsPolicy(t *testing.T) {
	psID := 1
	season := &model.Season{
		ID:                 1,
		PointSystemID:      &psID,
		ClassificationType: model.ClassificationLaps,
		LapsClassified:     5,
	}
	results := []*model.Result{
		{ID: 1, DriverID: 1, Position: 2, RaceLaps: 30, RaceTime: 3000.0, PointsMultiplier: 1.0},
		{ID: 2, DriverID: 2, Position: 1, RaceLaps: 24, RaceTime: 2400.0, PointsMultiplier: 1.0},
	}
	in := &Input{Season: season, System: testSystem(), Results: results}
	require.NoError(t, Compute(in))

	// 24 laps of 30 is more than laps_classified behind, scores nothing even
	// from the top spot
	assert.False(t, results[1].Classified)
	assert.Equal(t, 0.0, results[1].Points)
	assert.True(t, results[0].Classified)
	assert.Equal(t, 18.0, results[0].Points)
}

func TestDisqualificationForcesZero(t *testing.T) {
	driverID := 2
	results := raceResults()
	results[0].RacePenaltyDSQ = true
	in := &Input{
		Season: testSeason(), System: testSystem(), Results: results,
		Penalties: []*model.SeasonPenalty{
			{SeasonID: 1, DriverID: &driverID, Disqualified: true},
		},
	}
	require.NoError(t, Compute(in))

	assert.Equal(t, 0.0, results[0].Points)
	assert.Equal(t, 0.0, results[1].Points)
	assert.Greater(t, results[2].Points, 0.0)
}

func TestPenaltyPointsAndMultiplier(t *testing.T) {
	results := raceResults()
	results[0].PenaltyPoints = 5
	results[0].PointsMultiplier = 0.5
	in := &Input{Season: testSeason(), System: testSystem(), Results: results}
	require.NoError(t, Compute(in))

	// (25 + 2 - 5) * 0.5
	assert.Equal(t, 11.0, results[0].Points)
}

func TestMostLapsLeadTieAwardsNone(t *testing.T) {
	sys := testSystem()
	sys.MostLapsLead = 10
	laps := map[int][]*model.Lap{
		1: {{Position: 1, LapTime: 90}, {Position: 1, LapTime: 90}},
		2: {{Position: 1, LapTime: 90}, {Position: 1, LapTime: 90}},
	}
	in := &Input{Season: testSeason(), System: sys, Results: raceResults(), Laps: laps}
	require.NoError(t, Compute(in))

	// both lead two laps, the bonus goes to nobody
	assert.Equal(t, 27.0, in.Results[0].Points)
	assert.Equal(t, 23.0, in.Results[1].Points)
}
