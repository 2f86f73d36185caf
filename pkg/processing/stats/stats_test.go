package stats

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsrleague/standings-manager-go/pkg/model"
)

func TestComputeSeasonStats(t *testing.T) {
	in := &Input{
		Season: &model.Season{ID: 1, Finalized: true},
		Results: []*model.Result{
			{
				ID: 1, RaceID: 1, DriverID: 1, Position: 1, Qualifying: 1,
				RaceLaps: 30, Points: 29, Classified: true, FastestLap: true,
			},
			{
				ID: 2, RaceID: 2, DriverID: 1, Position: 3, Qualifying: 2,
				RaceLaps: 28, Points: 15, Classified: true, PenaltyPoints: 2,
			},
			{
				ID: 3, RaceID: 3, DriverID: 1, Position: 12, Qualifying: 4,
				RaceLaps: 4, Points: 0, DNFReason: "Engine",
			},
			{
				ID: 4, RaceID: 1, DriverID: 2, Position: 2, Qualifying: 3,
				RaceLaps: 30, Points: 18, Classified: true,
			},
		},
		Laps: map[int][]*model.Lap{
			1: {{Position: 1}, {Position: 1}, {Position: 2}},
		},
		Positions: map[int]int{1: 1, 2: 2},
	}
	rows := Compute(in)
	require.Len(t, rows, 2)

	s := rows[0]
	assert.Equal(t, 1, s.DriverID)
	assert.Equal(t, 3, s.Attendance)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 2, s.Podiums)
	assert.Equal(t, 1, s.PolePositions)
	assert.Equal(t, 1, s.FastestLaps)
	assert.Equal(t, 2, s.PointsFinishes)
	assert.Equal(t, 2, s.LapsLead)
	assert.Equal(t, 62, s.LapsCompleted)
	assert.Equal(t, 44.0, s.Points)
	assert.Equal(t, 2, s.PenaltyPoints)
	assert.Equal(t, 1, s.BestFinish)
	require.NotNil(t, s.BestResultID)
	assert.Equal(t, 1, *s.BestResultID)
	assert.True(t, s.Winner)

	if diff := cmp.Diff(map[int]int{1: 1, 3: 1, 12: 1}, s.RacePositions); diff != "" {
		t.Errorf("race positions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]int{"Engine": 1}, s.DNFReasons); diff != "" {
		t.Errorf("dnf reasons mismatch (-want +got):\n%s", diff)
	}

	assert.False(t, rows[1].Winner)
}

func TestWinnerFlagNeedsFinalizedSeason(t *testing.T) {
	in := &Input{
		Season: &model.Season{ID: 1, Finalized: false},
		Results: []*model.Result{
			{ID: 1, DriverID: 1, Position: 1, Classified: true, Points: 25},
		},
		Positions: map[int]int{1: 1},
	}
	rows := Compute(in)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Winner)
}

func TestBestRecords(t *testing.T) {
	candidates := []Candidate{
		{TrackID: 1, SeasonID: 1, RaceID: 1, RaceRound: 1, DriverID: 1, SessionType: model.SessionRace, LapTime: 82.5},
		{TrackID: 1, SeasonID: 1, RaceID: 1, RaceRound: 1, DriverID: 2, SessionType: model.SessionRace, LapTime: 81.9},
		{TrackID: 1, SeasonID: 2, RaceID: 9, RaceRound: 3, DriverID: 3, SessionType: model.SessionRace, LapTime: 83.0},
		{TrackID: 1, SeasonID: 1, RaceID: 1, RaceRound: 1, DriverID: 1, SessionType: model.SessionQualify, LapTime: 80.1},
		{TrackID: 2, SeasonID: 1, RaceID: 2, RaceRound: 2, DriverID: 1, SessionType: model.SessionRace, LapTime: 95.0},
	}
	records := BestRecords(candidates)
	require.Len(t, records, 3)

	assert.Equal(t, model.SessionQualify, records[0].SessionType)
	assert.Equal(t, 80.1, records[0].LapTime)
	assert.Equal(t, 2, records[1].DriverID)
	assert.Equal(t, 81.9, records[1].LapTime)
	assert.Equal(t, 2, records[2].TrackID)
}

func TestBestRecordsTieKeepsEarlierHolder(t *testing.T) {
	candidates := []Candidate{
		{TrackID: 1, SeasonID: 2, RaceID: 5, RaceRound: 1, DriverID: 9, SessionType: model.SessionRace, LapTime: 82.0},
		{TrackID: 1, SeasonID: 1, RaceID: 1, RaceRound: 1, DriverID: 4, SessionType: model.SessionRace, LapTime: 82.0},
	}
	records := BestRecords(candidates)
	require.Len(t, records, 1)
	assert.Equal(t, 4, records[0].DriverID)
	assert.Equal(t, 1, records[0].SeasonID)
}

func TestBestRecordsIgnoresZeroLaps(t *testing.T) {
	candidates := []Candidate{
		{TrackID: 1, SeasonID: 1, RaceID: 1, RaceRound: 1, DriverID: 1, SessionType: model.SessionRace, LapTime: 0},
	}
	assert.Empty(t, BestRecords(candidates))
}
