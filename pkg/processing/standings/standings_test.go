package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsrleague/standings-manager-go/pkg/model"
)

// six drivers with the point totals of the classic tie vector
func tieInput(usePosition bool) *Input {
	totals := []float64{100, 100, 90, 80, 80, 80}
	in := &Input{
		Season:     &model.Season{ID: 1, UsePosition: usePosition, TeamsDisabled: true},
		Drivers:    map[int]*model.Driver{},
		Teams:      map[int]*model.Team{},
		BestFinish: map[int]int{},
	}
	for i, points := range totals {
		driverID := i + 1
		in.Drivers[driverID] = &model.Driver{ID: driverID}
		// best finish follows driver order so ties keep insertion order
		in.BestFinish[driverID] = driverID
		in.Results = append(in.Results, &model.Result{
			ID: driverID, RaceID: 1, DriverID: driverID, Points: points,
		})
	}
	return in
}

func TestPositionsWithTieMarker(t *testing.T) {
	tables := Compute(tieInput(false))
	require.Len(t, tables.Drivers, 6)

	labels := make([]string, 0, 6)
	positions := make([]int, 0, 6)
	for _, row := range tables.Drivers {
		labels = append(labels, row.Label)
		positions = append(positions, row.Position)
	}
	assert.Equal(t, []string{"1", "-", "3", "4", "-", "-"}, labels)
	assert.Equal(t, []int{1, 1, 3, 4, 4, 4}, positions)
}

func TestPositionsWithUsePosition(t *testing.T) {
	tables := Compute(tieInput(true))
	require.Len(t, tables.Drivers, 6)

	labels := make([]string, 0, 6)
	for _, row := range tables.Drivers {
		labels = append(labels, row.Label)
	}
	assert.Equal(t, []string{"1", "1", "3", "4", "4", "4"}, labels)
}

func TestTieBreakByBestFinish(t *testing.T) {
	in := &Input{
		Season:  &model.Season{ID: 1, TeamsDisabled: true},
		Drivers: map[int]*model.Driver{1: {ID: 1}, 2: {ID: 2}},
		Teams:   map[int]*model.Team{},
		Results: []*model.Result{
			{ID: 1, DriverID: 1, Points: 50},
			{ID: 2, DriverID: 2, Points: 50},
		},
		// driver 2 has the better best ever finish, driver 1 none at all
		BestFinish: map[int]int{2: 2},
	}
	tables := Compute(in)
	require.Len(t, tables.Drivers, 2)
	assert.Equal(t, 2, tables.Drivers[0].DriverID)
	assert.Equal(t, noBestFinish, tables.Drivers[1].BestFinish)
}

func TestPointsGaps(t *testing.T) {
	in := tieInput(false)
	tables := Compute(in)

	assert.Equal(t, Gap{ToLeader: "-", ToPrevious: "-"}, tables.Drivers[0].Gap)
	assert.Equal(t, Gap{ToLeader: "0", ToPrevious: "0"}, tables.Drivers[1].Gap)
	assert.Equal(t, Gap{ToLeader: "10", ToPrevious: "10"}, tables.Drivers[2].Gap)
	assert.Equal(t, Gap{ToLeader: "20", ToPrevious: "10"}, tables.Drivers[3].Gap)
}

func TestSeasonPenaltyAppliedOnce(t *testing.T) {
	driverID := 1
	in := &Input{
		Season:  &model.Season{ID: 1, TeamsDisabled: true},
		Drivers: map[int]*model.Driver{1: {ID: 1}},
		Teams:   map[int]*model.Team{},
		Results: []*model.Result{
			{ID: 1, RaceID: 1, DriverID: 1, Points: 25},
			{ID: 2, RaceID: 2, DriverID: 1, Points: 18},
		},
		BestFinish: map[int]int{},
		Penalties: []*model.SeasonPenalty{
			{SeasonID: 1, DriverID: &driverID, Points: 10},
		},
	}
	tables := Compute(in)
	require.Len(t, tables.Drivers, 1)
	assert.Equal(t, 33.0, tables.Drivers[0].Points)
}

func TestTeamTable(t *testing.T) {
	parentID := 10
	in := &Input{
		Season: &model.Season{ID: 1},
		Drivers: map[int]*model.Driver{
			1: {ID: 1}, 2: {ID: 2}, 3: {ID: 3},
		},
		Teams: map[int]*model.Team{
			10: {ID: 10, Name: "Umbrella"},
			11: {ID: 11, Name: "Brand A", ParentID: &parentID},
			20: {ID: 20, Name: "Rivals"},
		},
		Results: []*model.Result{
			{ID: 1, DriverID: 1, TeamID: 11, Points: 25},
			{ID: 2, DriverID: 2, TeamID: 10, Points: 18},
			{ID: 3, DriverID: 3, TeamID: 20, Points: 40},
		},
		BestFinish: map[int]int{},
	}
	tables := Compute(in)
	require.Len(t, tables.Teams, 2)

	// the brand entry rolls up into the umbrella team
	assert.Equal(t, 10, tables.Teams[0].TeamID)
	assert.Equal(t, 43.0, tables.Teams[0].Points)
	assert.Equal(t, []int{1, 2}, tables.Teams[0].Drivers)
	assert.Equal(t, 25.0, tables.Teams[0].DriverPoints[1])

	assert.Equal(t, 20, tables.Teams[1].TeamID)
}

func TestDisqualifiedTeamSortsLast(t *testing.T) {
	teamID := 10
	in := &Input{
		Season:  &model.Season{ID: 1},
		Drivers: map[int]*model.Driver{1: {ID: 1}, 2: {ID: 2}},
		Teams:   map[int]*model.Team{10: {ID: 10}, 20: {ID: 20}},
		Results: []*model.Result{
			{ID: 1, DriverID: 1, TeamID: 10, Points: 99},
			{ID: 2, DriverID: 2, TeamID: 20, Points: 10},
		},
		BestFinish: map[int]int{},
		Penalties: []*model.SeasonPenalty{
			{SeasonID: 1, TeamID: &teamID, Disqualified: true},
		},
	}
	tables := Compute(in)
	require.Len(t, tables.Teams, 2)
	assert.Equal(t, 20, tables.Teams[0].TeamID)
	assert.Equal(t, 10, tables.Teams[1].TeamID)
	assert.True(t, tables.Teams[1].Disqualified)
}

func TestTeamsDisabled(t *testing.T) {
	in := tieInput(false)
	tables := Compute(in)
	assert.Nil(t, tables.Teams)
}
