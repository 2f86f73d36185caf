package standings

import (
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/fsrleague/standings-manager-go/pkg/model"
)

// sentinel best finish for drivers without any cached finishing position
const noBestFinish = 99

// tie marker rendered instead of the numeric rank
const tieMarker = "-"

// Gap is the points deficit of a row. The leader carries the sentinel "-"
// in both fields.
type Gap struct {
	ToLeader   string `json:"toLeader"`
	ToPrevious string `json:"toPrevious"`
}

type DriverStanding struct {
	DriverID   int     `json:"driverId"`
	Name       string  `json:"name"`
	Points     float64 `json:"points"`
	BestFinish int     `json:"bestFinish"`
	Position   int     `json:"position"`
	Label      string  `json:"label"` // rendered rank, may be the tie marker
	Gap        Gap     `json:"gap"`
}

type TeamStanding struct {
	TeamID       int             `json:"teamId"`
	Name         string          `json:"name"`
	Points       float64         `json:"points"`
	Drivers      []int           `json:"drivers"`
	DriverPoints map[int]float64 `json:"driverPoints"`
	Disqualified bool            `json:"disqualified"`
	Position     int             `json:"position"`
	Label        string          `json:"label"`
	Gap          Gap             `json:"gap"`
}

type Tables struct {
	Drivers []*DriverStanding `json:"drivers"`
	Teams   []*TeamStanding   `json:"teams"`
}

// Input is the full season scope. Results are expected to be pre-bounded
// when standings up to a given round are wanted. BestFinish comes from the
// cached sort criteria rows.
type Input struct {
	Season     *model.Season
	Drivers    map[int]*model.Driver
	Teams      map[int]*model.Team
	Results    []*model.Result
	BestFinish map[int]int
	Penalties  []*model.SeasonPenalty
}

// Compute folds the season's results into ranked driver and team tables.
// Output is purely derived, stored rows are never touched.
func Compute(in *Input) *Tables {
	ret := &Tables{Drivers: computeDrivers(in)}
	if !in.Season.TeamsDisabled {
		ret.Teams = computeTeams(in)
	}
	return ret
}

func computeDrivers(in *Input) []*DriverStanding {
	byDriver := map[int]*DriverStanding{}
	for _, r := range in.Results {
		row, ok := byDriver[r.DriverID]
		if !ok {
			row = &DriverStanding{
				DriverID:   r.DriverID,
				Name:       driverName(in, r.DriverID),
				BestFinish: bestFinish(in, r.DriverID),
			}
			byDriver[r.DriverID] = row
		}
		row.Points += r.Points
	}
	for _, p := range in.Penalties {
		if p.DriverID == nil {
			continue
		}
		if row, ok := byDriver[*p.DriverID]; ok {
			row.Points -= float64(p.Points)
		}
	}

	rows := lo.Values(byDriver)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].BestFinish != rows[j].BestFinish {
			return rows[i].BestFinish < rows[j].BestFinish
		}
		return rows[i].DriverID < rows[j].DriverID
	})
	assignDriverPositions(rows, in.Season.UsePosition)
	return rows
}

func computeTeams(in *Input) []*TeamStanding {
	byTeam := map[int]*TeamStanding{}
	rowFor := func(teamID int) *TeamStanding {
		row, ok := byTeam[teamID]
		if !ok {
			row = &TeamStanding{
				TeamID:       teamID,
				Name:         teamName(in, teamID),
				DriverPoints: map[int]float64{},
			}
			byTeam[teamID] = row
		}
		return row
	}

	for _, r := range in.Results {
		teamID := scoringTeam(in, r)
		if teamID == 0 {
			continue
		}
		row := rowFor(teamID)
		row.Points += r.Points
		if _, ok := row.DriverPoints[r.DriverID]; !ok {
			row.Drivers = append(row.Drivers, r.DriverID)
		}
		row.DriverPoints[r.DriverID] += r.Points
	}
	for _, p := range in.Penalties {
		if p.TeamID == nil {
			continue
		}
		if row, ok := byTeam[*p.TeamID]; ok {
			row.Points -= float64(p.Points)
			if p.Disqualified {
				row.Disqualified = true
			}
		}
	}

	rows := lo.Values(byTeam)
	for _, row := range rows {
		sort.Ints(row.Drivers)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Disqualified != rows[j].Disqualified {
			return !rows[i].Disqualified
		}
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].TeamID < rows[j].TeamID
	})
	assignTeamPositions(rows, in.Season.UsePosition)
	return rows
}

// scoringTeam decides which team a result scores for: an explicit points
// reallocation wins, then the parent team umbrella, then the entry itself.
func scoringTeam(in *Input, r *model.Result) int {
	teamID := r.TeamID
	if r.AllocatePointsID != nil {
		teamID = *r.AllocatePointsID
	}
	if t, ok := in.Teams[teamID]; ok && t.ParentID != nil {
		return *t.ParentID
	}
	return teamID
}

// assignDriverPositions walks the sorted rows handing out sequential ranks.
// Rows tied on points share the rank of the first row of their block, the
// row after the block skips ahead by the block size. Without use_position
// the later rows of a block render the tie marker instead of the number.
func assignDriverPositions(rows []*DriverStanding, usePosition bool) {
	for i, row := range rows {
		rank := i + 1
		tied := i > 0 && rows[i-1].Points == row.Points
		if tied {
			rank = rows[i-1].Position
		}
		row.Position = rank
		if tied && !usePosition {
			row.Label = tieMarker
		} else {
			row.Label = strconv.Itoa(rank)
		}
		row.Gap = pointsGap(i, row.Points, leaderPoints(rows), previousDriverPoints(rows, i))
	}
}

func assignTeamPositions(rows []*TeamStanding, usePosition bool) {
	for i, row := range rows {
		rank := i + 1
		tied := i > 0 && rows[i-1].Points == row.Points &&
			rows[i-1].Disqualified == row.Disqualified
		if tied {
			rank = rows[i-1].Position
		}
		row.Position = rank
		if tied && !usePosition {
			row.Label = tieMarker
		} else {
			row.Label = strconv.Itoa(rank)
		}
		var leader, prev float64
		if len(rows) > 0 {
			leader = rows[0].Points
		}
		if i > 0 {
			prev = rows[i-1].Points
		}
		row.Gap = pointsGap(i, row.Points, leader, prev)
	}
}

func pointsGap(idx int, points, leader, previous float64) Gap {
	if idx == 0 {
		return Gap{ToLeader: tieMarker, ToPrevious: tieMarker}
	}
	return Gap{
		ToLeader:   formatPoints(leader - points),
		ToPrevious: formatPoints(previous - points),
	}
}

func leaderPoints(rows []*DriverStanding) float64 {
	if len(rows) == 0 {
		return 0
	}
	return rows[0].Points
}

func previousDriverPoints(rows []*DriverStanding, idx int) float64 {
	if idx == 0 {
		return 0
	}
	return rows[idx-1].Points
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func driverName(in *Input, driverID int) string {
	if d, ok := in.Drivers[driverID]; ok {
		return d.Name
	}
	return ""
}

func teamName(in *Input, teamID int) string {
	if t, ok := in.Teams[teamID]; ok {
		return t.Name
	}
	return ""
}

func bestFinish(in *Input, driverID int) int {
	if best, ok := in.BestFinish[driverID]; ok && best > 0 {
		return best
	}
	return noBestFinish
}
