package points

import (
	"fmt"

	"github.com/fsrleague/standings-manager-go/pkg/model"
	"github.com/fsrleague/standings-manager-go/pkg/repository"
	"github.com/fsrleague/standings-manager-go/pkg/utils"
)

// sentinel gap of the race leader
const leaderGap = "-"

// Input carries everything the calculator needs for one race. Laps holds the
// race session laps keyed by result id, used for laps-lead counting and as
// fallback when no result carries a recorded fastest lap.
type Input struct {
	Season    *model.Season
	System    *model.PointSystem
	Results   []*model.Result
	Laps      map[int][]*model.Lap
	Penalties []*model.SeasonPenalty
}

// EffectiveSystemID resolves the point system for a race: the race override
// wins over the season default. A race without either cannot be scored.
func EffectiveSystemID(race *model.Race, season *model.Season) (int, error) {
	if race.PointSystemID != nil {
		return *race.PointSystemID, nil
	}
	if season.PointSystemID != nil {
		return *season.PointSystemID, nil
	}
	return 0, fmt.Errorf("race %d has no point system: %w",
		race.ID, repository.ErrConfiguration)
}

// Compute recalculates gap, classification, fastest-lap flag and points for
// every result of a race. It only mutates the in-memory rows, persisting is
// the caller's job. Repeated runs over unchanged inputs yield identical
// output.
func Compute(in *Input) error {
	if in.System == nil {
		return fmt.Errorf("no point system: %w", repository.ErrConfiguration)
	}
	if len(in.Results) == 0 {
		return nil
	}

	winner := findWinner(in.Results)
	for _, r := range in.Results {
		r.Gap = computeGap(r, winner)
		r.Classified = in.Season.Classified(winner.RaceLaps, r.RaceLaps)
	}

	assignFastestLap(in.Results, in.Laps)

	racePoints := in.System.RacePointsMap()
	qualiPoints := in.System.QualifyingPointsMap()
	lapsLead := countLapsLead(in.Results, in.Laps)
	mostLapsLeader := strictMaxHolder(lapsLead)
	disqualified := disqualifiedDrivers(in.Penalties)

	for _, r := range in.Results {
		if r.RacePenaltyDSQ || disqualified[r.DriverID] {
			r.Points = 0
			continue
		}
		pts := 0.0
		if r.Classified {
			pts += float64(racePoints[r.Position])
			pts += float64(qualiPoints[r.Qualifying])
		}
		if r.FastestLap {
			pts += float64(in.System.FastestLap)
		}
		if r.Qualifying == 1 {
			pts += float64(in.System.PolePosition)
		}
		if mostLapsLeader == r.ID {
			pts += float64(in.System.MostLapsLead)
		}
		pts += float64(in.System.LeadLap * lapsLead[r.ID])
		pts -= float64(r.PenaltyPoints)

		mult := r.PointsMultiplier
		if mult == 0 {
			mult = 1.0
		}
		r.Points = pts * mult
	}
	return nil
}

// findWinner anchors the gap and classification baselines. Position 1 when
// present, otherwise the best placed result.
func findWinner(results []*model.Result) *model.Result {
	winner := results[0]
	for _, r := range results {
		if r.Position == 1 {
			return r
		}
		if r.Position > 0 && (winner.Position <= 0 || r.Position < winner.Position) {
			winner = r
		}
	}
	return winner
}

func computeGap(r, winner *model.Result) string {
	if r == winner {
		return leaderGap
	}
	if r.RaceLaps < winner.RaceLaps {
		return fmt.Sprintf("%d laps down", winner.RaceLaps-r.RaceLaps)
	}
	return utils.FormatTime(r.RaceTime - winner.RaceTime)
}

// assignFastestLap clears all flags and marks the single result holding the
// lowest positive race lap. Results without a recorded fastest lap fall back
// to a scan over their raw laps.
func assignFastestLap(results []*model.Result, laps map[int][]*model.Lap) {
	var holder *model.Result
	best := 0.0
	for _, r := range results {
		r.FastestLap = false
		candidate := r.RaceFastestLap
		if candidate <= 0 {
			candidate = fastestOf(laps[r.ID])
		}
		if candidate > 0 && (holder == nil || candidate < best) {
			holder = r
			best = candidate
		}
	}
	if holder != nil {
		holder.FastestLap = true
	}
}

func fastestOf(laps []*model.Lap) float64 {
	best := 0.0
	for _, l := range laps {
		if l.LapTime > 0 && (best == 0 || l.LapTime < best) {
			best = l.LapTime
		}
	}
	return best
}

// countLapsLead tallies the race laps each result spent in the lead.
func countLapsLead(results []*model.Result, laps map[int][]*model.Lap) map[int]int {
	ret := map[int]int{}
	for _, r := range results {
		for _, l := range laps[r.ID] {
			if l.Position == 1 {
				ret[r.ID]++
			}
		}
	}
	return ret
}

// strictMaxHolder returns the result id with the strictly highest count, 0
// when the maximum is shared or no laps were lead at all.
func strictMaxHolder(lapsLead map[int]int) int {
	holder, best, tied := 0, 0, false
	for id, count := range lapsLead {
		switch {
		case count > best:
			holder, best, tied = id, count, false
		case count == best && count > 0:
			tied = true
		}
	}
	if tied || best == 0 {
		return 0
	}
	return holder
}

func disqualifiedDrivers(penalties []*model.SeasonPenalty) map[int]bool {
	ret := map[int]bool{}
	for _, p := range penalties {
		if p.Disqualified && p.DriverID != nil {
			ret[*p.DriverID] = true
		}
	}
	return ret
}
