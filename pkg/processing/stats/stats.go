package stats

import (
	"sort"

	"github.com/fsrleague/standings-manager-go/pkg/model"
)

// Input is the season scope for a stats recompute. Laps holds the race
// session laps keyed by result id, Positions the season standing per driver.
type Input struct {
	Season    *model.Season
	Results   []*model.Result
	Laps      map[int][]*model.Lap
	Positions map[int]int
}

// Compute rebuilds the SeasonStats rows for every driver with a result in
// the season. The rows replace whatever is stored, nothing is patched.
func Compute(in *Input) []*model.SeasonStats {
	byDriver := map[int]*model.SeasonStats{}
	for _, r := range in.Results {
		s, ok := byDriver[r.DriverID]
		if !ok {
			s = &model.SeasonStats{
				SeasonID:            in.Season.ID,
				DriverID:            r.DriverID,
				RacePositions:       map[int]int{},
				QualifyingPositions: map[int]int{},
				DNFReasons:          map[string]int{},
			}
			byDriver[r.DriverID] = s
		}
		tally(s, r, in.Laps[r.ID])
	}

	ret := make([]*model.SeasonStats, 0, len(byDriver))
	for _, s := range byDriver {
		s.Position = in.Positions[s.DriverID]
		s.Winner = in.Season.Finalized && s.Position == 1
		ret = append(ret, s)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].DriverID < ret[j].DriverID })
	return ret
}

func tally(s *model.SeasonStats, r *model.Result, laps []*model.Lap) {
	s.Attendance++
	s.Points += r.Points
	s.LapsCompleted += r.RaceLaps

	if r.Position > 0 {
		s.RacePositions[r.Position]++
		if s.BestFinish == 0 || r.Position < s.BestFinish {
			s.BestFinish = r.Position
			id := r.ID
			s.BestResultID = &id
		}
	}
	if r.Qualifying > 0 {
		s.QualifyingPositions[r.Qualifying]++
	}
	if r.DNFReason != "" {
		s.DNFReasons[r.DNFReason]++
	}

	if r.Classified {
		switch {
		case r.Position == 1:
			s.Wins++
			s.Podiums++
		case r.Position > 1 && r.Position <= 3:
			s.Podiums++
		}
	}
	if r.Points > 0 {
		s.PointsFinishes++
	}
	if r.Qualifying == 1 {
		s.PolePositions++
	}
	if r.FastestLap {
		s.FastestLaps++
	}
	for _, l := range laps {
		if l.Position == 1 {
			s.LapsLead++
		}
	}

	s.PenaltyPoints += r.PenaltyPoints
	s.RacePenaltyTime += r.RacePenaltyTime
	s.RacePenaltyPositions += r.RacePenaltyPositions
	if r.RacePenaltyDSQ {
		s.RacePenaltyDSQ++
	}
	s.QualifyingPenaltyGrid += r.QualifyingPenaltyGrid
	if r.QualifyingPenaltyBOG {
		s.QualifyingPenaltyBOG++
	}
	if r.QualifyingPenaltySFP {
		s.QualifyingPenaltySFP++
	}
	if r.QualifyingPenaltyDSQ {
		s.QualifyingPenaltyDSQ++
	}
}
