package stats

import (
	"sort"

	"github.com/fsrleague/standings-manager-go/pkg/model"
)

// Candidate is one driver's best lap of a session, tagged with where it was
// set.
type Candidate struct {
	TrackID     int
	SeasonID    int
	RaceID      int
	RaceRound   int
	DriverID    int
	SessionType string
	LapTime     float64
}

// BestRecords keeps the minimum lap per (track, session type). Candidates
// are scanned in a fixed order so an exact tie leaves the earlier holder in
// place.
func BestRecords(candidates []Candidate) []*model.TrackRecord {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SeasonID != ordered[j].SeasonID {
			return ordered[i].SeasonID < ordered[j].SeasonID
		}
		if ordered[i].RaceRound != ordered[j].RaceRound {
			return ordered[i].RaceRound < ordered[j].RaceRound
		}
		return ordered[i].DriverID < ordered[j].DriverID
	})

	type key struct {
		trackID     int
		sessionType string
	}
	best := map[key]*model.TrackRecord{}
	order := []key{}
	for _, c := range ordered {
		if c.LapTime <= 0 {
			continue
		}
		k := key{trackID: c.TrackID, sessionType: c.SessionType}
		cur, ok := best[k]
		if !ok {
			order = append(order, k)
		}
		if !ok || c.LapTime < cur.LapTime {
			best[k] = &model.TrackRecord{
				TrackID:     c.TrackID,
				SeasonID:    c.SeasonID,
				RaceID:      c.RaceID,
				DriverID:    c.DriverID,
				SessionType: c.SessionType,
				LapTime:     c.LapTime,
			}
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].trackID != order[j].trackID {
			return order[i].trackID < order[j].trackID
		}
		return order[i].sessionType < order[j].sessionType
	})
	ret := make([]*model.TrackRecord, 0, len(order))
	for _, k := range order {
		ret = append(ret, best[k])
	}
	return ret
}
