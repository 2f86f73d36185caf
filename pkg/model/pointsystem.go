package model

import (
	"strconv"
	"strings"
)

// PointSystem assigns points by finishing position. The position lists are
// stored as comma separated values, index 0 belongs to position 1.
type PointSystem struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	RacePoints       string `json:"racePoints"`
	QualifyingPoints string `json:"qualifyingPoints"`
	PolePosition     int    `json:"polePosition"`
	LeadLap          int    `json:"leadLap"`
	FastestLap       int    `json:"fastestLap"`
	MostLapsLead     int    `json:"mostLapsLead"`
}

// RacePointsMap returns the position->points mapping for the race session.
// Positions not present in the list map to 0. A malformed list yields an
// all-zero mapping instead of an error.
func (ps *PointSystem) RacePointsMap() map[int]int {
	return parsePointsList(ps.RacePoints)
}

// QualifyingPointsMap is the qualifying counterpart of RacePointsMap.
func (ps *PointSystem) QualifyingPointsMap() map[int]int {
	return parsePointsList(ps.QualifyingPoints)
}

func parsePointsList(arg string) map[int]int {
	ret := map[int]int{}
	if strings.TrimSpace(arg) == "" {
		return ret
	}
	for i, part := range strings.Split(arg, ",") {
		val, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return map[int]int{}
		}
		ret[i+1] = val
	}
	return ret
}
