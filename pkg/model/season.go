package model

import (
	"strings"
	"time"
)

// classification policies deciding whether a result scores points
const (
	ClassificationNone    = ""
	ClassificationPercent = "percent" // min percent of the winner's laps
	ClassificationLaps    = "laps"    // max laps behind the winner
)

type Season struct {
	ID                 int       `json:"id"`
	DivisionID         int       `json:"divisionId"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	Finalized          bool      `json:"finalized"`
	PointSystemID      *int      `json:"pointSystemId"`
	ClassificationType string    `json:"classificationType"`
	PercentClassified  int       `json:"percentClassified"`
	LapsClassified     int       `json:"lapsClassified"`
	TeamsDisabled      bool      `json:"teamsDisabled"`
	UsePosition        bool      `json:"usePosition"`
}

// Classified reports whether a driver completing driverLaps of a race won
// with totalLaps counts as classified under the season policy.
func (s *Season) Classified(totalLaps, driverLaps int) bool {
	switch strings.ToLower(s.ClassificationType) {
	case ClassificationPercent:
		if float64(driverLaps) < float64(totalLaps)*(float64(s.PercentClassified)/100.0) {
			return false
		}
	case ClassificationLaps:
		if driverLaps < totalLaps-s.LapsClassified {
			return false
		}
	}
	return true
}

type Race struct {
	ID            int       `json:"id"`
	SeasonID      int       `json:"seasonId"`
	PointSystemID *int      `json:"pointSystemId"`
	RoundNumber   int       `json:"roundNumber"`
	Name          string    `json:"name"`
	ShortName     string    `json:"shortName"`
	StartTime     time.Time `json:"startTime"`
	TrackID       *int      `json:"trackId"`
}

type Track struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Length  float64 `json:"length"`
	Version string  `json:"version"`
	Country string  `json:"country"`
}
