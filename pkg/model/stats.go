package model

// SeasonStats is a materialized roll-up per (season, driver). It is fully
// recomputed, never patched incrementally.
type SeasonStats struct {
	ID       int `json:"id"`
	SeasonID int `json:"seasonId"`
	DriverID int `json:"driverId"`

	Wins           int `json:"wins"`
	Podiums        int `json:"podiums"`
	PointsFinishes int `json:"pointsFinishes"`
	PolePositions  int `json:"polePositions"`
	FastestLaps    int `json:"fastestLaps"`
	LapsLead       int `json:"lapsLead"`
	LapsCompleted  int `json:"lapsCompleted"`
	Attendance     int `json:"attendance"`

	PenaltyPoints         int `json:"penaltyPoints"`
	RacePenaltyTime       int `json:"racePenaltyTime"`
	RacePenaltyPositions  int `json:"racePenaltyPositions"`
	RacePenaltyDSQ        int `json:"racePenaltyDsq"`
	QualifyingPenaltyGrid int `json:"qualifyingPenaltyGrid"`
	QualifyingPenaltyBOG  int `json:"qualifyingPenaltyBog"`
	QualifyingPenaltySFP  int `json:"qualifyingPenaltySfp"`
	QualifyingPenaltyDSQ  int `json:"qualifyingPenaltyDsq"`

	RacePositions       map[int]int    `json:"racePositions"`
	QualifyingPositions map[int]int    `json:"qualifyingPositions"`
	DNFReasons          map[string]int `json:"dnfReasons"`

	Points       float64 `json:"points"`
	BestResultID *int    `json:"bestResultId"`
	BestFinish   int     `json:"bestFinish"`
	Position     int     `json:"position"` // standing position in the season
	Winner       bool    `json:"winner"`   // only when the season is finalized
}

// TrackRecord is the all-time best lap per (track, session type); season
// and race say where it was set.
type TrackRecord struct {
	ID          int     `json:"id"`
	TrackID     int     `json:"trackId"`
	SeasonID    int     `json:"seasonId"`
	RaceID      int     `json:"raceId"`
	DriverID    int     `json:"driverId"`
	SessionType string  `json:"sessionType"`
	LapTime     float64 `json:"lapTime"`
}

// SeasonPenalty is a season wide adjustment for a driver or a team.
type SeasonPenalty struct {
	ID           int  `json:"id"`
	SeasonID     int  `json:"seasonId"`
	DriverID     *int `json:"driverId"`
	TeamID       *int `json:"teamId"`
	Points       int  `json:"points"` // deducted from the total
	Disqualified bool `json:"disqualified"`
}

// SortCriteria caches the best ever finish per (season, driver); the
// standings tie-break reads it instead of scanning all results.
type SortCriteria struct {
	ID         int `json:"id"`
	SeasonID   int `json:"seasonId"`
	DriverID   int `json:"driverId"`
	BestFinish int `json:"bestFinish"`
}
