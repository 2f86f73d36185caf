package model

// session identifiers used for laps and track records
const (
	SessionQualify = "qualify"
	SessionRace    = "race"
)

// Result is the single row per (race, driver). The computed fields Points,
// Gap, Classified and FastestLap are owned by the points engine.
type Result struct {
	ID       int `json:"id"`
	RaceID   int `json:"raceId"`
	DriverID int `json:"driverId"`
	TeamID   int `json:"teamId"`

	Qualifying     int     `json:"qualifying"`
	QualifyingLaps int     `json:"qualifyingLaps"`
	QualifyingTime float64 `json:"qualifyingTime"`
	Position       int     `json:"position"`
	RaceLaps       int     `json:"raceLaps"`
	RaceTime       float64 `json:"raceTime"`
	Car            string  `json:"car"`
	CarClass       string  `json:"carClass"`
	DNFReason      string  `json:"dnfReason"`

	FastestLap               bool    `json:"fastestLap"`           // holder of the race fastest lap
	QualifyingFastestLap     bool    `json:"qualifyingFastestLap"` // holder of the qualifying fastest lap
	RaceFastestLap           float64 `json:"raceFastestLap"`       // best race lap in seconds
	QualifyingFastestLapTime float64 `json:"qualifyingFastestLapTime"`

	RacePenaltyTime              int    `json:"racePenaltyTime"`
	RacePenaltyPositions         int    `json:"racePenaltyPositions"`
	RacePenaltyDescription       string `json:"racePenaltyDescription"`
	RacePenaltyDSQ               bool   `json:"racePenaltyDsq"`
	QualifyingPenaltyGrid        int    `json:"qualifyingPenaltyGrid"`
	QualifyingPenaltyBOG         bool   `json:"qualifyingPenaltyBog"` // back of grid
	QualifyingPenaltySFP         bool   `json:"qualifyingPenaltySfp"` // start from pits
	QualifyingPenaltyDSQ         bool   `json:"qualifyingPenaltyDsq"`
	QualifyingPenaltyDescription string `json:"qualifyingPenaltyDescription"`
	PenaltyPoints                int    `json:"penaltyPoints"`

	PointsMultiplier            float64 `json:"pointsMultiplier"`
	PointsMultiplierDescription string  `json:"pointsMultiplierDescription"`

	Note             string `json:"note"`
	SubbedByID       *int   `json:"subbedById"`
	AllocatePointsID *int   `json:"allocatePointsId"` // team that receives the points instead

	Finalized  bool    `json:"finalized"`
	Classified bool    `json:"classified"`
	Points     float64 `json:"points"`
	Gap        string  `json:"gap"`
}

// Lap is one recorded lap of a result within a session.
type Lap struct {
	ID        int     `json:"id"`
	ResultID  int     `json:"resultId"`
	Session   string  `json:"session"`
	LapNumber int     `json:"lapNumber"`
	Position  int     `json:"position"`
	Pitstop   bool    `json:"pitstop"`
	Sector1   float64 `json:"sector1"`
	Sector2   float64 `json:"sector2"`
	Sector3   float64 `json:"sector3"`
	LapTime   float64 `json:"lapTime"`
	RaceTime  float64 `json:"raceTime"` // running total at the end of the lap
	Compound  string  `json:"compound"`
}
