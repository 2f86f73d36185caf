package parser

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/fsrleague/standings-manager-go/pkg/model"
)

// missing/corrupt timing samples are rendered as this token in the logs
const placeholderTime = "--.----"

const finishedNormally = "Finished Normally"

// Session is the structured view of one timing log document.
type Session struct {
	Type      string // model.SessionQualify or model.SessionRace
	Drivers   []DriverResult
	LapErrors []LapError
}

// DriverResult is the per-driver record of a session in document order.
type DriverResult struct {
	Name         string
	Team         string
	Car          string
	CarClass     string
	GridPosition int
	Position     int
	LapCount     int
	FinishStatus string
	TotalTime    float64
	DNFReason    string
	// FastestLapHolder is set when the log ranks this driver first overall.
	FastestLapHolder bool
	// FastestLap is the minimum positive lap time of the session.
	FastestLap float64
	Laps       []LapRecord
}

type LapRecord struct {
	Number   int
	Position int
	Sector1  float64
	Sector2  float64
	Sector3  float64
	LapTime  float64
	// RaceTime is the running total at the end of this lap.
	RaceTime float64
	Pitstop  bool
	Compound string
}

// LapError marks a lap whose timing sample was missing or corrupt. The lap
// itself is kept with a zero time; the error is surfaced to the caller.
type LapError struct {
	Driver    string
	LapNumber int
}

type lapElem struct {
	Num      string `xml:"num,attr"`
	Pos      string `xml:"p,attr"`
	Sector1  string `xml:"s1,attr"`
	Sector2  string `xml:"s2,attr"`
	Sector3  string `xml:"s3,attr"`
	Pit      string `xml:"pit,attr"`
	Compound string `xml:"fcompound,attr"`
	Time     string `xml:",chardata"`
}

type driverElem struct {
	Name         string    `xml:"Name"`
	CarType      string    `xml:"CarType"`
	CarClass     string    `xml:"CarClass"`
	VehFile      string    `xml:"VehFile"`
	GridPos      string    `xml:"GridPos"`
	Position     string    `xml:"Position"`
	Laps         string    `xml:"Laps"`
	FinishStatus string    `xml:"FinishStatus"`
	FinishTime   string    `xml:"FinishTime"`
	DNFReason    string    `xml:"DNFReason"`
	LapRank      string    `xml:"LapRankIncludingDiscos"`
	LapElems     []lapElem `xml:"Lap"`
}

type sessionElem struct {
	Drivers []driverElem `xml:"Driver"`
}

type raceResults struct {
	Qualify *sessionElem `xml:"Qualify"`
	Race    *sessionElem `xml:"Race"`
}

type document struct {
	RaceResults *raceResults `xml:"RaceResults"`
	// some exports omit the outer wrapper element
	Qualify *sessionElem `xml:"Qualify"`
	Race    *sessionElem `xml:"Race"`
}

// Parse converts the timing log document into a Session. The session type is
// detected from the document structure, not from a file name. Field level
// problems are recovered with defaults; only a broken document is an error.
func Parse(data []byte) (*Session, error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing timing log: %w", err)
	}
	results := raceResults{Qualify: doc.Qualify, Race: doc.Race}
	if doc.RaceResults != nil {
		results = *doc.RaceResults
	}

	ret := &Session{LapErrors: []LapError{}}
	var drivers []driverElem
	switch {
	case results.Qualify != nil:
		ret.Type = model.SessionQualify
		drivers = results.Qualify.Drivers
	case results.Race != nil:
		ret.Type = model.SessionRace
		drivers = results.Race.Drivers
	default:
		return nil, fmt.Errorf("timing log contains neither qualify nor race session")
	}

	for i := range drivers {
		ret.Drivers = append(ret.Drivers, convertDriver(&drivers[i], ret))
	}
	return ret, nil
}

func convertDriver(d *driverElem, session *Session) DriverResult {
	ret := DriverResult{
		Name:             strings.TrimSpace(d.Name),
		Team:             strings.TrimSpace(d.CarType),
		Car:              strings.TrimSpace(d.VehFile),
		CarClass:         strings.TrimSpace(d.CarClass),
		GridPosition:     getInt(d.GridPos),
		Position:         getInt(d.Position),
		LapCount:         getInt(d.Laps),
		FinishStatus:     strings.TrimSpace(d.FinishStatus),
		FastestLapHolder: strings.TrimSpace(d.LapRank) == "1",
	}
	if ret.FinishStatus == finishedNormally {
		ret.TotalTime = getFloat(d.FinishTime)
	} else {
		ret.DNFReason = strings.TrimSpace(d.DNFReason)
	}

	var raceTime float64
	for i := range d.LapElems {
		lap := convertLap(&d.LapElems[i])
		if strings.TrimSpace(d.LapElems[i].Time) == placeholderTime {
			session.LapErrors = append(session.LapErrors,
				LapError{Driver: ret.Name, LapNumber: lap.Number})
		}
		raceTime += lap.LapTime
		lap.RaceTime = raceTime
		if lap.LapTime > 0 && (lap.LapTime < ret.FastestLap || ret.FastestLap == 0) {
			ret.FastestLap = lap.LapTime
		}
		ret.Laps = append(ret.Laps, lap)
	}

	// no usable finish time in the log: derive it from the laps
	if ret.TotalTime == 0 {
		ret.TotalTime = raceTime
	}
	return ret
}

func convertLap(l *lapElem) LapRecord {
	return LapRecord{
		Number:   getInt(l.Num),
		Position: getInt(l.Pos),
		Sector1:  getFloat(l.Sector1),
		Sector2:  getFloat(l.Sector2),
		Sector3:  getFloat(l.Sector3),
		LapTime:  getFloat(l.Time),
		Pitstop:  strings.TrimSpace(l.Pit) == "1",
		Compound: parseCompound(l.Compound),
	}
}

// compound attributes come as "<code>,<display name>"
func parseCompound(arg string) string {
	if arg == "" {
		return ""
	}
	parts := strings.SplitN(arg, ",", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(parts[0])
}

func getInt(value string) int {
	ret, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return ret
}

func getFloat(value string) float64 {
	ret, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0.0
	}
	return ret
}
