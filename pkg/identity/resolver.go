package identity

import (
	"sort"

	"github.com/fsrleague/standings-manager-go/pkg/model"
)

// Duplicate marks several canonical rows sharing one comparison key. Ingest
// keeps working with the chosen id but the condition wants a merge.
type Duplicate struct {
	Kind     string // "driver" or "team"
	Key      string
	IDs      []int
	ChosenID int
}

// Resolver maps raw names from timing logs to canonical drivers and teams.
// It is built once per ingest from the full driver and team tables, lookups
// are pure and deterministic.
type Resolver struct {
	drivers    map[string]*model.Driver
	teams      map[string]*model.Team
	duplicates []Duplicate
}

func NewResolver(
	drivers []*model.Driver,
	teams []*model.Team,
	driverResults map[int]int,
	teamResults map[int]int,
) *Resolver {
	r := &Resolver{
		drivers: map[string]*model.Driver{},
		teams:   map[string]*model.Team{},
	}

	byKeyDrivers := map[string][]*model.Driver{}
	for _, d := range drivers {
		key := Normalize(d.Name)
		byKeyDrivers[key] = append(byKeyDrivers[key], d)
	}
	for key, candidates := range byKeyDrivers {
		chosen := candidates[0]
		for _, c := range candidates[1:] {
			if preferred(c.ID, driverResults[c.ID], chosen.ID, driverResults[chosen.ID]) {
				chosen = c
			}
		}
		r.drivers[key] = chosen
		if len(candidates) > 1 {
			ids := make([]int, 0, len(candidates))
			for _, c := range candidates {
				ids = append(ids, c.ID)
			}
			sort.Ints(ids)
			r.duplicates = append(r.duplicates,
				Duplicate{Kind: "driver", Key: key, IDs: ids, ChosenID: chosen.ID})
		}
	}

	byKeyTeams := map[string][]*model.Team{}
	for _, t := range teams {
		key := Normalize(t.Name)
		byKeyTeams[key] = append(byKeyTeams[key], t)
	}
	for key, candidates := range byKeyTeams {
		chosen := candidates[0]
		for _, c := range candidates[1:] {
			if preferred(c.ID, teamResults[c.ID], chosen.ID, teamResults[chosen.ID]) {
				chosen = c
			}
		}
		r.teams[key] = chosen
		if len(candidates) > 1 {
			ids := make([]int, 0, len(candidates))
			for _, c := range candidates {
				ids = append(ids, c.ID)
			}
			sort.Ints(ids)
			r.duplicates = append(r.duplicates,
				Duplicate{Kind: "team", Key: key, IDs: ids, ChosenID: chosen.ID})
		}
	}
	sort.Slice(r.duplicates, func(i, j int) bool {
		if r.duplicates[i].Kind != r.duplicates[j].Kind {
			return r.duplicates[i].Kind < r.duplicates[j].Kind
		}
		return r.duplicates[i].Key < r.duplicates[j].Key
	})
	return r
}

// preferred reports whether the candidate beats the current choice: more
// attached results wins, equal counts fall back to the lower id.
func preferred(candID, candResults, curID, curResults int) bool {
	if candResults != curResults {
		return candResults > curResults
	}
	return candID < curID
}

// AddDriver registers a freshly created canonical driver so later lookups
// in the same ingest resolve to it.
func (r *Resolver) AddDriver(d *model.Driver) {
	r.drivers[Normalize(d.Name)] = d
}

// AddTeam is the team counterpart of AddDriver.
func (r *Resolver) AddTeam(t *model.Team) {
	r.teams[Normalize(t.Name)] = t
}

func (r *Resolver) ResolveDriver(name string) (*model.Driver, bool) {
	d, ok := r.drivers[Normalize(name)]
	return d, ok
}

func (r *Resolver) ResolveTeam(name string) (*model.Team, bool) {
	t, ok := r.teams[Normalize(name)]
	return t, ok
}

// Duplicates lists the ambiguous keys found while building the resolver.
func (r *Resolver) Duplicates() []Duplicate {
	return r.duplicates
}
