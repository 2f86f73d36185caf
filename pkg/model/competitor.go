package model

import "time"

type Driver struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Country   string     `json:"country"`
	ShortName string     `json:"shortName"`
	Birthday  *time.Time `json:"birthday"`
	City      string     `json:"city"`
	Helmet    string     `json:"helmet"`
}

// Team is a canonical team identity. ParentID groups multi-brand entries
// under one umbrella team for the team standings.
type Team struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Country  string `json:"country"`
	ParentID *int   `json:"parentId"`
}
