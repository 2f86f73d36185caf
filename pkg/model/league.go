package model

type League struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Division struct {
	ID          int    `json:"id"`
	LeagueID    int    `json:"leagueId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Order       string `json:"order"`
}
