package models

import (
	"fmt"
	"time"
)

// Venue identifies which side of a fixture a team played on
type Venue string

const (
	VenueHome Venue = "home"
	VenueAway Venue = "away"
)

// MatchResult represents a completed fixture from the historical results feed
type MatchResult struct {
	Date        time.Time `db:"match_date" json:"date"`
	KickoffTime string    `db:"kickoff_time" json:"kickoff_time"`
	HomeTeam    string    `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam    string    `db:"away_team" json:"away_team" validate:"required,nefield=HomeTeam"`
	HomeGoals   int       `db:"home_goals" json:"home_goals" validate:"gte=0"`
	AwayGoals   int       `db:"away_goals" json:"away_goals" validate:"gte=0"`
}

// ScoreLine formats the result as "Home 2 - 1 Away"
func (m MatchResult) ScoreLine() string {
	return fmt.Sprintf("%s %d - %d %s", m.HomeTeam, m.HomeGoals, m.AwayGoals, m.AwayTeam)
}

// TeamStrength is a team's scoring and conceding rate for one venue role,
// normalised against the league average for that role.
type TeamStrength struct {
	Team          string  `json:"team"`
	Venue         Venue   `json:"venue"`
	Attack        float64 `json:"attack"`
	Defense       float64 `json:"defense"`
	MatchesPlayed int     `json:"matches_played"`
	Fallback      bool    `json:"fallback"`
}

// LeagueAverages holds the mean goals per match for each venue role
type LeagueAverages struct {
	HomeGoals float64 `json:"home_goals"`
	AwayGoals float64 `json:"away_goals"`
	Matches   int     `json:"matches"`
}

// TeamMetadata is display data for a team. It plays no part in estimation.
type TeamMetadata struct {
	BadgeURL string `json:"badge_url,omitempty"`
	Color    string `json:"color,omitempty"`
}
