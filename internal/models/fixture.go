package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// fixtureNamespace seeds deterministic fixture identifiers
var fixtureNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("epl-predictor/fixture"))

// Fixture is an upcoming pairing of a home and an away team
type Fixture struct {
	Number   int    `json:"number,omitempty"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}

// ParseFixture parses "Home - Away". A bare "-" separator is accepted when
// the spaced form is absent.
func ParseFixture(s string) (Fixture, error) {
	home, away, ok := strings.Cut(s, " - ")
	if !ok {
		home, away, ok = strings.Cut(s, "-")
	}
	home = strings.TrimSpace(home)
	away = strings.TrimSpace(away)
	if !ok || home == "" || away == "" {
		return Fixture{}, fmt.Errorf("%w: fixture %q must look like \"Home - Away\"", ErrInvalidParameter, s)
	}
	if home == away {
		return Fixture{}, fmt.Errorf("%w: fixture %q pairs a team with itself", ErrInvalidParameter, s)
	}
	return Fixture{HomeTeam: home, AwayTeam: away}, nil
}

// ID returns a stable identifier derived from the team names
func (f Fixture) ID() uuid.UUID {
	return uuid.NewSHA1(fixtureNamespace, []byte(f.HomeTeam+"|"+f.AwayTeam))
}

func (f Fixture) String() string {
	return f.HomeTeam + " - " + f.AwayTeam
}
