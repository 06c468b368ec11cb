package models

import (
	"errors"
	"fmt"
)

// Pipeline failure conditions, matched with errors.Is
var (
	ErrDataUnavailable     = errors.New("historical results unavailable")
	ErrInsufficientHistory = errors.New("insufficient match history")
	ErrInvalidParameter    = errors.New("invalid parameter")
)

// HistoryError reports a team with no matches in the venue role an
// estimate needs.
type HistoryError struct {
	Team  string
	Venue Venue
}

func (e *HistoryError) Error() string {
	return fmt.Sprintf("%s: %s has no recorded %s matches", ErrInsufficientHistory, e.Team, e.Venue)
}

func (e *HistoryError) Unwrap() error {
	return ErrInsufficientHistory
}
