package datasource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/epl-predictor/internal/models"
)

// Columns read from a football-data.co.uk results sheet. Time is optional
// since older seasons omit it.
const (
	colDate      = "Date"
	colTime      = "Time"
	colHomeTeam  = "HomeTeam"
	colAwayTeam  = "AwayTeam"
	colHomeGoals = "FTHG"
	colAwayGoals = "FTAG"
)

var requiredColumns = []string{colDate, colHomeTeam, colAwayTeam, colHomeGoals, colAwayGoals}

// DateLayouts are the match date formats accepted from every source
var DateLayouts = []string{"02/01/2006", "02/01/06", "2006-01-02"}

// ParseDate parses a match date in any of DateLayouts
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// ParseResultsCSV reads a results sheet into match results
func ParseResultsCSV(source string, r io.Reader) ([]models.MatchResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewDataSourceError(source, ErrCodeInvalidData, "results sheet is empty", nil)
		}
		return nil, NewDataSourceError(source, ErrCodeInvalidData, "failed to read header", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, NewDataSourceError(source, ErrCodeInvalidData, fmt.Sprintf("missing column %s", col), nil)
		}
	}
	timeIdx, hasTime := index[colTime]

	var results []models.MatchResult
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, NewDataSourceError(source, ErrCodeInvalidData, fmt.Sprintf("line %d", line), err)
		}
		if blankRecord(record) {
			continue
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		date, err := ParseDate(field(colDate))
		if err != nil {
			return nil, NewDataSourceError(source, ErrCodeInvalidData, fmt.Sprintf("line %d", line), err)
		}
		homeGoals, err := strconv.Atoi(field(colHomeGoals))
		if err != nil {
			return nil, NewDataSourceError(source, ErrCodeInvalidData, fmt.Sprintf("line %d: %s", line, colHomeGoals), err)
		}
		awayGoals, err := strconv.Atoi(field(colAwayGoals))
		if err != nil {
			return nil, NewDataSourceError(source, ErrCodeInvalidData, fmt.Sprintf("line %d: %s", line, colAwayGoals), err)
		}

		result := models.MatchResult{
			Date:      date,
			HomeTeam:  field(colHomeTeam),
			AwayTeam:  field(colAwayTeam),
			HomeGoals: homeGoals,
			AwayGoals: awayGoals,
		}
		if hasTime && timeIdx < len(record) {
			result.KickoffTime = strings.TrimSpace(record[timeIdx])
		}
		results = append(results, result)
	}

	return results, nil
}

func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
