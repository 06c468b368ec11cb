package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/epl-predictor/internal/models"
	"github.com/yourusername/epl-predictor/internal/prediction"
)

// Report is the JSON document written for a run
type Report struct {
	RunID       uuid.UUID       `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Method      string          `json:"method"`
	Fixtures    []FixtureReport `json:"fixtures"`
	Skipped     []SkippedReport `json:"skipped,omitempty"`
}

// FixtureReport is one predicted fixture
type FixtureReport struct {
	FixtureID     uuid.UUID                   `json:"fixture_id"`
	Number        int                         `json:"number,omitempty"`
	Home          TeamReport                  `json:"home"`
	Away          TeamReport                  `json:"away"`
	League        models.LeagueAverages       `json:"league"`
	Outcome       models.OutcomeProbabilities `json:"outcome"`
	Markets       prediction.Markets          `json:"markets"`
	TruncatedMass float64                     `json:"truncated_mass"`
}

// TeamReport carries one side's strengths, distribution and display data
type TeamReport struct {
	Name          string               `json:"name"`
	BadgeURL      string               `json:"badge_url,omitempty"`
	Color         string               `json:"color,omitempty"`
	Strength      models.TeamStrength  `json:"strength"`
	ExpectedGoals float64              `json:"expected_goals"`
	Scoring       []float64            `json:"scoring_probabilities"`
	History       []models.MatchResult `json:"history"`
}

// SkippedReport records a fixture that could not be predicted
type SkippedReport struct {
	FixtureID uuid.UUID `json:"fixture_id"`
	Fixture   string    `json:"fixture"`
	Reason    string    `json:"reason"`
}

// NewReport assembles a report from a run's predictions
func NewReport(runID uuid.UUID, method string, predictions []*prediction.Prediction, teams map[string]models.TeamMetadata) Report {
	report := Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Method:      method,
		Fixtures:    make([]FixtureReport, 0, len(predictions)),
	}
	for _, p := range predictions {
		report.Fixtures = append(report.Fixtures, FixtureReport{
			FixtureID: p.Fixture.ID(),
			Number:    p.Fixture.Number,
			Home: teamReport(p.Fixture.HomeTeam, teams, p.Strength.Home, p.Strength.HomeExpectedGoals,
				p.HomeDistribution, p.HomeHistory),
			Away: teamReport(p.Fixture.AwayTeam, teams, p.Strength.Away, p.Strength.AwayExpectedGoals,
				p.AwayDistribution, p.AwayHistory),
			League:        p.Strength.League,
			Outcome:       p.Outcome,
			Markets:       p.Markets,
			TruncatedMass: p.TruncatedMass(),
		})
	}
	return report
}

// AddSkipped records a fixture that failed
func (r *Report) AddSkipped(fixture models.Fixture, err error) {
	r.Skipped = append(r.Skipped, SkippedReport{
		FixtureID: fixture.ID(),
		Fixture:   fixture.String(),
		Reason:    err.Error(),
	})
}

func teamReport(name string, teams map[string]models.TeamMetadata, strength models.TeamStrength, lambda float64, dist models.ScoreProbabilityVector, history []models.MatchResult) TeamReport {
	meta := teams[name]
	if history == nil {
		history = []models.MatchResult{}
	}
	return TeamReport{
		Name:          name,
		BadgeURL:      meta.BadgeURL,
		Color:         meta.Color,
		Strength:      strength,
		ExpectedGoals: lambda,
		Scoring:       []float64(dist),
		History:       history,
	}
}

// ExportJSON writes the report as indented JSON
func ExportJSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// ExportJSONFile writes the report to outputPath, creating parent directories
func ExportJSONFile(outputPath string, report Report) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}
