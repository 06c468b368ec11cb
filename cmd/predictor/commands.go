package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yourusername/epl-predictor/internal/models"
	"github.com/yourusername/epl-predictor/internal/prediction"
	"github.com/yourusername/epl-predictor/internal/presentation"
)

var (
	homeTeam         string
	awayTeam         string
	fixtureNumber    int
	methodFlag       string
	formatFlag       string
	outputFlag       string
	colorFlag        bool
	skipInsufficient bool
)

func init() {
	for _, cmd := range []*cobra.Command{predictCmd, matchdayCmd} {
		cmd.Flags().StringVarP(&methodFlag, "method", "m", "", "Estimation method: exact or simulation (default from config)")
		cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: table or json (default from config)")
		cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "JSON output path, \"-\" for stdout (default output.json_path, stdout when both empty)")
		cmd.Flags().BoolVar(&colorFlag, "color", false, "Colour charts with team colours")
	}
	predictCmd.Flags().StringVar(&homeTeam, "home", "", "Home team name")
	predictCmd.Flags().StringVar(&awayTeam, "away", "", "Away team name")
	predictCmd.Flags().IntVarP(&fixtureNumber, "fixture", "n", 0, "Matchday fixture number to predict")
	matchdayCmd.Flags().BoolVar(&skipInsufficient, "skip-insufficient", false, "Skip fixtures lacking venue history instead of failing")
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict a single fixture",
	Example: `  predictor predict --home Arsenal --away "Nott'm Forest"
  predictor predict --fixture 3 --method simulation`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fixture, err := selectFixture()
		if err != nil {
			return err
		}
		return run(cmd, "predict", []models.Fixture{fixture}, false)
	},
}

var matchdayCmd = &cobra.Command{
	Use:   "matchday",
	Short: "Predict every configured fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		fixtures, err := cfg.MatchDay()
		if err != nil {
			return err
		}
		if len(fixtures) == 0 {
			return fmt.Errorf("%w: no fixtures configured", models.ErrInvalidParameter)
		}
		return run(cmd, "matchday", fixtures, skipInsufficient)
	},
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "List the configured matchday fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		fixtures, err := cfg.MatchDay()
		if err != nil {
			return err
		}
		return presentation.NewConsoleRenderer(cmd.OutOrStdout(), cfg.TeamDirectory(), false).RenderFixtures(fixtures)
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List teams present in the results feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := loadResults(cmd.Context())
		if err != nil {
			return err
		}
		return presentation.NewConsoleRenderer(cmd.OutOrStdout(), cfg.TeamDirectory(), false).RenderTeams(repo.Teams())
	},
}

// selectFixture resolves --fixture or --home/--away
func selectFixture() (models.Fixture, error) {
	if fixtureNumber > 0 {
		fixtures, err := cfg.MatchDay()
		if err != nil {
			return models.Fixture{}, err
		}
		if fixtureNumber > len(fixtures) {
			return models.Fixture{}, fmt.Errorf("%w: fixture %d out of range, %d configured",
				models.ErrInvalidParameter, fixtureNumber, len(fixtures))
		}
		return fixtures[fixtureNumber-1], nil
	}
	if homeTeam == "" || awayTeam == "" {
		return models.Fixture{}, fmt.Errorf("%w: either --fixture or both --home and --away are required", models.ErrInvalidParameter)
	}
	if homeTeam == awayTeam {
		return models.Fixture{}, fmt.Errorf("%w: home and away must differ", models.ErrInvalidParameter)
	}
	return models.Fixture{HomeTeam: homeTeam, AwayTeam: awayTeam}, nil
}

func run(cmd *cobra.Command, command string, fixtures []models.Fixture, skip bool) error {
	method := firstNonEmpty(methodFlag, cfg.Model.Method)
	format := firstNonEmpty(formatFlag, cfg.Output.Format)
	if format != "table" && format != "json" {
		return fmt.Errorf("%w: unknown output format %q", models.ErrInvalidParameter, format)
	}

	runID := uuid.New()
	start := time.Now()
	auditLogger.LogRunStarted(runID.String(), command, method, len(fixtures))

	repo, err := loadResults(cmd.Context())
	if err != nil {
		return err
	}
	predictor, err := newPredictor(repo, method)
	if err != nil {
		return err
	}

	teams := cfg.TeamDirectory()
	renderer := presentation.NewConsoleRenderer(cmd.OutOrStdout(), teams, colorFlag)
	var (
		predictions []*prediction.Prediction
		skipped     []models.Fixture
		skipErrs    []error
	)

	for _, fixture := range fixtures {
		p, err := predictor.Predict(fixture)
		if err != nil {
			if skip && errors.Is(err, models.ErrInsufficientHistory) {
				auditLogger.LogFixtureSkipped(runID.String(), fixture.String(), err.Error())
				skipped = append(skipped, fixture)
				skipErrs = append(skipErrs, err)
				if format == "table" {
					if rerr := renderer.RenderSkipped(fixture, err); rerr != nil {
						return rerr
					}
				}
				continue
			}
			return err
		}
		predictions = append(predictions, p)
		if format == "table" {
			if err := renderer.RenderPrediction(p); err != nil {
				return err
			}
		}
	}

	if format == "json" {
		report := presentation.NewReport(runID, method, predictions, teams)
		for i, fixture := range skipped {
			report.AddSkipped(fixture, skipErrs[i])
		}
		if path := jsonDestination(outputFlag, cfg.Output.JSONPath); path != "" {
			if err := presentation.ExportJSONFile(path, report); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Report written to %s\n", path)
		} else if err := presentation.ExportJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	}

	writeMetrics()
	auditLogger.LogRunCompleted(runID.String(), len(predictions), len(skipped), time.Since(start))
	return nil
}

// stdoutPath passed as --output writes JSON to stdout
const stdoutPath = "-"

// jsonDestination returns the report file path, or "" for stdout. The flag
// wins over the configured path.
func jsonDestination(flag, configured string) string {
	if flag == stdoutPath {
		return ""
	}
	return firstNonEmpty(flag, configured)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
