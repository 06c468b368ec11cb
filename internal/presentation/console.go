// Package presentation renders predictions for the terminal and as JSON.
package presentation

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/yourusername/epl-predictor/internal/models"
	"github.com/yourusername/epl-predictor/internal/prediction"
)

const (
	chartWidth = 40
	barWidth   = 50
	dateLayout = "02/01/2006"
)

// ConsoleRenderer writes human-readable predictions
type ConsoleRenderer struct {
	out   io.Writer
	teams map[string]models.TeamMetadata
	color bool
}

// NewConsoleRenderer creates a renderer. teams supplies optional colours;
// ANSI colour is only emitted when color is set.
func NewConsoleRenderer(out io.Writer, teams map[string]models.TeamMetadata, color bool) *ConsoleRenderer {
	if teams == nil {
		teams = map[string]models.TeamMetadata{}
	}
	return &ConsoleRenderer{out: out, teams: teams, color: color}
}

// RenderPrediction writes history tables, score distributions and outcome
// probabilities for one fixture
func (r *ConsoleRenderer) RenderPrediction(p *prediction.Prediction) error {
	home, away := p.Fixture.HomeTeam, p.Fixture.AwayTeam

	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s\n", home, away)
	b.WriteString(strings.Repeat("=", len(home)+len(away)+4) + "\n\n")

	b.WriteString(HistoryTable(home+" home results", p.HomeHistory))
	b.WriteString("\n")
	b.WriteString(HistoryTable(away+" away results", p.AwayHistory))
	b.WriteString("\n")

	s := p.Strength
	fmt.Fprintf(&b, "League averages: %.2f home goals, %.2f away goals over %d matches\n",
		s.League.HomeGoals, s.League.AwayGoals, s.League.Matches)
	fmt.Fprintf(&b, "%s attack %.3f defense %.3f%s\n", home, s.Home.Attack, s.Home.Defense, fallbackNote(s.Home))
	fmt.Fprintf(&b, "%s attack %.3f defense %.3f%s\n", away, s.Away.Attack, s.Away.Defense, fallbackNote(s.Away))
	fmt.Fprintf(&b, "Expected goals: %s %.2f, %s %.2f\n\n", home, s.HomeExpectedGoals, away, s.AwayExpectedGoals)

	b.WriteString("Scoring probabilities\n")
	b.WriteString(r.ScoringChart(home, away, p.HomeDistribution, p.AwayDistribution))
	b.WriteString("\n")

	b.WriteString(r.OutcomeBar(home, away, p.Outcome))
	fmt.Fprintf(&b, "%s win %s  Tie %s  %s win %s\n",
		home, percent(p.Outcome.HomeWin), percent(p.Outcome.Draw), away, percent(p.Outcome.AwayWin))

	m := p.Markets
	fmt.Fprintf(&b, "Most likely score: %d-%d (%s)\n", m.MostLikelyHomeGoals, m.MostLikelyAwayGoals, percent(m.MostLikelyScoreProb))
	fmt.Fprintf(&b, "Over 1.5 goals %s  Over 2.5 goals %s  Both score %s\n",
		percent(m.Over1p5Goals), percent(m.Over2p5Goals), percent(m.BothTeamsToScore))
	fmt.Fprintf(&b, "Fair odds: %s %s  Tie %s  %s %s\n",
		home, m.FairOdds.HomeWin.StringFixed(2), m.FairOdds.Draw.StringFixed(2), away, m.FairOdds.AwayWin.StringFixed(2))
	if t := p.TruncatedMass(); t > 0.0005 {
		fmt.Fprintf(&b, "(%s of outcomes lie beyond %d goals and are not counted)\n", percent(t), p.HomeDistribution.MaxGoals())
	}
	b.WriteString("\n")

	_, err := io.WriteString(r.out, b.String())
	return err
}

// RenderFixtures writes the numbered matchday list
func (r *ConsoleRenderer) RenderFixtures(fixtures []models.Fixture) error {
	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tHome\tAway")
	for _, f := range fixtures {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", f.Number, f.HomeTeam, f.AwayTeam)
	}
	return tw.Flush()
}

// RenderTeams writes team names with any configured metadata
func (r *ConsoleRenderer) RenderTeams(teams []string) error {
	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Team\tColour\tBadge")
	for _, team := range teams {
		meta := r.teams[team]
		fmt.Fprintf(tw, "%s\t%s\t%s\n", team, dash(meta.Color), dash(meta.BadgeURL))
	}
	return tw.Flush()
}

// RenderSkipped notes a fixture that could not be predicted
func (r *ConsoleRenderer) RenderSkipped(fixture models.Fixture, err error) error {
	_, werr := fmt.Fprintf(r.out, "%s skipped: %v\n\n", fixture, err)
	return werr
}

// HistoryTable formats results as an aligned table under title
func HistoryTable(title string, results []models.MatchResult) string {
	var b strings.Builder
	b.WriteString(title + "\n")
	if len(results) == 0 {
		b.WriteString("  (none)\n")
		return b.String()
	}

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Date\tTime\tHome\tAway\tHG\tAG\t")
	for _, m := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t\n",
			m.Date.Format(dateLayout), dash(m.KickoffTime), m.HomeTeam, m.AwayTeam, m.HomeGoals, m.AwayGoals)
	}
	_ = tw.Flush()
	return b.String()
}

// ScoringChart draws one bar per goal count for each team
func (r *ConsoleRenderer) ScoringChart(home, away string, homeDist, awayDist models.ScoreProbabilityVector) string {
	rows := len(homeDist)
	if len(awayDist) > rows {
		rows = len(awayDist)
	}

	var b strings.Builder
	for k := 0; k < rows; k++ {
		hp, ap := at(homeDist, k), at(awayDist, k)
		fmt.Fprintf(&b, "%2d | %s %s\n", k, r.paint(home, padBar("#", hp, chartWidth)), percent(hp))
		fmt.Fprintf(&b, "   | %s %s\n", r.paint(away, padBar("=", ap, chartWidth)), percent(ap))
	}
	fmt.Fprintf(&b, "   # %s  = %s\n", home, away)
	return b.String()
}

// OutcomeBar draws a single stacked bar of home win, tie and away win
func (r *ConsoleRenderer) OutcomeBar(home, away string, o models.OutcomeProbabilities) string {
	h := cells(o.HomeWin, barWidth)
	d := cells(o.Draw, barWidth)
	a := cells(o.AwayWin, barWidth)
	// rounding can overfill the bar; trim the draw first, then the larger win share
	if over := h + d + a - barWidth; over > 0 {
		trim := min(over, d)
		d -= trim
		over -= trim
		if h >= a {
			h -= over
		} else {
			a -= over
		}
	}
	rest := barWidth - h - d - a
	if rest < 0 {
		rest = 0
	}

	return "[" + r.paint(home, strings.Repeat("H", h)) +
		strings.Repeat("D", d) +
		r.paint(away, strings.Repeat("A", a)) +
		strings.Repeat(" ", rest) + "]\n"
}

// paint wraps s in the team's 24-bit ANSI colour
func (r *ConsoleRenderer) paint(team, s string) string {
	if !r.color || s == "" {
		return s
	}
	red, green, blue, ok := parseHexColor(r.teams[team].Color)
	if !ok {
		return s
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", red, green, blue, s)
}

func parseHexColor(hex string) (red, green, blue uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

func padBar(glyph string, p float64, width int) string {
	n := cells(p, width)
	return strings.Repeat(glyph, n) + strings.Repeat(" ", width-n)
}

func cells(p float64, width int) int {
	n := int(math.Round(p * float64(width)))
	switch {
	case n < 0:
		return 0
	case n > width:
		return width
	}
	return n
}

func at(v models.ScoreProbabilityVector, k int) float64 {
	if k < len(v) {
		return v[k]
	}
	return 0
}

func percent(p float64) string {
	return fmt.Sprintf("%5.1f%%", p*100)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func fallbackNote(s models.TeamStrength) string {
	if s.Fallback {
		return " (league average)"
	}
	return fmt.Sprintf(" from %d matches", s.MatchesPlayed)
}
