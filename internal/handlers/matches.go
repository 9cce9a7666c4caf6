// Package handlers — match listing and scorecard summaries.
//
// A match key addresses one singles match. A foursome pairing stores
// two result rows under its key: "A-01" for the A/B singles and
// "A-01-cd" for the C/D singles. Both are scored from the same hole
// records; only the player slots differ.
package handlers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/trentd187/match-play-scoring/internal/models"
	"github.com/trentd187/match-play-scoring/internal/scoring"
)

const cdSuffix = "-cd"

// errNoCDMatch is returned when a "-cd" key addresses a pairing that
// only has two players.
var errNoCDMatch = errors.New("match has no C/D pairing")

// baseMatchKey strips a trailing "-cd" so a CD result key can be traced
// back to its pairing.
func baseMatchKey(key string) (base string, isCD bool) {
	if strings.HasSuffix(key, cdSuffix) {
		return strings.TrimSuffix(key, cdSuffix), true
	}
	return key, false
}

// loadMatchByKey fetches a pairing with everything scoring needs:
// players, the tee's hole data, hole scores, and both result rows.
func loadMatchByKey(db *gorm.DB, matchKey string) (*models.Match, error) {
	base, _ := baseMatchKey(matchKey)
	var match models.Match
	err := db.
		Preload("PlayerA").
		Preload("PlayerB").
		Preload("PlayerC").
		Preload("PlayerD").
		Preload("CourseTee.Holes").
		Preload("HoleScores").
		Preload("Results").
		Where("match_key = ?", base).
		First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// courseHolesFor converts the match's tee data into scoring reference
// holes. Matches without an assigned tee fall back to a flat par-4 card
// whose stroke index equals the hole number.
func courseHolesFor(match *models.Match) []scoring.CourseHole {
	if match.CourseTee == nil || len(match.CourseTee.Holes) == 0 {
		return defaultCourseHoles(match.HoleCount)
	}
	holes := make([]scoring.CourseHole, 0, len(match.CourseTee.Holes))
	for _, hole := range match.CourseTee.Holes {
		holes = append(holes, scoring.CourseHole{
			Number:      hole.HoleNumber,
			Par:         hole.Par,
			StrokeIndex: hole.StrokeIndex,
		})
	}
	return holes
}

// defaultCourseHoles is the fallback card for matches with no tee data.
func defaultCourseHoles(count int) []scoring.CourseHole {
	if count < 18 {
		count = 18 // always offer a full card; the match length picks the subset
	}
	holes := make([]scoring.CourseHole, 0, count)
	for i := 1; i <= count; i++ {
		holes = append(holes, scoring.CourseHole{Number: i, Par: 4, StrokeIndex: i})
	}
	return holes
}

// pairingFrom maps a stored match to the engine's pairing type.
func pairingFrom(match *models.Match) scoring.Pairing {
	pairing := scoring.Pairing{
		MatchKey:  match.MatchKey,
		Division:  match.Division,
		PlayerA:   scoringPlayer(&match.PlayerA),
		PlayerB:   scoringPlayer(&match.PlayerB),
		HoleCount: match.HoleCount,
		StartHole: match.StartHole,
	}
	if match.PlayerC != nil && match.PlayerD != nil {
		c := scoringPlayer(match.PlayerC)
		d := scoringPlayer(match.PlayerD)
		pairing.PlayerC = &c
		pairing.PlayerD = &d
	}
	return pairing
}

func scoringPlayer(p *models.Player) scoring.Player {
	return scoring.Player{
		Name:     p.Name,
		Division: p.Division,
		Handicap: p.Handicap,
		Seed:     p.Seed,
	}
}

// groupScoresFrom maps stored hole records to the engine's group form.
func groupScoresFrom(match *models.Match) []scoring.GroupScore {
	scores := make([]scoring.GroupScore, 0, len(match.HoleScores))
	for _, hole := range match.HoleScores {
		scores = append(scores, scoring.GroupScore{
			HoleNumber: hole.HoleNumber,
			GrossA:     hole.GrossA,
			GrossB:     hole.GrossB,
			GrossC:     hole.GrossC,
			GrossD:     hole.GrossD,
		})
	}
	return scores
}

// resultByKey finds the stored result row for a singles key, or nil.
func resultByKey(match *models.Match, resultKey string) *models.MatchResult {
	for i := range match.Results {
		if match.Results[i].ResultKey == resultKey {
			return &match.Results[i]
		}
	}
	return nil
}

// overrideFrom lifts a stored manual bonus correction into the engine's
// override type. Both columns must be set for the override to apply.
func overrideFrom(result *models.MatchResult) *scoring.BonusOverride {
	if result == nil || result.BonusOverrideA == nil || result.BonusOverrideB == nil {
		return nil
	}
	return &scoring.BonusOverride{A: *result.BonusOverrideA, B: *result.BonusOverrideB}
}

// singlesFor picks the singles input addressed by resultKey out of the
// decomposed pairing. Nil when the key asks for a CD match the pairing
// doesn't have.
func singlesFor(match *models.Match, resultKey string) *scoring.SinglesInput {
	split := scoring.SplitFoursome(pairingFrom(match), groupScoresFrom(match))
	if _, isCD := baseMatchKey(resultKey); isCD {
		return split.CD
	}
	return &split.AB
}

// MatchListEntry is one row of the match list — one singles match.
type MatchListEntry struct {
	MatchKey    string  `json:"match_key"`
	Division    string  `json:"division"`
	Display     string  `json:"display"`
	PlayerA     string  `json:"player_a"`
	PlayerB     string  `json:"player_b"`
	Status      string  `json:"status"`
	StatusLabel string  `json:"status_label"`
	Finalized   bool    `json:"finalized"`
	TotalA      float64 `json:"player_a_total"`
	TotalB      float64 `json:"player_b_total"`
	Winner      string  `json:"winner"`
}

// GetMatches returns a handler for GET /api/v1/matches.
// Lists every singles match in the tournament — a foursome pairing
// contributes two entries. Optional filter: ?division=A.
func GetMatches(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := db.
			Preload("PlayerA").
			Preload("PlayerB").
			Preload("PlayerC").
			Preload("PlayerD").
			Preload("CourseTee.Holes").
			Preload("HoleScores").
			Preload("Results").
			Order("match_key")
		if division := c.Query("division"); division != "" {
			query = query.Where("division = ?", division)
		}

		var matches []models.Match
		if err := query.Find(&matches).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch matches",
			})
		}

		entries := make([]MatchListEntry, 0, len(matches)*2)
		for i := range matches {
			match := &matches[i]
			entries = append(entries, listEntry(match, match.MatchKey))
			if match.PlayerC != nil && match.PlayerD != nil {
				entries = append(entries, listEntry(match, scoring.CDMatchKey(match.MatchKey)))
			}
		}
		return c.JSON(entries)
	}
}

// listEntry assembles one singles row from a loaded match.
func listEntry(match *models.Match, resultKey string) MatchListEntry {
	input := singlesFor(match, resultKey)
	result := resultByKey(match, resultKey)

	entry := MatchListEntry{
		MatchKey: resultKey,
		Division: match.Division,
		Winner:   string(scoring.WinnerTie),
	}
	if input != nil {
		entry.PlayerA = input.PlayerA.Name
		entry.PlayerB = input.PlayerB.Name
		entry.Display = "Division " + match.Division + ": " + input.PlayerA.Name + " vs " + input.PlayerB.Name

		card := scoring.BuildScorecard(
			input.Scores, input.PlayerA.Handicap, input.PlayerB.Handicap,
			courseHolesFor(match), match.HoleCount, match.StartHole,
		)
		finalized := result != nil && result.Finalized
		entry.Finalized = finalized
		entry.Status = string(scoring.StatusFor(card.Meta.HolesRecorded, match.HoleCount, finalized))
		entry.StatusLabel = scoring.StatusFor(card.Meta.HolesRecorded, match.HoleCount, finalized).Label()

		if finalized {
			// Finalized rows are served from the stored (snapshot-derived) totals.
			entry.TotalA = result.TotalA
			entry.TotalB = result.TotalB
			entry.Winner = result.Winner
		} else {
			outcome := scoring.ClassifyOutcome(
				card.Meta.PointsA, card.Meta.PointsB,
				card.Meta.HolesRecorded, match.HoleCount, overrideFrom(result),
			)
			entry.TotalA = outcome.TotalA
			entry.TotalB = outcome.TotalB
			entry.Winner = string(outcome.Winner)
		}
	}
	return entry
}

// MatchSummaryResponse is the full scorecard view of one singles match.
type MatchSummaryResponse struct {
	MatchKey    string                 `json:"match_key"`
	Display     string                 `json:"display"`
	Division    string                 `json:"division"`
	PlayerA     string                 `json:"player_a"`
	PlayerB     string                 `json:"player_b"`
	HandicapA   int                    `json:"player_a_handicap"`
	HandicapB   int                    `json:"player_b_handicap"`
	Status      string                 `json:"status"`
	StatusLabel string                 `json:"status_label"`
	Finalized   bool                   `json:"finalized"`
	Rows        []scoring.ScorecardRow `json:"holes"`
	Meta        scoring.ScorecardMeta  `json:"meta"`
	Outcome     scoring.Outcome        `json:"outcome"`
	SubmittedAt *string                `json:"submitted_at"`
}

// GetMatchSummary returns a handler for GET /api/v1/matches/:key.
// A finalized match is served from its frozen snapshot so historical
// results never shift when course data changes; anything else is
// recomputed live from the hole records.
func GetMatchSummary(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resultKey := c.Params("key")
		match, err := loadMatchByKey(db, resultKey)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch match"})
		}

		summary, err := buildMatchSummary(match, resultKey)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(summary)
	}
}

// buildMatchSummary assembles the summary for one singles match,
// preferring the finalized snapshot over a live recompute.
func buildMatchSummary(match *models.Match, resultKey string) (*MatchSummaryResponse, error) {
	input := singlesFor(match, resultKey)
	if input == nil {
		return nil, errNoCDMatch
	}
	result := resultByKey(match, resultKey)

	summary := &MatchSummaryResponse{
		MatchKey:  input.MatchKey,
		Division:  match.Division,
		Display:   "Division " + match.Division + ": " + input.PlayerA.Name + " vs " + input.PlayerB.Name,
		PlayerA:   input.PlayerA.Name,
		PlayerB:   input.PlayerB.Name,
		HandicapA: input.PlayerA.Handicap,
		HandicapB: input.PlayerB.Handicap,
	}
	if result != nil {
		summary.Finalized = result.Finalized
		if !result.SubmittedAt.IsZero() {
			s := result.SubmittedAt.UTC().Format(time.RFC3339)
			summary.SubmittedAt = &s
		}
	}

	if result != nil && result.Finalized && len(result.ScorecardSnapshot) > 0 {
		var snapshot scoring.Snapshot
		if err := json.Unmarshal(result.ScorecardSnapshot, &snapshot); err == nil {
			summary.Rows = snapshot.Rows
			summary.Meta = snapshot.Meta
			summary.Outcome = snapshot.Outcome
			summary.Status = string(scoring.StatusFinalized)
			summary.StatusLabel = scoring.StatusFinalized.Label()
			return summary, nil
		}
		// An unreadable snapshot degrades to a live recompute below.
	}

	card := scoring.BuildScorecard(
		input.Scores, input.PlayerA.Handicap, input.PlayerB.Handicap,
		courseHolesFor(match), match.HoleCount, match.StartHole,
	)
	outcome := scoring.ClassifyOutcome(
		card.Meta.PointsA, card.Meta.PointsB,
		card.Meta.HolesRecorded, match.HoleCount, overrideFrom(result),
	)
	status := scoring.StatusFor(card.Meta.HolesRecorded, match.HoleCount, summary.Finalized)

	summary.Rows = card.Rows
	summary.Meta = card.Meta
	summary.Outcome = outcome
	summary.Status = string(status)
	summary.StatusLabel = status.Label()
	return summary, nil
}
