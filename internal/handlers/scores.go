package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/match-play-scoring/internal/config"
	"github.com/trentd187/match-play-scoring/internal/models"
	"github.com/trentd187/match-play-scoring/internal/scoring"
	ws "github.com/trentd187/match-play-scoring/internal/websocket"
)

// HoleEntry is one hole's worth of gross scores in a submission. Any
// slot may be omitted — a foursome often enters A/B before C/D.
type HoleEntry struct {
	HoleNumber int  `json:"hole_number"`
	GrossA     *int `json:"gross_a"`
	GrossB     *int `json:"gross_b"`
	GrossC     *int `json:"gross_c"`
	GrossD     *int `json:"gross_d"`
}

// SubmitScoresRequest is the body for POST /api/v1/matches/:key/holes.
// PIN is the kiosk credential; it is ignored when the request already
// carries an authenticated user.
type SubmitScoresRequest struct {
	PIN   string      `json:"pin"`
	Holes []HoleEntry `json:"holes"`
}

// SubmitHoleScores returns a handler for POST /api/v1/matches/:key/holes.
//
// Each submitted hole replaces that hole's stored record for the match.
// After persisting, both singles results riding on the card are
// recomputed from scratch and upserted — except finalized ones, whose
// snapshots stand until an explicit reset. The refreshed summaries are
// broadcast to websocket watchers of both result keys.
//
// Submissions are accepted from an authenticated user or from a kiosk
// presenting the shared scoring PIN.
func SubmitHoleScores(db *gorm.DB, hub *ws.Hub, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SubmitScoresRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if !scoringAuthorized(c, cfg, req.PIN) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "scoring PIN required"})
		}

		matchKey, _ := baseMatchKey(c.Params("key"))
		defer matchLocks.lock(matchKey)()

		match, err := loadMatchByKey(db, matchKey)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch match"})
		}

		entries := cleanHoleEntries(req.Holes)
		if len(entries) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no valid hole entries"})
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			for _, entry := range entries {
				// Replace-by-hole: the submitted record is the new truth
				// for that hole, including any slots it leaves nil.
				if err := tx.Where("match_id = ? AND hole_number = ?", match.ID, entry.HoleNumber).
					Delete(&models.HoleScore{}).Error; err != nil {
					return err
				}
				row := models.HoleScore{
					MatchID:    match.ID,
					HoleNumber: entry.HoleNumber,
					GrossA:     entry.GrossA,
					GrossB:     entry.GrossB,
					GrossC:     entry.GrossC,
					GrossD:     entry.GrossD,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record scores"})
		}

		// Re-read with the fresh hole records before recomputing.
		match, err = loadMatchByKey(db, matchKey)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch match"})
		}
		if err := recomputeResults(db, match); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update results"})
		}

		match, err = loadMatchByKey(db, matchKey)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch match"})
		}
		broadcastSummaries(hub, match)

		summary, err := buildMatchSummary(match, c.Params("key"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{
			"accepted": len(entries),
			"summary":  summary,
		})
	}
}

// scoringAuthorized accepts either an authenticated user (Auth put
// their ID in the request context) or the shared kiosk PIN.
func scoringAuthorized(c *fiber.Ctx, cfg *config.Config, pin string) bool {
	if userID, ok := c.Locals("userID").(string); ok && userID != "" {
		return true
	}
	return pin != "" && pin == cfg.ScoringPIN
}

// cleanHoleEntries drops malformed entries instead of failing the whole
// submission: a hole number out of range, or a record carrying no gross
// at all, is skipped. Kiosk clients send the full card every time, so
// blank rows are routine.
func cleanHoleEntries(holes []HoleEntry) []HoleEntry {
	cleaned := make([]HoleEntry, 0, len(holes))
	for _, entry := range holes {
		if entry.HoleNumber < 1 || entry.HoleNumber > 18 {
			continue
		}
		if entry.GrossA == nil && entry.GrossB == nil && entry.GrossC == nil && entry.GrossD == nil {
			continue
		}
		if invalidGross(entry.GrossA) || invalidGross(entry.GrossB) ||
			invalidGross(entry.GrossC) || invalidGross(entry.GrossD) {
			continue
		}
		cleaned = append(cleaned, entry)
	}
	return cleaned
}

func invalidGross(gross *int) bool {
	return gross != nil && (*gross < 1 || *gross > 20)
}

// recomputeResults rebuilds both singles results from the match's hole
// records, upserts the non-finalized ones, refreshes the match status,
// and invalidates the standings cache. Finalized results keep their
// frozen numbers; the live edits simply wait until a reset.
func recomputeResults(db *gorm.DB, match *models.Match) error {
	split := scoring.SplitFoursome(pairingFrom(match), groupScoresFrom(match))
	courseHoles := courseHolesFor(match)

	inputs := []scoring.SinglesInput{split.AB}
	if split.CD != nil {
		inputs = append(inputs, *split.CD)
	}

	allFinalized := true
	var recorded int
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, input := range inputs {
			stored := resultByKey(match, input.MatchKey)
			card := scoring.BuildScorecard(
				input.Scores, input.PlayerA.Handicap, input.PlayerB.Handicap,
				courseHoles, match.HoleCount, match.StartHole,
			)
			if card.Meta.HolesRecorded > recorded {
				recorded = card.Meta.HolesRecorded
			}
			if stored != nil && stored.Finalized {
				continue
			}
			allFinalized = false

			outcome := scoring.ClassifyOutcome(
				card.Meta.PointsA, card.Meta.PointsB,
				card.Meta.HolesRecorded, match.HoleCount, overrideFrom(stored),
			)
			if err := upsertResult(tx, match, input, card, outcome, stored); err != nil {
				return err
			}
		}

		status := models.MatchStatus(scoring.StatusFor(recorded, match.HoleCount, allFinalized))
		if err := tx.Model(&models.Match{}).Where("id = ?", match.ID).
			Update("status", status).Error; err != nil {
			return err
		}

		// Any result change invalidates the standings cache; the next
		// standings read rebuilds it.
		return tx.Where("tournament_id = ?", match.TournamentID).
			Delete(&models.StandingsRow{}).Error
	})
	return err
}

// upsertResult writes one singles result row, updating in place when it
// already exists.
func upsertResult(tx *gorm.DB, match *models.Match, input scoring.SinglesInput, card scoring.Scorecard, outcome scoring.Outcome, stored *models.MatchResult) error {
	now := time.Now().UTC()
	if stored != nil {
		return tx.Model(&models.MatchResult{}).Where("id = ?", stored.ID).Updates(map[string]interface{}{
			"player_a_name": input.PlayerA.Name,
			"player_b_name": input.PlayerB.Name,
			"handicap_a":    input.PlayerA.Handicap,
			"handicap_b":    input.PlayerB.Handicap,
			"points_a":      outcome.PointsA,
			"points_b":      outcome.PointsB,
			"bonus_a":       outcome.BonusA,
			"bonus_b":       outcome.BonusB,
			"total_a":       outcome.TotalA,
			"total_b":       outcome.TotalB,
			"winner":        string(outcome.Winner),
			"submitted_at":  now,
		}).Error
	}

	row := models.MatchResult{
		MatchID:      match.ID,
		ResultKey:    input.MatchKey,
		TournamentID: match.TournamentID,
		PlayerAName:  input.PlayerA.Name,
		PlayerBName:  input.PlayerB.Name,
		HandicapA:    input.PlayerA.Handicap,
		HandicapB:    input.PlayerB.Handicap,
		PointsA:      outcome.PointsA,
		PointsB:      outcome.PointsB,
		BonusA:       outcome.BonusA,
		BonusB:       outcome.BonusB,
		TotalA:       outcome.TotalA,
		TotalB:       outcome.TotalB,
		Winner:       string(outcome.Winner),
		SubmittedAt:  now,
	}
	return tx.Create(&row).Error
}

// broadcastSummaries pushes refreshed summaries to websocket watchers
// of every singles match on the card.
func broadcastSummaries(hub *ws.Hub, match *models.Match) {
	keys := []string{match.MatchKey}
	if match.PlayerC != nil && match.PlayerD != nil {
		keys = append(keys, scoring.CDMatchKey(match.MatchKey))
	}
	for _, key := range keys {
		summary, err := buildMatchSummary(match, key)
		if err != nil {
			continue
		}
		data, err := json.Marshal(summary)
		if err != nil {
			continue
		}
		hub.BroadcastToMatch(key, data)
	}
}

// FinalizeMatch returns a handler for POST /api/v1/matches/:key/finalize.
//
// Finalizing freezes the addressed singles match: the current scorecard
// and its outcome are captured as JSON snapshots on the result row, and
// from then on reads and standings serve the snapshot, immune to course
// edits or stray score submissions. Finalizing with no recorded holes
// is rejected with 409. Each singles match on a foursome card finalizes
// independently under its own key.
func FinalizeMatch(db *gorm.DB, hub *ws.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resultKey := c.Params("key")
		matchKey, _ := baseMatchKey(resultKey)
		defer matchLocks.lock(matchKey)()

		match, err := loadMatchByKey(db, matchKey)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch match"})
		}

		input := singlesFor(match, resultKey)
		if input == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errNoCDMatch.Error()})
		}
		stored := resultByKey(match, resultKey)
		if stored == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "no result to finalize"})
		}
		if stored.Finalized {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "match already finalized"})
		}

		courseHoles := courseHolesFor(match)
		card := scoring.BuildScorecard(
			input.Scores, input.PlayerA.Handicap, input.PlayerB.Handicap,
			courseHoles, match.HoleCount, match.StartHole,
		)
		snapshot, err := scoring.FinalizeScorecard(card, overrideFrom(stored))
		if err != nil {
			if errors.Is(err, scoring.ErrNoHoles) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to finalize match"})
		}

		snapshotJSON, err := json.Marshal(snapshot)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to finalize match"})
		}
		courseJSON, err := json.Marshal(courseHoles)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to finalize match"})
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.MatchResult{}).Where("id = ?", stored.ID).Updates(map[string]interface{}{
				"points_a":           snapshot.Outcome.PointsA,
				"points_b":           snapshot.Outcome.PointsB,
				"bonus_a":            snapshot.Outcome.BonusA,
				"bonus_b":            snapshot.Outcome.BonusB,
				"total_a":            snapshot.Outcome.TotalA,
				"total_b":            snapshot.Outcome.TotalB,
				"winner":             string(snapshot.Outcome.Winner),
				"finalized":          true,
				"scorecard_snapshot": snapshotJSON,
				"course_snapshot":    courseJSON,
				"submitted_at":       time.Now().UTC(),
			}).Error; err != nil {
				return err
			}
			if err := refreshMatchStatus(tx, match, stored.ID); err != nil {
				return err
			}
			return tx.Where("tournament_id = ?", match.TournamentID).
				Delete(&models.StandingsRow{}).Error
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to finalize match"})
		}

		match, err = loadMatchByKey(db, matchKey)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch match"})
		}
		broadcastSummaries(hub, match)

		summary, err := buildMatchSummary(match, resultKey)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(summary)
	}
}

// refreshMatchStatus marks the pairing finalized once every result row
// on the card is finalized. justFinalized is counted as finalized even
// though the in-memory copy predates the update.
func refreshMatchStatus(tx *gorm.DB, match *models.Match, justFinalized uuid.UUID) error {
	allFinalized := len(match.Results) > 0
	for i := range match.Results {
		if match.Results[i].ID == justFinalized {
			continue
		}
		if !match.Results[i].Finalized {
			allFinalized = false
			break
		}
	}
	status := models.MatchStatusCompleted
	if allFinalized {
		status = models.MatchStatusFinalized
	}
	return tx.Model(&models.Match{}).Where("id = ?", match.ID).
		Update("status", status).Error
}

// ResetMatch returns a handler for POST /api/v1/matches/:key/reset.
//
// Reset wipes the pairing back to not-started: every hole record is
// deleted, both result rows are zeroed, snapshots and finalized flags
// are cleared. This is the only way to unwind a finalize. The key may
// be either result key; the whole card resets because the two singles
// matches share their hole records.
func ResetMatch(db *gorm.DB, hub *ws.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matchKey, _ := baseMatchKey(c.Params("key"))
		defer matchLocks.lock(matchKey)()

		match, err := loadMatchByKey(db, matchKey)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch match"})
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("match_id = ?", match.ID).
				Delete(&models.HoleScore{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.MatchResult{}).Where("match_id = ?", match.ID).
				Updates(map[string]interface{}{
					"points_a":           0,
					"points_b":           0,
					"bonus_a":            0,
					"bonus_b":            0,
					"total_a":            0,
					"total_b":            0,
					"winner":             string(scoring.WinnerTie),
					"bonus_override_a":   nil,
					"bonus_override_b":   nil,
					"finalized":          false,
					"scorecard_snapshot": nil,
					"course_snapshot":    nil,
				}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Match{}).Where("id = ?", match.ID).
				Update("status", models.MatchStatusNotStarted).Error; err != nil {
				return err
			}
			return tx.Where("tournament_id = ?", match.TournamentID).
				Delete(&models.StandingsRow{}).Error
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to reset match"})
		}

		match, err = loadMatchByKey(db, matchKey)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch match"})
		}
		broadcastSummaries(hub, match)

		return c.JSON(fiber.Map{
			"match_key": match.MatchKey,
			"status":    string(models.MatchStatusNotStarted),
		})
	}
}
