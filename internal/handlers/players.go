package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/trentd187/match-play-scoring/internal/models"
	"github.com/trentd187/match-play-scoring/internal/scoring"
)

// PlayerEntry is one roster line in a replace request or response.
type PlayerEntry struct {
	Name     string `json:"name"`
	Division string `json:"division"`
	Handicap int    `json:"handicap"`
	Seed     int    `json:"seed"`
}

// GetPlayers returns a handler for GET /api/v1/players — the roster of
// the active (or requested) tournament, ordered for display.
func GetPlayers(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournament, err := resolveTournament(db, c.Query("tournament_id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve tournament"})
		}

		var players []models.Player
		if err := db.Where("tournament_id = ?", tournament.ID).
			Order("division, seed, name").Find(&players).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch players"})
		}

		entries := make([]PlayerEntry, 0, len(players))
		for _, p := range players {
			entries = append(entries, PlayerEntry{
				Name:     p.Name,
				Division: p.Division,
				Handicap: p.Handicap,
				Seed:     p.Seed,
			})
		}
		return c.JSON(entries)
	}
}

// ReplacePlayersRequest is the body for PUT /api/v1/players: the full
// roster as it should exist afterwards.
type ReplacePlayersRequest struct {
	Players []PlayerEntry `json:"players"`
}

// ReplacePlayers returns a handler for PUT /api/v1/players.
//
// The submitted list becomes the roster: existing players are updated
// by name, new names are inserted, and names absent from the list are
// removed. Declarative replace keeps the admin UI simple — it always
// sends the whole table. Roster changes invalidate the standings cache,
// since the cached player set no longer matches.
func ReplacePlayers(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ReplacePlayersRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		tournament, err := resolveTournament(db, c.Query("tournament_id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve tournament"})
		}

		names := make([]string, 0, len(req.Players))
		err = db.Transaction(func(tx *gorm.DB) error {
			for _, entry := range req.Players {
				if entry.Name == "" {
					continue
				}
				names = append(names, entry.Name)

				division := entry.Division
				if division == "" {
					division = "Open"
				}

				var existing models.Player
				findErr := tx.Where("tournament_id = ? AND name = ?", tournament.ID, entry.Name).
					First(&existing).Error
				switch {
				case findErr == nil:
					existing.Division = division
					existing.Handicap = entry.Handicap
					existing.Seed = entry.Seed
					if err := tx.Save(&existing).Error; err != nil {
						return err
					}
				case errors.Is(findErr, gorm.ErrRecordNotFound):
					player := models.Player{
						TournamentID: tournament.ID,
						Name:         entry.Name,
						Division:     division,
						Handicap:     entry.Handicap,
						Seed:         entry.Seed,
					}
					if err := tx.Create(&player).Error; err != nil {
						return err
					}
				default:
					return findErr
				}
			}

			if len(names) > 0 {
				if err := tx.Where("tournament_id = ? AND name NOT IN ?", tournament.ID, names).
					Delete(&models.Player{}).Error; err != nil {
					return err
				}
			}

			return tx.Where("tournament_id = ?", tournament.ID).
				Delete(&models.StandingsRow{}).Error
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update roster"})
		}

		return c.JSON(fiber.Map{"players": len(names)})
	}
}

// GeneratePairings returns a handler for POST /api/v1/pairings.
//
// Regenerates the round-robin schedule from the current roster. Matches
// that already have hole records or a finalized result are left alone;
// only unplayed matches are dropped and recreated, so regenerating
// mid-season after a roster tweak doesn't destroy scores.
func GeneratePairings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournament, err := resolveTournament(db, c.Query("tournament_id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve tournament"})
		}

		var roster []models.Player
		if err := db.Where("tournament_id = ?", tournament.ID).Find(&roster).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch roster"})
		}
		playerIDs := make(map[string]models.Player, len(roster))
		for _, p := range roster {
			playerIDs[p.Name] = p
		}

		var existing []models.Match
		if err := db.Preload("HoleScores").Where("tournament_id = ?", tournament.ID).
			Find(&existing).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch matches"})
		}
		played := make(map[string]bool, len(existing))
		for i := range existing {
			if len(existing[i].HoleScores) > 0 {
				played[existing[i].MatchKey] = true
			}
		}

		pairings := scoring.BuildPairings(scoringRoster(roster))

		created := 0
		err = db.Transaction(func(tx *gorm.DB) error {
			// Drop unplayed matches; their keys will be reissued below.
			for i := range existing {
				if played[existing[i].MatchKey] {
					continue
				}
				if err := tx.Where("match_id = ?", existing[i].ID).
					Delete(&models.MatchResult{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&existing[i]).Error; err != nil {
					return err
				}
			}

			for _, pairing := range pairings {
				if played[pairing.MatchKey] {
					continue
				}
				playerA, okA := playerIDs[pairing.PlayerA.Name]
				playerB, okB := playerIDs[pairing.PlayerB.Name]
				if !okA || !okB {
					continue
				}
				match := models.Match{
					TournamentID: tournament.ID,
					MatchKey:     pairing.MatchKey,
					Division:     pairing.Division,
					PlayerAID:    playerA.ID,
					PlayerBID:    playerB.ID,
					HoleCount:    pairing.HoleCount,
					StartHole:    pairing.StartHole,
					Status:       models.MatchStatusNotStarted,
				}
				if err := tx.Create(&match).Error; err != nil {
					return err
				}
				created++
			}
			return nil
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to generate pairings"})
		}

		return c.JSON(fiber.Map{"created": created, "kept": len(played)})
	}
}
