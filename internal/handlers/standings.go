package handlers

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/trentd187/match-play-scoring/internal/models"
	"github.com/trentd187/match-play-scoring/internal/scoring"
)

// GetStandings returns a handler for GET /api/v1/standings.
//
// Standings are served from the materialized cache when it's fresh. The
// cache is rebuilt when it's empty, when its player set disagrees with
// the live roster, or when the caller passes ?rebuild=true. Score
// writes delete the cache outright, so "empty" also covers "a result
// changed since the last read".
//
// The tournament defaults to the active one; ?tournament_id= overrides.
func GetStandings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tournament, err := resolveTournament(db, c.Query("tournament_id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve tournament"})
		}

		var roster []models.Player
		if err := db.Where("tournament_id = ?", tournament.ID).
			Order("division, seed, name").Find(&roster).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch roster"})
		}

		var cached []models.StandingsRow
		if err := db.Where("tournament_id = ?", tournament.ID).Find(&cached).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch standings"})
		}

		cachedNames := make([]string, 0, len(cached))
		for _, row := range cached {
			cachedNames = append(cachedNames, row.PlayerName)
		}

		rebuild := c.Query("rebuild") == "true" ||
			scoring.StandingsStale(cachedNames, scoringRoster(roster))
		if rebuild {
			standings, err := rebuildStandings(db, tournament, roster)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to rebuild standings"})
			}
			return c.JSON(standingsResponse(tournament, standings, true))
		}

		return c.JSON(standingsResponse(tournament, standingsFromCache(cached), false))
	}
}

// resolveTournament picks the tournament to serve: the requested one,
// else the single active tournament, else the most recently created.
func resolveTournament(db *gorm.DB, id string) (*models.Tournament, error) {
	var tournament models.Tournament
	if id != "" {
		if err := db.Where("id = ?", id).First(&tournament).Error; err != nil {
			return nil, err
		}
		return &tournament, nil
	}

	err := db.Where("status = ?", models.TournamentStatusActive).
		Order("created_at DESC").First(&tournament).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.Order("created_at DESC").First(&tournament).Error
	}
	if err != nil {
		return nil, err
	}
	return &tournament, nil
}

func scoringRoster(roster []models.Player) []scoring.Player {
	players := make([]scoring.Player, 0, len(roster))
	for _, p := range roster {
		players = append(players, scoring.Player{
			Name:     p.Name,
			Division: p.Division,
			Handicap: p.Handicap,
			Seed:     p.Seed,
		})
	}
	return players
}

// rebuildStandings recomputes the full standings from every match in
// the tournament and replaces the cache atomically.
func rebuildStandings(db *gorm.DB, tournament *models.Tournament, roster []models.Player) ([]scoring.DivisionStandings, error) {
	var matches []models.Match
	err := db.
		Preload("PlayerA").
		Preload("PlayerB").
		Preload("PlayerC").
		Preload("PlayerD").
		Preload("CourseTee.Holes").
		Preload("HoleScores").
		Preload("Results").
		Where("tournament_id = ?", tournament.ID).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	inputs := make([]scoring.MatchResultInput, 0, len(matches)*2)
	for i := range matches {
		inputs = append(inputs, resultInputs(&matches[i])...)
	}

	standings := scoring.AggregateStandings(inputs, scoringRoster(roster))

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tournament_id = ?", tournament.ID).
			Delete(&models.StandingsRow{}).Error; err != nil {
			return err
		}
		for _, division := range standings {
			for _, entry := range division.Players {
				row := models.StandingsRow{
					TournamentID:  tournament.ID,
					PlayerName:    entry.Name,
					Division:      entry.Division,
					Seed:          entry.Seed,
					Matches:       entry.Matches,
					Wins:          entry.Wins,
					Ties:          entry.Ties,
					Losses:        entry.Losses,
					PointsFor:     entry.PointsFor,
					PointsAgainst: entry.PointsAgainst,
					PointDiff:     entry.PointDiff,
					HolesPlayed:   entry.HolesPlayed,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return standings, nil
}

// resultInputs turns one stored pairing into standings inputs — one per
// singles match riding on the card.
func resultInputs(match *models.Match) []scoring.MatchResultInput {
	split := scoring.SplitFoursome(pairingFrom(match), groupScoresFrom(match))
	courseHoles := courseHolesFor(match)

	singles := []scoring.SinglesInput{split.AB}
	if split.CD != nil {
		singles = append(singles, *split.CD)
	}

	inputs := make([]scoring.MatchResultInput, 0, len(singles))
	for _, single := range singles {
		input := scoring.MatchResultInput{
			MatchKey:    single.MatchKey,
			PlayerAName: single.PlayerA.Name,
			PlayerBName: single.PlayerB.Name,
			HandicapA:   single.PlayerA.Handicap,
			HandicapB:   single.PlayerB.Handicap,
			HoleCount:   match.HoleCount,
			StartHole:   match.StartHole,
			CourseHoles: courseHoles,
			Scores:      single.Scores,
		}
		if stored := resultByKey(match, single.MatchKey); stored != nil {
			input.StoredTotalA = stored.TotalA
			input.StoredTotalB = stored.TotalB
			input.StoredWinner = scoring.Winner(stored.Winner)
			input.BonusOverride = overrideFrom(stored)
			if stored.Finalized && len(stored.ScorecardSnapshot) > 0 {
				var snapshot scoring.Snapshot
				if err := json.Unmarshal(stored.ScorecardSnapshot, &snapshot); err == nil {
					input.Finalized = true
					input.Snapshot = &snapshot
				}
			}
		}
		inputs = append(inputs, input)
	}
	return inputs
}

// standingsFromCache regroups cached rows into the response shape,
// applying the same ordering the aggregator uses.
func standingsFromCache(rows []models.StandingsRow) []scoring.DivisionStandings {
	groups := make(map[string][]scoring.StandingsEntry)
	for _, row := range rows {
		groups[row.Division] = append(groups[row.Division], scoring.StandingsEntry{
			Name:          row.PlayerName,
			Division:      row.Division,
			Seed:          row.Seed,
			Matches:       row.Matches,
			Wins:          row.Wins,
			Ties:          row.Ties,
			Losses:        row.Losses,
			PointsFor:     row.PointsFor,
			PointsAgainst: row.PointsAgainst,
			PointDiff:     row.PointDiff,
			HolesPlayed:   row.HolesPlayed,
		})
	}

	divisions := make([]string, 0, len(groups))
	for division := range groups {
		divisions = append(divisions, division)
	}
	sort.Strings(divisions)

	standings := make([]scoring.DivisionStandings, 0, len(divisions))
	for _, division := range divisions {
		players := groups[division]
		sort.Slice(players, func(i, j int) bool {
			return scoring.StandingsLess(players[i], players[j])
		})
		standings = append(standings, scoring.DivisionStandings{Division: division, Players: players})
	}
	return standings
}

func standingsResponse(tournament *models.Tournament, standings []scoring.DivisionStandings, rebuilt bool) fiber.Map {
	return fiber.Map{
		"tournament_id":   tournament.ID,
		"tournament_name": tournament.Name,
		"rebuilt":         rebuilt,
		"divisions":       standings,
	}
}
