// Command seed populates a development database with a demo
// tournament: a course with realistic hole data, a two-division roster,
// the full round-robin schedule, and a few holes of scores on the first
// match so the leaderboard has something to show.
//
// Destructive on the demo tournament only: rerunning drops and recreates
// it, leaving any other tournament untouched.
package main

import (
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"

	"github.com/trentd187/match-play-scoring/internal/config"
	"github.com/trentd187/match-play-scoring/internal/database"
	"github.com/trentd187/match-play-scoring/internal/models"
	"github.com/trentd187/match-play-scoring/internal/scoring"
)

const demoTournament = "Demo Match Play Championship"

// demoPars and demoIndexes are a plausible 18-hole card: par 72, stroke
// indexes alternating front/back nine as course raters usually assign.
var (
	demoPars    = []int{4, 5, 3, 4, 4, 4, 3, 5, 4, 4, 3, 5, 4, 4, 5, 3, 4, 4}
	demoIndexes = []int{7, 1, 17, 5, 11, 3, 15, 9, 13, 8, 18, 2, 6, 12, 4, 16, 10, 14}
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Fixed seed: reruns produce the same names and handicaps, which
	// keeps screenshots and bug reports comparable.
	gofakeit.Seed(42)

	// Drop the previous demo tournament; cascading FKs take the rest.
	var stale models.Tournament
	if err := db.Where("name = ?", demoTournament).First(&stale).Error; err == nil {
		if err := db.Delete(&stale).Error; err != nil {
			log.Fatalf("failed to remove previous demo tournament: %v", err)
		}
	}

	tournament := models.Tournament{
		Name:   demoTournament,
		Status: models.TournamentStatusActive,
	}
	if err := db.Create(&tournament).Error; err != nil {
		log.Fatalf("failed to create tournament: %v", err)
	}

	tee := seedCourse(db)
	roster := seedRoster(db, tournament)
	matches := seedMatches(db, tournament, tee, roster)
	seedOpeningScores(db, matches)

	log.Printf("seeded %q: %d players, %d matches", tournament.Name, len(roster), len(matches))
}

// seedCourse creates the demo course with one tee set and returns the tee.
func seedCourse(db *gorm.DB) *models.CourseTee {
	course := models.Course{
		ClubName:   gofakeit.Company() + " Golf Club",
		CourseName: "Championship",
		City:       gofakeit.City(),
		State:      gofakeit.StateAbr(),
	}
	if err := db.Create(&course).Error; err != nil {
		log.Fatalf("failed to create course: %v", err)
	}

	tee := models.CourseTee{
		CourseID:     course.ID,
		Name:         "Blue",
		Gender:       models.TeeGenderUnisex,
		CourseRating: 71.8,
		SlopeRating:  128,
		Par:          72,
		HoleCount:    18,
	}
	if err := db.Create(&tee).Error; err != nil {
		log.Fatalf("failed to create tee: %v", err)
	}

	for i := 0; i < 18; i++ {
		yardage := gofakeit.Number(120, 560)
		hole := models.TeeHole{
			CourseTeeID: tee.ID,
			HoleNumber:  i + 1,
			Par:         demoPars[i],
			StrokeIndex: demoIndexes[i],
			Yardage:     &yardage,
		}
		if err := db.Create(&hole).Error; err != nil {
			log.Fatalf("failed to create tee hole: %v", err)
		}
	}
	return &tee
}

// seedRoster creates a two-division roster of twelve players.
func seedRoster(db *gorm.DB, tournament models.Tournament) []models.Player {
	roster := make([]models.Player, 0, 12)
	for _, division := range []string{"A", "B"} {
		for seed := 1; seed <= 6; seed++ {
			handicap := gofakeit.Number(0, 12)
			if division == "B" {
				handicap = gofakeit.Number(10, 24)
			}
			player := models.Player{
				TournamentID: tournament.ID,
				Name:         gofakeit.Name(),
				Division:     division,
				Handicap:     handicap,
				Seed:         seed,
			}
			if err := db.Create(&player).Error; err != nil {
				log.Fatalf("failed to create player: %v", err)
			}
			roster = append(roster, player)
		}
	}
	return roster
}

// seedMatches generates the round-robin schedule and stores it, every
// match on the demo tee.
func seedMatches(db *gorm.DB, tournament models.Tournament, tee *models.CourseTee, roster []models.Player) []models.Match {
	byName := make(map[string]models.Player, len(roster))
	engineRoster := make([]scoring.Player, 0, len(roster))
	for _, p := range roster {
		byName[p.Name] = p
		engineRoster = append(engineRoster, scoring.Player{
			Name:     p.Name,
			Division: p.Division,
			Handicap: p.Handicap,
			Seed:     p.Seed,
		})
	}

	pairings := scoring.BuildPairings(engineRoster)
	matches := make([]models.Match, 0, len(pairings))
	for _, pairing := range pairings {
		match := models.Match{
			TournamentID: tournament.ID,
			MatchKey:     pairing.MatchKey,
			Division:     pairing.Division,
			PlayerAID:    byName[pairing.PlayerA.Name].ID,
			PlayerBID:    byName[pairing.PlayerB.Name].ID,
			CourseTeeID:  &tee.ID,
			HoleCount:    pairing.HoleCount,
			StartHole:    pairing.StartHole,
			Status:       models.MatchStatusNotStarted,
		}
		if err := db.Create(&match).Error; err != nil {
			log.Fatalf("failed to create match %s: %v", pairing.MatchKey, err)
		}
		matches = append(matches, match)
	}
	return matches
}

// seedOpeningScores puts six holes of scores on the first match so a
// fresh environment shows an in-progress card.
func seedOpeningScores(db *gorm.DB, matches []models.Match) {
	if len(matches) == 0 {
		return
	}
	match := matches[0]
	for i := 0; i < 6; i++ {
		grossA := demoPars[i] + gofakeit.Number(-1, 2)
		grossB := demoPars[i] + gofakeit.Number(-1, 2)
		score := models.HoleScore{
			MatchID:    match.ID,
			HoleNumber: i + 1,
			GrossA:     &grossA,
			GrossB:     &grossB,
		}
		if err := db.Create(&score).Error; err != nil {
			log.Fatalf("failed to create hole score: %v", err)
		}
	}
	if err := db.Model(&models.Match{}).Where("id = ?", match.ID).
		Update("status", models.MatchStatusInProgress).Error; err != nil {
		log.Fatalf("failed to update match status: %v", err)
	}
}
