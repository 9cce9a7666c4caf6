// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go
// values. The struct field tags (the backtick strings like `gorm:"..."`) tell GORM
// how to handle each field: its column type, constraints, defaults, and relationships.
//
// The data model represents a handicapped match-play tournament:
//   - A Tournament owns a roster of Players split into divisions
//   - Matches pair two players (or four, for a foursome sharing one card)
//   - HoleScores record gross strokes per hole, up to four player slots
//   - MatchResults hold the computed points/bonus/totals per singles match
//   - StandingsRows are the materialized standings cache, rebuilt on staleness
//
// The match-play arithmetic itself lives in internal/scoring; these structs are
// pure storage shapes that the handlers translate to and from scoring inputs.
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys.
	// UUIDs are safe to generate client-side and don't leak row counts.
	"github.com/google/uuid"
)

// --- Enums ---
// Go has no enum keyword; a named string type plus constants gives type
// safety while keeping the stored values human-readable.

// UserRole represents a user's global permission level across the platform.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"   // Full access: manage rosters, courses, any match
	UserRoleManager UserRole = "manager" // Can manage tournaments and enter scores
	UserRoleUser    UserRole = "user"    // Can view and enter scores for their own matches
)

// TournamentStatus tracks the lifecycle of a tournament.
type TournamentStatus string

const (
	TournamentStatusUpcoming  TournamentStatus = "upcoming"
	TournamentStatusActive    TournamentStatus = "active"
	TournamentStatusCompleted TournamentStatus = "completed"
)

// MatchStatus mirrors scoring.MatchStatus for storage. The stored value
// is derived (recorded holes vs match length, plus the finalized flag)
// and refreshed on every score submission.
type MatchStatus string

const (
	MatchStatusNotStarted MatchStatus = "not_started"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
	MatchStatusFinalized  MatchStatus = "finalized"
)

// TeeGender indicates which gender a set of tees is rated for.
type TeeGender string

const (
	TeeGenderMens   TeeGender = "mens"
	TeeGenderWomens TeeGender = "womens"
	TeeGenderUnisex TeeGender = "unisex"
)

// --- Models ---

// User is a registered person, created lazily on their first
// authenticated request. ClerkID links our record to Clerk's identity.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClerkID     *string   `gorm:"uniqueIndex:idx_users_clerk_id"`
	DisplayName string    `gorm:"not null"`
	Email       string    `gorm:"uniqueIndex;not null"`
	Role        UserRole  `gorm:"type:user_role;not null;default:'user'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tournament is the top-level container: one season or event whose
// matches all roll into the same standings.
type Tournament struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string           `gorm:"uniqueIndex;not null"`
	Description *string          // Optional long-form description
	Status      TournamentStatus `gorm:"type:tournament_status;not null;default:'upcoming'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Players     []Player `gorm:"foreignKey:TournamentID"`
	Matches     []Match  `gorm:"foreignKey:TournamentID"`
}

// Player is one roster entry. Handicap is the integer course handicap
// used for stroke allocation; Seed orders players within a division
// when pairings are generated.
type Player struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TournamentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_player_name"`
	Name         string    `gorm:"not null;uniqueIndex:idx_tournament_player_name"`
	Division     string    `gorm:"not null;default:'Open'"`
	Handicap     int       `gorm:"not null;default:0"`
	Seed         int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Course is a golf course; per-tee data hangs off CourseTee.
type Course struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClubName   string    `gorm:"not null"`
	CourseName string    `gorm:"not null"`
	City       string    `gorm:"not null;default:''"`
	State      string    `gorm:"not null;default:''"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Tees       []CourseTee `gorm:"foreignKey:CourseID"`
}

// CourseTee is one set of tee boxes with its own rating, slope, and
// hole-by-hole details. Stroke indexes can differ between tee sets on
// the same course, which is why holes belong to the tee, not the course.
type CourseTee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_tee_name"`
	Course       Course    `gorm:"foreignKey:CourseID"`
	Name         string    `gorm:"not null;uniqueIndex:idx_course_tee_name"`
	Gender       TeeGender `gorm:"type:tee_gender;not null;default:'unisex'"`
	CourseRating float64   `gorm:"type:decimal(4,1)"`
	SlopeRating  int
	Par          int
	HoleCount    int       `gorm:"not null;default:18"`
	Holes        []TeeHole `gorm:"foreignKey:CourseTeeID"`
}

// TeeHole stores one hole's reference data for a tee set. StrokeIndex
// is the handicap rank: 1 = hardest hole, first to receive a stroke.
type TeeHole struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseTeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tee_hole_number"`
	HoleNumber  int       `gorm:"not null;uniqueIndex:idx_tee_hole_number"`
	Par         int       `gorm:"not null"`
	StrokeIndex int       `gorm:"not null"`
	Yardage     *int // Optional; some courses don't publish yardages
}

// Match is one scheduled pairing. Slots A and B are the primary singles
// match; when C and D are also set, the group is a foursome whose second
// singles match (C vs D) is scored from the same hole records.
type Match struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TournamentID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_match_key"`
	Tournament   Tournament  `gorm:"foreignKey:TournamentID"`
	MatchKey     string      `gorm:"not null;uniqueIndex:idx_tournament_match_key"` // e.g. "A-01"
	Division     string      `gorm:"not null;default:'Open'"`
	PlayerAID    uuid.UUID   `gorm:"type:uuid;not null"`
	PlayerA      Player      `gorm:"foreignKey:PlayerAID"`
	PlayerBID    uuid.UUID   `gorm:"type:uuid;not null"`
	PlayerB      Player      `gorm:"foreignKey:PlayerBID"`
	PlayerCID    *uuid.UUID  `gorm:"type:uuid"` // Foursome slots; nil for a plain singles match
	PlayerC      *Player     `gorm:"foreignKey:PlayerCID"`
	PlayerDID    *uuid.UUID  `gorm:"type:uuid"`
	PlayerD      *Player     `gorm:"foreignKey:PlayerDID"`
	CourseTeeID  *uuid.UUID  `gorm:"type:uuid"` // Which tee's hole data scores this match
	CourseTee    *CourseTee  `gorm:"foreignKey:CourseTeeID"`
	HoleCount    int         `gorm:"not null;default:18"` // 9 or 18
	StartHole    int         `gorm:"not null;default:1"`  // 1, or 10 for a back-nine start
	Status       MatchStatus `gorm:"type:match_status;not null;default:'not_started'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	HoleScores   []HoleScore   `gorm:"foreignKey:MatchID"`
	Results      []MatchResult `gorm:"foreignKey:MatchID"`
}

// HoleScore is one hole's gross scores for a match — up to four player
// slots on the shared card. Pointer fields are nullable: a nil gross
// means that slot hasn't recorded a score on the hole yet, which is
// normal mid-round (a foursome often enters A/B before C/D).
type HoleScore struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MatchID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_hole_number"`
	HoleNumber int       `gorm:"not null;uniqueIndex:idx_match_hole_number"`
	GrossA     *int
	GrossB     *int
	GrossC     *int
	GrossD     *int
	RecordedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// MatchResult is the computed outcome of one singles match. A plain
// match has one row keyed by the match key; a foursome has two, the
// second keyed with a "-cd" suffix. Points/bonus/totals are recomputed
// from hole records on every submission — the stored copy exists for
// listing and for legacy rows whose hole data predates per-hole entry.
//
// ScorecardSnapshot and CourseSnapshot are JSON blobs frozen at
// finalize time; while Finalized is set they are the source of truth
// and live recomputes are ignored.
type MatchResult struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MatchID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_result_key"`
	Match             Match     `gorm:"foreignKey:MatchID"`
	ResultKey         string    `gorm:"not null;uniqueIndex:idx_match_result_key"` // match key, or match key + "-cd"
	TournamentID      uuid.UUID `gorm:"type:uuid;not null"`
	PlayerAName       string    `gorm:"not null"`
	PlayerBName       string    `gorm:"not null"`
	HandicapA         int       `gorm:"not null;default:0"`
	HandicapB         int       `gorm:"not null;default:0"`
	PointsA           float64   `gorm:"not null;default:0"`
	PointsB           float64   `gorm:"not null;default:0"`
	BonusA            float64   `gorm:"not null;default:0"`
	BonusB            float64   `gorm:"not null;default:0"`
	TotalA            float64   `gorm:"not null;default:0"`
	TotalB            float64   `gorm:"not null;default:0"`
	Winner            string    `gorm:"not null;default:'T'"` // "A", "B", or "T"
	BonusOverrideA    *float64  // Manual bonus correction; nil = use the computed bonus
	BonusOverrideB    *float64
	Finalized         bool   `gorm:"not null;default:false"`
	ScorecardSnapshot []byte `gorm:"type:jsonb"` // scoring.Snapshot, frozen at finalize
	CourseSnapshot    []byte `gorm:"type:jsonb"` // The tee holes the snapshot was built against
	SubmittedAt       time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// StandingsRow is one line of the materialized standings cache. The
// cache is rebuilt whenever it is missing, its player set disagrees
// with the live roster, or a rebuild is explicitly requested.
type StandingsRow struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TournamentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_standings_player"`
	PlayerName    string    `gorm:"not null;uniqueIndex:idx_standings_player"`
	Division      string    `gorm:"not null"`
	Seed          int       `gorm:"not null;default:0"`
	Matches       int       `gorm:"not null;default:0"`
	Wins          int       `gorm:"not null;default:0"`
	Ties          int       `gorm:"not null;default:0"`
	Losses        int       `gorm:"not null;default:0"`
	PointsFor     float64   `gorm:"not null;default:0"`
	PointsAgainst float64   `gorm:"not null;default:0"`
	PointDiff     float64   `gorm:"not null;default:0"`
	HolesPlayed   int       `gorm:"not null;default:0"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}
