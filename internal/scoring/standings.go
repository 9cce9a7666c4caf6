package scoring

import "sort"

// MatchResultInput is one singles match result handed to the standings
// aggregator: the players, the stored totals, and the raw material
// (hole scores + course holes) needed to recompute the result from
// scratch.
type MatchResultInput struct {
	MatchKey    string
	PlayerAName string
	PlayerBName string
	HandicapA   int
	HandicapB   int
	HoleCount   int
	StartHole   int
	CourseHoles []CourseHole
	Scores      []HoleScore

	// Finalized results are served from their frozen snapshot.
	Finalized bool
	Snapshot  *Snapshot

	// Stored totals, kept only so matches whose hole records were lost
	// (legacy rows with totals but no per-hole data) still count.
	StoredTotalA float64
	StoredTotalB float64
	StoredWinner Winner

	BonusOverride *BonusOverride
}

// StandingsEntry is one player's accumulated line in the standings.
type StandingsEntry struct {
	Name          string  `json:"name"`
	Division      string  `json:"division"`
	Seed          int     `json:"seed"`
	Matches       int     `json:"matches"`
	Wins          int     `json:"wins"`
	Ties          int     `json:"ties"`
	Losses        int     `json:"losses"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
	PointDiff     float64 `json:"point_diff"`
	HolesPlayed   int     `json:"holes_played"`
}

// DivisionStandings groups a division's sorted standings entries.
type DivisionStandings struct {
	Division string           `json:"division"`
	Players  []StandingsEntry `json:"players"`
}

// AggregateStandings folds every match result in a tournament into
// per-player standings, grouped by division.
//
// One rule decides what to trust per match: a finalized match is taken
// from its snapshot; everything else is recomputed from raw hole
// records via BuildScorecard/ClassifyOutcome, even when totals were
// stored — so live standings always reflect current per-hole math, not
// possibly-stale cached numbers. A match with no recorded holes and no
// stored totals hasn't happened yet and is skipped entirely.
//
// Every rostered player gets a row, played or not. Within a division,
// rows sort by points-for desc, then wins desc, ties desc, and name asc
// as the stable final tie-break; divisions sort by label. The fold is
// pure: calling it twice on the same inputs yields identical output.
func AggregateStandings(results []MatchResultInput, roster []Player) []DivisionStandings {
	divisionByName := make(map[string]string, len(roster))
	seedByName := make(map[string]int, len(roster))
	stats := make(map[string]*StandingsEntry, len(roster))
	for _, player := range roster {
		divisionByName[player.Name] = player.Division
		seedByName[player.Name] = player.Seed
		stats[player.Name] = &StandingsEntry{
			Name:     player.Name,
			Division: player.Division,
			Seed:     player.Seed,
		}
	}

	for _, result := range results {
		totalA, totalB, winner, holesPlayed, counted := resolveResult(result)
		if !counted {
			continue
		}
		recordPlayer(stats, divisionByName, seedByName, result.PlayerAName, totalA, totalB, winner, WinnerA, holesPlayed)
		recordPlayer(stats, divisionByName, seedByName, result.PlayerBName, totalB, totalA, winner, WinnerB, holesPlayed)
	}

	groups := make(map[string][]StandingsEntry)
	for _, entry := range stats {
		entry.PointDiff = entry.PointsFor - entry.PointsAgainst
		groups[entry.Division] = append(groups[entry.Division], *entry)
	}

	divisions := make([]string, 0, len(groups))
	for division := range groups {
		divisions = append(divisions, division)
	}
	sort.Strings(divisions)

	standings := make([]DivisionStandings, 0, len(divisions))
	for _, division := range divisions {
		players := groups[division]
		sort.Slice(players, func(i, j int) bool {
			return StandingsLess(players[i], players[j])
		})
		standings = append(standings, DivisionStandings{Division: division, Players: players})
	}
	return standings
}

// StandingsLess is the ordering of standings rows within a division:
// points-for descending, then wins, then ties, with name ascending as
// the stable final tie-break. It is the single home of the rule so any
// other presentation of standings rows (e.g. rows read back from a
// cache) sorts identically to a live aggregation.
func StandingsLess(a, b StandingsEntry) bool {
	if a.PointsFor != b.PointsFor {
		return a.PointsFor > b.PointsFor
	}
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	if a.Ties != b.Ties {
		return a.Ties > b.Ties
	}
	return a.Name < b.Name
}

// resolveResult produces the totals, winner, and holes played for one
// match result, reporting counted=false when the match hasn't produced
// anything to stand on yet.
func resolveResult(result MatchResultInput) (totalA, totalB float64, winner Winner, holesPlayed int, counted bool) {
	if result.Finalized && result.Snapshot != nil {
		outcome := result.Snapshot.Outcome
		return outcome.TotalA, outcome.TotalB, outcome.Winner, result.Snapshot.Meta.HolesRecorded, true
	}

	if len(result.Scores) > 0 {
		card := BuildScorecard(
			result.Scores,
			result.HandicapA,
			result.HandicapB,
			result.CourseHoles,
			result.HoleCount,
			result.StartHole,
		)
		if card.Meta.HolesRecorded > 0 {
			outcome := ClassifyOutcome(
				card.Meta.PointsA,
				card.Meta.PointsB,
				card.Meta.HolesRecorded,
				result.HoleCount,
				result.BonusOverride,
			)
			return outcome.TotalA, outcome.TotalB, outcome.Winner, card.Meta.HolesRecorded, true
		}
	}

	// Legacy rows: totals survived but the per-hole data did not.
	if result.StoredTotalA != 0 || result.StoredTotalB != 0 {
		return result.StoredTotalA, result.StoredTotalB, result.StoredWinner, 0, true
	}

	return 0, 0, WinnerTie, 0, false
}

// recordPlayer accumulates one side of a match into the player's row.
// Players missing from the roster (e.g. removed after playing) still
// get a row, filed under the "Open" division.
func recordPlayer(stats map[string]*StandingsEntry, divisionByName map[string]string, seedByName map[string]int, name string, pointsFor, pointsAgainst float64, winner, role Winner, holesPlayed int) {
	entry, ok := stats[name]
	if !ok {
		division, known := divisionByName[name]
		if !known {
			division = "Open"
		}
		entry = &StandingsEntry{
			Name:     name,
			Division: division,
			Seed:     seedByName[name],
		}
		stats[name] = entry
	}

	entry.Matches++
	entry.PointsFor += pointsFor
	entry.PointsAgainst += pointsAgainst
	entry.HolesPlayed += holesPlayed
	switch {
	case winner == WinnerTie:
		entry.Ties++
	case winner == role:
		entry.Wins++
	default:
		entry.Losses++
	}
}

// StandingsStale reports whether a cached standings set must be rebuilt:
// no cache at all, or the cached player set no longer matches the live
// roster (players added, removed, or renamed since the cache was
// written). Point totals are not compared — result changes invalidate
// the cache explicitly at the write site.
func StandingsStale(cachedNames []string, roster []Player) bool {
	if len(cachedNames) == 0 {
		return true
	}
	if len(cachedNames) != len(roster) {
		return true
	}
	cached := make(map[string]bool, len(cachedNames))
	for _, name := range cachedNames {
		cached[name] = true
	}
	for _, player := range roster {
		if !cached[player.Name] {
			return true
		}
	}
	return false
}
