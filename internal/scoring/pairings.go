package scoring

import (
	"fmt"
	"sort"
)

// BuildPairings generates the round-robin match schedule from a roster:
// every player in a division plays every other player in that division
// once. Within a division the roster is ordered by (seed, name) before
// pairing, so match keys are stable across rebuilds as long as the
// roster doesn't change. Keys run "A-01", "A-02", ... per division.
func BuildPairings(roster []Player) []Pairing {
	byDivision := make(map[string][]Player)
	for _, player := range roster {
		byDivision[player.Division] = append(byDivision[player.Division], player)
	}

	divisions := make([]string, 0, len(byDivision))
	for division := range byDivision {
		divisions = append(divisions, division)
	}
	sort.Strings(divisions)

	var pairings []Pairing
	for _, division := range divisions {
		players := byDivision[division]
		sort.Slice(players, func(i, j int) bool {
			if players[i].Seed != players[j].Seed {
				return players[i].Seed < players[j].Seed
			}
			return players[i].Name < players[j].Name
		})

		counter := 1
		for i := 0; i < len(players); i++ {
			for j := i + 1; j < len(players); j++ {
				pairings = append(pairings, Pairing{
					MatchKey:  fmt.Sprintf("%s-%02d", division, counter),
					Division:  division,
					PlayerA:   players[i],
					PlayerB:   players[j],
					HoleCount: 18,
					StartHole: 1,
				})
				counter++
			}
		}
	}
	return pairings
}

// MatchDisplay is the human-readable name for a pairing.
func MatchDisplay(pairing Pairing) string {
	return fmt.Sprintf("Division %s: %s vs %s", pairing.Division, pairing.PlayerA.Name, pairing.PlayerB.Name)
}

// FindPairing returns the pairing with the given match key, or nil.
func FindPairing(matchKey string, pairings []Pairing) *Pairing {
	if matchKey == "" {
		return nil
	}
	for i := range pairings {
		if pairings[i].MatchKey == matchKey {
			return &pairings[i]
		}
	}
	return nil
}
