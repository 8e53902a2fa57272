package services

import (
	"math/rand"
	"sort"

	"github.com/aharper42/fantasyplayoffs/models"
)

// ResolveTiebreaker orders a group of teams tied on win percentage, in ESPN
// fantasy-league tiebreaker order:
//
//  1. head-to-head record among the tied teams, but only when every pair in
//     the group has played the same number of games against each other;
//  1b. failing that, teams that lost to every other team in the group are
//     still ranked last (a partial H2H signal even when game counts differ);
//  2. division win percentage;
//  3. a coin flip, deterministic only when disfavorID or favorID pins an
//     outcome for a clinch/elimination proof.
//
// Historical h2h and this trial's simH2H are combined before resolution, so
// games already played this season count alongside games decided in the
// simulation. Ties are seated one team at a time: whichever step separates
// part of the group reseeds the remaining group from step 1, which is why a
// group that splits "2 clear, 3 still tied" recurses on each side rather
// than falling through to a coin flip early.
func ResolveTiebreaker(tiedTeams []models.Team, h2h, simH2H models.H2H, rng *rand.Rand, disfavorID, favorID *int) []models.Team {
	if len(tiedTeams) <= 1 {
		return tiedTeams
	}

	combined := models.Combined(h2h, simH2H)

	remaining := append([]models.Team(nil), tiedTeams...)
	var seated []models.Team

	for len(remaining) > 1 {
		pcts, ok := computeH2HPcts(remaining, combined)
		if ok {
			bestPct := -1.0
			for _, p := range pcts {
				if p > bestPct {
					bestPct = p
				}
			}
			var bestTeams []models.Team
			for _, t := range remaining {
				if pcts[t.ID] == bestPct {
					bestTeams = append(bestTeams, t)
				}
			}
			if len(bestTeams) == 1 {
				seated = append(seated, bestTeams[0])
				remaining = removeTeam(remaining, bestTeams[0].ID)
				continue
			}
			if len(bestTeams) < len(remaining) {
				rest := exceptIDs(remaining, idSet(bestTeams))
				seated = append(seated, ResolveTiebreaker(bestTeams, h2h, simH2H, rng, disfavorID, favorID)...)
				seated = append(seated, ResolveTiebreaker(rest, h2h, simH2H, rng, disfavorID, favorID)...)
				return seated
			}
		}

		lostToAll := teamsLostToAll(remaining, combined)
		if len(lostToAll) > 0 && len(lostToAll) < len(remaining) {
			winners := exceptIDs(remaining, idSet(lostToAll))
			seated = append(seated, ResolveTiebreaker(winners, h2h, simH2H, rng, disfavorID, favorID)...)
			seated = append(seated, ResolveTiebreaker(lostToAll, h2h, simH2H, rng, disfavorID, favorID)...)
			return seated
		}

		bestDiv := -1.0
		for _, t := range remaining {
			if t.DivWinPct() > bestDiv {
				bestDiv = t.DivWinPct()
			}
		}
		var bestDivTeams []models.Team
		for _, t := range remaining {
			if t.DivWinPct() == bestDiv {
				bestDivTeams = append(bestDivTeams, t)
			}
		}
		if len(bestDivTeams) == 1 {
			seated = append(seated, bestDivTeams[0])
			remaining = removeTeam(remaining, bestDivTeams[0].ID)
			continue
		}
		if len(bestDivTeams) < len(remaining) {
			rest := exceptIDs(remaining, idSet(bestDivTeams))
			seated = append(seated, ResolveTiebreaker(bestDivTeams, h2h, simH2H, rng, disfavorID, favorID)...)
			seated = append(seated, ResolveTiebreaker(rest, h2h, simH2H, rng, disfavorID, favorID)...)
			return seated
		}

		coinFlipSort(remaining, rng, disfavorID, favorID)
		seated = append(seated, remaining...)
		return seated
	}

	if len(remaining) == 1 {
		seated = append(seated, remaining[0])
	}
	return seated
}

// computeH2HPcts returns each team's combined head-to-head win percentage
// against the rest of the group, or ok=false if the group hasn't all played
// an equal number of games against each other (making the comparison unfair).
func computeH2HPcts(group []models.Team, h2h models.H2H) (pcts map[int]float64, ok bool) {
	var pairTotal = -1
	for i, t1 := range group {
		for _, t2 := range group[i+1:] {
			w, l, t := h2h.Get(t1.ID, t2.ID)
			total := w + l + t
			if pairTotal == -1 {
				pairTotal = total
			} else if total != pairTotal {
				return nil, false
			}
		}
	}

	pcts = make(map[int]float64, len(group))
	for _, team := range group {
		wins, losses, ties := 0, 0, 0
		for _, other := range group {
			if team.ID == other.ID {
				continue
			}
			w, l, t := h2h.Get(team.ID, other.ID)
			wins += w
			losses += l
			ties += t
		}
		total := wins + losses + ties
		if total > 0 {
			pcts[team.ID] = (float64(wins) + 0.5*float64(ties)) / float64(total)
		} else {
			pcts[team.ID] = 0.5
		}
	}
	return pcts, true
}

// teamsLostToAll returns the teams in group that have a strictly losing
// head-to-head record against every other team in the group, applied even
// when computeH2HPcts can't compare the group as a whole.
func teamsLostToAll(group []models.Team, h2h models.H2H) []models.Team {
	var out []models.Team
	for _, team := range group {
		lostToAll := true
		for _, other := range group {
			if team.ID == other.ID {
				continue
			}
			w, l, _ := h2h.Get(team.ID, other.ID)
			if w >= l {
				lostToAll = false
				break
			}
		}
		if lostToAll {
			out = append(out, team)
		}
	}
	return out
}

// coinFlipSort breaks a remaining tie at random, except that disfavorID (if
// present in the group) always sorts last and favorID always sorts first —
// the mechanism spec section 5 relies on to force the worst- and best-case
// tiebreaker outcome when proving a clinch or elimination.
func coinFlipSort(teams []models.Team, rng *rand.Rand, disfavorID, favorID *int) {
	keys := make(map[int]float64, len(teams))
	for _, t := range teams {
		switch {
		case disfavorID != nil && t.ID == *disfavorID:
			keys[t.ID] = 1.0
		case favorID != nil && t.ID == *favorID:
			keys[t.ID] = -1.0
		default:
			keys[t.ID] = rng.Float64() * 0.0001
		}
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return keys[teams[i].ID] < keys[teams[j].ID]
	})
}

func idSet(teams []models.Team) map[int]bool {
	set := make(map[int]bool, len(teams))
	for _, t := range teams {
		set[t.ID] = true
	}
	return set
}

func exceptIDs(teams []models.Team, exclude map[int]bool) []models.Team {
	var out []models.Team
	for _, t := range teams {
		if !exclude[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

func removeTeam(teams []models.Team, id int) []models.Team {
	out := make([]models.Team, 0, len(teams)-1)
	for _, t := range teams {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
