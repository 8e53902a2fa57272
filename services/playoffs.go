package services

import (
	"math/rand"
	"sort"

	"github.com/aharper42/fantasyplayoffs/models"
)

// outcomeAssignment gives the winning team id for each matchup in a paired
// slice, by index — matchups is never deduplicated by value, so two
// identical-looking games (same teams, week, and division flag) each keep
// their own recorded outcome.
type outcomeAssignment []int

// applyOutcome folds one assignment of winners into a fresh set of team
// copies and the head-to-head table those games produced, leaving the
// snapshot's own teams and h2h untouched. matchups and outcomes are paired
// by index.
func applyOutcome(teams map[int]models.Team, matchups []models.Matchup, outcomes outcomeAssignment) (map[int]models.Team, models.H2H) {
	simTeams := make(map[int]models.Team, len(teams))
	for id, t := range teams {
		simTeams[id] = t.Copy()
	}
	simH2H := models.NewH2H()

	for i, matchup := range matchups {
		winnerID := outcomes[i]
		loserID := matchup.Opponent(winnerID)
		winner := simTeams[winnerID]
		winner.RecordWin(matchup.IsDivisionGame)
		simTeams[winnerID] = winner

		loser := simTeams[loserID]
		loser.RecordLoss(matchup.IsDivisionGame)
		simTeams[loserID] = loser

		simH2H.RecordWin(winnerID, loserID)
	}
	return simTeams, simH2H
}

// DeterminePlayoffs computes which teams make the playoffs and in what
// seeding order, given a snapshot of final-ish standings, historical h2h,
// and this trial's simulated h2h. Each division's best win percentage (tie-
// broken) wins that division automatically; the best remaining records
// fill the rest of the field by win percentage with ties resolved the same
// way. The #1 seed is the best playoff team by record, tiebreaker-resolved
// if more than one team shares the league's best percentage — division
// winners earn a spot but no seeding bonus.
func DeterminePlayoffs(teams map[int]models.Team, h2h, simH2H models.H2H, playoffSpots int, rng *rand.Rand, disfavorID, favorID *int) (playoffSeeding []int, divisionWinners []int) {
	divisions := make(map[int][]models.Team)
	var divIDs []int
	for _, t := range teams {
		if _, seen := divisions[t.DivisionID]; !seen {
			divIDs = append(divIDs, t.DivisionID)
		}
		divisions[t.DivisionID] = append(divisions[t.DivisionID], t)
	}
	sort.Ints(divIDs)

	for _, divID := range divIDs {
		divTeams := append([]models.Team(nil), divisions[divID]...)
		sort.Slice(divTeams, func(i, j int) bool {
			if divTeams[i].WinPct() != divTeams[j].WinPct() {
				return divTeams[i].WinPct() > divTeams[j].WinPct()
			}
			return divTeams[i].ID < divTeams[j].ID
		})

		bestPct := divTeams[0].WinPct()
		var tiedForFirst []models.Team
		for _, t := range divTeams {
			if t.WinPct() == bestPct {
				tiedForFirst = append(tiedForFirst, t)
			}
		}
		if len(tiedForFirst) > 1 {
			tiedForFirst = ResolveTiebreaker(tiedForFirst, h2h, simH2H, rng, disfavorID, favorID)
		}
		divisionWinners = append(divisionWinners, tiedForFirst[0].ID)
	}

	winnerSet := make(map[int]bool, len(divisionWinners))
	for _, id := range divisionWinners {
		winnerSet[id] = true
	}

	var remainingTeams []models.Team
	for _, t := range teams {
		if !winnerSet[t.ID] {
			remainingTeams = append(remainingTeams, t)
		}
	}
	sort.Slice(remainingTeams, func(i, j int) bool {
		if remainingTeams[i].WinPct() != remainingTeams[j].WinPct() {
			return remainingTeams[i].WinPct() > remainingTeams[j].WinPct()
		}
		return remainingTeams[i].ID < remainingTeams[j].ID
	})

	var wildCard []int
	spotsNeeded := playoffSpots - len(divisionWinners)
	i := 0
	for len(wildCard) < spotsNeeded && i < len(remainingTeams) {
		currentPct := remainingTeams[i].WinPct()
		var tiedGroup []models.Team
		for _, t := range remainingTeams[i:] {
			if t.WinPct() == currentPct {
				tiedGroup = append(tiedGroup, t)
			}
		}
		if len(tiedGroup) > 1 {
			tiedGroup = ResolveTiebreaker(tiedGroup, h2h, simH2H, rng, disfavorID, favorID)
		}
		for _, t := range tiedGroup {
			if len(wildCard) < spotsNeeded {
				wildCard = append(wildCard, t.ID)
			} else {
				break
			}
		}
		i += len(tiedGroup)
	}

	allPlayoffIDs := append(append([]int(nil), divisionWinners...), wildCard...)
	sort.Slice(allPlayoffIDs, func(i, j int) bool {
		return teams[allPlayoffIDs[i]].WinPct() > teams[allPlayoffIDs[j]].WinPct()
	})

	if len(allPlayoffIDs) >= 2 {
		bestPct := teams[allPlayoffIDs[0]].WinPct()
		var tiedForFirst []models.Team
		for _, id := range allPlayoffIDs {
			if teams[id].WinPct() == bestPct {
				tiedForFirst = append(tiedForFirst, teams[id])
			}
		}
		if len(tiedForFirst) > 1 {
			tiedForFirst = ResolveTiebreaker(tiedForFirst, h2h, simH2H, rng, disfavorID, favorID)
			tiedIDs := make([]int, len(tiedForFirst))
			for i, t := range tiedForFirst {
				tiedIDs[i] = t.ID
			}
			var otherIDs []int
			for _, id := range allPlayoffIDs {
				if teams[id].WinPct() != bestPct {
					otherIDs = append(otherIDs, id)
				}
			}
			allPlayoffIDs = append(tiedIDs, otherIDs...)
		}
	}

	return allPlayoffIDs, divisionWinners
}
