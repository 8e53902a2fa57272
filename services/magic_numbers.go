package services

import (
	"math"
	"sort"

	"github.com/aharper42/fantasyplayoffs/models"
)

// tiebreakerOwnership is the three-way answer ownsTiebreaker gives: a team
// either wins a head-to-head tiebreaker against a rival, loses it, or the
// outcome is uncertain (would fall to a coin flip neither side can bank on).
type tiebreakerOwnership int

const (
	ownershipWin tiebreakerOwnership = iota
	ownershipLose
	ownershipUncertain
)

// gamesBetween counts, for every ordered pair of team ids, how many
// remaining matchups still pit them against each other.
type gamesBetween map[int]map[int]int

func buildGameCounts(remaining []models.Matchup) (gamesRemaining map[int]int, between gamesBetween) {
	gamesRemaining = make(map[int]int)
	between = make(gamesBetween)
	for _, m := range remaining {
		gamesRemaining[m.HomeID]++
		gamesRemaining[m.AwayID]++
		if between[m.HomeID] == nil {
			between[m.HomeID] = make(map[int]int)
		}
		if between[m.AwayID] == nil {
			between[m.AwayID] = make(map[int]int)
		}
		between[m.HomeID][m.AwayID]++
		between[m.AwayID][m.HomeID]++
	}
	return gamesRemaining, between
}

// ownsTiebreaker decides who would win a two-team tiebreaker if the season
// ended with both teams tied. It is conservative about games the two teams
// still have left to play against each other: a trailing team with head-to-
// head games in hand is treated as capable of catching up, never assumed to
// lose them. Falls through H2H record, then division win percentage, and
// finally reports uncertain, which the caller must treat as a coin flip.
func ownsTiebreaker(teams map[int]models.Team, h2h models.H2H, between gamesBetween, team1ID, team2ID int) tiebreakerOwnership {
	t1Wins, t2Wins, _ := h2h.Get(team1ID, team2ID)
	remainingH2H := between[team1ID][team2ID]

	var h2hResult tiebreakerOwnership
	tied := false
	if remainingH2H > 0 {
		t2Potential := t2Wins + remainingH2H
		t1Potential := t1Wins + remainingH2H
		switch {
		case t1Wins > t2Potential:
			h2hResult = ownershipWin
		case t2Wins > t1Potential:
			h2hResult = ownershipLose
		default:
			tied = true
		}
	} else {
		switch {
		case t1Wins > t2Wins:
			h2hResult = ownershipWin
		case t2Wins > t1Wins:
			h2hResult = ownershipLose
		default:
			tied = true
		}
	}
	if !tied {
		return h2hResult
	}

	t1, t2 := teams[team1ID], teams[team2ID]
	switch {
	case t1.DivWinPct() > t2.DivWinPct():
		return ownershipWin
	case t2.DivWinPct() > t1.DivWinPct():
		return ownershipLose
	}
	return ownershipUncertain
}

// neededWins returns ceil-rounded wins required to close the gap between a
// team's effective wins and a ceiling belonging to a rival, given whether
// the team already owns the tiebreaker against that rival. Owning the
// tiebreaker means a tie at the ceiling is enough (strict > required to
// still be caught); not owning it means the team must clear the ceiling
// outright, encoded by nudging the gap up by epsilon before the ceiling.
func neededWins(teamEffWins, rivalCeiling float64, owns tiebreakerOwnership) int {
	gap := rivalCeiling - teamEffWins
	if owns == ownershipWin {
		if gap <= 0 {
			return 0
		}
		return int(math.Ceil(gap))
	}
	if gap < 0 {
		return 0
	}
	return int(math.Ceil(gap + 0.001))
}

// CalculateMagicNumbers computes, for every team in the snapshot, the
// closed-form win/loss bounds for clinching a division, a playoff spot, the
// #1 seed, or locking into last place. A nil field means the outcome is
// already decided (clinched or eliminated) or, for the coarser bounds,
// mathematically impossible given the games left.
func CalculateMagicNumbers(snap models.LeagueSnapshot) map[int]models.MagicNumbers {
	gamesRemaining, between := buildGameCounts(snap.Remaining)

	divisions := make(map[int][]models.Team)
	for _, t := range snap.Teams {
		divisions[t.DivisionID] = append(divisions[t.DivisionID], t)
	}

	out := make(map[int]models.MagicNumbers, len(snap.Teams))

	for _, team := range snap.Teams {
		teamRemaining := gamesRemaining[team.ID]
		teamEffWins := team.EffectiveWins()

		out[team.ID] = models.MagicNumbers{
			TeamID:    team.ID,
			Division:  magicAgainstRivals(snap, between, team, teamEffWins, teamRemaining, divisionRivals(divisions, team), gamesRemaining),
			Playoffs:  magicPlayoffs(snap, between, team, teamEffWins, teamRemaining, gamesRemaining),
			FirstSeed: magicAgainstRivals(snap, between, team, teamEffWins, teamRemaining, otherTeams(snap.Teams, team.ID), gamesRemaining),
			Last:      magicLast(snap, team, teamEffWins, teamRemaining, gamesRemaining),
		}
	}
	return out
}

func divisionRivals(divisions map[int][]models.Team, team models.Team) []models.Team {
	var rivals []models.Team
	for _, t := range divisions[team.DivisionID] {
		if t.ID != team.ID {
			rivals = append(rivals, t)
		}
	}
	return rivals
}

func otherTeams(teams map[int]models.Team, excludeID int) []models.Team {
	var out []models.Team
	for _, t := range teams {
		if t.ID != excludeID {
			out = append(out, t)
		}
	}
	return out
}

// magicAgainstRivals is the shared shape behind the division and #1-seed
// magic numbers: the worst-case rival (by both a fully-conservative ceiling
// and a ceiling reduced by head-to-head games the team can still take away)
// sets the bar, and the team's remaining games must be enough to clear it.
func magicAgainstRivals(snap models.LeagueSnapshot, between gamesBetween, team models.Team, teamEffWins float64, teamRemaining int, rivals []models.Team, gamesRemaining map[int]int) *int {
	if len(rivals) == 0 {
		return nil
	}
	conservative, withSub := 0, 0
	for _, rival := range rivals {
		gamesVsTeam := between[rival.ID][team.ID]
		rivalMaxFull := rival.EffectiveWins() + float64(gamesRemaining[rival.ID])
		rivalMaxSub := rivalMaxFull - float64(gamesVsTeam)

		owns := ownsTiebreaker(snap.Teams, snap.H2H, between, team.ID, rival.ID)
		neededCons := neededWins(teamEffWins, rivalMaxFull, owns)
		neededSub := neededWins(teamEffWins, rivalMaxSub, owns)

		conservative = maxInt(conservative, neededCons)
		withSub = maxInt(withSub, neededSub)
	}
	return resolveMagic(conservative, withSub, teamRemaining)
}

// resolveMagic turns a conservative and a with-subtraction win count into
// the published magic number: prefer the conservative figure if the team
// has enough games left to reach it, fall back to "must win out" if the
// looser with-subtraction figure still fits, otherwise the bar is out of
// reach. Zero means already clinched, which callers report as nil.
func resolveMagic(conservative, withSub, teamRemaining int) *int {
	var magic int
	switch {
	case conservative <= teamRemaining:
		magic = conservative
	case withSub <= teamRemaining:
		magic = teamRemaining
	default:
		return nil
	}
	if magic == 0 {
		return nil
	}
	return &magic
}

func magicPlayoffs(snap models.LeagueSnapshot, between gamesBetween, team models.Team, teamEffWins float64, teamRemaining int, gamesRemaining map[int]int) *int {
	others := otherTeams(snap.Teams, team.ID)
	if len(others) < snap.Settings.PlayoffSpots {
		return nil
	}

	type ceiling struct {
		teamID int
		value  float64
	}
	conservative := make([]ceiling, 0, len(others))
	withSub := make([]ceiling, 0, len(others))
	for _, other := range others {
		gamesVsTeam := between[other.ID][team.ID]
		full := other.EffectiveWins() + float64(gamesRemaining[other.ID])
		conservative = append(conservative, ceiling{other.ID, full})
		withSub = append(withSub, ceiling{other.ID, full - float64(gamesVsTeam)})
	}
	sort.Slice(conservative, func(i, j int) bool { return conservative[i].value > conservative[j].value })
	sort.Slice(withSub, func(i, j int) bool { return withSub[i].value > withSub[j].value })

	nthCons := conservative[snap.Settings.PlayoffSpots-1]
	nthSub := withSub[snap.Settings.PlayoffSpots-1]

	ownsCons := ownsTiebreaker(snap.Teams, snap.H2H, between, team.ID, nthCons.teamID)
	ownsSub := ownsTiebreaker(snap.Teams, snap.H2H, between, team.ID, nthSub.teamID)

	neededCons := neededWins(teamEffWins, nthCons.value, ownsCons)
	neededSub := neededWins(teamEffWins, nthSub.value, ownsSub)

	return resolveMagic(neededCons, neededSub, teamRemaining)
}

// magicLast is the mirror image of clinching: the gap between a team's
// ceiling (what it has plus what it could still lose) and the league's
// best-case last-place rival. Negative gap means the team has already
// clinched last; a gap bigger than its remaining games means last place is
// out of reach no matter the outcomes.
func magicLast(snap models.LeagueSnapshot, team models.Team, teamEffWins float64, teamRemaining int, gamesRemaining map[int]int) *int {
	others := otherTeams(snap.Teams, team.ID)
	if len(others) == 0 {
		return nil
	}
	minOtherEffWins := math.Inf(1)
	for _, other := range others {
		if other.EffectiveWins() < minOtherEffWins {
			minOtherEffWins = other.EffectiveWins()
		}
	}
	gap := teamEffWins + float64(teamRemaining) - minOtherEffWins
	if gap < 0 {
		return nil
	}
	magic := int(math.Ceil(gap + 0.001))
	if magic > teamRemaining {
		return nil
	}
	return &magic
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
