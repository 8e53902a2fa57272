package models

import "fmt"

// LeagueSnapshot is the immutable input to every core computation: the
// output of the four provider-adapter calls described in spec section 6.1,
// assembled once per request. No component may mutate a snapshot's fields
// in place; Simulate and the scenario generator operate on copies produced
// by Copy.
type LeagueSnapshot struct {
	Teams         map[int]Team
	DivisionNames map[int]string
	Remaining     []Matchup
	CurrentWeek   int
	TotalWeeks    int
	H2H           H2H
	Settings      LeagueSettings
}

// Validate checks the invariants spec section 3 requires of every
// snapshot. A violation is a programmer error (an inconsistent snapshot,
// e.g. a matchup referencing an unknown team), never a normal runtime
// condition, and is reported as an InvalidSnapshot CoreError.
func (s LeagueSnapshot) Validate() error {
	for _, m := range s.Remaining {
		if _, ok := s.Teams[m.HomeID]; !ok {
			return NewCoreError(KindInvalidSnapshot, fmt.Sprintf("matchup week %d references unknown home team %d", m.Week, m.HomeID))
		}
		if _, ok := s.Teams[m.AwayID]; !ok {
			return NewCoreError(KindInvalidSnapshot, fmt.Sprintf("matchup week %d references unknown away team %d", m.Week, m.AwayID))
		}
		if m.HomeID == m.AwayID {
			return NewCoreError(KindInvalidSnapshot, fmt.Sprintf("matchup week %d has a team (%d) playing itself", m.Week, m.HomeID))
		}
		home, away := s.Teams[m.HomeID], s.Teams[m.AwayID]
		wantDivision := home.DivisionID == away.DivisionID && home.DivisionID != 0
		if m.IsDivisionGame != wantDivision {
			return NewCoreError(KindInvalidSnapshot, fmt.Sprintf(
				"matchup week %d (%d vs %d) has IsDivisionGame=%v, expected %v",
				m.Week, m.HomeID, m.AwayID, m.IsDivisionGame, wantDivision))
		}
	}
	if s.Settings.PlayoffSpots <= 0 {
		return NewCoreError(KindInvalidSnapshot, "playoff_spots must be positive")
	}
	if s.Settings.PlayoffSpots > len(s.Teams) {
		return NewCoreError(KindInvalidSnapshot, fmt.Sprintf(
			"playoff_spots (%d) exceeds team count (%d)", s.Settings.PlayoffSpots, len(s.Teams)))
	}
	return nil
}

// CopyTeams returns a fresh map of per-trial mutable team copies, indexed
// by id, independent of the snapshot's canonical Teams map. This is the
// arena design note in spec section 9: allocate once per trial, discard
// after.
func (s LeagueSnapshot) CopyTeams() map[int]Team {
	out := make(map[int]Team, len(s.Teams))
	for id, t := range s.Teams {
		out[id] = t.Copy()
	}
	return out
}
