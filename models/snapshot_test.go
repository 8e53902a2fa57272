package models

import "testing"

func validSnapshot() LeagueSnapshot {
	return LeagueSnapshot{
		Teams: map[int]Team{
			1: {ID: 1, Name: "A", DivisionID: 1},
			2: {ID: 2, Name: "B", DivisionID: 1},
			3: {ID: 3, Name: "C", DivisionID: 2},
			4: {ID: 4, Name: "D", DivisionID: 2},
		},
		Remaining: []Matchup{
			{HomeID: 1, AwayID: 2, Week: 10, IsDivisionGame: true},
			{HomeID: 3, AwayID: 4, Week: 10, IsDivisionGame: true},
			{HomeID: 1, AwayID: 3, Week: 11, IsDivisionGame: false},
		},
		H2H:      NewH2H(),
		Settings: LeagueSettings{PlayoffSpots: 2, NumDivisions: 2, TotalWeeks: 14},
	}
}

func TestSnapshotValidateAcceptsWellFormedInput(t *testing.T) {
	if err := validSnapshot().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestSnapshotValidateRejectsUnknownTeam(t *testing.T) {
	snap := validSnapshot()
	snap.Remaining = append(snap.Remaining, Matchup{HomeID: 1, AwayID: 99, Week: 12})

	err := snap.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error for unknown away team")
	}
	if !IsKind(err, KindInvalidSnapshot) {
		t.Errorf("Validate() error kind = %v, want KindInvalidSnapshot", err)
	}
}

func TestSnapshotValidateRejectsSelfMatchup(t *testing.T) {
	snap := validSnapshot()
	snap.Remaining = append(snap.Remaining, Matchup{HomeID: 1, AwayID: 1, Week: 12})

	if err := snap.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for team playing itself")
	}
}

func TestSnapshotValidateRejectsWrongDivisionFlag(t *testing.T) {
	snap := validSnapshot()
	snap.Remaining = append(snap.Remaining, Matchup{HomeID: 1, AwayID: 2, Week: 12, IsDivisionGame: false})

	if err := snap.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for mismatched IsDivisionGame")
	}
}

func TestSnapshotValidateRejectsTooManyPlayoffSpots(t *testing.T) {
	snap := validSnapshot()
	snap.Settings.PlayoffSpots = 10

	if err := snap.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for playoff_spots exceeding team count")
	}
}

func TestCopyTeamsIsIndependent(t *testing.T) {
	snap := validSnapshot()
	copies := snap.CopyTeams()
	t1 := copies[1]
	t1.RecordWin(false)
	copies[1] = t1

	if snap.Teams[1].Wins != 0 {
		t.Errorf("CopyTeams mutated original snapshot: Wins = %d, want 0", snap.Teams[1].Wins)
	}
	if copies[1].Wins != 1 {
		t.Errorf("copies[1].Wins = %d, want 1", copies[1].Wins)
	}
}
