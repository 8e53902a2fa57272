package fixture

import (
	"context"
	"testing"

	"github.com/aharper42/fantasyplayoffs/providers"
)

func TestFetchStandingsParsesAllTeams(t *testing.T) {
	a := New()
	teams, divisionNames, err := a.FetchStandings(context.Background(), providers.Credential{}, "sample-league", "2026")
	if err != nil {
		t.Fatalf("FetchStandings() error = %v", err)
	}
	if len(teams) != 8 {
		t.Fatalf("len(teams) = %d, want 8", len(teams))
	}

	iceWolves, ok := teams[1]
	if !ok {
		t.Fatal("team 1 (Ice Wolves) missing")
	}
	if iceWolves.Name != "Ice Wolves" || iceWolves.DivisionID != 1 {
		t.Errorf("team 1 = %+v, want Ice Wolves in division 1", iceWolves)
	}
	if iceWolves.Wins != 8 || iceWolves.Losses != 3 {
		t.Errorf("team 1 record = %d-%d, want 8-3", iceWolves.Wins, iceWolves.Losses)
	}
	if iceWolves.DivWins != 5 || iceWolves.DivLosses != 1 {
		t.Errorf("team 1 division record = %d-%d, want 5-1", iceWolves.DivWins, iceWolves.DivLosses)
	}

	if divisionNames[1] != "North" || divisionNames[2] != "South" {
		t.Errorf("divisionNames = %v, want {1: North, 2: South}", divisionNames)
	}
}

func TestFetchScheduleParsesRemainingMatchups(t *testing.T) {
	a := New()
	matchups, err := a.FetchSchedule(context.Background(), providers.Credential{}, "sample-league", "2026")
	if err != nil {
		t.Fatalf("FetchSchedule() error = %v", err)
	}
	if len(matchups) != 12 {
		t.Fatalf("len(matchups) = %d, want 12", len(matchups))
	}

	first := matchups[0]
	if first.Week != 12 || first.HomeID != 1 || first.AwayID != 2 || !first.IsDivisionGame {
		t.Errorf("matchups[0] = %+v, want week 12, 1 vs 2, division game", first)
	}

	last := matchups[len(matchups)-1]
	if last.Week != 14 || last.IsDivisionGame {
		t.Errorf("matchups[last] = %+v, want week 14, non-division", last)
	}
}

func TestFetchHeadToHeadRecordsEachWin(t *testing.T) {
	a := New()
	h2h, err := a.FetchHeadToHead(context.Background(), providers.Credential{}, "sample-league", "2026")
	if err != nil {
		t.Fatalf("FetchHeadToHead() error = %v", err)
	}

	wins12, losses12, ties12 := h2h.Get(1, 2)
	if wins12 != 1 || losses12 != 0 || ties12 != 0 {
		t.Errorf("h2h.Get(1, 2) = (%d, %d, %d), want (1, 0, 0)", wins12, losses12, ties12)
	}

	wins56, losses56, ties56 := h2h.Get(5, 6)
	if wins56 != 2 || losses56 != 0 || ties56 != 0 {
		t.Errorf("h2h.Get(5, 6) = (%d, %d, %d), want (2, 0, 0)", wins56, losses56, ties56)
	}
}

func TestFetchLeagueSettingsParsesConfigTable(t *testing.T) {
	a := New()
	settings, err := a.FetchLeagueSettings(context.Background(), providers.Credential{}, "sample-league", "2026")
	if err != nil {
		t.Fatalf("FetchLeagueSettings() error = %v", err)
	}
	if settings.LeagueName != "Gridiron Gauntlet" {
		t.Errorf("LeagueName = %q, want Gridiron Gauntlet", settings.LeagueName)
	}
	if settings.PlayoffSpots != 4 || settings.NumDivisions != 2 || settings.TotalWeeks != 14 {
		t.Errorf("settings = %+v, want playoff_spots=4, num_divisions=2, total_weeks=14", settings)
	}
}

func TestValidateLeagueRejectsUnknownFixture(t *testing.T) {
	a := New()
	err := a.ValidateLeague(context.Background(), providers.Credential{}, "does-not-exist", "2026")
	if err == nil {
		t.Fatal("ValidateLeague() = nil, want an error for a missing fixture")
	}
	adapterErr, ok := err.(*providers.Error)
	if !ok {
		t.Fatalf("ValidateLeague() error type = %T, want *providers.Error", err)
	}
	if adapterErr.Kind != providers.ErrorKindNotFound {
		t.Errorf("ValidateLeague() error kind = %v, want ErrorKindNotFound", adapterErr.Kind)
	}
}

func TestValidateLeagueAcceptsKnownFixture(t *testing.T) {
	a := New()
	if err := a.ValidateLeague(context.Background(), providers.Credential{}, "sample-league", "2026"); err != nil {
		t.Errorf("ValidateLeague() error = %v, want nil", err)
	}
}
