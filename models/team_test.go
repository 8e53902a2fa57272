package models

import "testing"

func TestTeamWinPct(t *testing.T) {
	tests := []struct {
		name string
		team Team
		want float64
	}{
		{"no games played", Team{}, 0},
		{"all wins", Team{Wins: 10}, 1.0},
		{"all losses", Team{Losses: 10}, 0},
		{"ties count half", Team{Wins: 1, Ties: 2}, 2.0 / 3.0},
		{"mixed record", Team{Wins: 6, Losses: 3, Ties: 1}, 6.5 / 10.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.team.WinPct(); got != tt.want {
				t.Errorf("WinPct() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTeamRecordWinLoss(t *testing.T) {
	team := Team{Wins: 2, Losses: 1, DivWins: 1, DivLosses: 1}

	team.RecordWin(true)
	if team.Wins != 3 || team.DivWins != 2 {
		t.Errorf("after division win, got Wins=%d DivWins=%d, want 3, 2", team.Wins, team.DivWins)
	}

	team.RecordLoss(false)
	if team.Losses != 2 || team.DivLosses != 1 {
		t.Errorf("after non-division loss, got Losses=%d DivLosses=%d, want 2, 1", team.Losses, team.DivLosses)
	}
}

func TestTeamCopyIsIndependent(t *testing.T) {
	original := Team{ID: 1, Wins: 5}
	copy := original.Copy()
	copy.RecordWin(false)

	if original.Wins != 5 {
		t.Errorf("Copy mutated original: Wins = %d, want 5", original.Wins)
	}
	if copy.Wins != 6 {
		t.Errorf("copy.Wins = %d, want 6", copy.Wins)
	}
}
