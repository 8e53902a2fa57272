package models

import "fmt"

// Team is a fantasy league franchise as of the current week: its identity,
// division, and accumulated regular-season record. Team is immutable once
// built from provider data; Copy is the only sanctioned route to a mutable
// per-trial version (services.Simulate operates exclusively on copies).
type Team struct {
	ID         int
	Name       string
	DivisionID int // 0 means the league has no divisions

	Wins   int
	Losses int
	Ties   int

	DivWins   int
	DivLosses int
	DivTies   int
}

// Copy returns an independent Team the simulator can mutate.
func (t Team) Copy() Team {
	return t
}

// EffectiveWins is W + 0.5T, the numerator of WinPct.
func (t Team) EffectiveWins() float64 {
	return float64(t.Wins) + 0.5*float64(t.Ties)
}

// WinPct is (W + 0.5T) / (W+L+T), or 0 with no games played.
func (t Team) WinPct() float64 {
	total := t.Wins + t.Losses + t.Ties
	if total == 0 {
		return 0
	}
	return t.EffectiveWins() / float64(total)
}

// DivEffectiveWins is the division-games analogue of EffectiveWins.
func (t Team) DivEffectiveWins() float64 {
	return float64(t.DivWins) + 0.5*float64(t.DivTies)
}

// DivWinPct is the intra-division analogue of WinPct.
func (t Team) DivWinPct() float64 {
	total := t.DivWins + t.DivLosses + t.DivTies
	if total == 0 {
		return 0
	}
	return t.DivEffectiveWins() / float64(total)
}

// RecordString renders "W-L-T".
func (t Team) RecordString() string {
	return fmt.Sprintf("%d-%d-%d", t.Wins, t.Losses, t.Ties)
}

// DivRecordString renders "Wd-Ld-Td".
func (t Team) DivRecordString() string {
	return fmt.Sprintf("%d-%d-%d", t.DivWins, t.DivLosses, t.DivTies)
}

// RecordWin applies a win to t, crediting the division counters too when
// the game was a division game. Used only on per-trial copies.
func (t *Team) RecordWin(isDivisionGame bool) {
	t.Wins++
	if isDivisionGame {
		t.DivWins++
	}
}

// RecordLoss is RecordWin's counterpart.
func (t *Team) RecordLoss(isDivisionGame bool) {
	t.Losses++
	if isDivisionGame {
		t.DivLosses++
	}
}
