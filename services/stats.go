package services

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aharper42/fantasyplayoffs/models"
)

// BuildResult turns a raw SimulationOutcome into the percentage-bearing
// result surface a host reports to a user. Percentages are the tally
// divided by trials actually run, not trials requested, so a cancelled run
// still reports honest odds for whatever sample it completed.
func BuildResult(snap models.LeagueSnapshot, outcome SimulationOutcome, magicNumbers map[int]models.MagicNumbers, clinch, elimination []string) models.SimulationResult {
	trials := float64(outcome.TrialsRun)

	teamResults := make([]models.TeamResult, 0, len(snap.Teams))
	for id, team := range snap.Teams {
		tally := outcome.Tallies[id]

		magic := magicNumbers[id]

		var playoffPct, firstSeedPct, lastPlacePct float64
		if trials > 0 {
			playoffPct = clampPct(float64(tally.PlayoffBerths)/trials*100, magic.Playoffs)
			firstSeedPct = clampPct(float64(tally.FirstSeeds)/trials*100, magic.FirstSeed)
			lastPlacePct = clampPct(float64(tally.LastPlace)/trials*100, magic.Last)
		}

		teamResults = append(teamResults, models.TeamResult{
			TeamID:       id,
			TeamName:     team.Name,
			DivisionID:   team.DivisionID,
			Record:       team.RecordString(),
			DivRecord:    team.DivRecordString(),
			WinPct:       team.WinPct(),
			DivWinPct:    team.DivWinPct(),
			PlayoffPct:   playoffPct,
			FirstSeedPct: firstSeedPct,
			LastPlacePct: lastPlacePct,
			MagicNumbers: magic,
		})
	}

	return models.SimulationResult{
		LeagueName:           snap.Settings.LeagueName,
		Week:                 snap.CurrentWeek,
		TotalWeeks:           snap.Settings.TotalWeeks,
		SimulationsRequested: outcome.TrialsRequested,
		SimulationsRun:       outcome.TrialsRun,
		Teams:                teamResults,
		ClinchScenarios:      clinch,
		EliminationScenarios: elimination,
	}
}

// clampPct caps a Monte Carlo frequency at 99.9% whenever the matching
// magic number shows the category isn't mathematically clinched yet
// (non-nil) but every trial happened to land on the favorable side anyway.
// A nil magic number means the category is already decided on paper, so
// the raw frequency (100, in that case) stands.
func clampPct(pct float64, magicNumber *int) float64 {
	if magicNumber != nil && pct >= 99.95 {
		return 99.9
	}
	return pct
}

// PlayoffOddsSpread summarises the distribution of playoff probabilities
// across a result's teams: the median, and the 10th/90th percentile band,
// which a host can use to flag an unusually competitive or lopsided league.
type PlayoffOddsSpread struct {
	Median float64
	P10    float64
	P90    float64
	Mean   float64
}

// SummarizeSpread computes PlayoffOddsSpread over a result's playoff
// percentages using gonum's quantile and statistics helpers.
func SummarizeSpread(result models.SimulationResult) PlayoffOddsSpread {
	if len(result.Teams) == 0 {
		return PlayoffOddsSpread{}
	}
	pcts := make([]float64, len(result.Teams))
	for i, t := range result.Teams {
		pcts[i] = t.PlayoffPct
	}
	sorted := append([]float64(nil), pcts...)
	floats.Sort(sorted)

	return PlayoffOddsSpread{
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P10:    stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.90, stat.Empirical, sorted, nil),
		Mean:   stat.Mean(sorted, nil),
	}
}
