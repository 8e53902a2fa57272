package services

import (
	"testing"

	"github.com/aharper42/fantasyplayoffs/models"
)

func TestBuildResultComputesPercentagesFromTrialsRun(t *testing.T) {
	snap := models.LeagueSnapshot{
		Teams: map[int]models.Team{
			1: {ID: 1, Name: "Alpha", DivisionID: 1, Wins: 8, Losses: 4},
		},
		Settings:    models.LeagueSettings{LeagueName: "Test League", PlayoffSpots: 1, TotalWeeks: 14},
		CurrentWeek: 10,
	}
	outcome := SimulationOutcome{
		Tallies: map[int]*models.SimulationTally{
			1: {TeamID: 1, PlayoffBerths: 40, FirstSeeds: 10, LastPlace: 0},
		},
		TrialsRequested: 100,
		TrialsRun:       50, // cancelled early: percentages must use the 50 actually run
	}

	result := BuildResult(snap, outcome, map[int]models.MagicNumbers{}, []string{"clinch"}, []string{"elim"})

	if result.SimulationsRun != 50 || result.SimulationsRequested != 100 {
		t.Fatalf("result trial counts = %d/%d, want 50/100", result.SimulationsRun, result.SimulationsRequested)
	}
	if len(result.Teams) != 1 {
		t.Fatalf("len(result.Teams) = %d, want 1", len(result.Teams))
	}
	team := result.Teams[0]
	if team.PlayoffPct != 80 {
		t.Errorf("PlayoffPct = %v, want 80 (40/50 * 100)", team.PlayoffPct)
	}
	if team.FirstSeedPct != 20 {
		t.Errorf("FirstSeedPct = %v, want 20 (10/50 * 100)", team.FirstSeedPct)
	}
	if team.Record != "8-4-0" {
		t.Errorf("Record = %q, want 8-4-0", team.Record)
	}
	if len(result.ClinchScenarios) != 1 || len(result.EliminationScenarios) != 1 {
		t.Errorf("scenario lists were not passed through unchanged: %v / %v", result.ClinchScenarios, result.EliminationScenarios)
	}
}

func TestBuildResultWithZeroTrialsRunReportsZeroPercentages(t *testing.T) {
	snap := models.LeagueSnapshot{
		Teams: map[int]models.Team{1: {ID: 1, Name: "Alpha"}},
	}
	outcome := SimulationOutcome{
		Tallies:         map[int]*models.SimulationTally{1: {TeamID: 1}},
		TrialsRequested: 10,
		TrialsRun:       0,
	}

	result := BuildResult(snap, outcome, map[int]models.MagicNumbers{}, nil, nil)
	if result.Teams[0].PlayoffPct != 0 {
		t.Errorf("PlayoffPct = %v, want 0 when no trials completed", result.Teams[0].PlayoffPct)
	}
}

func TestSummarizeSpreadEmptyResult(t *testing.T) {
	spread := SummarizeSpread(models.SimulationResult{})
	if spread != (PlayoffOddsSpread{}) {
		t.Errorf("SummarizeSpread(empty) = %+v, want zero value", spread)
	}
}

func TestSummarizeSpreadComputesMedianAndMean(t *testing.T) {
	result := models.SimulationResult{
		Teams: []models.TeamResult{
			{PlayoffPct: 0},
			{PlayoffPct: 50},
			{PlayoffPct: 100},
		},
	}
	spread := SummarizeSpread(result)

	if spread.Median != 50 {
		t.Errorf("Median = %v, want 50", spread.Median)
	}
	if spread.Mean != 50 {
		t.Errorf("Mean = %v, want 50", spread.Mean)
	}
}
