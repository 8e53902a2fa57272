package models

// LeagueSettings holds the league-wide configuration needed by the core:
// how many teams make the playoffs, how many divisions exist, and how long
// the regular season runs.
type LeagueSettings struct {
	LeagueName    string
	PlayoffSpots  int
	NumDivisions  int
	TotalWeeks    int
}

// SimulationTally accumulates per-team Monte Carlo outcome counts across
// all trials of a single simulation run. Every counter is incremented at
// most once per trial.
type SimulationTally struct {
	TeamID            int
	DivisionChampions int
	PlayoffBerths     int
	FirstSeeds        int
	LastPlace         int
}
