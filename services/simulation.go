package services

import (
	"context"
	"math/rand"
	"sort"

	"github.com/aharper42/fantasyplayoffs/models"
)

// ProgressFunc reports a run's completion percentage, 0 through 100.
// Simulate calls it after every 100 completed trials and once more when the
// run stops (so the last value can repeat) and, per spec section 6.3, the
// caller is responsible for remapping this [0,100] domain onto whatever
// band the simulation phase occupies in a larger task's lifecycle.
type ProgressFunc func(percent float64)

// SimulationOutcome is the per-team Monte Carlo tally produced by one call
// to Simulate, before it's folded into percentages for a SimulationResult.
type SimulationOutcome struct {
	Tallies         map[int]*models.SimulationTally
	TrialsRequested int
	TrialsRun       int
}

// Simulate runs n independent season simulations from snap's current
// standings, each resolving every remaining matchup by an independent coin
// flip and recording, per team, whether it won its division, made the
// playoffs, earned the #1 seed, or finished in last place once a trial's
// remaining games are fully decided. rng seeds the run: the same snapshot,
// n, and rng produce the same tallies every time, which is what lets tests
// fix a seed and assert exact outcome counts.
//
// The run is single-threaded: one trial after another, all drawing from
// the single rng passed in. Trial order (and so the sequence of numbers
// rng produces) is fixed by n alone, which is what makes the tallies
// reproducible for a given seed — splitting trials across goroutines would
// make trial-to-worker assignment, and therefore which prefix of rng's
// stream each trial consumes, depend on goroutine scheduling.
//
// ctx is checked between trials; a cancelled context stops the run early
// and TrialsRun in the returned outcome will be less than n.
func Simulate(ctx context.Context, snap models.LeagueSnapshot, n int, rng *rand.Rand, progress ProgressFunc) SimulationOutcome {
	tallies := make(map[int]*models.SimulationTally, len(snap.Teams))
	for id := range snap.Teams {
		tallies[id] = &models.SimulationTally{TeamID: id}
	}
	outcome := SimulationOutcome{Tallies: tallies, TrialsRequested: n}
	if n <= 0 {
		return outcome
	}

	WithFields(map[string]interface{}{"trials": n, "teams": len(snap.Teams)}).Info("simulation started")

	completed := 0
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}

		trial := runTrial(snap, rng)
		recordTrial(tallies, trial)
		completed++

		if progress != nil && completed%100 == 0 {
			progress(float64(completed) / float64(n) * 100)
		}
	}

	outcome.TrialsRun = completed
	if progress != nil {
		progress(float64(completed) / float64(n) * 100)
	}

	if completed < n {
		WithFields(map[string]interface{}{"trials_run": completed, "trials_requested": n}).Warn("simulation stopped before completion")
	} else {
		WithFields(map[string]interface{}{"trials_run": completed}).Info("simulation finished")
	}
	return outcome
}

// trialResult is what one simulated season produces, before aggregation.
type trialResult struct {
	divisionWinners []int
	playoffTeams    []int
	lastPlaceID     int
}

// runTrial decides every remaining matchup by an independent coin flip,
// then determines playoffs and last place from the resulting standings.
func runTrial(snap models.LeagueSnapshot, rng *rand.Rand) trialResult {
	outcomes := make(outcomeAssignment, len(snap.Remaining))
	for i, m := range snap.Remaining {
		if rng.Intn(2) == 0 {
			outcomes[i] = m.HomeID
		} else {
			outcomes[i] = m.AwayID
		}
	}

	simTeams, simH2H := applyOutcome(snap.Teams, snap.Remaining, outcomes)

	playoffTeams, divisionWinners := DeterminePlayoffs(simTeams, snap.H2H, simH2H, snap.Settings.PlayoffSpots, rng, nil, nil)

	allTeams := make([]models.Team, 0, len(simTeams))
	for _, t := range simTeams {
		allTeams = append(allTeams, t)
	}
	worstPct := allTeams[0].WinPct()
	for _, t := range allTeams {
		if t.WinPct() < worstPct {
			worstPct = t.WinPct()
		}
	}
	var tiedForLast []models.Team
	for _, t := range allTeams {
		if t.WinPct() == worstPct {
			tiedForLast = append(tiedForLast, t)
		}
	}
	sort.Slice(tiedForLast, func(i, j int) bool { return tiedForLast[i].ID < tiedForLast[j].ID })

	var lastPlaceID int
	if len(tiedForLast) > 1 {
		resolved := ResolveTiebreaker(tiedForLast, snap.H2H, simH2H, rng, nil, nil)
		lastPlaceID = resolved[len(resolved)-1].ID
	} else {
		lastPlaceID = tiedForLast[0].ID
	}

	return trialResult{
		divisionWinners: divisionWinners,
		playoffTeams:    playoffTeams,
		lastPlaceID:     lastPlaceID,
	}
}

func recordTrial(tallies map[int]*models.SimulationTally, trial trialResult) {
	for _, id := range trial.divisionWinners {
		tallies[id].DivisionChampions++
	}
	for _, id := range trial.playoffTeams {
		tallies[id].PlayoffBerths++
	}
	if len(trial.playoffTeams) > 0 {
		tallies[trial.playoffTeams[0]].FirstSeeds++
	}
	tallies[trial.lastPlaceID].LastPlace++
}
