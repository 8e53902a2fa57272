package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/aharper42/fantasyplayoffs/models"
	"github.com/aharper42/fantasyplayoffs/providers"
	"github.com/aharper42/fantasyplayoffs/providers/fixture"
	"github.com/aharper42/fantasyplayoffs/runconfig"
	"github.com/aharper42/fantasyplayoffs/services"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON or YAML run config")
	leagueFlag := flag.String("league", "sample-league", "fixture league id under providers/fixture/testdata")
	seasonFlag := flag.String("season", "", "season identifier (platform-specific, e.g. year)")
	sportFlag := flag.String("sport", "", "sport identifier, for platforms hosting leagues across multiple sports")
	weekFlag := flag.Int("week", 12, "current week")
	trialsFlag := flag.Int("trials", 10000, "number of Monte Carlo trials")
	seedFlag := flag.Int64("seed", 0, "random seed (0 picks a time-based seed)")
	flag.Parse()

	cfg := runconfig.Config{
		Platform: "fixture",
		LeagueID: *leagueFlag,
		Season:   *seasonFlag,
		Sport:    *sportFlag,
		Trials:   *trialsFlag,
		Seed:     *seedFlag,
	}
	if *configPath != "" {
		loaded, err := runconfig.Load(*configPath)
		if err != nil {
			services.LogFatal(fmt.Sprintf("loading config: %v", err))
		}
		cfg = loaded
	}

	services.InitLogger(services.ParseLogLevel(cfg.LogLevel), cfg.LogFormat == "json", os.Stdout)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	adapter := fixture.New()
	runner := services.NewTaskRunner(adapter, 5*time.Minute)

	req := services.SimulationRequest{LeagueID: cfg.LeagueID, Season: cfg.Season, Sport: cfg.Sport, Week: *weekFlag}
	task := runner.Start(context.Background(), providers.Credential{}, req, cfg.Trials, seed)

	for task.Status() == services.TaskPending || task.Status() == services.TaskRunning {
		time.Sleep(20 * time.Millisecond)
	}

	result, err := task.Result()
	if err != nil {
		services.LogFatal(fmt.Sprintf("simulation failed: %v", err))
	}

	printResult(*result)
}

func printResult(result models.SimulationResult) {
	fmt.Printf("%s — week %d of %d (%d/%d trials)\n\n",
		result.LeagueName, result.Week, result.TotalWeeks, result.SimulationsRun, result.SimulationsRequested)

	teams := append([]models.TeamResult(nil), result.Teams...)
	sort.Slice(teams, func(i, j int) bool { return teams[i].PlayoffPct > teams[j].PlayoffPct })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TEAM\tRECORD\tDIV\tPLAYOFF%\t#1 SEED%\tLAST%\tMAGIC (DIV/PO/#1/LAST)")
	for _, t := range teams {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.1f\t%.1f\t%s/%s/%s/%s\n",
			t.TeamName, t.Record, t.DivRecord, t.PlayoffPct, t.FirstSeedPct, t.LastPlacePct,
			magicStr(t.MagicNumbers.Division), magicStr(t.MagicNumbers.Playoffs),
			magicStr(t.MagicNumbers.FirstSeed), magicStr(t.MagicNumbers.Last))
	}
	w.Flush()

	if len(result.ClinchScenarios) > 0 {
		fmt.Println("\nClinch scenarios:")
		for _, s := range result.ClinchScenarios {
			fmt.Println("  " + s)
		}
	}
	if len(result.EliminationScenarios) > 0 {
		fmt.Println("\nElimination scenarios:")
		for _, s := range result.EliminationScenarios {
			fmt.Println("  " + s)
		}
	}
}

func magicStr(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}
