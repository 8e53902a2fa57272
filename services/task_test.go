package services

import (
	"context"
	"testing"
	"time"

	"github.com/aharper42/fantasyplayoffs/models"
	"github.com/aharper42/fantasyplayoffs/providers"
)

// stubAdapter is a minimal in-memory providers.Adapter for exercising
// TaskRunner without any network or fixture-parsing dependency.
type stubAdapter struct {
	fetchCalls int
	settings   models.LeagueSettings
}

func (s *stubAdapter) Name() string { return "stub" }

func (s *stubAdapter) ValidateLeague(ctx context.Context, cred providers.Credential, leagueID, season string) error {
	return nil
}

func (s *stubAdapter) FetchStandings(ctx context.Context, cred providers.Credential, leagueID, season string) (map[int]models.Team, map[int]string, error) {
	s.fetchCalls++
	teams := map[int]models.Team{
		1: {ID: 1, Name: "Alpha", DivisionID: 1, Wins: 8, Losses: 4},
		2: {ID: 2, Name: "Beta", DivisionID: 1, Wins: 6, Losses: 6},
	}
	return teams, map[int]string{1: "North"}, nil
}

func (s *stubAdapter) FetchSchedule(ctx context.Context, cred providers.Credential, leagueID, season string) ([]models.Matchup, error) {
	return []models.Matchup{{HomeID: 1, AwayID: 2, Week: 13, IsDivisionGame: true}}, nil
}

func (s *stubAdapter) FetchHeadToHead(ctx context.Context, cred providers.Credential, leagueID, season string) (models.H2H, error) {
	return models.NewH2H(), nil
}

func (s *stubAdapter) FetchLeagueSettings(ctx context.Context, cred providers.Credential, leagueID, season string) (models.LeagueSettings, error) {
	if s.settings.TotalWeeks == 0 {
		s.settings = models.LeagueSettings{LeagueName: "Stub League", PlayoffSpots: 1, NumDivisions: 1, TotalWeeks: 13}
	}
	return s.settings, nil
}

func waitForTask(t *testing.T, task *Task) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		switch task.Status() {
		case TaskCompleted, TaskFailed:
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("task did not finish before the test deadline")
}

func TestTaskRunnerCompletesAndCaches(t *testing.T) {
	adapter := &stubAdapter{}
	runner := NewTaskRunner(adapter, time.Minute)

	task := runner.Start(context.Background(), providers.Credential{}, SimulationRequest{LeagueID: "league-1", Week: 13}, 50, 1)
	waitForTask(t, task)

	if task.Status() != TaskCompleted {
		_, err := task.Result()
		t.Fatalf("task status = %v, want completed; error = %v", task.Status(), err)
	}
	result, err := task.Result()
	if err != nil {
		t.Fatalf("Result() error = %v, want nil", err)
	}
	if result.SimulationsRun != 50 {
		t.Errorf("SimulationsRun = %d, want 50", result.SimulationsRun)
	}

	if adapter.fetchCalls != 1 {
		t.Fatalf("fetchCalls = %d, want 1 before the cache is exercised", adapter.fetchCalls)
	}

	// Same platform/league/week within the TTL should hit the cache instead
	// of calling FetchStandings again.
	second := runner.Start(context.Background(), providers.Credential{}, SimulationRequest{LeagueID: "league-1", Week: 13}, 50, 2)
	waitForTask(t, second)
	if adapter.fetchCalls != 1 {
		t.Errorf("fetchCalls after a repeat request = %d, want 1 (cache hit)", adapter.fetchCalls)
	}
}

func TestTaskRunnerCancellation(t *testing.T) {
	adapter := &stubAdapter{}
	runner := NewTaskRunner(adapter, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := runner.Start(ctx, providers.Credential{}, SimulationRequest{LeagueID: "league-2", Week: 13}, 1000, 1)
	waitForTask(t, task)

	if task.Status() != TaskFailed {
		t.Fatalf("task status = %v, want failed after cancellation", task.Status())
	}
	_, err := task.Result()
	if !models.IsKind(err, models.KindCancelled) {
		t.Errorf("Result() error = %v, want a KindCancelled CoreError", err)
	}
}

func TestTaskStatusString(t *testing.T) {
	cases := []struct {
		status TaskStatus
		want   string
	}{
		{TaskPending, "pending"},
		{TaskRunning, "running"},
		{TaskCompleted, "completed"},
		{TaskFailed, "failed"},
	}
	for _, c := range cases {
		if got := c.status.String(); got != c.want {
			t.Errorf("%v.String() = %q, want %q", int(c.status), got, c.want)
		}
	}
}
