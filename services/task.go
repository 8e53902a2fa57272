package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/aharper42/fantasyplayoffs/models"
	"github.com/aharper42/fantasyplayoffs/providers"
)

// TaskStatus is a task's position in its lifecycle.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskCompleted
	TaskFailed
)

func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskRunning:
		return "running"
	case TaskCompleted:
		return "completed"
	case TaskFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task tracks one simulation run end to end: pending until a worker picks
// it up, running while fetch/simulate are in progress, then completed or
// failed. Progress is reported on [0,100]: [0,50) covers fetching and
// preparing the snapshot from the provider, [50,100] covers the Monte
// Carlo run itself.
type Task struct {
	mu       sync.RWMutex
	status   TaskStatus
	progress float64
	result   *models.SimulationResult
	err      error
	cancel   context.CancelFunc
}

func (t *Task) Status() TaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *Task) Progress() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.progress
}

func (t *Task) Result() (*models.SimulationResult, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.result, t.err
}

// Cancel requests cooperative cancellation. The task stops at the next
// trial boundary inside Simulate and finishes as TaskFailed with a
// KindCancelled CoreError.
func (t *Task) Cancel() {
	t.mu.RLock()
	cancel := t.cancel
	t.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
}

func (t *Task) setProgress(band func(pct float64) float64, pct float64) {
	t.mu.Lock()
	t.progress = band(pct)
	t.mu.Unlock()
}

func (t *Task) finish(result *models.SimulationResult, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.status = TaskFailed
		t.err = err
		return
	}
	t.status = TaskCompleted
	t.result = result
	t.progress = 100
}

// SimulationRequest identifies one simulation run: which league, season,
// and sport to pull from an Adapter, and which week to project forward
// from. Sport exists because a platform (e.g. ESPN) hosts leagues across
// more than one sport under the same credential; it doesn't reach the
// Adapter itself (every adapter method already commits to one sport's
// shape of data) but distinguishes otherwise-identical cache entries.
type SimulationRequest struct {
	LeagueID string
	Season   string
	Sport    string
	Week     int
}

// cacheKey identifies a cacheable simulation result: the same platform,
// league, season, sport, and week should reuse a recent result rather than
// resimulate.
type cacheKey struct {
	Platform string
	LeagueID string
	Season   string
	Sport    string
	Week     int
}

// TaskRunner fetches a league snapshot through an Adapter and runs a
// simulation, tracking progress through a Task and caching results
// in-memory for cacheTTL. The cache is deliberately non-persistent:
// restarting the process clears it, since durable storage is out of scope
// for the simulation core.
type TaskRunner struct {
	adapter providers.Adapter
	cacheTTL time.Duration

	mu    sync.Mutex
	cache map[cacheKey]cachedResult
}

type cachedResult struct {
	result    models.SimulationResult
	cachedAt  time.Time
}

// NewTaskRunner builds a TaskRunner backed by adapter, caching results for
// cacheTTL before a subsequent request triggers a fresh simulation.
func NewTaskRunner(adapter providers.Adapter, cacheTTL time.Duration) *TaskRunner {
	return &TaskRunner{
		adapter:  adapter,
		cacheTTL: cacheTTL,
		cache:    make(map[cacheKey]cachedResult),
	}
}

// Start begins a simulation task in the background and returns immediately
// with a handle the caller can poll for progress and, eventually, a result.
func (r *TaskRunner) Start(parent context.Context, cred providers.Credential, req SimulationRequest, trials int, seed int64) *Task {
	ctx, cancel := context.WithCancel(parent)
	task := &Task{status: TaskPending, cancel: cancel}

	go func() {
		task.mu.Lock()
		task.status = TaskRunning
		task.mu.Unlock()

		result, err := r.run(ctx, task, cred, req, trials, seed)
		task.finish(result, err)
	}()

	return task
}

func (r *TaskRunner) run(ctx context.Context, task *Task, cred providers.Credential, req SimulationRequest, trials int, seed int64) (*models.SimulationResult, error) {
	platform := r.adapter.Name()
	key := cacheKey{Platform: platform, LeagueID: req.LeagueID, Season: req.Season, Sport: req.Sport, Week: req.Week}
	if cached, ok := r.cached(key); ok {
		task.setProgress(fetchBand, 100)
		task.setProgress(simulateBand, 100)
		return &cached, nil
	}

	fetchProgress := func(pct float64) { task.setProgress(fetchBand, pct) }

	teams, divisionNames, err := r.adapter.FetchStandings(ctx, cred, req.LeagueID, req.Season)
	if err != nil {
		wrapped := WrapErrorWithProvider(err, "fetch standings", platform)
		GetLogger().ErrorFields("fetch standings failed", map[string]interface{}{"platform": platform, "league_id": req.LeagueID, "error": err.Error()})
		return nil, models.NewUpstreamError(platform, "fetch standings", wrapped)
	}
	fetchProgress(25)

	remaining, err := r.adapter.FetchSchedule(ctx, cred, req.LeagueID, req.Season)
	if err != nil {
		wrapped := WrapErrorWithProvider(err, "fetch schedule", platform)
		GetLogger().ErrorFields("fetch schedule failed", map[string]interface{}{"platform": platform, "league_id": req.LeagueID, "error": err.Error()})
		return nil, models.NewUpstreamError(platform, "fetch schedule", wrapped)
	}
	fetchProgress(50)

	h2h, err := r.adapter.FetchHeadToHead(ctx, cred, req.LeagueID, req.Season)
	if err != nil {
		wrapped := WrapErrorWithProvider(err, "fetch head-to-head", platform)
		GetLogger().ErrorFields("fetch head-to-head failed", map[string]interface{}{"platform": platform, "league_id": req.LeagueID, "error": err.Error()})
		return nil, models.NewUpstreamError(platform, "fetch head-to-head", wrapped)
	}
	fetchProgress(75)

	settings, err := r.adapter.FetchLeagueSettings(ctx, cred, req.LeagueID, req.Season)
	if err != nil {
		wrapped := WrapErrorWithProvider(err, "fetch league settings", platform)
		GetLogger().ErrorFields("fetch league settings failed", map[string]interface{}{"platform": platform, "league_id": req.LeagueID, "error": err.Error()})
		return nil, models.NewUpstreamError(platform, "fetch league settings", wrapped)
	}
	fetchProgress(100)

	snap := models.LeagueSnapshot{
		Teams:         teams,
		DivisionNames: divisionNames,
		Remaining:     remaining,
		CurrentWeek:   req.Week,
		TotalWeeks:    settings.TotalWeeks,
		H2H:           h2h,
		Settings:      settings,
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		GetLogger().WarnFields("simulation run cancelled before starting", map[string]interface{}{"platform": platform, "league_id": req.LeagueID})
		return nil, models.WrapCoreError(models.KindCancelled, "simulation run cancelled", ctx.Err())
	}

	rng := rand.New(rand.NewSource(seed))
	outcome := Simulate(ctx, snap, trials, rng, func(pct float64) { task.setProgress(simulateBand, pct) })

	magicNumbers := CalculateMagicNumbers(snap)
	clinch, elimination := GenerateScenarios(snap, magicNumbers, rng, nil)

	result := BuildResult(snap, outcome, magicNumbers, clinch, elimination)

	if outcome.TrialsRun < outcome.TrialsRequested {
		r.mu.Lock()
		delete(r.cache, key)
		r.mu.Unlock()
		GetLogger().WarnFields("simulation stopped before completion", map[string]interface{}{
			"platform": platform, "league_id": req.LeagueID, "trials_run": outcome.TrialsRun, "trials_requested": outcome.TrialsRequested,
		})
		return &result, models.WrapCoreError(models.KindCancelled, "simulation stopped before completion", ctx.Err())
	}

	r.store(key, result)
	return &result, nil
}

func (r *TaskRunner) cached(key cacheKey) (models.SimulationResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.cache[key]
	if !ok || time.Since(entry.cachedAt) > r.cacheTTL {
		return models.SimulationResult{}, false
	}
	return entry.result, true
}

func (r *TaskRunner) store(key cacheKey, result models.SimulationResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[key] = cachedResult{result: result, cachedAt: time.Now()}
}

// fetchBand maps a [0,100] fetch-phase percentage onto [0,50) of the
// task's overall progress.
func fetchBand(pct float64) float64 {
	return pct / 100 * 50
}

// simulateBand maps a [0,100] simulate-phase percentage onto [50,100] of
// the task's overall progress.
func simulateBand(pct float64) float64 {
	return 50 + pct/100*50
}
