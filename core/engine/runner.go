package engine

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/EngindalgaMaku/dersplan/core/events"
	"github.com/EngindalgaMaku/dersplan/core/logger"
	"github.com/EngindalgaMaku/dersplan/core/model"
	"github.com/EngindalgaMaku/dersplan/internal/eventbus"
)

// BestSchedulerResult is the outcome of a best-of-N run. The caller always
// receives one: every failure mode is carried in its fields and nothing
// panics past this boundary. Success is false only when the input was
// rejected or every single attempt failed internally; unassigned hours alone
// do not clear the flag.
type BestSchedulerResult struct {
	Success             bool                     `json:"success"`
	BestSchedule        *model.Schedule          `json:"bestSchedule,omitempty"`
	UnassignedLessons   []model.UnassignedLesson `json:"unassignedLessons,omitempty"`
	AttemptsMade        int                      `json:"attemptsMade"`
	SuccessfulAttempts  int                      `json:"successfulAttempts"`
	MinFitnessScore     float64                  `json:"minFitnessScore"`
	BestVariance        float64                  `json:"bestVariance"`
	BestTotalGaps       int                      `json:"bestTotalGaps"`
	BestShortDayPenalty int                      `json:"bestShortDayPenalty"`
	Logs                []string                 `json:"logs,omitempty"`
	Error               string                   `json:"error,omitempty"`
}

// Runner orchestrates N independent scheduling attempts and keeps the best.
type Runner struct {
	cfg Config
	log logger.Logger
	bus eventbus.EventBus
}

// Option customises a Runner.
type Option func(*Runner)

// WithEventBus makes the runner publish progress events on the bus.
func WithEventBus(bus eventbus.EventBus) Option {
	return func(r *Runner) { r.bus = bus }
}

// NewRunner creates a Runner. Defaults are applied to the configuration
// before validation.
func NewRunner(cfg Config, log logger.Logger, opts ...Option) (*Runner, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	r := &Runner{cfg: cfg, log: log}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// DefaultAttempts returns the configured attempt count for callers that do
// not specify one.
func (r *Runner) DefaultAttempts() int { return r.cfg.DefaultAttempts }

func (r *Runner) publish(e eventbus.Event) {
	if r.bus != nil {
		r.bus.Publish(e)
	}
}

// FindBestSchedule runs up to attempts independent greedy attempts against
// the input and returns the best result. Attempts share nothing mutable:
// each owns its tracker, schedule, log buffer and random source seeded with
// Seed+index. Cancellation is coarse-grained: the context is consulted
// before each attempt starts, never mid-attempt.
func (r *Runner) FindBestSchedule(ctx context.Context, input *model.SchedulerInput, attempts int) BestSchedulerResult {
	start := time.Now()
	runID := uuid.NewString()
	runsTotal.Inc()

	if attempts < 1 {
		return r.configFailure(fmt.Sprintf("attempts must be at least 1, got %d", attempts))
	}
	if err := input.Validate(); err != nil {
		return r.configFailure(err.Error())
	}

	r.log.Infof("run %s: starting %d attempts", runID, attempts)
	r.publish(events.RunStartedEvent{RunID: runID, Attempts: attempts})

	idx := newInputIndex(input)
	eval := newFitnessEvaluator(r.cfg, idx, input.Grid.Days)
	baseSeed := r.cfg.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	workers := r.cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers > attempts {
		workers = attempts
	}

	results := make([]*attemptResult, attempts)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res := r.runAttempt(input, idx, eval, baseSeed, i)
				results[i] = &res
				r.publishAttempt(runID, res)
			}
		}()
	}
	dispatched := 0
dispatch:
	for i := 0; i < attempts; i++ {
		select {
		case <-ctx.Done():
			r.log.Warnf("run %s: cancelled after dispatching %d attempts", runID, dispatched)
			break dispatch
		case jobs <- i:
			dispatched++
		}
	}
	close(jobs)
	wg.Wait()

	return r.collect(runID, results[:dispatched], start)
}

func (r *Runner) configFailure(msg string) BestSchedulerResult {
	r.log.Errorf("invalid scheduler input: %s", msg)
	return BestSchedulerResult{Success: false, Error: msg}
}

// runAttempt executes one attempt, converting any panic into an attempt
// error so a single bad attempt never sinks the run.
func (r *Runner) runAttempt(input *model.SchedulerInput, idx *inputIndex, eval *fitnessEvaluator, baseSeed int64, index int) (res attemptResult) {
	defer func() {
		if p := recover(); p != nil {
			res = attemptResult{index: index, err: fmt.Errorf("attempt %d panicked: %v", index, p)}
		}
	}()
	rng := rand.New(rand.NewSource(baseSeed + int64(index)))
	assigner := newGreedyAssigner(input, idx, rng)
	res = assigner.run(index)
	res.fitness = eval.evaluate(res.tracker)
	return res
}

func (r *Runner) publishAttempt(runID string, res attemptResult) {
	if res.err != nil {
		attemptsTotal.WithLabelValues("error").Inc()
		r.log.Errorf("run %s: %v", runID, res.err)
		r.publish(events.AttemptFinishedEvent{RunID: runID, Index: res.index, State: "ERROR", Err: res.err})
		return
	}
	attemptsTotal.WithLabelValues(res.state.String()).Inc()
	r.log.Debugw("attempt finished", map[string]any{
		"run":        runID,
		"attempt":    res.index,
		"state":      res.state.String(),
		"unassigned": res.unassignedHours,
		"fitness":    res.fitness.Score,
	})
	r.publish(events.AttemptFinishedEvent{
		RunID:           runID,
		Index:           res.index,
		State:           res.state.String(),
		UnassignedHours: res.unassignedHours,
		FitnessScore:    res.fitness.Score,
	})
}

// better reports whether a should be preferred over b. Successful attempts
// beat partial ones; then fewer unassigned hours win, then the lower fitness
// score. Results arrive in index order, so ties keep the earlier attempt.
func better(a, b *attemptResult) bool {
	if (a.state == stateSuccess) != (b.state == stateSuccess) {
		return a.state == stateSuccess
	}
	if a.unassignedHours != b.unassignedHours {
		return a.unassignedHours < b.unassignedHours
	}
	return a.fitness.Score < b.fitness.Score
}

func (r *Runner) collect(runID string, results []*attemptResult, start time.Time) BestSchedulerResult {
	out := BestSchedulerResult{}
	var best *attemptResult
	failed := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		out.AttemptsMade++
		if res.err != nil {
			failed++
			out.Logs = append(out.Logs, res.err.Error())
			continue
		}
		if res.state == stateSuccess {
			out.SuccessfulAttempts++
		}
		out.Logs = append(out.Logs, fmt.Sprintf(
			"attempt %d: state=%s unassigned=%dh fitness=%.3f (variance=%.3f gaps=%d shortDays=%d)",
			res.index, res.state, res.unassignedHours, res.fitness.Score,
			res.fitness.Variance, res.fitness.TotalGaps, res.fitness.ShortDays))
		if best == nil || better(res, best) {
			best = res
			r.publish(events.BestImprovedEvent{
				RunID:           runID,
				Index:           res.index,
				UnassignedHours: res.unassignedHours,
				FitnessScore:    res.fitness.Score,
			})
		}
	}

	if best == nil {
		msg := "no attempt produced a schedule"
		if out.AttemptsMade == 0 {
			msg = "run cancelled before any attempt started"
		} else if failed == out.AttemptsMade {
			msg = fmt.Sprintf("all %d attempts failed internally", failed)
		}
		out.Error = msg
		r.log.Errorf("run %s: %s", runID, msg)
		r.publish(events.RunFinishedEvent{RunID: runID, Success: false, AttemptsMade: out.AttemptsMade})
		return out
	}

	out.Success = true
	out.BestSchedule = best.schedule
	out.UnassignedLessons = best.unassigned
	out.MinFitnessScore = best.fitness.Score
	out.BestVariance = best.fitness.Variance
	out.BestTotalGaps = best.fitness.TotalGaps
	out.BestShortDayPenalty = best.fitness.ShortDays
	out.Logs = append(out.Logs, best.logs...)

	bestFitnessScore.Set(best.fitness.Score)
	unassignedHoursGauge.Set(float64(best.unassignedHours))
	runDuration.Observe(time.Since(start).Seconds())

	r.log.Infof("run %s: best attempt %d state=%s unassigned=%dh fitness=%.3f (%d/%d successful)",
		runID, best.index, best.state, best.unassignedHours, best.fitness.Score,
		out.SuccessfulAttempts, out.AttemptsMade)
	r.publish(events.RunFinishedEvent{
		RunID:              runID,
		Success:            true,
		AttemptsMade:       out.AttemptsMade,
		SuccessfulAttempts: out.SuccessfulAttempts,
		MinFitnessScore:    out.MinFitnessScore,
	})
	return out
}
