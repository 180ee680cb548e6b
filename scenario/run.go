package scenario

import (
	"context"
	"fmt"

	"github.com/EngindalgaMaku/dersplan/core/engine"
)

// Run executes the scenario against the runner and checks its expectations.
// The returned result is always non-nil so callers can inspect diagnostics
// even when an expectation failed.
func Run(ctx context.Context, runner *engine.Runner, sc *Scenario) (engine.BestSchedulerResult, error) {
	attempts := sc.Attempts
	if attempts == 0 {
		attempts = runner.DefaultAttempts()
	}
	res := runner.FindBestSchedule(ctx, sc.ToInput(), attempts)

	if res.Success != sc.Expected.Success {
		return res, fmt.Errorf("scenario %s: expected success=%v, got %v (%s)", sc.Name, sc.Expected.Success, res.Success, res.Error)
	}
	unassigned := 0
	for _, u := range res.UnassignedLessons {
		unassigned += u.RemainingHours
	}
	if unassigned > sc.Expected.MaxUnassignedHours {
		return res, fmt.Errorf("scenario %s: %d unassigned hours exceeds allowed %d", sc.Name, unassigned, sc.Expected.MaxUnassignedHours)
	}
	if res.BestSchedule != nil && res.BestSchedule.Len() < sc.Expected.MinEntries {
		return res, fmt.Errorf("scenario %s: schedule has %d entries, expected at least %d", sc.Name, res.BestSchedule.Len(), sc.Expected.MinEntries)
	}
	return res, nil
}
