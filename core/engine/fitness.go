package engine

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Fitness is the scored breakdown of one completed attempt. Score is the
// single ranking scalar; lower is better.
type Fitness struct {
	// Variance is the population variance of total weekly hours across
	// teachers with at least one eligible lesson.
	Variance float64 `json:"variance"`
	// TotalGaps counts empty periods strictly between a teacher's first and
	// last occupied period of a day, summed over all teacher-days.
	TotalGaps int `json:"totalGaps"`
	// ShortDays counts teacher-days with some but too few periods.
	ShortDays int     `json:"shortDayPenalty"`
	Score     float64 `json:"score"`
}

// fitnessEvaluator scores a completed attempt from the tracker's workload
// snapshot.
type fitnessEvaluator struct {
	cfg  Config
	idx  *inputIndex
	days int
}

func newFitnessEvaluator(cfg Config, idx *inputIndex, days int) *fitnessEvaluator {
	return &fitnessEvaluator{cfg: cfg, idx: idx, days: days}
}

func (f *fitnessEvaluator) evaluate(tracker *ConflictTracker) Fitness {
	var fit Fitness

	loads := make([]float64, 0, len(f.idx.eligibleTeacherIDs))
	for _, tid := range f.idx.eligibleTeacherIDs {
		load := tracker.Load(tid)
		loads = append(loads, float64(load.Total))
		if load.Total == 0 {
			continue
		}
		for day := 1; day <= f.days; day++ {
			periods := tracker.BusyPeriods(tid, day)
			if len(periods) == 0 {
				continue
			}
			sort.Ints(periods)
			span := periods[len(periods)-1] - periods[0] + 1
			fit.TotalGaps += span - len(periods)
			if len(periods) < f.cfg.MinPeriodsPerDay {
				fit.ShortDays++
			}
		}
	}
	if len(loads) > 0 {
		fit.Variance = stat.PopVariance(loads, nil)
	}
	fit.Score = fit.Variance + f.cfg.GapWeight*float64(fit.TotalGaps) + f.cfg.ShortDayWeight*float64(fit.ShortDays)
	return fit
}
