package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/EngindalgaMaku/dersplan/core/model"
)

// attemptState tracks the lifecycle of one scheduling attempt.
type attemptState int

const (
	statePending attemptState = iota
	stateInProgress
	stateSuccess
	statePartial
)

func (s attemptState) String() string {
	switch s {
	case statePending:
		return "PENDING"
	case stateInProgress:
		return "IN_PROGRESS"
	case stateSuccess:
		return "SUCCESS"
	case statePartial:
		return "PARTIAL"
	default:
		return "UNKNOWN"
	}
}

// workUnit is one consumable chunk of a lesson: a single hour for splittable
// lessons, the whole weekly block otherwise.
type workUnit struct {
	lesson model.LessonScheduleData
	hours  int
}

// attemptResult is everything one attempt produces.
type attemptResult struct {
	index           int
	state           attemptState
	schedule        *model.Schedule
	tracker         *ConflictTracker
	unassigned      []model.UnassignedLesson
	unassignedHours int
	fitness         Fitness
	logs            []string
	err             error
}

// greedyAssigner drives one complete attempt: it explodes lessons into work
// units, orders them most-constrained-first, places each via the candidate
// generator and commits to its own tracker. Units that find no placement get
// one retry pass with reshuffled order before their hours count as
// unassigned.
type greedyAssigner struct {
	input   *model.SchedulerInput
	idx     *inputIndex
	rng     *rand.Rand
	gen     *candidateGenerator
	tracker *ConflictTracker

	schedule *model.Schedule
	state    attemptState
	logs     []string

	// satisfiedRequired tracks which (teacher, lesson) obligations from the
	// required-assignments map have been met so far.
	satisfiedRequired map[string]map[string]bool
}

func newGreedyAssigner(input *model.SchedulerInput, idx *inputIndex, rng *rand.Rand) *greedyAssigner {
	return &greedyAssigner{
		input:             input,
		idx:               idx,
		rng:               rng,
		gen:               newCandidateGenerator(idx, input.Grid, rng),
		tracker:           NewConflictTracker(input),
		schedule:          model.NewSchedule(),
		state:             statePending,
		satisfiedRequired: make(map[string]map[string]bool),
	}
}

func (a *greedyAssigner) logf(format string, args ...any) {
	a.logs = append(a.logs, fmt.Sprintf(format, args...))
}

// run executes the attempt and returns its result. The index is only used
// for reporting.
func (a *greedyAssigner) run(index int) attemptResult {
	for lid := range a.idx.mismatched {
		a.logf("warning: lesson %s: possible-teacher list disagrees with assignable whitelists, using intersection", lid)
	}

	units := a.buildUnits()
	a.state = stateInProgress

	deferred := a.processUnits(units, "first pass")
	if len(deferred) > 0 {
		a.rng.Shuffle(len(deferred), func(i, j int) { deferred[i], deferred[j] = deferred[j], deferred[i] })
		deferred = a.processUnits(deferred, "retry pass")
	}

	remaining := make(map[string]int)
	for _, u := range deferred {
		remaining[u.lesson.ID] += u.hours
		a.logf("unassigned: lesson %s (%s) dropped %d hour(s), no legal placement", u.lesson.ID, u.lesson.Name, u.hours)
	}
	var unassigned []model.UnassignedLesson
	total := 0
	for _, l := range a.input.Lessons {
		if h := remaining[l.ID]; h > 0 {
			unassigned = append(unassigned, model.UnassignedLesson{LessonID: l.ID, LessonName: l.Name, RemainingHours: h})
			total += h
		}
	}

	if total == 0 && a.requiredSatisfied() {
		a.state = stateSuccess
	} else {
		a.state = statePartial
	}
	a.logf("attempt finished in state %s with %d unassigned hour(s)", a.state, total)

	return attemptResult{
		index:           index,
		state:           a.state,
		schedule:        a.schedule,
		tracker:         a.tracker,
		unassigned:      unassigned,
		unassignedHours: total,
		logs:            a.logs,
	}
}

// buildUnits explodes every schedulable lesson into work units and orders
// them most constrained first: multi-resource lessons, then fewer eligible
// teachers, then fewer suitable lab types. Ties keep a random order so
// attempts explore different sequences.
func (a *greedyAssigner) buildUnits() []workUnit {
	var units []workUnit
	for _, l := range a.input.Lessons {
		if !l.NeedsScheduling {
			continue
		}
		if l.CanSplit {
			for i := 0; i < l.WeeklyHours; i++ {
				units = append(units, workUnit{lesson: l, hours: 1})
			}
		} else {
			units = append(units, workUnit{lesson: l, hours: l.WeeklyHours})
		}
	}
	a.rng.Shuffle(len(units), func(i, j int) { units[i], units[j] = units[j], units[i] })
	sort.SliceStable(units, func(i, j int) bool {
		li, lj := units[i].lesson, units[j].lesson
		if li.RequiresMultipleResources != lj.RequiresMultipleResources {
			return li.RequiresMultipleResources
		}
		ei, ej := len(a.idx.eligible[li.ID]), len(a.idx.eligible[lj.ID])
		if ei != ej {
			return ei < ej
		}
		return len(li.SuitableLabTypeIDs) < len(lj.SuitableLabTypeIDs)
	})
	return units
}

// processUnits places each unit, committing the first candidate of the
// generator's randomized list. Units with no candidate are returned for the
// caller to retry or drop.
func (a *greedyAssigner) processUnits(units []workUnit, pass string) []workUnit {
	var deferred []workUnit
	for _, u := range units {
		cands := a.gen.candidatesFor(u.lesson, u.hours, a.tracker)
		if len(cands) == 0 {
			a.logf("deferred: lesson %s (%s) %dh unit found no candidate on %s", u.lesson.ID, u.lesson.Name, u.hours, pass)
			deferred = append(deferred, u)
			continue
		}
		a.commit(u, cands[0])
	}
	return deferred
}

// commit books every slot of the unit's block for the chosen candidate.
func (a *greedyAssigner) commit(u workUnit, c candidate) {
	teacherNames := make([]string, len(c.teacherIDs))
	for i, tid := range c.teacherIDs {
		teacherNames[i] = a.idx.teachers[tid].Name
	}
	locationNames := make([]string, len(c.locationIDs))
	for i, lid := range c.locationIDs {
		locationNames[i] = a.idx.locations[lid].Name
	}
	for _, slot := range blockSlots(c.slot, u.hours) {
		entry := model.ScheduledEntry{
			LessonID:      u.lesson.ID,
			LessonName:    u.lesson.Name,
			TeacherIDs:    c.teacherIDs,
			TeacherNames:  teacherNames,
			LocationIDs:   c.locationIDs,
			LocationNames: locationNames,
			Slot:          slot,
			DalID:         u.lesson.DalID,
			SinifSeviyesi: u.lesson.SinifSeviyesi,
		}
		if !a.tracker.IsFree(c.teacherIDs, c.locationIDs, entry.CohortKey(), slot) {
			panic(fmt.Sprintf("assigner: candidate for lesson %s no longer free at %s", u.lesson.ID, slot))
		}
		a.tracker.Commit(entry)
		if !a.schedule.Put(entry) {
			panic(fmt.Sprintf("assigner: slot %s already holds an entry for cohort %s", slot, entry.CohortKey()))
		}
		a.logf("placed: lesson %s (%s) at %s with teachers %v in %v", u.lesson.ID, u.lesson.Name, slot, teacherNames, locationNames)
	}
	for _, tid := range c.teacherIDs {
		if a.idx.requiredBy[u.lesson.ID][tid] {
			if a.satisfiedRequired[tid] == nil {
				a.satisfiedRequired[tid] = make(map[string]bool)
			}
			a.satisfiedRequired[tid][u.lesson.ID] = true
		}
	}
}

// requiredSatisfied reports whether every obligation in the required
// assignments map ended up in the schedule.
func (a *greedyAssigner) requiredSatisfied() bool {
	for tid, lessons := range a.input.RequiredAssignments {
		for lid := range lessons {
			if !a.satisfiedRequired[tid][lid] {
				a.logf("required assignment unmet: teacher %s never teaches lesson %s", tid, lid)
				return false
			}
		}
	}
	return true
}
