package engine

import (
	"fmt"

	"github.com/EngindalgaMaku/dersplan/core/model"
)

// TeacherLoad is the running workload of one teacher within an attempt.
type TeacherLoad struct {
	Total  int
	PerDay []int // indexed by day-1
}

// ConflictTracker records which teachers, locations and cohorts occupy which
// slots during one attempt, giving O(1) conflict queries. Each attempt owns
// exactly one tracker; nothing here is safe for concurrent use.
//
// All ids must be registered at construction from the scheduler input.
// Querying an unknown id panics: it means the data-preparation layer produced
// an inconsistent input, which is a programming error, not a user error.
type ConflictTracker struct {
	days         int
	teacherBusy  map[string]map[model.TimeSlot]bool
	locationBusy map[string]map[model.TimeSlot]bool
	cohortBusy   map[string]map[model.TimeSlot]bool
	teacherLoad  map[string]*TeacherLoad
}

// NewConflictTracker creates a tracker pre-registered with every teacher,
// location and cohort present in the input.
func NewConflictTracker(in *model.SchedulerInput) *ConflictTracker {
	t := &ConflictTracker{
		days:         in.Grid.Days,
		teacherBusy:  make(map[string]map[model.TimeSlot]bool, len(in.Teachers)),
		locationBusy: make(map[string]map[model.TimeSlot]bool, len(in.Locations)),
		cohortBusy:   make(map[string]map[model.TimeSlot]bool),
		teacherLoad:  make(map[string]*TeacherLoad, len(in.Teachers)),
	}
	for _, teacher := range in.Teachers {
		t.teacherBusy[teacher.ID] = make(map[model.TimeSlot]bool)
		t.teacherLoad[teacher.ID] = &TeacherLoad{PerDay: make([]int, in.Grid.Days)}
	}
	for _, loc := range in.Locations {
		t.locationBusy[loc.ID] = make(map[model.TimeSlot]bool)
	}
	for _, l := range in.Lessons {
		key := l.CohortKey()
		if _, ok := t.cohortBusy[key]; !ok {
			t.cohortBusy[key] = make(map[model.TimeSlot]bool)
		}
	}
	return t
}

func (t *ConflictTracker) teacher(id string) map[model.TimeSlot]bool {
	m, ok := t.teacherBusy[id]
	if !ok {
		panic(fmt.Sprintf("conflict tracker: unknown teacher id %q", id))
	}
	return m
}

func (t *ConflictTracker) location(id string) map[model.TimeSlot]bool {
	m, ok := t.locationBusy[id]
	if !ok {
		panic(fmt.Sprintf("conflict tracker: unknown location id %q", id))
	}
	return m
}

func (t *ConflictTracker) cohort(key string) map[model.TimeSlot]bool {
	m, ok := t.cohortBusy[key]
	if !ok {
		panic(fmt.Sprintf("conflict tracker: unknown cohort %q", key))
	}
	return m
}

// IsFree reports whether every given teacher and location, and the cohort,
// are unoccupied at the slot. An empty cohort key skips the cohort check,
// which lets callers probe individual resources.
func (t *ConflictTracker) IsFree(teacherIDs, locationIDs []string, cohortKey string, slot model.TimeSlot) bool {
	for _, id := range teacherIDs {
		if t.teacher(id)[slot] {
			return false
		}
	}
	for _, id := range locationIDs {
		if t.location(id)[slot] {
			return false
		}
	}
	if cohortKey == "" {
		return true
	}
	return !t.cohort(cohortKey)[slot]
}

// Commit marks every resource of the entry busy at its slot and updates the
// involved teachers' loads. The caller must have confirmed IsFree immediately
// before; Commit and that check form one atomic step within an attempt.
func (t *ConflictTracker) Commit(e model.ScheduledEntry) {
	for _, id := range e.TeacherIDs {
		t.teacher(id)[e.Slot] = true
		load := t.teacherLoad[id]
		load.Total++
		load.PerDay[e.Slot.Day-1]++
	}
	for _, id := range e.LocationIDs {
		t.location(id)[e.Slot] = true
	}
	t.cohort(e.CohortKey())[e.Slot] = true
}

// Release undoes a previous Commit of the same entry. Used by backtracking.
func (t *ConflictTracker) Release(e model.ScheduledEntry) {
	for _, id := range e.TeacherIDs {
		delete(t.teacher(id), e.Slot)
		load := t.teacherLoad[id]
		load.Total--
		load.PerDay[e.Slot.Day-1]--
	}
	for _, id := range e.LocationIDs {
		delete(t.location(id), e.Slot)
	}
	delete(t.cohort(e.CohortKey()), e.Slot)
}

// Load returns the current workload of the teacher.
func (t *ConflictTracker) Load(teacherID string) TeacherLoad {
	load, ok := t.teacherLoad[teacherID]
	if !ok {
		panic(fmt.Sprintf("conflict tracker: unknown teacher id %q", teacherID))
	}
	cp := TeacherLoad{Total: load.Total, PerDay: append([]int(nil), load.PerDay...)}
	return cp
}

// BusyPeriods returns the occupied periods of the teacher on the given day,
// unsorted.
func (t *ConflictTracker) BusyPeriods(teacherID string, day int) []int {
	var periods []int
	for slot := range t.teacher(teacherID) {
		if slot.Day == day {
			periods = append(periods, slot.Period)
		}
	}
	return periods
}
