package engine

import (
	"math/rand"
	"sort"

	"github.com/EngindalgaMaku/dersplan/core/model"
)

// candidate is one legal placement for a work unit: the teachers and
// locations to occupy and the slot the unit starts at. Multi-hour blocks
// extend over consecutive periods following the slot on the same day.
type candidate struct {
	teacherIDs  []string
	locationIDs []string
	slot        model.TimeSlot
}

// inputIndex holds lookup structures derived once from the scheduler input
// and shared read-only by all attempts.
type inputIndex struct {
	teachers    map[string]model.TeacherScheduleData
	locations   map[string]model.LocationScheduleData
	unavailable map[string]map[model.TimeSlot]bool
	// assignable maps teacher id to the set of lesson ids the teacher may
	// take, flattened from required/excluded assignment rows upstream.
	assignable map[string]map[string]bool
	// eligible maps lesson id to the intersection of the lesson's possible
	// teachers and the teachers listing the lesson as assignable.
	eligible map[string][]string
	// mismatched lists lessons whose possible-teacher list disagrees with
	// the assignable whitelists. The intersection wins; the disagreement is
	// only worth a warning.
	mismatched map[string]bool
	// requiredBy maps lesson id to the teachers contractually required to
	// teach it.
	requiredBy map[string]map[string]bool
	// eligibleTeacherIDs lists teachers with at least one eligible
	// schedulable lesson. Only these enter the workload variance.
	eligibleTeacherIDs []string
	plainRooms         []string
	roomsByLab         map[string][]string
}

func newInputIndex(in *model.SchedulerInput) *inputIndex {
	idx := &inputIndex{
		teachers:    make(map[string]model.TeacherScheduleData, len(in.Teachers)),
		locations:   make(map[string]model.LocationScheduleData, len(in.Locations)),
		unavailable: make(map[string]map[model.TimeSlot]bool, len(in.Teachers)),
		assignable:  make(map[string]map[string]bool, len(in.Teachers)),
		eligible:    make(map[string][]string, len(in.Lessons)),
		mismatched:  make(map[string]bool),
		requiredBy:  make(map[string]map[string]bool),
		roomsByLab:  make(map[string][]string),
	}
	for _, t := range in.Teachers {
		idx.teachers[t.ID] = t
		slots := make(map[model.TimeSlot]bool, len(t.UnavailableSlots))
		for _, s := range t.UnavailableSlots {
			slots[s] = true
		}
		idx.unavailable[t.ID] = slots
		lessons := make(map[string]bool, len(t.AssignableLessonIDs))
		for _, lid := range t.AssignableLessonIDs {
			lessons[lid] = true
		}
		idx.assignable[t.ID] = lessons
	}
	for _, loc := range in.Locations {
		idx.locations[loc.ID] = loc
		if loc.LabTypeID == "" {
			idx.plainRooms = append(idx.plainRooms, loc.ID)
		} else {
			idx.roomsByLab[loc.LabTypeID] = append(idx.roomsByLab[loc.LabTypeID], loc.ID)
		}
	}
	for tid, lessons := range in.RequiredAssignments {
		for lid := range lessons {
			if idx.requiredBy[lid] == nil {
				idx.requiredBy[lid] = make(map[string]bool)
			}
			idx.requiredBy[lid][tid] = true
		}
	}
	seen := make(map[string]bool)
	for _, l := range in.Lessons {
		var both []string
		for _, tid := range l.PossibleTeacherIDs {
			if idx.assignable[tid][l.ID] {
				both = append(both, tid)
			} else {
				idx.mismatched[l.ID] = true
			}
		}
		idx.eligible[l.ID] = both
		if l.NeedsScheduling {
			for _, tid := range both {
				if !seen[tid] {
					seen[tid] = true
					idx.eligibleTeacherIDs = append(idx.eligibleTeacherIDs, tid)
				}
			}
		}
	}
	sort.Strings(idx.eligibleTeacherIDs)
	return idx
}

// roomsFor returns the location pool a lesson may use: lab rooms of any
// suitable type, or every plain classroom when the lesson has no lab
// requirement.
func (idx *inputIndex) roomsFor(l model.LessonScheduleData) []string {
	if len(l.SuitableLabTypeIDs) == 0 {
		return idx.plainRooms
	}
	var rooms []string
	for _, labType := range l.SuitableLabTypeIDs {
		rooms = append(rooms, idx.roomsByLab[labType]...)
	}
	return rooms
}

// candidateGenerator enumerates legal placements for one attempt. It owns the
// attempt's random source so attempts stay independent.
type candidateGenerator struct {
	idx  *inputIndex
	grid *model.TimeGrid
	rng  *rand.Rand
}

func newCandidateGenerator(idx *inputIndex, grid *model.TimeGrid, rng *rand.Rand) *candidateGenerator {
	return &candidateGenerator{idx: idx, grid: grid, rng: rng}
}

// candidatesFor returns the legal (teachers, locations, slot) triples for one
// work unit of the lesson, in randomized order biased so that contractually
// required teachers are tried first. blockLen > 1 demands that many
// consecutive free periods on the same day. An empty result means the unit
// has no legal placement in the current tracker state.
func (g *candidateGenerator) candidatesFor(lesson model.LessonScheduleData, blockLen int, tracker *ConflictTracker) []candidate {
	teachers := g.orderedTeachers(lesson)
	if len(teachers) == 0 {
		return nil
	}
	needTeachers := 1
	if lesson.RequiresMultipleResources {
		needTeachers = 2
		if len(teachers) < 2 {
			return nil
		}
	}
	rooms := append([]string(nil), g.idx.roomsFor(lesson)...)
	if len(rooms) == 0 {
		return nil
	}
	needRooms := 1
	if lesson.RequiresMultipleResources && len(lesson.SuitableLabTypeIDs) > 0 {
		needRooms = 2
		if len(rooms) < 2 {
			return nil
		}
	}
	g.rng.Shuffle(len(rooms), func(i, j int) { rooms[i], rooms[j] = rooms[j], rooms[i] })

	cohort := lesson.CohortKey()
	var out []candidate
	for _, start := range g.shuffledStarts(blockLen) {
		block := blockSlots(start, blockLen)
		free := g.freeTeachers(teachers, block, tracker)
		if len(free) < needTeachers {
			continue
		}
		if busyCohort(tracker, cohort, block) {
			continue
		}
		for _, combo := range combos(free, needTeachers) {
			for _, roomCombo := range combos(rooms, needRooms) {
				if !blockFree(tracker, combo, roomCombo, cohort, block) {
					continue
				}
				out = append(out, candidate{teacherIDs: combo, locationIDs: roomCombo, slot: start})
			}
		}
	}
	return out
}

// orderedTeachers returns the eligible teachers for the lesson, shuffled,
// with required-assignment teachers moved to the front. Their sparse
// availability is the tightest constraint, so trying them first reduces
// backtracking.
func (g *candidateGenerator) orderedTeachers(lesson model.LessonScheduleData) []string {
	eligible := g.idx.eligible[lesson.ID]
	if len(eligible) == 0 {
		return nil
	}
	required := g.idx.requiredBy[lesson.ID]
	var front, rest []string
	for _, tid := range eligible {
		if required[tid] {
			front = append(front, tid)
		} else {
			rest = append(rest, tid)
		}
	}
	g.rng.Shuffle(len(front), func(i, j int) { front[i], front[j] = front[j], front[i] })
	g.rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	return append(front, rest...)
}

// shuffledStarts returns the grid slots that can start a block of blockLen
// consecutive periods, in random order.
func (g *candidateGenerator) shuffledStarts(blockLen int) []model.TimeSlot {
	var starts []model.TimeSlot
	for _, s := range g.grid.Slots() {
		if s.Period+blockLen-1 <= g.grid.Periods {
			starts = append(starts, s)
		}
	}
	g.rng.Shuffle(len(starts), func(i, j int) { starts[i], starts[j] = starts[j], starts[i] })
	return starts
}

// freeTeachers filters the ordered teacher list down to those both available
// (per their unavailable-slot list) and unoccupied for the whole block.
// Availability is checked before tracker state: it is the cheaper test and
// eliminates most candidates.
func (g *candidateGenerator) freeTeachers(ordered []string, block []model.TimeSlot, tracker *ConflictTracker) []string {
	var free []string
	for _, tid := range ordered {
		unavailable := g.idx.unavailable[tid]
		ok := true
		for _, s := range block {
			if unavailable[s] {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, s := range block {
			if !tracker.IsFree([]string{tid}, nil, "", s) {
				ok = false
				break
			}
		}
		if ok {
			free = append(free, tid)
		}
	}
	return free
}

// blockSlots expands a start slot into blockLen consecutive slots on the
// same day.
func blockSlots(start model.TimeSlot, blockLen int) []model.TimeSlot {
	block := make([]model.TimeSlot, blockLen)
	for i := range block {
		block[i] = model.TimeSlot{Day: start.Day, Period: start.Period + i}
	}
	return block
}

func busyCohort(tracker *ConflictTracker, cohort string, block []model.TimeSlot) bool {
	for _, s := range block {
		if !tracker.IsFree(nil, nil, cohort, s) {
			return true
		}
	}
	return false
}

// blockFree re-checks the full resource set over every slot of the block.
func blockFree(tracker *ConflictTracker, teacherIDs, locationIDs []string, cohort string, block []model.TimeSlot) bool {
	for _, s := range block {
		if !tracker.IsFree(teacherIDs, locationIDs, cohort, s) {
			return false
		}
	}
	return true
}

// combos enumerates the k-element combinations of ids, preserving order.
// Only k=1 and k=2 occur in practice.
func combos(ids []string, k int) [][]string {
	switch k {
	case 1:
		out := make([][]string, len(ids))
		for i, id := range ids {
			out[i] = []string{id}
		}
		return out
	case 2:
		var out [][]string
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				out = append(out, []string{ids[i], ids[j]})
			}
		}
		return out
	default:
		return nil
	}
}
