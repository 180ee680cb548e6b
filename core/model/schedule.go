package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// CohortKey combines a dal and a grade level into the identifier of a student
// cohort. Two lessons sharing a cohort can never occupy the same slot.
func CohortKey(dalID string, sinifSeviyesi int) string {
	return fmt.Sprintf("%s:%d", dalID, sinifSeviyesi)
}

// ScheduledEntry is one committed assignment: a lesson occupying a slot with
// its teachers and locations. TeacherIDs and LocationIDs hold more than one
// element for lessons that require multiple simultaneous resources.
type ScheduledEntry struct {
	LessonID      string   `json:"lessonId"`
	LessonName    string   `json:"lessonName"`
	TeacherIDs    []string `json:"teacherIds"`
	TeacherNames  []string `json:"teacherNames"`
	LocationIDs   []string `json:"locationIds"`
	LocationNames []string `json:"locationNames"`
	Slot          TimeSlot `json:"timeSlot"`
	DalID         string   `json:"dalId"`
	SinifSeviyesi int      `json:"sinifSeviyesi"`
}

// CohortKey returns the cohort identifier of the entry's lesson.
func (e ScheduledEntry) CohortKey() string {
	return CohortKey(e.DalID, e.SinifSeviyesi)
}

type entryKey struct {
	cohort string
	slot   TimeSlot
}

// Schedule holds the committed entries of one attempt, keyed by cohort and
// slot. A cohort occupies a slot at most once; the key structure makes a
// second occupant impossible by construction. Entries of different cohorts
// may share a slot as long as their teachers and locations are disjoint,
// which the conflict tracker guarantees before anything is committed here.
type Schedule struct {
	entries map[entryKey]ScheduledEntry
}

// NewSchedule creates an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{entries: make(map[entryKey]ScheduledEntry)}
}

// Put stores the entry. It returns false and leaves the schedule unchanged if
// the entry's cohort already occupies the slot.
func (s *Schedule) Put(e ScheduledEntry) bool {
	k := entryKey{cohort: e.CohortKey(), slot: e.Slot}
	if _, ok := s.entries[k]; ok {
		return false
	}
	s.entries[k] = e
	return true
}

// AtSlot returns every entry occupying the slot, ordered by cohort.
func (s *Schedule) AtSlot(slot TimeSlot) []ScheduledEntry {
	var out []ScheduledEntry
	for k, e := range s.entries {
		if k.slot == slot {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CohortKey() < out[j].CohortKey() })
	return out
}

// Len returns the number of committed entries.
func (s *Schedule) Len() int {
	return len(s.entries)
}

// MarshalJSON renders the schedule as a map keyed "day-period", each slot
// holding its entries. This is the shape downstream consumers persist.
func (s *Schedule) MarshalJSON() ([]byte, error) {
	out := make(map[string][]ScheduledEntry, len(s.entries))
	for _, e := range s.Entries() {
		key := e.Slot.String()
		out[key] = append(out[key], e)
	}
	return json.Marshal(out)
}

// Entries returns all entries ordered by day, period and cohort, suitable for
// rendering and for stable comparison in tests.
func (s *Schedule) Entries() []ScheduledEntry {
	out := make([]ScheduledEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Slot.Day != out[j].Slot.Day {
			return out[i].Slot.Day < out[j].Slot.Day
		}
		if out[i].Slot.Period != out[j].Slot.Period {
			return out[i].Slot.Period < out[j].Slot.Period
		}
		return out[i].CohortKey() < out[j].CohortKey()
	})
	return out
}
