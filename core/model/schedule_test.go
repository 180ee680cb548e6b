package model

import (
	"encoding/json"
	"testing"
)

func entry(lesson, dal string, grade int, slot TimeSlot) ScheduledEntry {
	return ScheduledEntry{
		LessonID:      lesson,
		LessonName:    lesson,
		TeacherIDs:    []string{"t1"},
		TeacherNames:  []string{"Teacher One"},
		LocationIDs:   []string{"r1"},
		LocationNames: []string{"Room One"},
		Slot:          slot,
		DalID:         dal,
		SinifSeviyesi: grade,
	}
}

func TestSchedulePutRejectsCohortDoubleBooking(t *testing.T) {
	s := NewSchedule()
	slot := TimeSlot{Day: 1, Period: 1}
	if !s.Put(entry("math", "bilisim", 9, slot)) {
		t.Fatalf("first entry rejected")
	}
	if s.Put(entry("physics", "bilisim", 9, slot)) {
		t.Fatalf("second entry for same cohort and slot must be rejected")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}
}

func TestSchedulePutAllowsDifferentCohortsSameSlot(t *testing.T) {
	s := NewSchedule()
	slot := TimeSlot{Day: 2, Period: 3}
	if !s.Put(entry("math", "bilisim", 9, slot)) {
		t.Fatalf("first entry rejected")
	}
	if !s.Put(entry("turkish", "muhasebe", 10, slot)) {
		t.Fatalf("different cohort must be allowed in the same slot")
	}
	if got := len(s.AtSlot(slot)); got != 2 {
		t.Fatalf("expected 2 entries at slot, got %d", got)
	}
}

func TestScheduleEntriesOrdered(t *testing.T) {
	s := NewSchedule()
	s.Put(entry("c", "d", 9, TimeSlot{Day: 3, Period: 1}))
	s.Put(entry("a", "d", 9, TimeSlot{Day: 1, Period: 2}))
	s.Put(entry("b", "d", 9, TimeSlot{Day: 1, Period: 9}))
	entries := s.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].LessonID != "a" || entries[1].LessonID != "b" || entries[2].LessonID != "c" {
		t.Fatalf("entries not ordered by day/period: %v", entries)
	}
}

func TestScheduleMarshalJSON(t *testing.T) {
	s := NewSchedule()
	s.Put(entry("math", "bilisim", 9, TimeSlot{Day: 1, Period: 4}))
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string][]ScheduledEntry
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, ok := out["1-4"]
	if !ok || len(got) != 1 || got[0].LessonID != "math" {
		t.Fatalf("unexpected payload: %s", data)
	}
}
