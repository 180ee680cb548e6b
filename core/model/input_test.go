package model

import (
	"strings"
	"testing"
)

func validInput() *SchedulerInput {
	return &SchedulerInput{
		Grid: DefaultGrid(),
		Teachers: []TeacherScheduleData{
			{ID: "t1", Name: "Ayşe", AssignableLessonIDs: []string{"l1"}},
		},
		Lessons: []LessonScheduleData{
			{ID: "l1", Name: "Matematik", DalID: "bilisim", SinifSeviyesi: 9,
				WeeklyHours: 2, CanSplit: true, NeedsScheduling: true,
				PossibleTeacherIDs: []string{"t1"}},
		},
		Locations: []LocationScheduleData{
			{ID: "r1", Name: "Sınıf 9A"},
		},
	}
}

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	if err := validInput().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SchedulerInput)
		want   string
	}{
		{"nil grid", func(in *SchedulerInput) { in.Grid = nil }, "empty time grid"},
		{"unknown teacher ref", func(in *SchedulerInput) {
			in.Lessons[0].PossibleTeacherIDs = []string{"ghost"}
		}, "unknown teacher"},
		{"unknown lesson ref", func(in *SchedulerInput) {
			in.Teachers[0].AssignableLessonIDs = []string{"ghost"}
		}, "unknown lesson"},
		{"zero weekly hours", func(in *SchedulerInput) {
			in.Lessons[0].WeeklyHours = 0
		}, "weekly hours"},
		{"negative weekly hours", func(in *SchedulerInput) {
			in.Lessons[0].NeedsScheduling = false
			in.Lessons[0].WeeklyHours = -1
		}, "negative weekly hours"},
		{"duplicate teacher", func(in *SchedulerInput) {
			in.Teachers = append(in.Teachers, in.Teachers[0])
		}, "duplicate teacher"},
		{"slot outside grid", func(in *SchedulerInput) {
			in.Teachers[0].UnavailableSlots = []TimeSlot{{Day: 9, Period: 1}}
		}, "outside grid"},
		{"required for unknown teacher", func(in *SchedulerInput) {
			in.RequiredAssignments = map[string]map[string]bool{"ghost": {"l1": true}}
		}, "unknown teacher"},
		{"required unknown lesson", func(in *SchedulerInput) {
			in.RequiredAssignments = map[string]map[string]bool{"t1": {"ghost": true}}
		}, "unknown lesson"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := validInput()
			c.mutate(in)
			err := in.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("error %q does not mention %q", err, c.want)
			}
		})
	}
}

func TestValidateAllowsUnscheduledLessonWithoutHours(t *testing.T) {
	in := validInput()
	in.Lessons = append(in.Lessons, LessonScheduleData{
		ID: "club", Name: "Kulüp", DalID: "bilisim", SinifSeviyesi: 9,
		NeedsScheduling: false,
	})
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
