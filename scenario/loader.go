// Package scenario loads YAML-defined scheduling inputs with expected
// outcomes. The files drive both the QA test-suite and the one-shot CLI.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/EngindalgaMaku/dersplan/core/model"
)

type SlotDef struct {
	Day    int `yaml:"day"`
	Period int `yaml:"period"`
}

func (s SlotDef) ToModel() model.TimeSlot {
	return model.TimeSlot{Day: s.Day, Period: s.Period}
}

type TeacherDef struct {
	ID                string    `yaml:"id"`
	Name              string    `yaml:"name"`
	BranchID          string    `yaml:"branch_id,omitempty"`
	Unavailable       []SlotDef `yaml:"unavailable,omitempty"`
	AssignableLessons []string  `yaml:"assignable_lessons"`
}

func (t TeacherDef) ToModel() model.TeacherScheduleData {
	slots := make([]model.TimeSlot, len(t.Unavailable))
	for i, s := range t.Unavailable {
		slots[i] = s.ToModel()
	}
	return model.TeacherScheduleData{
		ID:                  t.ID,
		Name:                t.Name,
		BranchID:            t.BranchID,
		UnavailableSlots:    slots,
		AssignableLessonIDs: t.AssignableLessons,
	}
}

type LessonDef struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Dal             string   `yaml:"dal"`
	SinifSeviyesi   int      `yaml:"sinif_seviyesi"`
	WeeklyHours     int      `yaml:"weekly_hours"`
	CanSplit        bool     `yaml:"can_split"`
	MultiResource   bool     `yaml:"requires_multiple_resources,omitempty"`
	SkipScheduling  bool     `yaml:"skip_scheduling,omitempty"`
	SuitableLabs    []string `yaml:"suitable_labs,omitempty"`
	PossibleTeacher []string `yaml:"possible_teachers"`
}

func (l LessonDef) ToModel() model.LessonScheduleData {
	return model.LessonScheduleData{
		ID:                        l.ID,
		Name:                      l.Name,
		DalID:                     l.Dal,
		SinifSeviyesi:             l.SinifSeviyesi,
		WeeklyHours:               l.WeeklyHours,
		CanSplit:                  l.CanSplit,
		RequiresMultipleResources: l.MultiResource,
		NeedsScheduling:           !l.SkipScheduling,
		SuitableLabTypeIDs:        l.SuitableLabs,
		PossibleTeacherIDs:        l.PossibleTeacher,
	}
}

type LocationDef struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	LabType  string `yaml:"lab_type,omitempty"`
	Capacity int    `yaml:"capacity,omitempty"`
}

func (l LocationDef) ToModel() model.LocationScheduleData {
	return model.LocationScheduleData{ID: l.ID, Name: l.Name, LabTypeID: l.LabType, Capacity: l.Capacity}
}

// Expected states the outcome a scenario must reach.
type Expected struct {
	Success            bool `yaml:"success"`
	MaxUnassignedHours int  `yaml:"max_unassigned_hours"`
	MinEntries         int  `yaml:"min_entries"`
}

// Scenario is one self-contained scheduling problem with its expectations.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	GridDays    int           `yaml:"grid_days,omitempty"`
	GridPeriods int           `yaml:"grid_periods,omitempty"`
	Attempts    int           `yaml:"attempts,omitempty"`
	Teachers    []TeacherDef  `yaml:"teachers"`
	Lessons     []LessonDef   `yaml:"lessons"`
	Locations   []LocationDef `yaml:"locations"`
	// Required maps teacher id to the lessons the teacher must teach.
	Required map[string][]string `yaml:"required_assignments,omitempty"`
	Expected Expected            `yaml:"expected"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

// ToInput converts the scenario into a validated-shape scheduler input.
func (sc *Scenario) ToInput() *model.SchedulerInput {
	days, periods := sc.GridDays, sc.GridPeriods
	if days == 0 {
		days = 5
	}
	if periods == 0 {
		periods = 10
	}
	in := &model.SchedulerInput{Grid: model.NewTimeGrid(days, periods)}
	for _, t := range sc.Teachers {
		in.Teachers = append(in.Teachers, t.ToModel())
	}
	for _, l := range sc.Lessons {
		in.Lessons = append(in.Lessons, l.ToModel())
	}
	for _, loc := range sc.Locations {
		in.Locations = append(in.Locations, loc.ToModel())
	}
	if len(sc.Required) > 0 {
		in.RequiredAssignments = make(map[string]map[string]bool, len(sc.Required))
		for tid, lessons := range sc.Required {
			set := make(map[string]bool, len(lessons))
			for _, lid := range lessons {
				set[lid] = true
			}
			in.RequiredAssignments[tid] = set
		}
	}
	return in
}
