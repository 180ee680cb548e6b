package model

import "fmt"

// TeacherScheduleData describes one teacher as seen by the engine.
// UnavailableSlots is authoritative: no candidate may ever place the teacher
// there. AssignableLessonIDs is the flattened feasibility whitelist derived
// from required/excluded assignment rows by the data-preparation layer.
type TeacherScheduleData struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	BranchID            string     `json:"branchId"`
	UnavailableSlots    []TimeSlot `json:"unavailableSlots"`
	AssignableLessonIDs []string   `json:"assignableLessonIds"`
}

// LessonScheduleData describes one lesson and its resource requirements.
// DalID and SinifSeviyesi together identify the student cohort attending it.
type LessonScheduleData struct {
	ID                        string   `json:"id"`
	Name                      string   `json:"name"`
	DalID                     string   `json:"dalId"`
	SinifSeviyesi             int      `json:"sinifSeviyesi"`
	WeeklyHours               int      `json:"weeklyHours"`
	CanSplit                  bool     `json:"canSplit"`
	RequiresMultipleResources bool     `json:"requiresMultipleResources"`
	NeedsScheduling           bool     `json:"needsScheduling"`
	SuitableLabTypeIDs        []string `json:"suitableLabTypeIds"`
	PossibleTeacherIDs        []string `json:"possibleTeacherIds"`
}

// CohortKey returns the cohort identifier of the lesson.
func (l LessonScheduleData) CohortKey() string {
	return CohortKey(l.DalID, l.SinifSeviyesi)
}

// LocationScheduleData describes one physical room. An empty LabTypeID marks
// a plain classroom; lessons without lab requirements may only use those.
type LocationScheduleData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	LabTypeID string `json:"labTypeId"`
	Capacity  int    `json:"capacity"`
}

// UnassignedLesson reports hours the engine could not place for a lesson.
type UnassignedLesson struct {
	LessonID       string `json:"lessonId"`
	LessonName     string `json:"lessonName"`
	RemainingHours int    `json:"remainingHours"`
}

// SchedulerInput aggregates everything one scheduling run needs. It is built
// once by the data-preparation layer, validated, and then treated as
// immutable: all attempts read it concurrently without copying.
type SchedulerInput struct {
	Teachers  []TeacherScheduleData  `json:"teachers"`
	Lessons   []LessonScheduleData   `json:"lessons"`
	Locations []LocationScheduleData `json:"locations"`
	Grid      *TimeGrid              `json:"-"`

	// RequiredAssignments maps a teacher id to the set of lesson ids the
	// teacher is contractually obligated to teach.
	RequiredAssignments map[string]map[string]bool `json:"requiredAssignmentsMap"`
}

// Validate checks referential integrity of the input. Any failure is a
// configuration error: the run aborts before a single attempt starts.
func (in *SchedulerInput) Validate() error {
	if in.Grid == nil || in.Grid.Len() == 0 {
		return fmt.Errorf("scheduler input: empty time grid")
	}
	teacherIDs := make(map[string]bool, len(in.Teachers))
	for _, t := range in.Teachers {
		if t.ID == "" {
			return fmt.Errorf("scheduler input: teacher with empty id")
		}
		if teacherIDs[t.ID] {
			return fmt.Errorf("scheduler input: duplicate teacher id %q", t.ID)
		}
		teacherIDs[t.ID] = true
		for _, s := range t.UnavailableSlots {
			if !in.Grid.Contains(s) {
				return fmt.Errorf("scheduler input: teacher %q unavailable slot %s outside grid", t.ID, s)
			}
		}
	}
	lessonIDs := make(map[string]bool, len(in.Lessons))
	for _, l := range in.Lessons {
		if l.ID == "" {
			return fmt.Errorf("scheduler input: lesson with empty id")
		}
		if lessonIDs[l.ID] {
			return fmt.Errorf("scheduler input: duplicate lesson id %q", l.ID)
		}
		lessonIDs[l.ID] = true
		if l.WeeklyHours < 0 {
			return fmt.Errorf("scheduler input: lesson %q has negative weekly hours", l.ID)
		}
		if l.NeedsScheduling && l.WeeklyHours <= 0 {
			return fmt.Errorf("scheduler input: lesson %q needs scheduling but has %d weekly hours", l.ID, l.WeeklyHours)
		}
		for _, tid := range l.PossibleTeacherIDs {
			if !teacherIDs[tid] {
				return fmt.Errorf("scheduler input: lesson %q references unknown teacher %q", l.ID, tid)
			}
		}
	}
	locationIDs := make(map[string]bool, len(in.Locations))
	for _, loc := range in.Locations {
		if loc.ID == "" {
			return fmt.Errorf("scheduler input: location with empty id")
		}
		if locationIDs[loc.ID] {
			return fmt.Errorf("scheduler input: duplicate location id %q", loc.ID)
		}
		locationIDs[loc.ID] = true
	}
	for _, t := range in.Teachers {
		for _, lid := range t.AssignableLessonIDs {
			if !lessonIDs[lid] {
				return fmt.Errorf("scheduler input: teacher %q lists unknown lesson %q", t.ID, lid)
			}
		}
	}
	for tid, lessons := range in.RequiredAssignments {
		if !teacherIDs[tid] {
			return fmt.Errorf("scheduler input: required assignment for unknown teacher %q", tid)
		}
		for lid := range lessons {
			if !lessonIDs[lid] {
				return fmt.Errorf("scheduler input: required assignment of unknown lesson %q to teacher %q", lid, tid)
			}
		}
	}
	return nil
}

// Teacher returns the teacher with the given id.
func (in *SchedulerInput) Teacher(id string) (TeacherScheduleData, bool) {
	for _, t := range in.Teachers {
		if t.ID == id {
			return t, true
		}
	}
	return TeacherScheduleData{}, false
}

// Lesson returns the lesson with the given id.
func (in *SchedulerInput) Lesson(id string) (LessonScheduleData, bool) {
	for _, l := range in.Lessons {
		if l.ID == id {
			return l, true
		}
	}
	return LessonScheduleData{}, false
}
