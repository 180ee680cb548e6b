package engine

import (
	"math/rand"

	"github.com/EngindalgaMaku/dersplan/core/model"
)

// newTestInput builds a small consistent input: two teachers, one plain
// classroom and one computer lab, nothing scheduled yet.
func newTestInput() *model.SchedulerInput {
	return &model.SchedulerInput{
		Grid: model.DefaultGrid(),
		Teachers: []model.TeacherScheduleData{
			{ID: "t1", Name: "Ayşe Yılmaz", BranchID: "math", AssignableLessonIDs: []string{"l1", "l2"}},
			{ID: "t2", Name: "Mehmet Demir", BranchID: "cs", AssignableLessonIDs: []string{"l1", "l2"}},
		},
		Lessons: []model.LessonScheduleData{
			{ID: "l1", Name: "Matematik", DalID: "bilisim", SinifSeviyesi: 9,
				WeeklyHours: 2, CanSplit: true, NeedsScheduling: true,
				PossibleTeacherIDs: []string{"t1", "t2"}},
		},
		Locations: []model.LocationScheduleData{
			{ID: "r1", Name: "Sınıf 9A"},
			{ID: "lab1", Name: "Bilgisayar Lab", LabTypeID: "computer"},
		},
	}
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// allSlots lists every slot of the default grid, useful to block a teacher
// completely.
func allSlots() []model.TimeSlot {
	return model.DefaultGrid().Slots()
}
