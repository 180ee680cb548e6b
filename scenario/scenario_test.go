package scenario

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EngindalgaMaku/dersplan/core/engine"
	"github.com/EngindalgaMaku/dersplan/infra/logger"
)

func TestLoadParsesScenario(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "lab_block.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "lab_block", sc.Name)
	assert.Equal(t, 8, sc.Attempts)
	require.Len(t, sc.Lessons, 1)
	l := sc.Lessons[0].ToModel()
	assert.False(t, l.CanSplit)
	assert.True(t, l.RequiresMultipleResources)
	assert.True(t, l.NeedsScheduling)
	assert.Equal(t, []string{"computer"}, l.SuitableLabTypeIDs)
}

func TestToInputBuildsGridAndRequirements(t *testing.T) {
	sc := &Scenario{
		GridDays:    3,
		GridPeriods: 6,
		Teachers:    []TeacherDef{{ID: "t1", Name: "A", AssignableLessons: []string{"l1"}}},
		Lessons: []LessonDef{{ID: "l1", Name: "L", Dal: "d", SinifSeviyesi: 9,
			WeeklyHours: 1, CanSplit: true, PossibleTeacher: []string{"t1"}}},
		Locations: []LocationDef{{ID: "r1", Name: "R"}},
		Required:  map[string][]string{"t1": {"l1"}},
	}
	in := sc.ToInput()
	assert.Equal(t, 18, in.Grid.Len())
	require.NoError(t, in.Validate())
	assert.True(t, in.RequiredAssignments["t1"]["l1"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "absent.yaml"))
	require.Error(t, err)
}

func TestScenarioSuite(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	runner, err := engine.NewRunner(engine.Config{Seed: 5}, logger.NopLogger{})
	require.NoError(t, err)

	for _, path := range paths {
		sc, err := Load(path)
		require.NoError(t, err, path)
		t.Run(sc.Name, func(t *testing.T) {
			res, err := Run(context.Background(), runner, sc)
			require.NoError(t, err)
			assert.Equal(t, sc.Expected.Success, res.Success)
		})
	}
}

func TestRunFailsOnMissedExpectation(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "basic.yaml"))
	require.NoError(t, err)
	sc.Expected.MinEntries = 1000

	runner, err := engine.NewRunner(engine.Config{Seed: 5}, logger.NopLogger{})
	require.NoError(t, err)

	_, err = Run(context.Background(), runner, sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entries")
}
