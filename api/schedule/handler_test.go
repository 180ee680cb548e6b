package schedule

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EngindalgaMaku/dersplan/core/engine"
	"github.com/EngindalgaMaku/dersplan/infra/logger"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	runner, err := engine.NewRunner(engine.Config{Seed: 1, DefaultAttempts: 2}, logger.NopLogger{})
	require.NoError(t, err)
	return NewHandler(runner, 5, 10)
}

const validBody = `{
  "input": {
    "teachers": [{"id": "t1", "name": "Ayşe", "assignableLessonIds": ["l1"]}],
    "lessons": [{
      "id": "l1", "name": "Matematik", "dalId": "bilisim", "sinifSeviyesi": 9,
      "weeklyHours": 2, "canSplit": true, "needsScheduling": true,
      "possibleTeacherIds": ["t1"]
    }],
    "locations": [{"id": "r1", "name": "Sınıf A"}]
  },
  "numberOfAttempts": 2
}`

func TestHandlerRejectsGet(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schedule", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlerRejectsBadJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader("{nope"))
	testHandler(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerRejectsInvalidInput(t *testing.T) {
	body := `{"input": {"teachers": [], "lessons": [{"id": "l1", "name": "X", "dalId": "d",
		"sinifSeviyesi": 9, "weeklyHours": 2, "needsScheduling": true,
		"possibleTeacherIds": ["ghost"]}], "locations": []}, "numberOfAttempts": 1}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(body))
	testHandler(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var res engine.BestSchedulerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "unknown teacher")
}

func TestHandlerSchedulesValidInput(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(validBody))
	testHandler(t).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var res engine.BestSchedulerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.AttemptsMade)
	assert.Empty(t, res.UnassignedLessons)
}

func TestHandlerFallsBackToDefaultAttempts(t *testing.T) {
	body := strings.Replace(validBody, `"numberOfAttempts": 2`, `"numberOfAttempts": 0`, 1)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(body))
	testHandler(t).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var res engine.BestSchedulerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 2, res.AttemptsMade)
}
