package schedule

import (
	"encoding/json"
	"net/http"

	"github.com/EngindalgaMaku/dersplan/core/engine"
	"github.com/EngindalgaMaku/dersplan/core/model"
)

// Request is the body of POST /api/schedule. NumberOfAttempts falls back to
// the runner's configured default when omitted or zero.
type Request struct {
	Input            model.SchedulerInput `json:"input"`
	NumberOfAttempts int                  `json:"numberOfAttempts"`
	GridDays         int                  `json:"gridDays,omitempty"`
	GridPeriods      int                  `json:"gridPeriods,omitempty"`
}

// NewHandler returns an HTTP handler exposing the engine via
// POST /api/schedule. Requests may override the configured grid dimensions
// per call. Invalid JSON yields 400, a rejected input 422; a schedule with
// unassigned lessons is still a 200, the body carries the detail.
func NewHandler(runner *engine.Runner, gridDays, gridPeriods int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		days, periods := req.GridDays, req.GridPeriods
		if days == 0 {
			days = gridDays
		}
		if periods == 0 {
			periods = gridPeriods
		}
		req.Input.Grid = model.NewTimeGrid(days, periods)
		attempts := req.NumberOfAttempts
		if attempts == 0 {
			attempts = runner.DefaultAttempts()
		}

		res := runner.FindBestSchedule(r.Context(), &req.Input, attempts)

		w.Header().Set("Content-Type", "application/json")
		if !res.Success && res.AttemptsMade == 0 {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		if err := json.NewEncoder(w).Encode(res); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
