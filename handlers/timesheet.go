package handlers

import (
	"net/http"
	"strconv"

	"timesheet/middleware"
	"timesheet/services"

	"github.com/go-chi/chi/v5"
)

var timesheetService *services.TimesheetService

// SetTimesheetService wires the lifecycle service used by the timesheet
// handlers. Must be called before the router starts serving.
func SetTimesheetService(svc *services.TimesheetService) {
	timesheetService = svc
}

func parseIDParam(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// SaveTimesheet handles the weekly save: first save of a week creates the
// sheet, later saves of the same week replace its content.
func SaveTimesheet(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "No active session or session expired")
		return
	}

	var input services.SaveWeekInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sheet, err := timesheetService.SaveWeek(user, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Timesheet saved",
		"timesheet_id": sheet.ID,
		"status":       sheet.Status,
	})
}

// UpdateTimesheet edits an existing sheet by id: full content replace, or a
// status-only transition when the projects payload is omitted.
func UpdateTimesheet(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "No active session or session expired")
		return
	}

	id, ok := parseIDParam(r, "timesheetID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid timesheet id")
		return
	}

	var input services.UpdateInput
	if err := decodeBody(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := timesheetService.UpdateTimesheet(user, id, input); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Timesheet updated",
		"timesheet_id": id,
		"status":       input.Status,
	})
}

func GetTimesheet(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "No active session or session expired")
		return
	}

	id, ok := parseIDParam(r, "timesheetID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid timesheet id")
		return
	}

	view, err := timesheetService.Get(user, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func TimesheetHistory(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "No active session or session expired")
		return
	}

	rows, err := timesheetService.History(user)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// PendingTimesheets lists the manager's approval queue.
func PendingTimesheets(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "No active session or session expired")
		return
	}

	rows, err := timesheetService.Pending(user)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

type actionRequest struct {
	Action  string `json:"action"`
	Comment string `json:"comment"`
}

// TimesheetAction applies a manager approve/reject decision.
func TimesheetAction(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "No active session or session expired")
		return
	}

	id, ok := parseIDParam(r, "timesheetID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid timesheet id")
		return
	}

	var req actionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sheet, err := timesheetService.Decide(user, id, req.Action, req.Comment)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Timesheet " + string(sheet.Status),
		"timesheet_id": sheet.ID,
		"status":       sheet.Status,
	})
}

func TimesheetDashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "No active session or session expired")
		return
	}

	stats, err := timesheetService.DashboardStats(user)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
