package services

import (
	"errors"
	"fmt"
	"time"

	"timesheet/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const dateFormat = "2006-01-02"

// deletedProjectName stands in for projects removed after entries were
// logged against them.
const deletedProjectName = "Deleted Project"

// EditPolicy controls which calendar weeks accept content changes. With
// LockPastWeeks set, a week closes once its last day has passed; explicit
// edits of an existing sheet bypass that lock so rejected sheets stay
// fixable. LockFutureWeeks optionally forbids logging ahead of the current
// week.
type EditPolicy struct {
	WeekStartDay    time.Weekday
	LockPastWeeks   bool
	LockFutureWeeks bool
}

func DefaultEditPolicy() EditPolicy {
	return EditPolicy{
		WeekStartDay:  time.Monday,
		LockPastWeeks: true,
	}
}

// NormalizeWeekStart truncates d to midnight UTC and rolls it back to the
// configured first day of the week.
func (p EditPolicy) NormalizeWeekStart(d time.Time) time.Time {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) - int(p.WeekStartDay) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// weekEnd is the first instant after the week, i.e. midnight starting the
// next week.
func (p EditPolicy) weekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 7)
}

func (p EditPolicy) pastLocked(weekStart, now time.Time) bool {
	return p.LockPastWeeks && !p.weekEnd(weekStart).After(now)
}

func (p EditPolicy) futureLocked(weekStart, now time.Time) bool {
	return p.LockFutureWeeks && weekStart.After(p.NormalizeWeekStart(now))
}

// TimesheetService owns the timesheet status machine and the transactional
// replace semantics for time entries.
type TimesheetService struct {
	db     *gorm.DB
	policy EditPolicy
	now    func() time.Time
}

func NewTimesheetService(db *gorm.DB, policy EditPolicy) *TimesheetService {
	return &TimesheetService{
		db:     db,
		policy: policy,
		now:    time.Now,
	}
}

// ProjectHours is one project's row in a weekly save: parallel hour/date
// slots for the seven days plus the notes shown for that project.
type ProjectHours struct {
	ProjectID  uint      `json:"project_id"`
	DailyHours []float64 `json:"daily_hours"`
	Dates      []string  `json:"dates"`
	Notes      string    `json:"notes"`
}

type SaveWeekInput struct {
	WeekStart string         `json:"week_start"`
	Status    models.Status  `json:"status"`
	Projects  []ProjectHours `json:"projects"`
}

// UpdateInput drives PUT semantics. A nil Projects slice means "do not
// touch entries" (status-only transition); a non-nil slice, empty included,
// replaces the full entry set.
type UpdateInput struct {
	Status   models.Status  `json:"status"`
	Projects []ProjectHours `json:"projects"`
}

// SaveWeek creates the (employee, week) timesheet on first save and
// replaces its content on subsequent saves of the same logical week. The
// delete-and-reinsert of entries and the status change commit atomically.
func (s *TimesheetService) SaveWeek(actor *models.User, input SaveWeekInput) (*models.Timesheet, error) {
	if input.WeekStart == "" {
		return nil, validationErrorf("week_start is required")
	}
	parsed, err := time.Parse(dateFormat, input.WeekStart)
	if err != nil {
		return nil, validationErrorf("invalid week_start %q, expected YYYY-MM-DD", input.WeekStart)
	}
	weekStart := s.policy.NormalizeWeekStart(parsed)

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	if status != models.StatusDraft && status != models.StatusSubmitted {
		return nil, validationErrorf("status must be draft or submitted")
	}

	now := s.now()
	if s.policy.pastLocked(weekStart, now) {
		return nil, validationErrorf("week %s is closed for editing", weekStart.Format(dateFormat))
	}
	if s.policy.futureLocked(weekStart, now) {
		return nil, validationErrorf("week %s is in the future", weekStart.Format(dateFormat))
	}

	entries, total, err := buildEntries(weekStart, input.Projects)
	if err != nil {
		return nil, err
	}
	if status == models.StatusSubmitted && total <= 0 {
		return nil, validationErrorf("cannot submit a timesheet with no hours")
	}

	var sheet models.Timesheet
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.Timesheet{EmployeeID: actor.ID, WeekStart: weekStart}).
			Attrs(models.Timesheet{Status: models.StatusDraft}).
			FirstOrCreate(&sheet).Error; err != nil {
			return err
		}
		if !sheet.Status.CanTransitionTo(status) {
			return &StateTransitionError{Current: sheet.Status, Requested: status}
		}
		if err := replaceEntries(tx, sheet.ID, entries); err != nil {
			return err
		}
		return tx.Model(&sheet).Update("status", status).Error
	})
	if err != nil {
		return nil, mapPersistenceError("save timesheet week", err)
	}

	sheet.Status = status
	sheet.Entries = entries
	return &sheet, nil
}

// UpdateTimesheet is the explicit edit-by-id path. It bypasses the
// past-week lock so a rejected sheet can be fixed after its week has
// closed. Omitting the projects payload transitions status without
// touching entries.
func (s *TimesheetService) UpdateTimesheet(actor *models.User, id uint, input UpdateInput) error {
	if input.Status == "" {
		return validationErrorf("status is required")
	}
	if input.Status != models.StatusDraft && input.Status != models.StatusSubmitted {
		return validationErrorf("status must be draft or submitted")
	}

	var sheet models.Timesheet
	if err := s.db.Where("id = ? AND employee_id = ?", id, actor.ID).First(&sheet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load timesheet: %w", err)
	}
	if !sheet.Status.CanTransitionTo(input.Status) {
		return &StateTransitionError{Current: sheet.Status, Requested: input.Status}
	}

	replace := input.Projects != nil

	var entries []models.TimeEntry
	var total float64
	if replace {
		if s.policy.futureLocked(s.policy.NormalizeWeekStart(sheet.WeekStart), s.now()) {
			return validationErrorf("week %s is in the future", sheet.WeekStart.Format(dateFormat))
		}
		var err error
		entries, total, err = buildEntries(s.policy.NormalizeWeekStart(sheet.WeekStart), input.Projects)
		if err != nil {
			return err
		}
	} else {
		err := s.db.Model(&models.TimeEntry{}).
			Where("timesheet_id = ?", sheet.ID).
			Select("COALESCE(SUM(hours), 0)").
			Scan(&total).Error
		if err != nil {
			return fmt.Errorf("sum entry hours: %w", err)
		}
	}
	if input.Status == models.StatusSubmitted && total <= 0 {
		return validationErrorf("cannot submit a timesheet with no hours")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if replace {
			if err := replaceEntries(tx, sheet.ID, entries); err != nil {
				return err
			}
		}
		return tx.Model(&sheet).Update("status", input.Status).Error
	})
	if err != nil {
		return mapPersistenceError("update timesheet", err)
	}
	return nil
}

// Decide applies a manager's approve or reject. The sheet is looked up
// scoped to the manager's team, so a sheet outside it is indistinguishable
// from a missing one.
func (s *TimesheetService) Decide(actor *models.User, id uint, action, comment string) (*models.Timesheet, error) {
	var target models.Status
	switch action {
	case "approve":
		target = models.StatusApproved
	case "reject":
		target = models.StatusRejected
	default:
		return nil, validationErrorf("invalid action %q, use approve or reject", action)
	}

	if !actor.IsManager() {
		return nil, ErrNotFound
	}

	var sheet models.Timesheet
	err := s.db.
		Where("id = ? AND employee_id IN (?)", id,
			s.db.Model(&models.User{}).Select("id").Where("assigned_manager_id = ?", actor.ID)).
		First(&sheet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load timesheet: %w", err)
	}
	if !sheet.Status.CanTransitionTo(target) {
		return nil, &StateTransitionError{Current: sheet.Status, Requested: target}
	}

	now := s.now()
	updates := map[string]interface{}{
		"status":          target,
		"manager_comment": comment,
	}
	if target == models.StatusApproved {
		updates["approved_at"] = now
		sheet.ApprovedAt = &now
	} else {
		updates["rejected_at"] = now
		sheet.RejectedAt = &now
	}
	if err := s.db.Model(&sheet).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("apply decision: %w", err)
	}

	sheet.Status = target
	sheet.ManagerComment = comment
	return &sheet, nil
}

type EntryView struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type ProjectView struct {
	ProjectID uint        `json:"project_id"`
	Name      string      `json:"name"`
	Notes     string      `json:"notes"`
	Entries   []EntryView `json:"entries"`
}

type TimesheetView struct {
	TimesheetID    uint          `json:"timesheet_id"`
	WeekStart      string        `json:"week_start"`
	Status         models.Status `json:"status"`
	ManagerComment string        `json:"manager_comment"`
	Projects       []ProjectView `json:"projects"`
}

// Get fetches one timesheet with its entries grouped by project. Employees
// see their own sheets, managers their team's, admins everything.
func (s *TimesheetService) Get(actor *models.User, id uint) (*TimesheetView, error) {
	q := s.db.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("time_entries.date asc, time_entries.id asc")
	}).Where("id = ?", id)

	switch actor.Role {
	case models.RoleEmployee:
		q = q.Where("employee_id = ?", actor.ID)
	case models.RoleManager:
		q = q.Where("employee_id IN (?)",
			s.db.Model(&models.User{}).Select("id").Where("assigned_manager_id = ?", actor.ID))
	case models.RoleAdmin:
		// unrestricted
	default:
		return nil, ErrNotFound
	}

	var sheet models.Timesheet
	if err := q.First(&sheet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load timesheet: %w", err)
	}

	names, err := s.projectNames(sheet.Entries)
	if err != nil {
		return nil, err
	}

	view := &TimesheetView{
		TimesheetID:    sheet.ID,
		WeekStart:      sheet.WeekStart.Format(dateFormat),
		Status:         sheet.Status,
		ManagerComment: sheet.ManagerComment,
		Projects:       []ProjectView{},
	}

	index := make(map[uint]int)
	for _, entry := range sheet.Entries {
		i, ok := index[entry.ProjectID]
		if !ok {
			name, exists := names[entry.ProjectID]
			if !exists {
				name = deletedProjectName
			}
			view.Projects = append(view.Projects, ProjectView{
				ProjectID: entry.ProjectID,
				Name:      name,
				Notes:     entry.Notes,
				Entries:   []EntryView{},
			})
			i = len(view.Projects) - 1
			index[entry.ProjectID] = i
		}
		view.Projects[i].Entries = append(view.Projects[i].Entries, EntryView{
			Date:  entry.Date.Format(dateFormat),
			Hours: entry.Hours,
		})
	}

	return view, nil
}

func (s *TimesheetService) projectNames(entries []models.TimeEntry) (map[uint]string, error) {
	ids := make([]uint, 0, len(entries))
	seen := make(map[uint]bool)
	for _, e := range entries {
		if !seen[e.ProjectID] {
			seen[e.ProjectID] = true
			ids = append(ids, e.ProjectID)
		}
	}

	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var projects []models.Project
	if err := s.db.Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}

type HistoryRow struct {
	TimesheetID    uint          `json:"timesheet_id"`
	WeekStart      string        `json:"week_start"`
	Status         models.Status `json:"status"`
	TotalHours     float64       `json:"total_hours"`
	ManagerComment string        `json:"manager_comment"`
}

// History lists the actor's timesheets newest week first with summed hours
// (0 for sheets without entries).
func (s *TimesheetService) History(actor *models.User) ([]HistoryRow, error) {
	var raw []struct {
		TimesheetID    uint
		WeekStart      time.Time
		Status         models.Status
		TotalHours     float64
		ManagerComment string
	}
	err := s.db.Model(&models.Timesheet{}).
		Select("timesheets.id AS timesheet_id, timesheets.week_start, timesheets.status, timesheets.manager_comment, COALESCE(SUM(time_entries.hours), 0) AS total_hours").
		Joins("LEFT JOIN time_entries ON time_entries.timesheet_id = timesheets.id").
		Where("timesheets.employee_id = ?", actor.ID).
		Group("timesheets.id, timesheets.week_start, timesheets.status, timesheets.manager_comment").
		Order("timesheets.week_start DESC").
		Limit(50).
		Scan(&raw).Error
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	rows := make([]HistoryRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, HistoryRow{
			TimesheetID:    r.TimesheetID,
			WeekStart:      r.WeekStart.Format(dateFormat),
			Status:         r.Status,
			TotalHours:     r.TotalHours,
			ManagerComment: r.ManagerComment,
		})
	}
	return rows, nil
}

type PendingRow struct {
	TimesheetID  uint    `json:"timesheet_id"`
	WeekStart    string  `json:"week_start"`
	EmployeeName string  `json:"employee_name"`
	TotalHours   float64 `json:"total_hours"`
}

// Pending lists submitted timesheets of the manager's team, newest week
// first.
func (s *TimesheetService) Pending(actor *models.User) ([]PendingRow, error) {
	if !actor.IsManager() {
		return nil, ErrNotFound
	}

	var raw []struct {
		TimesheetID  uint
		WeekStart    time.Time
		EmployeeName string
		TotalHours   float64
	}
	err := s.db.Model(&models.Timesheet{}).
		Select("timesheets.id AS timesheet_id, timesheets.week_start, users.username AS employee_name, COALESCE(SUM(time_entries.hours), 0) AS total_hours").
		Joins("JOIN users ON users.id = timesheets.employee_id").
		Joins("LEFT JOIN time_entries ON time_entries.timesheet_id = timesheets.id").
		Where("users.assigned_manager_id = ? AND timesheets.status = ?", actor.ID, models.StatusSubmitted).
		Group("timesheets.id, timesheets.week_start, users.username").
		Order("timesheets.week_start DESC").
		Scan(&raw).Error
	if err != nil {
		return nil, fmt.Errorf("load pending queue: %w", err)
	}

	rows := make([]PendingRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, PendingRow{
			TimesheetID:  r.TimesheetID,
			WeekStart:    r.WeekStart.Format(dateFormat),
			EmployeeName: r.EmployeeName,
			TotalHours:   r.TotalHours,
		})
	}
	return rows, nil
}

type StatusCounts struct {
	Draft     int64 `json:"draft"`
	Submitted int64 `json:"submitted"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
}

type DashboardStats struct {
	MyStats          StatusCounts `json:"my_stats"`
	PendingApprovals *int64       `json:"pending_approvals,omitempty"`
}

// DashboardStats counts the actor's timesheets by status. Managers
// additionally get the number of submitted sheets waiting on them; the two
// aggregations are independent reads and run concurrently.
func (s *TimesheetService) DashboardStats(actor *models.User) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var g errgroup.Group
	g.Go(func() error {
		var raw []struct {
			Status models.Status
			Count  int64
		}
		err := s.db.Model(&models.Timesheet{}).
			Select("status, COUNT(*) AS count").
			Where("employee_id = ?", actor.ID).
			Group("status").
			Scan(&raw).Error
		if err != nil {
			return fmt.Errorf("count own timesheets: %w", err)
		}
		for _, r := range raw {
			switch r.Status {
			case models.StatusDraft:
				stats.MyStats.Draft = r.Count
			case models.StatusSubmitted:
				stats.MyStats.Submitted = r.Count
			case models.StatusApproved:
				stats.MyStats.Approved = r.Count
			case models.StatusRejected:
				stats.MyStats.Rejected = r.Count
			}
		}
		return nil
	})

	if actor.IsManager() {
		g.Go(func() error {
			var pending int64
			err := s.db.Model(&models.Timesheet{}).
				Joins("JOIN users ON users.id = timesheets.employee_id").
				Where("users.assigned_manager_id = ? AND timesheets.status = ?", actor.ID, models.StatusSubmitted).
				Count(&pending).Error
			if err != nil {
				return fmt.Errorf("count pending approvals: %w", err)
			}
			stats.PendingApprovals = &pending
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// buildEntries validates and flattens the per-project weekly grids into
// entry rows. Zero-hour slots are pruned, every date must land inside the
// sheet's week. The returned total is the sum of kept hours.
func buildEntries(weekStart time.Time, projects []ProjectHours) ([]models.TimeEntry, float64, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)

	entries := []models.TimeEntry{}
	var total float64
	for _, proj := range projects {
		if proj.ProjectID == 0 {
			return nil, 0, validationErrorf("project_id is required")
		}
		if len(proj.DailyHours) != len(proj.Dates) {
			return nil, 0, validationErrorf("daily_hours and dates must have the same length")
		}
		if len(proj.DailyHours) > 7 {
			return nil, 0, validationErrorf("a week has at most 7 day slots")
		}
		for i, hours := range proj.DailyHours {
			if hours == 0 {
				continue
			}
			if hours < 0 || hours > 24 {
				return nil, 0, validationErrorf("invalid hours %v, must be between 0 and 24", hours)
			}
			date, err := time.Parse(dateFormat, proj.Dates[i])
			if err != nil {
				return nil, 0, validationErrorf("invalid date %q, expected YYYY-MM-DD", proj.Dates[i])
			}
			if date.Before(weekStart) || !date.Before(weekEnd) {
				return nil, 0, validationErrorf("date %s is outside the timesheet week", proj.Dates[i])
			}
			entries = append(entries, models.TimeEntry{
				Date:      date,
				Hours:     hours,
				ProjectID: proj.ProjectID,
				Notes:     proj.Notes,
			})
			total += hours
		}
	}
	return entries, total, nil
}

// replaceEntries wipes and re-inserts the sheet's entries. Must run inside
// a transaction: a failure after the delete would otherwise lose data.
func replaceEntries(tx *gorm.DB, timesheetID uint, entries []models.TimeEntry) error {
	if err := tx.Where("timesheet_id = ?", timesheetID).Delete(&models.TimeEntry{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		entries[i].TimesheetID = timesheetID
		entries[i].ID = 0
	}
	return tx.Create(&entries).Error
}

func mapPersistenceError(op string, err error) error {
	var ve *ValidationError
	var ste *StateTransitionError
	if errors.As(err, &ve) || errors.As(err, &ste) || errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
