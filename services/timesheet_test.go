package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"timesheet/database"
	"timesheet/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testNow makes 2024-06-03 the current week in every test.
var testNow = time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(t *testing.T) (*TimesheetService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	svc := NewTimesheetService(db, DefaultEditPolicy())
	svc.now = func() time.Time { return testNow }
	return svc, db
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.Role, managerID *uint) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:          username,
		Email:             username + "@example.com",
		PasswordHash:      string(hash),
		Role:              role,
		AssignedManagerID: managerID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createProject(t *testing.T, db *gorm.DB, name string) *models.Project {
	t.Helper()

	project := &models.Project{Name: name, Billable: true, Owner: "PM"}
	require.NoError(t, db.Create(project).Error)
	return project
}

func weekDates(weekStart string) []string {
	start, _ := time.Parse("2006-01-02", weekStart)
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = start.AddDate(0, 0, i).Format("2006-01-02")
	}
	return dates
}

func fullWeekInput(projectID uint, status models.Status) SaveWeekInput {
	return SaveWeekInput{
		WeekStart: "2024-06-03",
		Status:    status,
		Projects: []ProjectHours{{
			ProjectID:  projectID,
			DailyHours: []float64{8, 8, 8, 8, 8, 0, 0},
			Dates:      weekDates("2024-06-03"),
			Notes:      "sprint work",
		}},
	}
}

func entryCount(t *testing.T, db *gorm.DB, timesheetID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.TimeEntry{}).
		Where("timesheet_id = ?", timesheetID).Count(&count).Error)
	return count
}

func TestSaveWeekSubmitPrunesZeroHours(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	sheet, err := svc.SaveWeek(emp, fullWeekInput(project.ID, models.StatusSubmitted))
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, sheet.Status)
	assert.EqualValues(t, 5, entryCount(t, db, sheet.ID))

	var total float64
	require.NoError(t, db.Model(&models.TimeEntry{}).
		Where("timesheet_id = ?", sheet.ID).
		Select("COALESCE(SUM(hours), 0)").Scan(&total).Error)
	assert.Equal(t, 40.0, total)
}

func TestSaveWeekReplacesPreviousEntries(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	apollo := createProject(t, db, "Apollo")
	gemini := createProject(t, db, "Gemini")

	first, err := svc.SaveWeek(emp, fullWeekInput(apollo.ID, models.StatusDraft))
	require.NoError(t, err)
	assert.EqualValues(t, 5, entryCount(t, db, first.ID))

	second, err := svc.SaveWeek(emp, SaveWeekInput{
		WeekStart: "2024-06-03",
		Status:    models.StatusDraft,
		Projects: []ProjectHours{{
			ProjectID:  gemini.ID,
			DailyHours: []float64{4, 4, 0, 0, 0, 0, 0},
			Dates:      weekDates("2024-06-03"),
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same logical week must reuse the row")
	assert.EqualValues(t, 2, entryCount(t, db, first.ID))

	var leftover int64
	require.NoError(t, db.Model(&models.TimeEntry{}).
		Where("timesheet_id = ? AND project_id = ?", first.ID, apollo.ID).
		Count(&leftover).Error)
	assert.Zero(t, leftover)
}

func TestSaveWeekNormalizesWeekStart(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	input := fullWeekInput(project.ID, models.StatusDraft)
	input.WeekStart = "2024-06-05"
	sheet, err := svc.SaveWeek(emp, input)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", sheet.WeekStart.Format("2006-01-02"))

	again, err := svc.SaveWeek(emp, fullWeekInput(project.ID, models.StatusDraft))
	require.NoError(t, err)
	assert.Equal(t, sheet.ID, again.ID)
}

func TestSaveWeekSubmitWithoutHours(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	_, err := svc.SaveWeek(emp, SaveWeekInput{
		WeekStart: "2024-06-03",
		Status:    models.StatusSubmitted,
		Projects: []ProjectHours{{
			ProjectID:  project.ID,
			DailyHours: []float64{0, 0, 0, 0, 0, 0, 0},
			Dates:      weekDates("2024-06-03"),
		}},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	var sheets int64
	require.NoError(t, db.Model(&models.Timesheet{}).Count(&sheets).Error)
	assert.Zero(t, sheets, "a failed submit must not leave a sheet behind")
}

func TestSaveWeekValidation(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	cases := []struct {
		name  string
		input SaveWeekInput
	}{
		{"missing week start", SaveWeekInput{Status: models.StatusDraft}},
		{"bad week start", SaveWeekInput{WeekStart: "June 3rd", Status: models.StatusDraft}},
		{"bad status", SaveWeekInput{WeekStart: "2024-06-03", Status: models.StatusApproved}},
		{"hours over 24", SaveWeekInput{
			WeekStart: "2024-06-03",
			Projects: []ProjectHours{{
				ProjectID:  project.ID,
				DailyHours: []float64{25},
				Dates:      []string{"2024-06-03"},
			}},
		}},
		{"negative hours", SaveWeekInput{
			WeekStart: "2024-06-03",
			Projects: []ProjectHours{{
				ProjectID:  project.ID,
				DailyHours: []float64{-1},
				Dates:      []string{"2024-06-03"},
			}},
		}},
		{"date outside week", SaveWeekInput{
			WeekStart: "2024-06-03",
			Projects: []ProjectHours{{
				ProjectID:  project.ID,
				DailyHours: []float64{8},
				Dates:      []string{"2024-06-10"},
			}},
		}},
		{"mismatched slots", SaveWeekInput{
			WeekStart: "2024-06-03",
			Projects: []ProjectHours{{
				ProjectID:  project.ID,
				DailyHours: []float64{8, 8},
				Dates:      []string{"2024-06-03"},
			}},
		}},
		{"missing project id", SaveWeekInput{
			WeekStart: "2024-06-03",
			Projects: []ProjectHours{{
				DailyHours: []float64{8},
				Dates:      []string{"2024-06-03"},
			}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SaveWeek(emp, tc.input)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestSaveWeekClosedWeek(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	input := SaveWeekInput{
		WeekStart: "2024-05-20",
		Status:    models.StatusDraft,
		Projects: []ProjectHours{{
			ProjectID:  project.ID,
			DailyHours: []float64{8},
			Dates:      []string{"2024-05-20"},
		}},
	}
	_, err := svc.SaveWeek(emp, input)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "closed")
}

func TestSaveWeekFutureLock(t *testing.T) {
	svc, db := newTestService(t)
	svc.policy.LockFutureWeeks = true
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	input := SaveWeekInput{
		WeekStart: "2024-06-10",
		Status:    models.StatusDraft,
		Projects: []ProjectHours{{
			ProjectID:  project.ID,
			DailyHours: []float64{8},
			Dates:      []string{"2024-06-10"},
		}},
	}
	_, err := svc.SaveWeek(emp, input)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "future")
}

func TestSaveWeekApprovedIsLocked(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	sheet, err := svc.SaveWeek(emp, fullWeekInput(project.ID, models.StatusDraft))
	require.NoError(t, err)
	require.NoError(t, db.Model(sheet).Update("status", models.StatusApproved).Error)

	_, err = svc.SaveWeek(emp, fullWeekInput(project.ID, models.StatusDraft))
	var ste *StateTransitionError
	require.ErrorAs(t, err, &ste)
	assert.Equal(t, models.StatusApproved, ste.Current)

	assert.EqualValues(t, 5, entryCount(t, db, sheet.ID), "failed transition must not touch entries")
}

func TestUpdateStatusOnlyKeepsEntries(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	sheet, err := svc.SaveWeek(emp, fullWeekInput(project.ID, models.StatusDraft))
	require.NoError(t, err)

	err = svc.UpdateTimesheet(emp, sheet.ID, UpdateInput{Status: models.StatusSubmitted})
	require.NoError(t, err)

	var reloaded models.Timesheet
	require.NoError(t, db.First(&reloaded, sheet.ID).Error)
	assert.Equal(t, models.StatusSubmitted, reloaded.Status)
	assert.EqualValues(t, 5, entryCount(t, db, sheet.ID))
}

func TestUpdateReplacesWithEmptySet(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	sheet, err := svc.SaveWeek(emp, fullWeekInput(project.ID, models.StatusDraft))
	require.NoError(t, err)

	err = svc.UpdateTimesheet(emp, sheet.ID, UpdateInput{
		Status:   models.StatusDraft,
		Projects: []ProjectHours{},
	})
	require.NoError(t, err)
	assert.Zero(t, entryCount(t, db, sheet.ID))
}

func TestUpdateSubmitWithoutHours(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)

	sheet, err := svc.SaveWeek(emp, SaveWeekInput{WeekStart: "2024-06-03"})
	require.NoError(t, err)

	err = svc.UpdateTimesheet(emp, sheet.ID, UpdateInput{Status: models.StatusSubmitted})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestUpdateOtherEmployeeSheet(t *testing.T) {
	svc, db := newTestService(t)
	alice := createUser(t, db, "alice", models.RoleEmployee, nil)
	bob := createUser(t, db, "bob", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	sheet, err := svc.SaveWeek(alice, fullWeekInput(project.ID, models.StatusDraft))
	require.NoError(t, err)

	err = svc.UpdateTimesheet(bob, sheet.ID, UpdateInput{Status: models.StatusDraft})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateFixesRejectedClosedWeek(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	// A rejected sheet from a closed week stays fixable through the
	// explicit edit path.
	weekStart, _ := time.Parse("2006-01-02", "2024-05-20")
	sheet := models.Timesheet{
		EmployeeID: emp.ID,
		WeekStart:  weekStart,
		Status:     models.StatusRejected,
	}
	require.NoError(t, db.Create(&sheet).Error)

	err := svc.UpdateTimesheet(emp, sheet.ID, UpdateInput{
		Status: models.StatusSubmitted,
		Projects: []ProjectHours{{
			ProjectID:  project.ID,
			DailyHours: []float64{8, 8, 0, 0, 0, 0, 0},
			Dates:      weekDates("2024-05-20"),
		}},
	})
	require.NoError(t, err)

	var reloaded models.Timesheet
	require.NoError(t, db.First(&reloaded, sheet.ID).Error)
	assert.Equal(t, models.StatusSubmitted, reloaded.Status)
	assert.EqualValues(t, 2, entryCount(t, db, sheet.ID))
}

func TestDecideApprove(t *testing.T) {
	svc, db := newTestService(t)
	manager := createUser(t, db, "mallory", models.RoleManager, nil)
	emp := createUser(t, db, "alice", models.RoleEmployee, &manager.ID)
	project := createProject(t, db, "Apollo")

	sheet, err := svc.SaveWeek(emp, fullWeekInput(project.ID, models.StatusSubmitted))
	require.NoError(t, err)

	decided, err := svc.Decide(manager, sheet.ID, "approve", "looks good")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, decided.Status)
	require.NotNil(t, decided.ApprovedAt)
	assert.Equal(t, "looks good", decided.ManagerComment)

	// Approved is terminal on every path.
	_, err = svc.Decide(manager, sheet.ID, "reject", "")
	var ste *StateTransitionError
	assert.ErrorAs(t, err, &ste)

	err = svc.UpdateTimesheet(emp, sheet.ID, UpdateInput{Status: models.StatusDraft})
	assert.ErrorAs(t, err, &ste)
}

func TestDecideRejectAndResubmit(t *testing.T) {
	svc, db := newTestService(t)
	manager := createUser(t, db, "mallory", models.RoleManager, nil)
	emp := createUser(t, db, "alice", models.RoleEmployee, &manager.ID)
	project := createProject(t, db, "Apollo")

	sheet, err := svc.SaveWeek(emp, fullWeekInput(project.ID, models.StatusSubmitted))
	require.NoError(t, err)

	decided, err := svc.Decide(manager, sheet.ID, "reject", "missing Friday")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, decided.Status)
	require.NotNil(t, decided.RejectedAt)

	err = svc.UpdateTimesheet(emp, sheet.ID, UpdateInput{Status: models.StatusSubmitted})
	require.NoError(t, err)

	var reloaded models.Timesheet
	require.NoError(t, db.First(&reloaded, sheet.ID).Error)
	assert.Equal(t, models.StatusSubmitted, reloaded.Status)
}

func TestDecideScopedToOwnTeam(t *testing.T) {
	svc, db := newTestService(t)
	manager := createUser(t, db, "mallory", models.RoleManager, nil)
	other := createUser(t, db, "oscar", models.RoleManager, nil)
	emp := createUser(t, db, "alice", models.RoleEmployee, &manager.ID)
	project := createProject(t, db, "Apollo")

	sheet, err := svc.SaveWeek(emp, fullWeekInput(project.ID, models.StatusSubmitted))
	require.NoError(t, err)

	_, err = svc.Decide(other, sheet.ID, "approve", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Decide(emp, sheet.ID, "approve", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Decide(manager, sheet.ID, "ship it", "")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestGetGroupsEntriesByProject(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	apollo := createProject(t, db, "Apollo")
	gemini := createProject(t, db, "Gemini")

	sheet, err := svc.SaveWeek(emp, SaveWeekInput{
		WeekStart: "2024-06-03",
		Status:    models.StatusDraft,
		Projects: []ProjectHours{
			{
				ProjectID:  apollo.ID,
				DailyHours: []float64{8, 8, 0, 0, 0, 0, 0},
				Dates:      weekDates("2024-06-03"),
				Notes:      "api work",
			},
			{
				ProjectID:  gemini.ID,
				DailyHours: []float64{0, 0, 4, 0, 0, 0, 0},
				Dates:      weekDates("2024-06-03"),
				Notes:      "reviews",
			},
		},
	})
	require.NoError(t, err)

	view, err := svc.Get(emp, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", view.WeekStart)
	require.Len(t, view.Projects, 2)

	assert.Equal(t, "Apollo", view.Projects[0].Name)
	assert.Equal(t, "api work", view.Projects[0].Notes)
	require.Len(t, view.Projects[0].Entries, 2)
	assert.Equal(t, "2024-06-03", view.Projects[0].Entries[0].Date)

	assert.Equal(t, "Gemini", view.Projects[1].Name)
	require.Len(t, view.Projects[1].Entries, 1)
	assert.Equal(t, 4.0, view.Projects[1].Entries[0].Hours)
}

func TestGetShowsPlaceholderForDeletedProject(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	sheet, err := svc.SaveWeek(emp, fullWeekInput(project.ID, models.StatusDraft))
	require.NoError(t, err)
	require.NoError(t, db.Delete(&models.Project{}, project.ID).Error)

	view, err := svc.Get(emp, sheet.ID)
	require.NoError(t, err)
	require.Len(t, view.Projects, 1)
	assert.Equal(t, "Deleted Project", view.Projects[0].Name)
}

func TestGetVisibilityScopes(t *testing.T) {
	svc, db := newTestService(t)
	manager := createUser(t, db, "mallory", models.RoleManager, nil)
	other := createUser(t, db, "oscar", models.RoleManager, nil)
	admin := createUser(t, db, "root", models.RoleAdmin, nil)
	emp := createUser(t, db, "alice", models.RoleEmployee, &manager.ID)
	stranger := createUser(t, db, "bob", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	sheet, err := svc.SaveWeek(emp, fullWeekInput(project.ID, models.StatusDraft))
	require.NoError(t, err)

	_, err = svc.Get(emp, sheet.ID)
	assert.NoError(t, err)
	_, err = svc.Get(manager, sheet.ID)
	assert.NoError(t, err)
	_, err = svc.Get(admin, sheet.ID)
	assert.NoError(t, err)

	_, err = svc.Get(other, sheet.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(stranger, sheet.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryOrderAndTotals(t *testing.T) {
	svc, db := newTestService(t)
	emp := createUser(t, db, "alice", models.RoleEmployee, nil)
	project := createProject(t, db, "Apollo")

	_, err := svc.SaveWeek(emp, fullWeekInput(project.ID, models.StatusSubmitted))
	require.NoError(t, err)

	// An older sheet without entries, inserted directly.
	older, _ := time.Parse("2006-01-02", "2024-05-20")
	require.NoError(t, db.Create(&models.Timesheet{
		EmployeeID: emp.ID,
		WeekStart:  older,
		Status:     models.StatusApproved,
	}).Error)

	rows, err := svc.History(emp)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-06-03", rows[0].WeekStart)
	assert.Equal(t, 40.0, rows[0].TotalHours)
	assert.Equal(t, "2024-05-20", rows[1].WeekStart)
	assert.Zero(t, rows[1].TotalHours)
}

func TestPendingListsOwnTeamSubmissions(t *testing.T) {
	svc, db := newTestService(t)
	manager := createUser(t, db, "mallory", models.RoleManager, nil)
	other := createUser(t, db, "oscar", models.RoleManager, nil)
	alice := createUser(t, db, "alice", models.RoleEmployee, &manager.ID)
	bob := createUser(t, db, "bob", models.RoleEmployee, &manager.ID)
	carol := createUser(t, db, "carol", models.RoleEmployee, &other.ID)
	project := createProject(t, db, "Apollo")

	_, err := svc.SaveWeek(alice, fullWeekInput(project.ID, models.StatusSubmitted))
	require.NoError(t, err)
	_, err = svc.SaveWeek(bob, fullWeekInput(project.ID, models.StatusDraft))
	require.NoError(t, err)
	_, err = svc.SaveWeek(carol, fullWeekInput(project.ID, models.StatusSubmitted))
	require.NoError(t, err)

	rows, err := svc.Pending(manager)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].EmployeeName)
	assert.Equal(t, 40.0, rows[0].TotalHours)

	_, err = svc.Pending(alice)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboardStats(t *testing.T) {
	svc, db := newTestService(t)
	manager := createUser(t, db, "mallory", models.RoleManager, nil)
	alice := createUser(t, db, "alice", models.RoleEmployee, &manager.ID)
	project := createProject(t, db, "Apollo")

	_, err := svc.SaveWeek(alice, fullWeekInput(project.ID, models.StatusSubmitted))
	require.NoError(t, err)

	older, _ := time.Parse("2006-01-02", "2024-05-20")
	require.NoError(t, db.Create(&models.Timesheet{
		EmployeeID: alice.ID,
		WeekStart:  older,
		Status:     models.StatusRejected,
	}).Error)

	stats, err := svc.DashboardStats(alice)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.MyStats.Submitted)
	assert.EqualValues(t, 1, stats.MyStats.Rejected)
	assert.Zero(t, stats.MyStats.Draft)
	assert.Nil(t, stats.PendingApprovals)

	mstats, err := svc.DashboardStats(manager)
	require.NoError(t, err)
	require.NotNil(t, mstats.PendingApprovals)
	assert.EqualValues(t, 1, *mstats.PendingApprovals)
}

func TestNormalizeWeekStart(t *testing.T) {
	policy := DefaultEditPolicy()

	cases := []struct {
		in   string
		want string
	}{
		{"2024-06-03", "2024-06-03"},
		{"2024-06-05", "2024-06-03"},
		{"2024-06-09", "2024-06-03"},
		{"2024-06-10", "2024-06-10"},
	}
	for _, tc := range cases {
		in, _ := time.Parse("2006-01-02", tc.in)
		got := policy.NormalizeWeekStart(in)
		assert.Equal(t, tc.want, got.Format("2006-01-02"))
	}

	policy.WeekStartDay = time.Sunday
	in, _ := time.Parse("2006-01-02", "2024-06-05")
	assert.Equal(t, "2024-06-02", policy.NormalizeWeekStart(in).Format("2006-01-02"))
}
