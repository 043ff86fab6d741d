package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"timesheet/database"
	"timesheet/middleware"
	"timesheet/models"

	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

type reportRow struct {
	WeekStart   time.Time
	Date        time.Time
	ProjectName string
	Hours       float64
	Notes       string
	Status      models.Status
}

// EmployeeTimesheetReport exports one employee's logged hours as CSV or
// PDF. Employees export themselves, managers their own team, admins anyone.
func EmployeeTimesheetReport(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "No active session or session expired")
		return
	}

	employeeID := user.ID
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			respondError(w, http.StatusBadRequest, "Invalid employee_id")
			return
		}
		employeeID = uint(parsed)
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		respondError(w, http.StatusBadRequest, "format must be csv or pdf")
		return
	}

	db := database.GetDB()

	var employee models.User
	if err := db.Preload("Profile").First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Employee not found")
			return
		}
		respondServiceError(w, err)
		return
	}

	if employee.ID != user.ID && !user.IsAdmin() && !user.Manages(&employee) {
		respondError(w, http.StatusNotFound, "Employee not found")
		return
	}

	rows, err := loadReportRows(db, employee.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if len(rows) == 0 {
		respondError(w, http.StatusNotFound, "No timesheet data for this employee")
		return
	}

	filename := fmt.Sprintf("timesheet-%s-%s", employee.Username, time.Now().Format("2006-01-02"))
	if format == "pdf" {
		writePDFReport(w, filename, &employee, rows)
		return
	}
	writeCSVReport(w, filename, rows)
}

func loadReportRows(db *gorm.DB, employeeID uint) ([]reportRow, error) {
	var raw []struct {
		WeekStart time.Time
		Date      time.Time
		ProjectID uint
		Hours     float64
		Notes     string
		Status    models.Status
	}
	err := db.Model(&models.TimeEntry{}).
		Select("timesheets.week_start, time_entries.date, time_entries.project_id, time_entries.hours, time_entries.notes, timesheets.status").
		Joins("JOIN timesheets ON timesheets.id = time_entries.timesheet_id").
		Where("timesheets.employee_id = ?", employeeID).
		Order("timesheets.week_start DESC, time_entries.date ASC, time_entries.id ASC").
		Scan(&raw).Error
	if err != nil {
		return nil, fmt.Errorf("load report rows: %w", err)
	}

	names := make(map[uint]string)
	ids := []uint{}
	for _, r := range raw {
		if _, ok := names[r.ProjectID]; !ok {
			names[r.ProjectID] = ""
			ids = append(ids, r.ProjectID)
		}
	}
	if len(ids) > 0 {
		var projects []models.Project
		if err := db.Where("id IN ?", ids).Find(&projects).Error; err != nil {
			return nil, fmt.Errorf("load projects: %w", err)
		}
		for _, p := range projects {
			names[p.ID] = p.Name
		}
	}

	rows := make([]reportRow, 0, len(raw))
	for _, r := range raw {
		name := names[r.ProjectID]
		if name == "" {
			name = "Deleted Project"
		}
		rows = append(rows, reportRow{
			WeekStart:   r.WeekStart,
			Date:        r.Date,
			ProjectName: name,
			Hours:       r.Hours,
			Notes:       r.Notes,
			Status:      r.Status,
		})
	}
	return rows, nil
}

func writeCSVReport(w http.ResponseWriter, filename string, rows []reportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"Week Start", "Date", "Project", "Hours", "Notes", "Status"})
	for _, row := range rows {
		writer.Write([]string{
			row.WeekStart.Format("2006-01-02"),
			row.Date.Format("2006-01-02"),
			row.ProjectName,
			strconv.FormatFloat(row.Hours, 'f', -1, 64),
			row.Notes,
			string(row.Status),
		})
	}
}

func writePDFReport(w http.ResponseWriter, filename string, employee *models.User, rows []reportRow) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Timesheet Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", employee.DisplayName()))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	headers := []string{"Week", "Date", "Project", "Hours", "Status"}
	widths := []float64{28, 28, 70, 20, 28}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	var total float64
	for _, row := range rows {
		pdf.CellFormat(widths[0], 7, row.WeekStart.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, row.Date.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, row.ProjectName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, strconv.FormatFloat(row.Hours, 'f', -1, 64), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, string(row.Status), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
		total += row.Hours
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[3], 8, strconv.FormatFloat(total, 'f', -1, 64), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 8, "", "1", 0, "L", false, 0, "")
	pdf.Ln(-1)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", filename))
	if err := pdf.Output(w); err != nil {
		respondServiceError(w, err)
	}
}
