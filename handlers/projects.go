package handlers

import (
	"errors"
	"net/http"
	"strings"

	"timesheet/database"
	"timesheet/models"

	"gorm.io/gorm"
)

func ListProjects(w http.ResponseWriter, r *http.Request) {
	var projects []models.Project
	if err := database.GetDB().Order("name asc").Find(&projects).Error; err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

type projectRequest struct {
	Name     string `json:"name"`
	Billable *bool  `json:"billable"`
	Owner    string `json:"project_owner"`
}

func CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Project name is required")
		return
	}

	db := database.GetDB()
	var existing models.Project
	if err := db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		respondError(w, http.StatusConflict, "A project with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondServiceError(w, err)
		return
	}

	project := models.Project{
		Name:     req.Name,
		Billable: true,
		Owner:    strings.TrimSpace(req.Owner),
	}
	if req.Billable != nil {
		project.Billable = *req.Billable
	}

	if err := db.Create(&project).Error; err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, project)
}

func UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "projectID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	var req projectRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	db := database.GetDB()
	var project models.Project
	if err := db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Project not found")
			return
		}
		respondServiceError(w, err)
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		project.Name = name
	}
	if req.Billable != nil {
		project.Billable = *req.Billable
	}
	if owner := strings.TrimSpace(req.Owner); owner != "" {
		project.Owner = owner
	}

	if err := db.Save(&project).Error; err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// DeleteProject removes the project row for good. Historical time entries
// keep their project_id and show a placeholder name afterwards.
func DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "projectID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	result := database.GetDB().Delete(&models.Project{}, id)
	if result.Error != nil {
		respondServiceError(w, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Project deleted"})
}
