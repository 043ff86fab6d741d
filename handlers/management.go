package handlers

import (
	"errors"
	"net/http"
	"strings"

	"timesheet/database"
	"timesheet/middleware"
	"timesheet/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type userView struct {
	ID                uint        `json:"id"`
	Username          string      `json:"username"`
	Email             string      `json:"email"`
	Role              models.Role `json:"role"`
	AssignedManagerID *uint       `json:"assigned_manager_id"`
	DisplayName       string      `json:"display_name"`
	ManagerName       string      `json:"manager_name,omitempty"`
}

func toUserView(u *models.User) userView {
	view := userView{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		Role:              u.Role,
		AssignedManagerID: u.AssignedManagerID,
		DisplayName:       u.DisplayName(),
	}
	if u.AssignedManager != nil {
		view.ManagerName = u.AssignedManager.DisplayName()
	}
	return view
}

// MyTeam lists the employees assigned to the calling manager.
func MyTeam(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "No active session or session expired")
		return
	}

	var team []models.User
	err := database.GetDB().Preload("Profile").
		Where("assigned_manager_id = ?", user.ID).
		Order("username asc").
		Find(&team).Error
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views := make([]userView, 0, len(team))
	for i := range team {
		views = append(views, toUserView(&team[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

func ListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	err := database.GetDB().Preload("Profile").Preload("AssignedManager").
		Order("username asc").Find(&users).Error
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

// ListManagers backs the manager-assignment dropdown.
func ListManagers(w http.ResponseWriter, r *http.Request) {
	var managers []models.User
	err := database.GetDB().Preload("Profile").
		Where("role = ?", models.RoleManager).
		Order("username asc").
		Find(&managers).Error
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views := make([]userView, 0, len(managers))
	for i := range managers {
		views = append(views, toUserView(&managers[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

type createUserRequest struct {
	Username          string      `json:"username"`
	Email             string      `json:"email"`
	Password          string      `json:"password"`
	Role              models.Role `json:"role"`
	AssignedManagerID *uint       `json:"assigned_manager_id"`
}

func CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleEmployee
	}
	if !req.Role.Valid() {
		respondError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	db := database.GetDB()
	var existing models.User
	err := db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		respondError(w, http.StatusConflict, "Username or email already taken")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondServiceError(w, err)
		return
	}

	if req.AssignedManagerID != nil {
		if !managerExists(db, *req.AssignedManagerID) {
			respondError(w, http.StatusBadRequest, "Assigned manager does not exist or is not a manager")
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	user := models.User{
		Username:          req.Username,
		Email:             req.Email,
		PasswordHash:      string(hash),
		Role:              req.Role,
		AssignedManagerID: req.AssignedManagerID,
	}
	if err := db.Create(&user).Error; err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toUserView(&user))
}

type updateUserRequest struct {
	Email             *string      `json:"email"`
	Password          *string      `json:"password"`
	Role              *models.Role `json:"role"`
	AssignedManagerID *uint        `json:"assigned_manager_id"`
	ClearManager      bool         `json:"clear_manager"`
}

// UpdateUser lets an admin change a user's email, password, role or manager
// assignment. clear_manager removes an existing assignment.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req updateUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondServiceError(w, err)
		return
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			respondError(w, http.StatusBadRequest, "Email cannot be empty")
			return
		}
		user.Email = email
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		user.PasswordHash = string(hash)
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			respondError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		user.Role = *req.Role
		// Manager assignment only means something for employees.
		if user.Role != models.RoleEmployee {
			user.AssignedManagerID = nil
		}
	}
	if req.ClearManager {
		user.AssignedManagerID = nil
	} else if req.AssignedManagerID != nil {
		if *req.AssignedManagerID == user.ID {
			respondError(w, http.StatusBadRequest, "A user cannot be their own manager")
			return
		}
		if !managerExists(db, *req.AssignedManagerID) {
			respondError(w, http.StatusBadRequest, "Assigned manager does not exist or is not a manager")
			return
		}
		user.AssignedManagerID = req.AssignedManagerID
	}

	if err := db.Save(&user).Error; err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toUserView(&user))
}

func managerExists(db *gorm.DB, id uint) bool {
	var count int64
	db.Model(&models.User{}).
		Where("id = ? AND role = ?", id, models.RoleManager).
		Count(&count)
	return count > 0
}
