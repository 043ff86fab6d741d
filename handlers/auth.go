package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"timesheet/database"
	"timesheet/middleware"
	"timesheet/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var tokenTTL = 24 * time.Hour

// SetTokenTTL configures the lifetime of issued session tokens.
func SetTokenTTL(ttl time.Duration) {
	tokenTTL = ttl
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a self-service employee account. Roles above employee
// are only assignable through the admin management endpoints.
func Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
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
	if len(req.Password) < 4 {
		respondError(w, http.StatusBadRequest, "Password must be at least 4 characters")
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

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleEmployee,
	}
	if err := db.Create(&user).Error; err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registration successful",
		"user":    user,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var user models.User
	err := database.GetDB().Preload("Profile").
		Where("username = ?", strings.TrimSpace(req.Username)).
		First(&user).Error
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := middleware.GenerateToken(&user, tokenTTL)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":          "Login successful",
		"token":            token,
		"user":             user,
		"profile_complete": user.ProfileComplete(),
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// CurrentUser returns the authenticated user for session restoration on
// page load.
func CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "No active session or session expired")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":             user,
		"profile_complete": user.ProfileComplete(),
	})
}

func GetProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "No active session or session expired")
		return
	}

	var profile models.UserProfile
	err := database.GetDB().Where("user_id = ?", user.ID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, http.StatusOK, models.UserProfile{})
			return
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// SaveProfile upserts the caller's profile row.
func SaveProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "No active session or session expired")
		return
	}

	var req models.UserProfile
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.FullName) == "" {
		respondError(w, http.StatusBadRequest, "Full name is required")
		return
	}

	db := database.GetDB()
	var profile models.UserProfile
	err := db.Where("user_id = ?", user.ID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{UserID: user.ID}
	} else if err != nil {
		respondServiceError(w, err)
		return
	}

	profile.FullName = req.FullName
	profile.Age = req.Age
	profile.Designation = req.Designation
	profile.Address = req.Address
	profile.PhoneNumber = req.PhoneNumber

	if err := db.Save(&profile).Error; err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile saved",
		"profile": profile,
	})
}
