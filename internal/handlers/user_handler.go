package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/config"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/services"
	jwtutil "github.com/Dias221467/HealthMetrics_Tracker/pkg/jwt"
	"github.com/Dias221467/HealthMetrics_Tracker/pkg/middleware"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests related to user accounts.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

// RegisterUserHandler handles user registration.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Failed to decode user registration request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user := models.User{
		Username:       payload.Username,
		Email:          payload.Email,
		HashedPassword: payload.Password, // hashed by the service before storage
	}

	createdUser, err := h.Service.RegisterUser(r.Context(), &user)
	if err != nil {
		log.WithError(err).Error("Failed to register user")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.WithField("userID", createdUser.ID.Hex()).Info("User registered successfully")
	writeJSON(w, http.StatusCreated, createdUser)
}

// LoginUserHandler handles user login.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.WithError(err).Warn("Failed to decode login request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.AuthenticateUser(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		log.WithField("email", credentials.Email).Warn("Authentication failed")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, user.Role, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// MeHandler returns the authenticated user's account.
func (h *UserHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Service.GetUser(r.Context(), claims.UserID)
	if err != nil {
		log.WithField("userID", claims.UserID).WithError(err).Warn("User not found")
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": user,
		"age":  user.Profile.Age(time.Now()),
	})
}

// UpdateProfileHandler updates the authenticated user's health profile.
func (h *UserHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		DateOfBirth          string `json:"date_of_birth"`
		HeightCM             int    `json:"height_cm"`
		Timezone             string `json:"timezone"`
		NotificationsEnabled bool   `json:"notifications_enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Failed to decode profile update request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	profile := models.Profile{
		HeightCM:             payload.HeightCM,
		Timezone:             payload.Timezone,
		NotificationsEnabled: payload.NotificationsEnabled,
	}
	if payload.DateOfBirth != "" {
		dob, err := time.Parse(models.DateLayout, payload.DateOfBirth)
		if err != nil {
			http.Error(w, "Invalid date_of_birth, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		day := models.Day(dob)
		profile.DateOfBirth = &day
	}

	user, err := h.Service.UpdateProfile(r.Context(), claims.UserID, profile)
	if err != nil {
		log.WithError(err).Warn("Failed to update profile")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.WithField("userID", claims.UserID).Info("Profile updated")
	writeJSON(w, http.StatusOK, user)
}
