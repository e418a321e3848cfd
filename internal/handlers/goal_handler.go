package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/analytics"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/services"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalHandler handles HTTP requests related to goals and their progress.
type GoalHandler struct {
	Service *services.GoalService
}

// NewGoalHandler creates a new instance of GoalHandler.
func NewGoalHandler(service *services.GoalService) *GoalHandler {
	return &GoalHandler{
		Service: service,
	}
}

// CreateGoalHandler handles the creation of a new goal.
func (h *GoalHandler) CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload struct {
		MetricTypeID string  `json:"metric_type_id"`
		TargetValue  float64 `json:"target_value"`
		Period       string  `json:"period"`
		Direction    string  `json:"direction"`
		StartDate    string  `json:"start_date"`
		EndDate      string  `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Invalid request payload during goal creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	metricTypeID, err := primitive.ObjectIDFromHex(payload.MetricTypeID)
	if err != nil {
		http.Error(w, "Invalid metric_type_id", http.StatusBadRequest)
		return
	}

	goal := models.Goal{
		UserID:       userID,
		MetricTypeID: metricTypeID,
		TargetValue:  payload.TargetValue,
		Period:       models.PeriodKind(payload.Period),
		Direction:    models.Direction(payload.Direction),
	}

	if payload.StartDate != "" {
		start, err := time.Parse(models.DateLayout, payload.StartDate)
		if err != nil {
			http.Error(w, "Invalid start_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		goal.StartDate = models.Day(start)
	}
	if payload.EndDate != "" {
		end, err := time.Parse(models.DateLayout, payload.EndDate)
		if err != nil {
			http.Error(w, "Invalid end_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		day := models.Day(end)
		goal.EndDate = &day
	}

	created, err := h.Service.CreateGoal(r.Context(), &goal)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, analytics.ErrInvalidGoalConfig) {
			status = http.StatusUnprocessableEntity
		}
		log.WithError(err).Warn("Failed to create goal")
		http.Error(w, err.Error(), status)
		return
	}

	log.WithFields(log.Fields{
		"userID": userID.Hex(),
		"goalID": created.ID.Hex(),
	}).Info("Goal successfully created")
	writeJSON(w, http.StatusCreated, created)
}

// GetGoalsHandler returns the user's goals in creation order.
func (h *GoalHandler) GetGoalsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	includeInactive := r.URL.Query().Get("include_inactive") == "true"
	goals, err := h.Service.GetGoals(r.Context(), userID, includeInactive)
	if err != nil {
		log.WithError(err).Error("Failed to fetch goals")
		http.Error(w, "Failed to fetch goals", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

// GetActiveGoalsHandler returns only active, non-expired goals.
func (h *GoalHandler) GetActiveGoalsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	today, err := parseDateParam(r.URL.Query().Get("date"), time.Now())
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	goals, err := h.Service.GetActiveGoals(r.Context(), userID, today)
	if err != nil {
		log.WithError(err).Error("Failed to fetch active goals")
		http.Error(w, "Failed to fetch active goals", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

// GetGoalHandler handles fetching a single goal by its ID.
func (h *GoalHandler) GetGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	goal, err := h.Service.GetGoal(r.Context(), vars["id"], userID)
	if err != nil {
		log.WithField("goalID", vars["id"]).WithError(err).Warn("Goal not found")
		http.Error(w, "Goal not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// UpdateGoalHandler updates the end date of a goal. Target and enumerations
// are immutable after creation.
func (h *GoalHandler) UpdateGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	var payload struct {
		EndDate string `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var endDate *time.Time
	if payload.EndDate != "" {
		end, err := time.Parse(models.DateLayout, payload.EndDate)
		if err != nil {
			http.Error(w, "Invalid end_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		day := models.Day(end)
		endDate = &day
	}

	updated, err := h.Service.UpdateGoal(r.Context(), vars["id"], userID, endDate)
	if err != nil {
		log.WithError(err).Warn("Failed to update goal")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeactivateGoalHandler turns a goal off without deleting it.
func (h *GoalHandler) DeactivateGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := h.Service.DeactivateGoal(r.Context(), vars["id"], userID); err != nil {
		log.WithError(err).Warn("Failed to deactivate goal")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.WithField("goalID", vars["id"]).Info("Goal deactivated")
	writeJSON(w, http.StatusOK, map[string]string{"status": "Goal deactivated"})
}

// DeleteGoalHandler removes a goal.
func (h *GoalHandler) DeleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := h.Service.DeleteGoal(r.Context(), vars["id"], userID); err != nil {
		log.WithError(err).Warn("Failed to delete goal")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "Goal deleted"})
}

// GetGoalProgressHandler returns the goal's evaluated progress for the
// period containing the requested date (default: today). Progress is
// derived on every call and never stored.
func (h *GoalHandler) GetGoalProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	today, err := parseDateParam(r.URL.Query().Get("date"), time.Now())
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	progress, err := h.Service.EvaluateGoal(r.Context(), vars["id"], userID, today)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidGoalConfig) {
			log.WithError(err).Warn("Goal has invalid configuration")
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		log.WithError(err).Warn("Failed to evaluate goal")
		http.Error(w, "Goal not found", http.StatusNotFound)
		return
	}

	progress.Value = roundTo(progress.Value, progress.Precision)
	writeJSON(w, http.StatusOK, progress)
}
