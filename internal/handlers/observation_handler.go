package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/analytics"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/services"
	"github.com/Dias221467/HealthMetrics_Tracker/pkg/middleware"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObservationHandler handles HTTP requests for recording observations and
// reading summaries and trends over them.
type ObservationHandler struct {
	Service *services.ObservationService

	// TrendWindow is the default moving-average window applied when the
	// request does not specify one.
	TrendWindow int
}

// NewObservationHandler creates a new instance of ObservationHandler.
func NewObservationHandler(service *services.ObservationService, trendWindow int) *ObservationHandler {
	return &ObservationHandler{
		Service:     service,
		TrendWindow: trendWindow,
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to convert user ID")
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return primitive.NilObjectID, false
	}
	return userID, true
}

// CreateObservationHandler records a new observation.
func (h *ObservationHandler) CreateObservationHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var payload struct {
		MetricTypeID string  `json:"metric_type_id"`
		Value        float64 `json:"value"`
		RecordedDate string  `json:"recorded_date"`
		Notes        string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Invalid request payload during observation creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	metricTypeID, err := primitive.ObjectIDFromHex(payload.MetricTypeID)
	if err != nil {
		http.Error(w, "Invalid metric_type_id", http.StatusBadRequest)
		return
	}

	recordedDate, err := parseDateParam(payload.RecordedDate, time.Now())
	if err != nil {
		http.Error(w, "Invalid recorded_date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	obs := models.Observation{
		UserID:       userID,
		MetricTypeID: metricTypeID,
		Value:        payload.Value,
		RecordedDate: recordedDate,
		Notes:        payload.Notes,
	}

	created, err := h.Service.RecordObservation(r.Context(), &obs)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, analytics.ErrOutOfRange) {
			status = http.StatusUnprocessableEntity
		}
		log.WithError(err).Warn("Failed to record observation")
		http.Error(w, err.Error(), status)
		return
	}

	log.WithFields(log.Fields{
		"userID":        userID.Hex(),
		"observationID": created.ID.Hex(),
	}).Info("Observation recorded")
	writeJSON(w, http.StatusCreated, created)
}

// ListObservationsHandler returns observations for a metric type within an
// optional half-open date range.
func (h *ObservationHandler) ListObservationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	metricTypeID := query.Get("metric_type")
	if metricTypeID == "" {
		http.Error(w, "metric_type parameter is required", http.StatusBadRequest)
		return
	}

	dateRange, err := parseRangeParams(query.Get("start"), query.Get("end"))
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	observations, err := h.Service.ListObservations(r.Context(), userID, metricTypeID, dateRange)
	if err != nil {
		log.WithError(err).Error("Failed to list observations")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, observations)
}

// GetObservationHandler returns a single observation.
func (h *ObservationHandler) GetObservationHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	obs, err := h.Service.GetObservation(r.Context(), vars["id"], userID)
	if err != nil {
		log.WithField("observationID", vars["id"]).WithError(err).Warn("Observation not found")
		http.Error(w, "Observation not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, obs)
}

// UpdateObservationHandler updates the value and notes of an observation.
func (h *ObservationHandler) UpdateObservationHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	var payload struct {
		Value float64 `json:"value"`
		Notes string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateObservation(r.Context(), vars["id"], userID, payload.Value, payload.Notes)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, analytics.ErrOutOfRange) {
			status = http.StatusUnprocessableEntity
		}
		log.WithError(err).Warn("Failed to update observation")
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteObservationHandler removes an observation.
func (h *ObservationHandler) DeleteObservationHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := h.Service.DeleteObservation(r.Context(), vars["id"], userID); err != nil {
		log.WithError(err).Warn("Failed to delete observation")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "Observation deleted"})
}

// SummaryHandler returns descriptive statistics for a metric type over an
// optional half-open date range. An empty range is reported as 404-style
// "no data", not a server error.
func (h *ObservationHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	metricTypeID := query.Get("metric_type")
	if metricTypeID == "" {
		http.Error(w, "metric_type parameter is required", http.StatusBadRequest)
		return
	}

	dateRange, err := parseRangeParams(query.Get("start"), query.Get("end"))
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	summary, mt, err := h.Service.GetSummary(r.Context(), userID, metricTypeID, dateRange)
	if err != nil {
		if errors.Is(err, analytics.ErrEmptyRange) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no observations in range"})
			return
		}
		log.WithError(err).Error("Failed to compute summary")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary.Average = roundTo(summary.Average, mt.Precision)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"metric_type": mt.Name,
		"unit":        mt.Unit,
		"summary":     summary,
	})
}

// TrendsHandler returns the moving-average series for a metric type.
func (h *ObservationHandler) TrendsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	metricTypeID := query.Get("metric_type")
	if metricTypeID == "" {
		http.Error(w, "metric_type parameter is required", http.StatusBadRequest)
		return
	}

	dateRange, err := parseRangeParams(query.Get("start"), query.Get("end"))
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	window := h.TrendWindow
	if raw := query.Get("window"); raw != "" {
		window, err = strconv.Atoi(raw)
		if err != nil || window < 1 {
			http.Error(w, "window must be a positive integer", http.StatusBadRequest)
			return
		}
	}

	points, mt, err := h.Service.GetTrend(r.Context(), userID, metricTypeID, dateRange, window)
	if err != nil {
		log.WithError(err).Error("Failed to compute trend")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for i := range points {
		points[i].Value = roundTo(points[i].Value, mt.Precision)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"metric_type": mt.Name,
		"unit":        mt.Unit,
		"window":      window,
		"data_points": points,
	})
}
