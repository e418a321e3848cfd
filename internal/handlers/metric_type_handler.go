package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/Dias221467/HealthMetrics_Tracker/internal/services"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// MetricTypeHandler handles HTTP requests for metric type reference data.
// Mutations are admin-only; the router applies the role check.
type MetricTypeHandler struct {
	Service *services.MetricTypeService
}

// NewMetricTypeHandler creates a new instance of MetricTypeHandler.
func NewMetricTypeHandler(service *services.MetricTypeService) *MetricTypeHandler {
	return &MetricTypeHandler{
		Service: service,
	}
}

// CreateMetricTypeHandler handles the creation of a new metric type.
func (h *MetricTypeHandler) CreateMetricTypeHandler(w http.ResponseWriter, r *http.Request) {
	var mt models.MetricType
	if err := json.NewDecoder(r.Body).Decode(&mt); err != nil {
		log.WithError(err).Warn("Invalid request payload during metric type creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateMetricType(r.Context(), &mt)
	if err != nil {
		log.WithError(err).Error("Failed to create metric type")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.WithField("metricType", created.Name).Info("Metric type created")
	writeJSON(w, http.StatusCreated, created)
}

// ListMetricTypesHandler returns metric types ordered by name.
func (h *MetricTypeHandler) ListMetricTypesHandler(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("include_inactive") != "true"

	types, err := h.Service.ListMetricTypes(r.Context(), activeOnly)
	if err != nil {
		log.WithError(err).Error("Failed to list metric types")
		http.Error(w, "Failed to list metric types", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types)
}

// GetMetricTypeHandler returns a single metric type.
func (h *MetricTypeHandler) GetMetricTypeHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	mt, err := h.Service.GetMetricType(r.Context(), vars["id"])
	if err != nil {
		log.WithField("metricTypeID", vars["id"]).WithError(err).Warn("Metric type not found")
		http.Error(w, "Metric type not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, mt)
}

// UpdateMetricTypeHandler updates a metric type.
func (h *MetricTypeHandler) UpdateMetricTypeHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var mt models.MetricType
	if err := json.NewDecoder(r.Body).Decode(&mt); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateMetricType(r.Context(), vars["id"], &mt)
	if err != nil {
		log.WithError(err).Error("Failed to update metric type")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteMetricTypeHandler removes a metric type.
func (h *MetricTypeHandler) DeleteMetricTypeHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.DeleteMetricType(r.Context(), vars["id"]); err != nil {
		log.WithError(err).Error("Failed to delete metric type")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "Metric type deleted"})
}
