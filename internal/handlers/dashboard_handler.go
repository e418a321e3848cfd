package handlers

import (
	"net/http"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/services"
	log "github.com/sirupsen/logrus"
)

// DashboardHandler handles the combined dashboard endpoint.
type DashboardHandler struct {
	Service *services.DashboardService
}

// NewDashboardHandler creates a new instance of DashboardHandler.
func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		Service: service,
	}
}

// GetDashboardHandler returns goal progress and trailing-week summaries for
// the authenticated user as of the requested date (default: today).
func (h *DashboardHandler) GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	today, err := parseDateParam(r.URL.Query().Get("date"), time.Now())
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	view, err := h.Service.GetDashboard(r.Context(), userID, today)
	if err != nil {
		log.WithError(err).Error("Failed to build dashboard")
		http.Error(w, "Failed to build dashboard", http.StatusInternalServerError)
		return
	}

	// Presentation rounding happens here and nowhere earlier.
	for i := range view.Goals {
		view.Goals[i].Value = roundTo(view.Goals[i].Value, view.Goals[i].Precision)
	}
	for name, ms := range view.Summaries {
		ms.Summary.Average = roundTo(ms.Summary.Average, ms.Precision)
		view.Summaries[name] = ms
	}

	log.WithField("userID", userID.Hex()).Info("Dashboard composed")
	writeJSON(w, http.StatusOK, view)
}
