package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// roundTo rounds a value to the given number of decimal places. Display
// rounding happens here at the HTTP boundary and nowhere else; the core
// keeps full float64 precision so trend math never compounds rounding error.
func roundTo(value float64, places int) float64 {
	if places < 0 {
		places = 0
	}
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// parseDateParam parses an optional YYYY-MM-DD query parameter, falling back
// to the given default when absent.
func parseDateParam(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return models.Day(fallback), nil
	}
	parsed, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return models.Day(parsed), nil
}

// parseRangeParams parses the optional start/end query parameters into a
// half-open date range. Absent bounds stay open.
func parseRangeParams(start, end string) (models.DateRange, error) {
	var r models.DateRange
	if start != "" {
		parsed, err := time.Parse(models.DateLayout, start)
		if err != nil {
			return models.DateRange{}, err
		}
		r.Start = models.Day(parsed)
	}
	if end != "" {
		parsed, err := time.Parse(models.DateLayout, end)
		if err != nil {
			return models.DateRange{}, err
		}
		r.End = models.Day(parsed)
	}
	return r, nil
}
