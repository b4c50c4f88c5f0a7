package api

import (
	"net/http"
	"time"

	"github.com/sajjad-MoBe/slotstore/internal/storage"
)

// HealthStatus represents the health status of a component
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Details   any       `json:"details,omitempty"`
}

// slotHealth reports the state of the storage slot. The slot cannot fail,
// so it is always ok.
func slotHealth(slot *storage.Slot) HealthStatus {
	stats := slot.Stats()

	details := map[string]interface{}{
		"set":    slot.IsSet(),
		"writes": stats.Writes,
	}
	if !stats.LastWrite.IsZero() {
		details["last_write"] = stats.LastWrite
	}

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Details:   details,
	}
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"components": map[string]HealthStatus{
			"slot": slotHealth(s.slot),
		},
	})
}
