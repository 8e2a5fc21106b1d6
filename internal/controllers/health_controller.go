package controllers

import (
	"fmt"
	"net/http"
	"nodelete/internal/models"
	"nodelete/internal/services"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	store     *models.LogStore
	lifecycle *services.LifecycleManager
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Channels      int     `json:"channels"`
	Entries       int     `json:"entries"`
	Subscriptions int     `json:"subscriptions"`
	MenuPatched   bool    `json:"menu_patched"`
}

// Health reports "degraded" while the logger is not subscribed to the host.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Channels:      hc.store.ChannelCount(),
		Entries:       hc.store.EntriesTotal(),
		Subscriptions: hc.lifecycle.ActiveSubscriptions(),
		MenuPatched:   hc.lifecycle.Patched(),
	}
	if resp.Subscriptions == 0 {
		resp.Status = "degraded"
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store *models.LogStore, lifecycle *services.LifecycleManager) *HealthController {
	return &HealthController{
		store:     store,
		lifecycle: lifecycle,
		startTime: time.Now(),
	}
}
