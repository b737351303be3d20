package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"repopulse/internal/checkpoint"
	"repopulse/internal/providers"
	"time"
)

const (
	statusRunning = "running"
	statusIdle    = "idle"
)

type HealthController struct {
	progress  providers.ProgressReporter
	store     checkpoint.StoreInterface
	startTime time.Time
}

type runState struct {
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Pending   int    `json:"pending"`
	Current   string `json:"current,omitempty"`
}

type healthResponse struct {
	Status        string   `json:"status"`
	Uptime        string   `json:"uptime"`
	UptimeSeconds float64  `json:"uptime_seconds"`
	Histories     int      `json:"histories"`
	Run           runState `json:"run"`
}

// Health reports liveness together with the progress of the current run.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	run := runState{
		Processed: hc.progress.Processed(),
		Skipped:   hc.progress.Skipped(),
		Pending:   hc.progress.Pending(),
		Current:   hc.progress.Current(),
	}
	status := statusIdle
	if run.Pending > 0 || run.Current != "" {
		status = statusRunning
	}

	uptime := time.Since(hc.startTime)
	gson, err := json.Marshal(healthResponse{
		Status:        status,
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Histories:     hc.store.Len(),
		Run:           run,
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(progress providers.ProgressReporter, store checkpoint.StoreInterface) *HealthController {
	return &HealthController{
		progress:  progress,
		store:     store,
		startTime: time.Now(),
	}
}
