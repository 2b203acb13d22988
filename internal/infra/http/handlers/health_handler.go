package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

type HealthHandler struct {
	DataFile  string
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(dataFile string) *HealthHandler {
	return &HealthHandler{
		DataFile:  dataFile,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	// The storage file itself may not exist yet; its directory must be
	// reachable for saves to succeed.
	dir := filepath.Dir(h.DataFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		deps["storage"] = fmt.Sprintf("unhealthy: %v", err)
	} else {
		deps["storage"] = "healthy"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Service:      "lead-tracking-system",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
