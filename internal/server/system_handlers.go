package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// ReferenceDataStats describes the loaded reference data
type ReferenceDataStats interface {
	Len() int
	AliasCount() int
}

// SystemHandlers handles system monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	registry    ReferenceDataStats
}

// NewSystemHandlers creates system handlers
func NewSystemHandlers(log zerolog.Logger, registry ReferenceDataStats) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		startupTime: time.Now(),
		registry:    registry,
	}
}

// SystemStatusResponse represents the service status
type SystemStatusResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	Goroutines    int     `json:"goroutines"`
	Compositions  int     `json:"compositions"`
	Aliases       int     `json:"aliases"`
	CheckedAt     string  `json:"checked_at"`
}

// GetSystemStatusSnapshot returns a snapshot of the current system status
func (h *SystemHandlers) GetSystemStatusSnapshot() SystemStatusResponse {
	cpuPercent, memPercent := h.getSystemStats()

	response := SystemStatusResponse{
		Status:        "healthy",
		UptimeSeconds: time.Since(h.startupTime).Seconds(),
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		Goroutines:    runtime.NumGoroutine(),
		CheckedAt:     time.Now().Format(time.RFC3339),
	}
	if h.registry != nil {
		response.Compositions = h.registry.Len()
		response.Aliases = h.registry.AliasCount()
	}
	return response
}

// HealthResponse reports whether the engine can serve scores
type HealthResponse struct {
	Status       string `json:"status"`
	Service      string `json:"service"`
	Compositions int    `json:"compositions"`
	Aliases      int    `json:"aliases"`
}

// HandleHealth handles GET /health.
// An empty composition registry leaves look-through without data and reports 503.
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{Status: "healthy", Service: "diversifier"}
	if h.registry != nil {
		response.Compositions = h.registry.Len()
		response.Aliases = h.registry.AliasCount()
	}

	status := http.StatusOK
	if response.Compositions == 0 {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.GetSystemStatusSnapshot()); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// getSystemStats returns CPU and memory usage percentages.
// CPU is sampled over 100ms so the call stays fast.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
