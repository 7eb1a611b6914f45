package health

import (
	"context"
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"vibe-frontend/internal/cache"
	"vibe-frontend/internal/timeutil"
	"vibe-frontend/internal/upstream"
)

type HealthChecker struct {
	api *upstream.Client
}

type HealthStatus struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Upstream  UpstreamHealth `json:"upstream"`
	Cache     string         `json:"cache"`
}

type UpstreamHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type SystemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent"`
}

type DetailedStatus struct {
	HealthStatus
	System SystemStats `json:"system"`
}

func NewHealthChecker(api *upstream.Client) *HealthChecker {
	return &HealthChecker{api: api}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	up := h.checkUpstream()

	status := "healthy"
	if up.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:    status,
		Timestamp: timeutil.FormatKST(time.Now(), time.RFC3339),
		Upstream:  up,
		Cache:     h.checkCache(),
	}
}

// CheckDetailed adds host CPU, memory, and disk readings for the monitoring
// dashboard.
func (h *HealthChecker) CheckDetailed() DetailedStatus {
	return DetailedStatus{
		HealthStatus: h.CheckBasic(),
		System:       readSystemStats(),
	}
}

func (h *HealthChecker) checkUpstream() UpstreamHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	resp, err := h.api.Do(ctx, http.MethodGet, "/api/v1/health", "", nil)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return UpstreamHealth{Status: "unreachable", ResponseTime: responseTime}
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UpstreamHealth{Status: "unhealthy", ResponseTime: responseTime}
	}
	return UpstreamHealth{Status: "healthy", ResponseTime: responseTime}
}

// checkCache reports the Redis state. The cache is optional, so a missing
// client is "disabled" rather than unhealthy.
func (h *HealthChecker) checkCache() string {
	client := cache.GetClient()
	if client == nil {
		return "disabled"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return "unhealthy"
	}
	return "healthy"
}

func readSystemStats() SystemStats {
	stats := SystemStats{}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
	}

	return stats
}
