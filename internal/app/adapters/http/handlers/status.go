package handlers

import (
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/cpu"
	"net/http"
	"runtime"
	"time"
)

type statusResponse struct {
	Uptime     string  `json:"uptime"`
	StartedAt  string  `json:"started_at"`
	CPUPercent float64 `json:"cpu_percent"`
	Memory     string  `json:"memory"`
	Goroutines int     `json:"goroutines"`
	Events     int     `json:"events"`
}

func (h *Handlers) Status(c *gin.Context) {
	var cpuPercent float64
	// interval 0 сравнивает с предыдущим вызовом и не блокирует запрос
	if p, err := cpu.PercentWithContext(c.Request.Context(), 0, false); err == nil && len(p) > 0 {
		cpuPercent = p[0]
	} else if err != nil {
		h.log.Debug("CPU usage unavailable", "error", err.Error())
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, statusResponse{
		Uptime:     time.Since(h.started).Truncate(time.Second).String(),
		StartedAt:  humanize.Time(h.started),
		CPUPercent: cpuPercent,
		Memory:     humanize.IBytes(mem.Alloc),
		Goroutines: runtime.NumGoroutine(),
		Events:     len(h.session.Events()),
	})
}
