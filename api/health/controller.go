// Package health serves the unauthenticated liveness and readiness probes.
package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"tgorders/config"

	"github.com/gin-gonic/gin"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// Pinger checks the database; nil for the memory store.
type Pinger func(ctx context.Context) error

type Controller struct {
	config  *config.Config
	ping    Pinger
	started time.Time
}

func NewController(cfg *config.Config, ping Pinger) *Controller {
	return &Controller{config: cfg, ping: ping, started: time.Now()}
}

func (c *Controller) RegisterRoutes(router gin.IRoutes) {
	router.GET("/health", c.Health)
	router.GET("/health/live", c.Liveness)
	router.GET("/health/ready", c.Readiness)
}

type Report struct {
	Status    string           `json:"status"`
	Service   string           `json:"service"`
	Version   string           `json:"version"`
	Storage   string           `json:"storage"`
	Uptime    string           `json:"uptime"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
	Runtime   *RuntimeInfo     `json:"runtime,omitempty"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type RuntimeInfo struct {
	GoVersion  string `json:"go_version"`
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc_bytes"`
}

// Health reports the service and, for MySQL deployments, the database round
// trip. Runtime details are only exposed in development.
func (c *Controller) Health(ctx *gin.Context) {
	report := Report{
		Status:    statusHealthy,
		Service:   c.config.App.Name,
		Version:   c.config.App.Version,
		Storage:   c.config.Database.Type,
		Uptime:    time.Since(c.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if c.ping != nil {
		db := c.pingDatabase(ctx.Request.Context())
		report.Checks = map[string]Check{"database": db}
		report.Status = db.Status
	}

	if c.config.IsDevelopment() {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		report.Runtime = &RuntimeInfo{
			GoVersion:  runtime.Version(),
			Goroutines: runtime.NumGoroutine(),
			HeapAlloc:  mem.HeapAlloc,
		}
	}

	code := http.StatusOK
	if report.Status != statusHealthy {
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, report)
}

func (c *Controller) Liveness(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness fails while the database is unreachable so the bot is taken out
// of rotation before callbacks start erroring.
func (c *Controller) Readiness(ctx *gin.Context) {
	if c.ping != nil && c.ping(ctx.Request.Context()) != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "message": "database not available"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (c *Controller) pingDatabase(ctx context.Context) Check {
	start := time.Now()
	err := c.ping(ctx)
	check := Check{Status: statusHealthy, Latency: time.Since(start).String()}
	if err != nil {
		check.Status = statusUnhealthy
		check.Message = err.Error()
	}
	return check
}
