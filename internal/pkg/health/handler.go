package health

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adityarama/equipviz/internal/utils"
)

// Status describes the running process, returned by /ping.
type Status struct {
	Service    string    `json:"service"`
	Version    string    `json:"version"`
	GitCommit  string    `json:"git_commit"`
	BuildTime  string    `json:"build_time"`
	GoVersion  string    `json:"go_version"`
	Hostname   string    `json:"hostname"`
	ServerTime time.Time `json:"server_time"`
	Uptime     string    `json:"uptime"`
}

// Handler serves liveness and readiness probes plus a build-info ping.
type Handler struct {
	service   string
	version   string
	gitCommit string
	buildTime string
	hostname  string
	started   time.Time
}

// NewHandler captures build metadata from the environment at startup.
func NewHandler(service string) *Handler {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	h := &Handler{
		service:   service,
		version:   "development",
		gitCommit: "unknown",
		buildTime: "unknown",
		hostname:  hostname,
		started:   time.Now(),
	}
	if v := os.Getenv("VERSION"); v != "" {
		h.version = v
	}
	if v := os.Getenv("GIT_COMMIT"); v != "" {
		h.gitCommit = v
	}
	if v := os.Getenv("BUILD_TIME"); v != "" {
		h.buildTime = v
	}
	return h
}

// Ping returns build and runtime information.
func (h *Handler) Ping(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "pong", Status{
		Service:    h.service,
		Version:    h.version,
		GitCommit:  h.gitCommit,
		BuildTime:  h.buildTime,
		GoVersion:  runtime.Version(),
		Hostname:   h.hostname,
		ServerTime: time.Now(),
		Uptime:     time.Since(h.started).Round(time.Second).String(),
	})
}

// Live answers the Kubernetes liveness and readiness probes.
func (h *Handler) Live(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "OK", nil)
}

// RegisterHealthEndpoints registers the health check endpoints
func RegisterHealthEndpoints(e *echo.Echo, service string) {
	h := NewHandler(service)

	e.GET("/ping", h.Ping)
	e.GET("/health", h.Live)
	e.GET("/healthz", h.Live)
	e.GET("/ready", h.Live)
}
