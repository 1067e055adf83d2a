package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Checker 就緒檢查項目，回傳 nil 代表正常
type Checker func() error

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status       string         `json:"status"`
	Timestamp    time.Time      `json:"timestamp"`
	Version      string         `json:"version"`
	Uptime       string         `json:"uptime"`
	LLMAvailable bool           `json:"llm_available"`
	Runtime      map[string]any `json:"runtime"`
	Details      map[string]any `json:"details,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	version      string
	llmAvailable bool
	started      time.Time
	checks       map[string]Checker
	details      map[string]func() any
}

// NewHandler 創建健康檢查處理器；details 中的函式於每次 /health 請求時取值
func NewHandler(version string, llmAvailable bool, checks map[string]Checker, details map[string]func() any) *Handler {
	return &Handler{
		version:      version,
		llmAvailable: llmAvailable,
		started:      time.Now(),
		checks:       checks,
		details:      details,
	}
}

// HealthCheck 健康檢查。LLM 未啟用時服務仍可用，只是降級
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var details map[string]any
	if len(h.details) > 0 {
		details = make(map[string]any, len(h.details))
		for name, fn := range h.details {
			details[name] = fn()
		}
	}

	status := "ok"
	if !h.llmAvailable {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:       status,
		Timestamp:    time.Now(),
		Version:      h.version,
		Uptime:       time.Since(h.started).Round(time.Second).String(),
		LLMAvailable: h.llmAvailable,
		Runtime: map[string]any{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Details: details,
	})
}

// ReadinessCheck 就緒檢查，任一項目失敗回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	results := make(map[string]string, len(h.checks))
	ready := true
	for name, check := range h.checks {
		if err := check(); err != nil {
			results[name] = err.Error()
			ready = false
			continue
		}
		results[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": results})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": results})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
