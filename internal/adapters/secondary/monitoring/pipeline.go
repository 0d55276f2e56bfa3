// Package monitoring collects timing and outcome metrics for the deck
// generation pipeline.
package monitoring

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

// StageStats holds aggregated observations for one pipeline stage
type StageStats struct {
	Count       int64
	LastTime    time.Duration
	AverageTime time.Duration
}

// PipelineMetrics holds aggregated measurements across all requests
type PipelineMetrics struct {
	AppStartTime time.Time

	// Request outcomes
	RequestCount   int64
	FailureCount   int64
	LastRequestAt  time.Time
	AverageRunTime time.Duration

	// Parser observability
	ParseWarningCount int64

	// Per-stage timing
	Stages map[string]StageStats

	mu sync.RWMutex
}

// PipelineMonitor records pipeline observations and answers health and
// status queries. Safe for concurrent use.
type PipelineMonitor struct {
	metrics *PipelineMetrics
}

// NewPipelineMonitor creates a new pipeline monitor
func NewPipelineMonitor() *PipelineMonitor {
	return &PipelineMonitor{
		metrics: &PipelineMetrics{
			AppStartTime: time.Now(),
			Stages:       make(map[string]StageStats),
		},
	}
}

// RecordStage records one completed pipeline stage
func (pm *PipelineMonitor) RecordStage(stage string, duration time.Duration) {
	pm.metrics.mu.Lock()
	defer pm.metrics.mu.Unlock()

	stats := pm.metrics.Stages[stage]
	stats.Count++
	stats.LastTime = duration
	stats.AverageTime = movingAverage(stats.AverageTime, duration)
	pm.metrics.Stages[stage] = stats
}

// RecordRequest records one finished pipeline run
func (pm *PipelineMonitor) RecordRequest(success bool, duration time.Duration) {
	pm.metrics.mu.Lock()
	defer pm.metrics.mu.Unlock()

	pm.metrics.RequestCount++
	if !success {
		pm.metrics.FailureCount++
	}
	pm.metrics.LastRequestAt = time.Now()
	pm.metrics.AverageRunTime = movingAverage(pm.metrics.AverageRunTime, duration)
}

// RecordParseWarnings records dropped-line counts from the parser
func (pm *PipelineMonitor) RecordParseWarnings(count int) {
	pm.metrics.mu.Lock()
	defer pm.metrics.mu.Unlock()

	pm.metrics.ParseWarningCount += int64(count)
}

// movingAverage folds a new observation into an exponential moving average
func movingAverage(current, observed time.Duration) time.Duration {
	if current == 0 {
		return observed
	}
	alpha := 0.1
	return time.Duration(float64(current)*(1-alpha) + float64(observed)*alpha)
}

// GetUptime returns application uptime
func (pm *PipelineMonitor) GetUptime() time.Duration {
	pm.metrics.mu.RLock()
	defer pm.metrics.mu.RUnlock()

	return time.Since(pm.metrics.AppStartTime)
}

// IsHealthy performs a basic health check
func (pm *PipelineMonitor) IsHealthy() bool {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	maxMemory := uint64(500 * 1024 * 1024) // 500MB
	maxGoroutines := 1000

	return memStats.Alloc < maxMemory && runtime.NumGoroutine() < maxGoroutines
}

// GetStatus returns a snapshot of pipeline and process statistics for the
// status endpoint.
func (pm *PipelineMonitor) GetStatus() map[string]interface{} {
	pm.metrics.mu.RLock()
	defer pm.metrics.mu.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stages := make(map[string]interface{}, len(pm.metrics.Stages))
	for name, stats := range pm.metrics.Stages {
		stages[name] = map[string]interface{}{
			"count":   stats.Count,
			"last_ms": stats.LastTime.Milliseconds(),
			"avg_ms":  stats.AverageTime.Milliseconds(),
		}
	}

	return map[string]interface{}{
		"healthy":        pm.IsHealthy(),
		"uptime":         time.Since(pm.metrics.AppStartTime).String(),
		"memory_mb":      safeUint64ToInt64(memStats.Alloc) / (1024 * 1024),
		"goroutines":     runtime.NumGoroutine(),
		"gc_cycles":      memStats.NumGC,
		"requests":       pm.metrics.RequestCount,
		"failures":       pm.metrics.FailureCount,
		"parse_warnings": pm.metrics.ParseWarningCount,
		"avg_run_ms":     pm.metrics.AverageRunTime.Milliseconds(),
		"stages":         stages,
	}
}

// safeUint64ToInt64 safely converts uint64 to int64, capping at max int64 value
func safeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(val)
}

// Ensure PipelineMonitor implements ports.MetricsRecorder
var _ ports.MetricsRecorder = (*PipelineMonitor)(nil)
