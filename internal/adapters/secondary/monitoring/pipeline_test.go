package monitoring

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

func TestPipelineMonitor_RecordStage(t *testing.T) {
	pm := NewPipelineMonitor()

	pm.RecordStage(ports.StageCompletion, 100*time.Millisecond)
	pm.RecordStage(ports.StageCompletion, 200*time.Millisecond)
	pm.RecordStage(ports.StageParse, 1*time.Millisecond)

	status := pm.GetStatus()
	stages, ok := status["stages"].(map[string]interface{})
	require.True(t, ok)

	completion, ok := stages[ports.StageCompletion].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, int64(2), completion["count"])
	assert.Equal(t, int64(200), completion["last_ms"])

	parse, ok := stages[ports.StageParse].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, int64(1), parse["count"])
}

func TestPipelineMonitor_RecordRequest(t *testing.T) {
	pm := NewPipelineMonitor()

	pm.RecordRequest(true, 2*time.Second)
	pm.RecordRequest(true, 2*time.Second)
	pm.RecordRequest(false, 1*time.Second)

	status := pm.GetStatus()
	assert.Equal(t, int64(3), status["requests"])
	assert.Equal(t, int64(1), status["failures"])
}

func TestPipelineMonitor_RecordParseWarnings(t *testing.T) {
	pm := NewPipelineMonitor()

	pm.RecordParseWarnings(2)
	pm.RecordParseWarnings(0)
	pm.RecordParseWarnings(3)

	status := pm.GetStatus()
	assert.Equal(t, int64(5), status["parse_warnings"])
}

func TestMovingAverage(t *testing.T) {
	t.Run("first observation seeds the average", func(t *testing.T) {
		assert.Equal(t, 100*time.Millisecond, movingAverage(0, 100*time.Millisecond))
	})

	t.Run("subsequent observations move slowly", func(t *testing.T) {
		avg := movingAverage(100*time.Millisecond, 200*time.Millisecond)
		assert.Equal(t, 110*time.Millisecond, avg)
	})
}

func TestPipelineMonitor_GetStatus(t *testing.T) {
	pm := NewPipelineMonitor()

	status := pm.GetStatus()

	assert.Contains(t, status, "healthy")
	assert.Contains(t, status, "uptime")
	assert.Contains(t, status, "memory_mb")
	assert.Contains(t, status, "goroutines")
	assert.Equal(t, int64(0), status["requests"])
}

func TestPipelineMonitor_IsHealthy(t *testing.T) {
	pm := NewPipelineMonitor()
	assert.True(t, pm.IsHealthy())
}

func TestPipelineMonitor_ConcurrentAccess(t *testing.T) {
	pm := NewPipelineMonitor()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pm.RecordStage(ports.StageRender, time.Millisecond)
			pm.RecordRequest(true, time.Millisecond)
			pm.RecordParseWarnings(1)
			_ = pm.GetStatus()
		}()
	}
	wg.Wait()

	status := pm.GetStatus()
	assert.Equal(t, int64(20), status["requests"])
	assert.Equal(t, int64(20), status["parse_warnings"])
}
