package ports

import "time"

// Pipeline stage names used for metrics recording
const (
	StagePrompt     = "prompt"
	StageCompletion = "completion"
	StageParse      = "parse"
	StageAugment    = "augment"
	StageRender     = "render"
	StageConvert    = "convert"
)

// MetricsRecorder receives pipeline timing and outcome observations.
// Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	// RecordStage records one completed pipeline stage
	RecordStage(stage string, duration time.Duration)

	// RecordRequest records one finished pipeline run
	RecordRequest(success bool, duration time.Duration)

	// RecordParseWarnings records dropped-line counts from the parser
	RecordParseWarnings(count int)
}
