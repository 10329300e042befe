package orbit

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-tick timing and counts. Only populated in debug mode.
type debugStats struct {
	layoutTime time.Duration
	emitTime   time.Duration
	sortTime   time.Duration
	frames     int
	requested  int
	progress   Progress
}

// debugInterval is the number of ticks between debug log lines.
const debugInterval = 60

// debugLog writes the stats at debug level every debugInterval ticks.
func (v *Viewer) debugLog(stats debugStats) {
	if !v.debug || v.tick%debugInterval != 0 {
		return
	}
	v.logger.Debug("tick",
		zap.Uint64("tick", v.tick),
		zap.Duration("layout", stats.layoutTime),
		zap.Duration("emit", stats.emitTime),
		zap.Duration("sort", stats.sortTime),
		zap.Int("frames", stats.frames),
		zap.Int("requested", stats.requested),
		zap.Int("loaded", stats.progress.Loaded),
		zap.Int("failed", stats.progress.Failed),
		zap.Float64("fps", v.perf.FPS()),
		zap.Bool("reduced_motion", v.reducedMotion),
	)
}

// SetDebugMode enables or disables per-tick debug logging.
func (v *Viewer) SetDebugMode(enabled bool) {
	v.debug = enabled
}
