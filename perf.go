package orbit

// perfWindow is the length in seconds of one frame-rate sample window.
const perfWindow = 1.0

// PerformanceMonitor counts frames per second over one-second windows and
// reports when the rate drops below a threshold. The viewer uses it to force
// reduced motion and low detail on slow machines.
type PerformanceMonitor struct {
	// Threshold is the frame rate below which Low reports true.
	Threshold float64
	// Sampler, when set, replaces frame counting. Run sets it to
	// ebiten.ActualFPS.
	Sampler func() float64

	frames  int
	elapsed float64
	fps     float64
	low     bool
	sampled bool
}

// NewPerformanceMonitor returns a monitor with the given threshold.
func NewPerformanceMonitor(threshold float64) *PerformanceMonitor {
	return &PerformanceMonitor{Threshold: threshold}
}

// Update records one frame of dt seconds. It returns true when the low
// performance flag changed.
func (m *PerformanceMonitor) Update(dt float64) bool {
	m.frames++
	m.elapsed += dt
	if m.elapsed < perfWindow {
		return false
	}
	if m.Sampler != nil {
		m.fps = m.Sampler()
	} else {
		m.fps = float64(m.frames) / m.elapsed
	}
	m.frames = 0
	m.elapsed = 0
	m.sampled = true

	low := m.fps > 0 && m.fps < m.Threshold
	changed := low != m.low
	m.low = low
	return changed
}

// FPS returns the rate measured over the last complete window, or 0 before
// the first window closes.
func (m *PerformanceMonitor) FPS() float64 { return m.fps }

// Low reports whether the last window measured below Threshold.
func (m *PerformanceMonitor) Low() bool { return m.low }

// Sampled reports whether at least one window has closed.
func (m *PerformanceMonitor) Sampled() bool { return m.sampled }
