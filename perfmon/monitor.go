// FILE: perfmon/monitor.go

// Package perfmon tracks frame throughput and latency statistics over a
// sliding window. It is pure arithmetic guarded by a mutex; the HTTP control
// plane reads it while the capture loop feeds it.
package perfmon

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// maxFrameHistory is the sliding window length used for averaging
const maxFrameHistory = 60

// Monitor tracks FPS, frame latency and totals. The zero value is not ready
// for use; construct with NewMonitor.
type Monitor struct {
	mu sync.Mutex

	startTime     time.Time
	lastStatsTime time.Time

	frameStart time.Time
	frameTimes []float64 // Last maxFrameHistory frame durations, milliseconds

	totalFrames      uint64
	currentFrameTime float64
	minFrameTime     float64
	maxFrameTime     float64

	fpsFrameCount uint64
	fpsStartTime  time.Time
	currentFPS    float64
}

// NewMonitor creates a monitor with all counters reset.
func NewMonitor() *Monitor {
	m := &Monitor{}
	m.reset(time.Now())
	return m
}

func (m *Monitor) reset(now time.Time) {
	m.startTime = now
	m.lastStatsTime = now
	m.fpsStartTime = now
	m.frameTimes = m.frameTimes[:0]
	m.totalFrames = 0
	m.currentFrameTime = 0
	m.minFrameTime = 0
	m.maxFrameTime = 0
	m.fpsFrameCount = 0
	m.currentFPS = 0
}

// Reset clears all counters and restarts the measurement window.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset(time.Now())
}

// StartFrame marks the beginning of a frame's processing.
func (m *Monitor) StartFrame() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frameStart = time.Now()
}

// EndFrame marks the end of a frame's processing and updates every metric.
func (m *Monitor) EndFrame() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	frameMs := float64(now.Sub(m.frameStart)) / float64(time.Millisecond)

	m.currentFrameTime = frameMs
	m.totalFrames++
	m.fpsFrameCount++

	if m.totalFrames == 1 || frameMs < m.minFrameTime {
		m.minFrameTime = frameMs
	}
	if frameMs > m.maxFrameTime {
		m.maxFrameTime = frameMs
	}

	m.frameTimes = append(m.frameTimes, frameMs)
	if len(m.frameTimes) > maxFrameHistory {
		m.frameTimes = m.frameTimes[1:]
	}

	// Recompute FPS once per second of wall clock
	if elapsed := now.Sub(m.fpsStartTime); elapsed >= time.Second {
		m.currentFPS = float64(m.fpsFrameCount) / elapsed.Seconds()
		m.fpsFrameCount = 0
		m.fpsStartTime = now
	}
}

// FPS returns the frame rate measured over the last completed one-second window.
func (m *Monitor) FPS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentFPS
}

// CurrentFrameTime returns the last frame's duration in milliseconds.
func (m *Monitor) CurrentFrameTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentFrameTime
}

// AverageFrameTime returns the mean frame duration over the sliding window.
func (m *Monitor) AverageFrameTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.averageLocked()
}

func (m *Monitor) averageLocked() float64 {
	if len(m.frameTimes) == 0 {
		return 0
	}
	var sum float64
	for _, v := range m.frameTimes {
		sum += v
	}
	return sum / float64(len(m.frameTimes))
}

// MinFrameTime returns the fastest frame seen since the last reset.
func (m *Monitor) MinFrameTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.minFrameTime
}

// MaxFrameTime returns the slowest frame seen since the last reset.
func (m *Monitor) MaxFrameTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxFrameTime
}

// TotalFrames returns the number of completed frames since the last reset.
func (m *Monitor) TotalFrames() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalFrames
}

// Stats renders the formatted statistics block, including window percentiles.
func (m *Monitor) Stats() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	totalSeconds := time.Since(m.startTime).Seconds()
	avgFPS := 0.0
	if totalSeconds > 0 {
		avgFPS = float64(m.totalFrames) / totalSeconds
	}

	var sb strings.Builder
	sb.WriteString("=== Performance Statistics ===\n")
	fmt.Fprintf(&sb, "Runtime: %.1fs\n", totalSeconds)
	fmt.Fprintf(&sb, "Total Frames: %d\n", m.totalFrames)
	fmt.Fprintf(&sb, "Current FPS: %.1f\n", m.currentFPS)
	fmt.Fprintf(&sb, "Average FPS: %.1f\n", avgFPS)
	fmt.Fprintf(&sb, "Frame Time - Current: %.2fms\n", m.currentFrameTime)
	fmt.Fprintf(&sb, "Frame Time - Average: %.2fms\n", m.averageLocked())
	fmt.Fprintf(&sb, "Frame Time - Min: %.2fms\n", m.minFrameTime)
	fmt.Fprintf(&sb, "Frame Time - Max: %.2fms\n", m.maxFrameTime)

	if len(m.frameTimes) > 0 {
		sorted := make([]float64, len(m.frameTimes))
		copy(sorted, m.frameTimes)
		sort.Float64s(sorted)
		fmt.Fprintf(&sb, "Frame Time - P50: %.2fms\n", percentile(sorted, 0.50))
		fmt.Fprintf(&sb, "Frame Time - P95: %.2fms\n", percentile(sorted, 0.95))
		fmt.Fprintf(&sb, "Frame Time - P99: %.2fms\n", percentile(sorted, 0.99))
	}

	return sb.String()
}

// ShouldDisplayStats reports whether interval has elapsed since the last
// display, and if so advances the display clock.
func (m *Monitor) ShouldDisplayStats(interval time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if time.Since(m.lastStatsTime) < interval {
		return false
	}
	m.lastStatsTime = time.Now()
	return true
}

// percentile reads the p-quantile from an already sorted slice
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
