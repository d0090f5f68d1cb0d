package core

import (
	"time"

	"github.com/spaghettifunk/ember/engine/containers"
	"golang.org/x/exp/constraints"
)

const AVG_COUNT = 30

// FrameMetrics tracks a rolling frame time average and frames per second.
// It lives in the state as a resource and is fed once per frame.
type FrameMetrics struct {
	frameTimes         *containers.RingQueue[float64]
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewFrameMetrics() FrameMetrics {
	return FrameMetrics{
		frameTimes: containers.NewRingQueue[float64](AVG_COUNT),
	}
}

func (m *FrameMetrics) Update(frameElapsed time.Duration) {
	if m.frameTimes == nil {
		m.frameTimes = containers.NewRingQueue[float64](AVG_COUNT)
	}
	frameMS := float64(frameElapsed) / float64(time.Millisecond)
	m.frameTimes.Push(frameMS)

	samples := make([]float64, 0, m.frameTimes.Len())
	m.frameTimes.Each(func(v float64) { samples = append(samples, v) })
	m.msAvg = average(samples)

	// Calculate frames per second.
	m.accumulatedFrameMS += frameMS
	m.frames++
	if m.accumulatedFrameMS >= 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}
}

func (m *FrameMetrics) FPS() float64 {
	return m.fps
}

// FrameTime is the average frame time in milliseconds.
func (m *FrameMetrics) FrameTime() float64 {
	return m.msAvg
}

func (m *FrameMetrics) Frame() (float64, float64) {
	return m.fps, m.msAvg
}

func average[T constraints.Float | constraints.Integer](values []T) T {
	if len(values) == 0 {
		return 0
	}
	var sum T
	for _, v := range values {
		sum += v
	}
	return sum / T(len(values))
}
