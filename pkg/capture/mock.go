package capture

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/creiffur/dataview/pkg/config"
)

// Mock simulates a capture source for testing and development. It emits
// a sinusoid with additive noise at the configured sample rate.
type Mock struct {
	cfg *config.MockConfig

	samples   chan Sample
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	startTime time.Time
}

// NewMock creates a new mocked source instance.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			Amplitude:  1.0,
			Frequency:  0.5,
			NoiseLevel: 0.05,
			SampleRate: time.Millisecond,
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:       cfg,
		samples:   make(chan Sample, DefaultBufferSize),
		ctx:       ctx,
		cancel:    cancel,
		connected: false,
	}
}

// Connect simulates connecting to the device.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	m.startTime = time.Now()

	// Start generating samples
	go m.generateSamples()

	return nil
}

// Close stops the mocked source.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false
	close(m.samples)

	return nil
}

// Samples returns the channel for reading samples.
func (m *Mock) Samples() <-chan Sample {
	return m.samples
}

// IsConnected returns whether the source is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// generateSamples generates simulated samples until the source closes.
func (m *Mock) generateSamples() {
	ticker := time.NewTicker(m.cfg.SampleRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			sample := m.generateSample()
			select {
			case m.samples <- sample:
			case <-m.ctx.Done():
				return
			default:
				// Channel full, skip
			}
		}
	}
}

// generateSample generates a single simulated sample.
func (m *Mock) generateSample() Sample {
	now := time.Now()
	elapsed := now.Sub(m.startTime).Seconds()

	value := m.cfg.Amplitude * math.Sin(2*math.Pi*m.cfg.Frequency*elapsed)

	// Deterministic pseudo-noise, same shape the device exhibits
	noise := (math.Sin(elapsed*997) + math.Cos(elapsed*1291)) *
		m.cfg.NoiseLevel * 0.5
	value += noise

	return Sample{
		Timestamp: now,
		Value:     value,
	}
}
