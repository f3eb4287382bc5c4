// Package capture acquires signal samples from an acquisition device so
// they can be explored as a series. Sources stream timestamped values
// over a channel; Record collects a fixed number of them into the two
// axes the viewer consumes.
package capture

import "time"

// Sample is one acquired value with its device timestamp.
type Sample struct {
	Timestamp time.Time
	Value     float64
}

// Source defines the interface for capture sources (real or mocked).
type Source interface {
	Connect() error
	Close() error
	Samples() <-chan Sample
	IsConnected() bool
}

// Ensure Serial implements Source.
var _ Source = (*Serial)(nil)

// Ensure Mock implements Source.
var _ Source = (*Mock)(nil)
