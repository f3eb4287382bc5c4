package capture

import (
	"context"
	"fmt"
)

// Record collects n samples from a connected source and returns a time
// axis (seconds, relative to the first sample) and a value axis suitable
// for series construction. It blocks until n samples arrive, the source
// closes, or the context is canceled.
func Record(ctx context.Context, src Source, n int) (x, y []float64, err error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("capture: need at least 2 samples, got %d", n)
	}
	if !src.IsConnected() {
		return nil, nil, fmt.Errorf("capture: source not connected")
	}

	x = make([]float64, 0, n)
	y = make([]float64, 0, n)

	samples := src.Samples()
	var start Sample
	for len(y) < n {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case s, ok := <-samples:
			if !ok {
				return nil, nil, fmt.Errorf("capture: source closed after %d of %d samples", len(y), n)
			}
			if len(y) == 0 {
				start = s
			}
			x = append(x, s.Timestamp.Sub(start.Timestamp).Seconds())
			y = append(y, s.Value)
		}
	}

	return x, y, nil
}
