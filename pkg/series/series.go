package series

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultRate is the sampling rate assumed when a value-only series is
// constructed without an explicit rate.
const DefaultRate = 1.0

var (
	// ErrShape is returned when input cannot be resolved into two
	// equal-length one-dimensional axes of at least two samples.
	ErrShape = errors.New("series: invalid input shape")
	// ErrInvalidRate is returned when an explicitly supplied sampling
	// rate is zero or negative.
	ErrInvalidRate = errors.New("series: sampling rate must be positive")
)

// Series holds one immutable time-series signal: a time axis and a value
// axis of equal length, plus the derived sampling parameters. A Series is
// constructed once at load time and never mutated afterwards, so it can be
// shared read-only between any number of viewers.
type Series struct {
	x  []float64 // time axis (seconds)
	y  []float64 // value axis
	fs float64   // sampling rate (Hz)
	ts float64   // sampling interval (seconds)
}

type options struct {
	fs    float64
	fsSet bool
}

// Option configures series construction.
type Option func(*options)

// WithRate supplies an explicit sampling rate in Hz.
func WithRate(fs float64) Option {
	return func(o *options) {
		o.fs = fs
		o.fsSet = true
	}
}

// New constructs a Series from a value vector. The time axis is
// synthesized as i/fs; when no rate is supplied the rate defaults to
// DefaultRate.
func New(values []float64, opts ...Option) (*Series, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrShape, len(values))
	}

	o := resolve(opts)
	fs := DefaultRate
	if o.fsSet {
		if o.fs <= 0 {
			return nil, fmt.Errorf("%w: got %g", ErrInvalidRate, o.fs)
		}
		fs = o.fs
	}

	x := make([]float64, len(values))
	for i := range x {
		x[i] = float64(i) / fs
	}
	y := make([]float64, len(values))
	copy(y, values)

	return &Series{x: x, y: y, fs: fs, ts: 1 / fs}, nil
}

// NewXY constructs a Series from explicit time and value vectors. When no
// rate is supplied, the sampling interval is inferred from the first two
// time samples; spacing is assumed uniform and is not validated beyond
// the first pair.
func NewXY(x, y []float64, opts ...Option) (*Series, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: axis lengths differ (%d vs %d)", ErrShape, len(x), len(y))
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrShape, len(x))
	}

	o := resolve(opts)
	var fs, ts float64
	if o.fsSet {
		if o.fs <= 0 {
			return nil, fmt.Errorf("%w: got %g", ErrInvalidRate, o.fs)
		}
		fs = o.fs
		ts = 1 / fs
	} else {
		ts = x[1] - x[0]
		if ts <= 0 {
			return nil, fmt.Errorf("%w: time axis must be increasing", ErrShape)
		}
		fs = 1 / ts
	}

	xc := make([]float64, len(x))
	copy(xc, x)
	yc := make([]float64, len(y))
	copy(yc, y)

	return &Series{x: xc, y: yc, fs: fs, ts: ts}, nil
}

// NewPair constructs a Series from a 2-element container of time and
// value vectors.
func NewPair(pair [][]float64, opts ...Option) (*Series, error) {
	if len(pair) != 2 {
		return nil, fmt.Errorf("%w: expected 2 axes, got %d", ErrShape, len(pair))
	}
	return NewXY(pair[0], pair[1], opts...)
}

func resolve(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.x)
}

// Rate returns the sampling rate in Hz.
func (s *Series) Rate() float64 {
	return s.fs
}

// Interval returns the sampling interval in seconds.
func (s *Series) Interval() float64 {
	return s.ts
}

// Start returns the first time-axis value.
func (s *Series) Start() float64 {
	return s.x[0]
}

// End returns the last time-axis value.
func (s *Series) End() float64 {
	return s.x[len(s.x)-1]
}

// SliceFull copies every stride-th sample of the whole series into the
// destination buffers. Destination-based: reuses dstX/dstY if they have
// sufficient capacity, otherwise allocates new. A stride below 1 is
// treated as 1.
func (s *Series) SliceFull(dstX, dstY []float64, stride int) ([]float64, []float64) {
	return s.slice(dstX, dstY, 0, len(s.x), stride)
}

// SliceWindow copies every stride-th sample whose time falls in
// [low, high] into the destination buffers, with the same reuse contract
// as SliceFull. A negative low bound is clamped to 0 so a viewport
// dragged past the start of data never produces an invalid read.
func (s *Series) SliceWindow(dstX, dstY []float64, low, high float64, stride int) ([]float64, []float64) {
	if low < 0 {
		low = 0
	}
	lo := sort.SearchFloat64s(s.x, low)
	hi := sort.Search(len(s.x), func(i int) bool { return s.x[i] > high })
	return s.slice(dstX, dstY, lo, hi, stride)
}

// slice copies samples [lo, hi) strided into dst buffers, reusing their
// capacity when possible.
func (s *Series) slice(dstX, dstY []float64, lo, hi, stride int) ([]float64, []float64) {
	if stride < 1 {
		stride = 1
	}
	if lo < 0 {
		lo = 0
	}
	if hi > len(s.x) {
		hi = len(s.x)
	}

	n := 0
	if hi > lo {
		n = (hi - lo + stride - 1) / stride
	}

	if cap(dstX) >= n {
		dstX = dstX[:0]
	} else {
		dstX = make([]float64, 0, n)
	}
	if cap(dstY) >= n {
		dstY = dstY[:0]
	} else {
		dstY = make([]float64, 0, n)
	}

	for i := lo; i < hi; i += stride {
		dstX = append(dstX, s.x[i])
		dstY = append(dstY, s.y[i])
	}

	return dstX, dstY
}
