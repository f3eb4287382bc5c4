package capture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creiffur/dataview/pkg/config"
)

func TestParseLine_Valid(t *testing.T) {
	s, err := parseLine("1700000000000000,0.4096")
	require.NoError(t, err)

	assert.Equal(t, 0.4096, s.Value)
	assert.Equal(t, time.Unix(0, 1700000000000000*1000), s.Timestamp)
}

func TestParseLine_NegativeValue(t *testing.T) {
	s, err := parseLine("1700000000000000,-1.5")
	require.NoError(t, err)
	assert.Equal(t, -1.5, s.Value)
}

func TestParseLine_WrongFieldCount(t *testing.T) {
	_, err := parseLine("1700000000000000")
	assert.Error(t, err)

	_, err = parseLine("1700000000000000,0.1,0.2")
	assert.Error(t, err)
}

func TestParseLine_BadTimestamp(t *testing.T) {
	_, err := parseLine("abc,0.4096")
	assert.Error(t, err)
}

func TestParseLine_BadValue(t *testing.T) {
	_, err := parseLine("1700000000000000,abc")
	assert.Error(t, err)
}

func TestMock_ConnectClose(t *testing.T) {
	m := NewMock(nil)

	assert.False(t, m.IsConnected())
	require.NoError(t, m.Connect())
	assert.True(t, m.IsConnected())

	// Double connect must fail
	assert.Error(t, m.Connect())

	require.NoError(t, m.Close())
	assert.False(t, m.IsConnected())

	// Double close is a no-op
	assert.NoError(t, m.Close())
}

func TestMock_ProducesSamples(t *testing.T) {
	m := NewMock(&config.MockConfig{
		Amplitude:  1.0,
		Frequency:  10,
		NoiseLevel: 0,
		SampleRate: time.Millisecond,
	})
	require.NoError(t, m.Connect())
	defer m.Close()

	select {
	case s := <-m.Samples():
		assert.False(t, s.Timestamp.IsZero())
		assert.LessOrEqual(t, s.Value, 1.5)
		assert.GreaterOrEqual(t, s.Value, -1.5)
	case <-time.After(time.Second):
		t.Fatal("no sample received within a second")
	}
}

func TestRecord_FromMock(t *testing.T) {
	m := NewMock(&config.MockConfig{
		Amplitude:  1.0,
		Frequency:  10,
		NoiseLevel: 0.01,
		SampleRate: time.Millisecond,
	})
	require.NoError(t, m.Connect())
	defer m.Close()

	x, y, err := Record(context.Background(), m, 10)
	require.NoError(t, err)

	require.Equal(t, 10, len(x))
	require.Equal(t, 10, len(y))
	assert.Equal(t, 0.0, x[0]) // time axis is relative to the first sample
	for i := 1; i < len(x); i++ {
		assert.Greater(t, x[i], x[i-1])
	}
}

func TestRecord_NotConnected(t *testing.T) {
	m := NewMock(nil)
	_, _, err := Record(context.Background(), m, 10)
	assert.Error(t, err)
}

func TestRecord_TooFewSamplesRequested(t *testing.T) {
	m := NewMock(nil)
	_, _, err := Record(context.Background(), m, 1)
	assert.Error(t, err)
}

func TestRecord_ContextCanceled(t *testing.T) {
	m := NewMock(&config.MockConfig{
		Amplitude:  1.0,
		Frequency:  1,
		SampleRate: time.Hour, // never produces a sample in time
	})
	require.NoError(t, m.Connect())
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err := Record(ctx, m, 10)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
