package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level Level) (*Logger, *observer.ObservedLogs) {
	atomic := zap.NewAtomicLevelAt(toZapLevel(level))
	core, logs := observer.New(atomic)
	return &Logger{zapLogger: zap.New(core), level: atomic}, logs
}

func TestLoggerFields(t *testing.T) {
	l, logs := newObserved(LevelDebug)

	l.With(String("component", "world")).Info("Game state changed",
		Uint64("tick", 42),
		Vec3("velocity", [3]float64{1, 2, 3}),
		Error(errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Game state changed", entry.Message)

	ctx := entry.ContextMap()
	assert.Equal(t, "world", ctx["component"])
	assert.Equal(t, uint64(42), ctx["tick"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Contains(t, ctx, "velocity")
}

func TestLoggerLevel(t *testing.T) {
	l, logs := newObserved(LevelInfo)

	l.Debug("hidden")
	l.Log(LevelDebug, "hidden too")
	assert.Zero(t, logs.Len())

	l.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, l.GetLevel())
	l.Debug("shown")
	assert.Equal(t, 1, logs.Len())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{in: "", want: LevelInfo},
		{in: "DEBUG", want: LevelDebug},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "loud", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNopLoggerIsSilent(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.Info("nothing", Int("n", 1))
		l.With(String("a", "b")).Warn("still nothing")
	})
}
