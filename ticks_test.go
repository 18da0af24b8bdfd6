package dimuplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreciseTicks_CoversRange(t *testing.T) {
	ticks := PreciseTicks{NSuggestedTicks: 5}.Ticks(0, 120)

	var labeled int
	for _, tick := range ticks {
		assert.GreaterOrEqual(t, tick.Value, 0.0)
		assert.LessOrEqual(t, tick.Value, 120.0)
		if tick.Label != "" {
			labeled++
		}
	}
	assert.GreaterOrEqual(t, labeled, 2)
}

func TestLogTicks_PowersOfTen(t *testing.T) {
	ticks := LogTicks{}.Ticks(1, 1000)

	labels := map[string]bool{}
	for _, tick := range ticks {
		if tick.Label != "" {
			labels[tick.Label] = true
		}
	}
	for _, want := range []string{"1", "10", "100", "1000"} {
		assert.True(t, labels[want], "expected a major tick at %s", want)
	}
}

func TestLogScale_Normalize(t *testing.T) {
	s := LogScale{}

	assert.InDelta(t, 0, s.Normalize(1, 100, 1), 1e-12)
	assert.InDelta(t, 0.5, s.Normalize(1, 100, 10), 1e-12)
	assert.InDelta(t, 1, s.Normalize(1, 100, 100), 1e-12)

	// Non-positive values are floored rather than producing NaN, so
	// histograms with empty bins still render.
	assert.False(t, s.Normalize(0, 100, 0) != s.Normalize(0, 100, 0), "no NaN")
	assert.InDelta(t, 0, s.Normalize(1, 100, 0), 1e-12)
}
