package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-bongabdo/internal/bangla"
	"github.com/tartampluch/go-bongabdo/internal/config"
	"github.com/tartampluch/go-bongabdo/internal/engine"
)

func TestParseOffsetMode(t *testing.T) {
	m, err := engine.ParseOffsetMode(config.OffsetModeLegacy)
	require.NoError(t, err)
	assert.Equal(t, engine.OffsetLegacy, m)

	m, err = engine.ParseOffsetMode(config.OffsetModeBangladesh)
	require.NoError(t, err)
	assert.Equal(t, engine.OffsetBangladesh, m)

	m, err = engine.ParseOffsetMode("kolkata")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrOffsetMode)
	assert.Equal(t, engine.OffsetLegacy, m, "falls back to legacy")
}

func TestOffsetMode_Offset(t *testing.T) {
	assert.Equal(t, time.Hour, engine.OffsetLegacy.Offset())
	assert.Equal(t, int64(3600), engine.OffsetLegacy.Seconds())
	assert.Equal(t, 6*time.Hour, engine.OffsetBangladesh.Offset())
	assert.Equal(t, int64(21600), engine.OffsetBangladesh.Seconds())
	assert.Equal(t, time.Hour, engine.OffsetMode("").Offset(), "zero value behaves as legacy")
}

// TestToday_OffsetModes: at 20:00 UTC the legacy offset is still on the
// previous day while Bangladesh time has passed midnight.
func TestToday_OffsetModes(t *testing.T) {
	clock := MockClock{CurrentTime: time.Date(2025, 12, 20, 20, 0, 0, 0, time.UTC)}

	assert.Equal(t, bangla.Date{Day: 5, Month: 8, Year: 1432, Weekday: 6}, engine.Today(clock, engine.OffsetLegacy))
	assert.Equal(t, bangla.Date{Day: 6, Month: 8, Year: 1432, Weekday: 0}, engine.Today(clock, engine.OffsetBangladesh))

	assert.Equal(t, bangla.GregorianDate{Year: 2025, Month: 12, Day: 20}, engine.TodayGregorian(clock, engine.OffsetLegacy))
	assert.Equal(t, bangla.GregorianDate{Year: 2025, Month: 12, Day: 21}, engine.TodayGregorian(clock, engine.OffsetBangladesh))
}

// TestToday_IgnoresClockLocation: only the instant matters.
func TestToday_IgnoresClockLocation(t *testing.T) {
	instant := time.Date(2025, 12, 20, 20, 0, 0, 0, time.UTC)
	dhaka := time.FixedZone("BST", 6*3600)

	utc := engine.Today(MockClock{CurrentTime: instant}, engine.OffsetLegacy)
	local := engine.Today(MockClock{CurrentTime: instant.In(dhaka)}, engine.OffsetLegacy)
	assert.Equal(t, utc, local)
}

func TestRealClock(t *testing.T) {
	before := time.Now()
	now := engine.RealClock{}.Now()
	assert.False(t, now.Before(before))
}
