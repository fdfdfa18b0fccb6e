package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-bongabdo/internal/bangla"
	"github.com/tartampluch/go-bongabdo/internal/config"
)

// Clock abstracts time.Now() to allow deterministic testing.
// Only the instant matters: day boundaries come from the OffsetMode, never
// from the clock's location.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// OffsetMode selects the UTC offset applied before a timestamp is cut into days.
type OffsetMode string

const (
	// OffsetLegacy applies the Bangladesh offset followed by the legacy
	// correction, a net UTC+1.
	OffsetLegacy OffsetMode = config.OffsetModeLegacy

	// OffsetBangladesh applies Bangladesh Standard Time (UTC+6).
	OffsetBangladesh OffsetMode = config.OffsetModeBangladesh
)

// ParseOffsetMode validates a mode read from preferences, flags or files.
func ParseOffsetMode(s string) (OffsetMode, error) {
	switch OffsetMode(s) {
	case OffsetLegacy, OffsetBangladesh:
		return OffsetMode(s), nil
	default:
		return OffsetLegacy, fmt.Errorf("%s: %q", config.ErrOffsetMode, s)
	}
}

// Offset returns the effective shift from UTC. Unknown modes behave as legacy.
func (m OffsetMode) Offset() time.Duration {
	if m == OffsetBangladesh {
		return config.BangladeshUTCOffset
	}
	return config.BangladeshUTCOffset + config.LegacyOffsetCorrection
}

// Seconds is Offset expressed in whole seconds.
func (m OffsetMode) Seconds() int64 {
	return int64(m.Offset() / time.Second)
}

// Today returns the Bangla date of the clock's current instant.
func Today(c Clock, m OffsetMode) bangla.Date {
	return bangla.FromTimestamp(c.Now().Unix(), m.Seconds())
}

// TodayGregorian returns the civil date the Bangla day of Today falls on.
func TodayGregorian(c Clock, m OffsetMode) bangla.GregorianDate {
	return bangla.TimestampToDate(c.Now().Unix() + m.Seconds())
}
