package bangla

import (
	"errors"
	"fmt"
)

// Bangladesh fixed-date calendar constants.
const (
	// BoishakhStart is the Gregorian day-of-year of 1 Boishakh when the
	// previous Gregorian year was not a leap year.
	BoishakhStart = 104
	// BoishakhStartAfterLeap is used when the previous Gregorian year was leap.
	BoishakhStartAfterLeap = 105

	// SanOffset is subtracted from the Gregorian year from 1 Boishakh onwards.
	SanOffset = 593
	// SanOffsetBeforeBoishakh applies to dates before 1 Boishakh.
	SanOffsetBeforeBoishakh = 594
)

// Month indices with special handling.
const (
	Boishakh = 0
	Falgun   = 10
	Choitro  = 11
)

// ErrInvalidDate is returned by the checked conversions for Gregorian input
// that does not name a real calendar day.
var ErrInvalidDate = errors.New("invalid gregorian date")

// Date is a day in the Bangla (Bangladesh) calendar. Month and Weekday are
// zero-based indices into the name tables; Weekday 0 is Sunday.
type Date struct {
	Day     int `json:"day"`
	Month   int `json:"month"`
	Year    int `json:"year"`
	Weekday int `json:"weekday"`
}

// Compare orders dates by year, month then day. The weekday is ignored.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

// Before reports whether d falls strictly before o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// SameDay reports whether d and o name the same Bangla day.
func (d Date) SameDay(o Date) bool { return d.Compare(o) == 0 }

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// ToBangla converts a Gregorian date to the Bangla calendar.
//
// The input is not validated. Use ToBanglaChecked to reject impossible dates;
// both return the same value for every valid input.
func ToBangla(year, month, day int) Date {
	dayOfYear := DayOfYear(year, month, day)
	prevLeap := IsLeapYear(year - 1)

	boishakhStart := BoishakhStart
	if prevLeap {
		boishakhStart = BoishakhStartAfterLeap
	}

	var banglaYear, dayInYear int
	if dayOfYear >= boishakhStart {
		banglaYear = year - SanOffset
		dayInYear = dayOfYear - boishakhStart + 1
	} else {
		banglaYear = year - SanOffsetBeforeBoishakh
		dayInYear = (gregorianYearLength(year-1) - boishakhStart + 1) + dayOfYear
	}

	// Past Choitro the count carries into 1 Boishakh of the next year.
	if n := yearLength(banglaYear); dayInYear > n {
		dayInYear -= n
		banglaYear++
	}
	banglaMonth, banglaDay := walkMonths(dayInYear, banglaYear)

	return Date{
		Day:     banglaDay,
		Month:   banglaMonth,
		Year:    banglaYear,
		Weekday: Weekday(year, month, day),
	}
}

// walkMonths subtracts month lengths from dayInYear until it fits in the
// current month. dayInYear must not exceed the year length.
func walkMonths(dayInYear, year int) (month, day int) {
	remaining := dayInYear
	for m := 0; m < Choitro; m++ {
		length := DaysInMonth(m, year)
		if remaining <= length {
			return m, remaining
		}
		remaining -= length
	}
	return Choitro, remaining
}

// ToBanglaChecked validates the Gregorian input before converting it.
func ToBanglaChecked(year, month, day int) (Date, error) {
	g := GregorianDate{Year: year, Month: month, Day: day}
	if !g.Valid() {
		return Date{}, fmt.Errorf("%w: %s", ErrInvalidDate, g)
	}
	return ToBangla(year, month, day), nil
}

// FromGregorian converts g without validation.
func FromGregorian(g GregorianDate) Date {
	return ToBangla(g.Year, g.Month, g.Day)
}

// FromTimestamp converts Unix seconds, shifted by offsetSeconds, to the Bangla
// date of that instant.
func FromTimestamp(unixSeconds, offsetSeconds int64) Date {
	return FromGregorian(TimestampToDate(unixSeconds + offsetSeconds))
}

// scanStartDayOfYear precedes the earliest possible 1 Boishakh.
const scanStartDayOfYear = 100

// scanLimit bounds the inverse lookup to a little more than one Bangla year.
const scanLimit = 400

// ToGregorian returns the first Gregorian date whose Bangla date is not
// before d. For days the converter produces it is the exact inverse; a day
// the converter skips resolves to the next one that exists.
func ToGregorian(d Date) GregorianDate {
	g := GregorianDate{Year: d.Year + SanOffset, Month: 1, Day: 1}
	for i := 1; i < scanStartDayOfYear; i++ {
		g = g.Next()
	}

	for i := 0; i < scanLimit; i++ {
		if !FromGregorian(g).Before(d) {
			return g
		}
		g = g.Next()
	}
	return g
}

// Exists reports whether some Gregorian day converts to d.
func Exists(d Date) bool {
	if d.Month < 0 || d.Month >= monthsPerYear || d.Day < 1 || d.Day > DaysInMonth(d.Month, d.Year) {
		return false
	}
	return FromGregorian(ToGregorian(d)).SameDay(d)
}
