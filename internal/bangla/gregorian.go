package bangla

import "fmt"

// secondsPerDay is the divisor used to turn a Unix timestamp into a day count.
const secondsPerDay = 86400

// epochYear is the Gregorian year of day zero of Unix time (1970-01-01, a Thursday).
const epochYear = 1970

var gregorianMonthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// GregorianDate is a civil date in the proleptic Gregorian calendar.
// Month and Day are one-based.
type GregorianDate struct {
	Year  int
	Month int
	Day   int
}

// String renders the date as YYYY-MM-DD.
func (g GregorianDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", g.Year, g.Month, g.Day)
}

// Next returns the following calendar day.
func (g GregorianDate) Next() GregorianDate {
	if g.Day < DaysInGregorianMonth(g.Year, g.Month) {
		return GregorianDate{Year: g.Year, Month: g.Month, Day: g.Day + 1}
	}
	if g.Month < 12 {
		return GregorianDate{Year: g.Year, Month: g.Month + 1, Day: 1}
	}
	return GregorianDate{Year: g.Year + 1, Month: 1, Day: 1}
}

// Before reports whether g is an earlier day than o.
func (g GregorianDate) Before(o GregorianDate) bool {
	if g.Year != o.Year {
		return g.Year < o.Year
	}
	if g.Month != o.Month {
		return g.Month < o.Month
	}
	return g.Day < o.Day
}

// Valid reports whether the month is 1-12 and the day exists in that month.
func (g GregorianDate) Valid() bool {
	if g.Month < 1 || g.Month > 12 {
		return false
	}
	return g.Day >= 1 && g.Day <= DaysInGregorianMonth(g.Year, g.Month)
}

// IsLeapYear applies the Gregorian rule: divisible by 4 and not by 100,
// or divisible by 400.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// gregorianYearLength is 366 for leap years, 365 otherwise.
func gregorianYearLength(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInGregorianMonth returns the length of a one-based month, leap aware.
// The month must be in 1-12.
func DaysInGregorianMonth(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return gregorianMonthDays[month-1]
}

// DayOfYear returns the one-based ordinal of the date within its year.
// Input is not validated; out-of-range months panic and out-of-range days
// produce meaningless ordinals.
func DayOfYear(year, month, day int) int {
	leap := IsLeapYear(year)
	n := day
	for m := 0; m < month-1; m++ {
		n += gregorianMonthDays[m]
		if m == 1 && leap {
			n++
		}
	}
	return n
}

// Weekday returns 0 for Sunday through 6 for Saturday.
//
// It is Zeller's congruence with January and February counted as months 13
// and 14 of the previous year. Zeller numbers Saturday as 0, so the raw result
// is shifted by six to put Sunday at 0.
func Weekday(year, month, day int) int {
	y, m := year, month
	if m < 3 {
		m += 12
		y--
	}

	k := y % 100
	j := y / 100

	h := (day + (13*(m+1))/5 + k + k/4 + j/4 - 2*j) % 7
	return (h + 6) % 7
}

// TimestampToDate converts Unix seconds to the UTC civil date.
//
// The conversion walks forward a year, then a month, at a time from 1970, so
// its cost grows with the distance from the epoch. Timestamps before 1970 are
// not supported.
func TimestampToDate(unixSeconds int64) GregorianDate {
	days := int(unixSeconds / secondsPerDay)
	year := epochYear

	for {
		length := gregorianYearLength(year)
		if days < length {
			break
		}
		days -= length
		year++
	}

	month := 1
	for m := 1; m <= 12; m++ {
		length := DaysInGregorianMonth(year, m)
		if days < length {
			month = m
			break
		}
		days -= length
	}

	return GregorianDate{Year: year, Month: month, Day: days + 1}
}
