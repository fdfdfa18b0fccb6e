package bangla

const (
	monthsPerYear = 12
	daysPerWeek   = 7

	// longMonths is the number of 31-day months at the start of the year.
	longMonths = 5
)

// The weekday anchor for the month grid: 1 Boishakh 1432 fell on a Monday.
const (
	AnchorYear    = 1432
	AnchorMonth   = Boishakh
	AnchorWeekday = 1
)

// NoDay marks a grid cell, or a hover position, that holds no day.
const NoDay = 0

// DaysInMonth returns the length of a zero-based Bangla month. Falgun has 31
// days when year+594 is a Gregorian leap year.
func DaysInMonth(month, year int) int {
	switch {
	case month < longMonths:
		return 31
	case month == Falgun:
		if IsLeapYear(year + SanOffsetBeforeBoishakh) {
			return 31
		}
		return 30
	default:
		return 30
	}
}

// yearLength sums the twelve month lengths of a Bangla year.
func yearLength(year int) int {
	n := 0
	for m := 0; m < monthsPerYear; m++ {
		n += DaysInMonth(m, year)
	}
	return n
}

// FirstWeekdayOfMonth returns the weekday (0 = Sunday) of day 1 of the month.
//
// It walks month by month from the 1432 anchor, so the cost grows with the
// distance from Boishakh 1432.
func FirstWeekdayOfMonth(month, year int) int {
	total := 0

	switch {
	case year > AnchorYear || (year == AnchorYear && month > AnchorMonth):
		y, m := AnchorYear, AnchorMonth
		for y < year || (y == year && m < month) {
			total += DaysInMonth(m, y)
			m++
			if m >= monthsPerYear {
				m = 0
				y++
			}
		}
	case year < AnchorYear || (year == AnchorYear && month < AnchorMonth):
		y, m := AnchorYear, AnchorMonth
		for y > year || (y == year && m > month) {
			m--
			if m < 0 {
				m = monthsPerYear - 1
				y--
			}
			total -= DaysInMonth(m, y)
		}
	}

	return (AnchorWeekday + total%daysPerWeek + daysPerWeek) % daysPerWeek
}

// DayAtCell resolves a cell of a seven-column grid whose first row starts on
// Sunday. ok is false for the blank cells before day 1 and after the last day.
func DayAtCell(row, col, month, year int) (day int, ok bool) {
	if row < 0 || col < 0 || col >= daysPerWeek {
		return NoDay, false
	}
	return dayAt(row, col, FirstWeekdayOfMonth(month, year), DaysInMonth(month, year))
}

func dayAt(row, col, first, days int) (int, bool) {
	day := row*daysPerWeek + col - first + 1
	if day < 1 || day > days {
		return NoDay, false
	}
	return day, true
}

// Cursor is the month a calendar view is showing, plus the day under the
// pointer. It is a value: navigation returns a new Cursor.
type Cursor struct {
	Month    int
	Year     int
	HoverDay int
}

// CursorFor positions a cursor on the month containing d.
func CursorFor(d Date) Cursor {
	return Cursor{Month: d.Month, Year: d.Year}
}

// Advance moves to the next month, rolling into the next year after Choitro.
func (c Cursor) Advance() Cursor {
	c.Month++
	if c.Month > Choitro {
		c.Month = Boishakh
		c.Year++
	}
	return c
}

// Retreat moves to the previous month, rolling back a year before Boishakh.
func (c Cursor) Retreat() Cursor {
	c.Month--
	if c.Month < Boishakh {
		c.Month = Choitro
		c.Year--
	}
	return c
}

// WithHover records the hovered day. Days outside the month clear it.
func (c Cursor) WithHover(day int) Cursor {
	if day < 1 || day > DaysInMonth(c.Month, c.Year) {
		day = NoDay
	}
	c.HoverDay = day
	return c
}

// ClearHover forgets the hovered day.
func (c Cursor) ClearHover() Cursor {
	c.HoverDay = NoDay
	return c
}

// HasHover reports whether a day is hovered.
func (c Cursor) HasHover() bool {
	return c.HoverDay != NoDay
}

// Contains reports whether d lies in the month under the cursor.
func (c Cursor) Contains(d Date) bool {
	return d.Month == c.Month && d.Year == c.Year
}
