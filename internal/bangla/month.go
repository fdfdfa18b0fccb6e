package bangla

// Cell is one square of the month grid. Blank cells have Day == NoDay and an
// empty Label.
type Cell struct {
	Day   int    `json:"day"`
	Label string `json:"label,omitempty"`
	Today bool   `json:"today,omitempty"`
	Hover bool   `json:"hover,omitempty"`
}

// Week is a grid row, Sunday first.
type Week [daysPerWeek]Cell

// Month carries everything a renderer needs to draw one Bangla month.
type Month struct {
	Month        int      `json:"month"`
	Year         int      `json:"year"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Weekdays     []string `json:"weekdays"`
	DaysInMonth  int      `json:"days_in_month"`
	FirstWeekday int      `json:"first_weekday"`
	Weeks        []Week   `json:"weeks"`
}

// BuildMonth lays out the month under the cursor. The cell for today is
// flagged when today falls in that month, and the hovered day is flagged when
// the cursor has one.
func BuildMonth(c Cursor, today Date) Month {
	days := DaysInMonth(c.Month, c.Year)
	first := FirstWeekdayOfMonth(c.Month, c.Year)

	m := Month{
		Month:        c.Month,
		Year:         c.Year,
		Title:        MonthName(c.Month),
		Subtitle:     YearLabel(c.Year) + subtitleSep + SeasonLabel(c.Month),
		Weekdays:     make([]string, daysPerWeek),
		DaysInMonth:  days,
		FirstWeekday: first,
	}
	for i := range m.Weekdays {
		m.Weekdays[i] = WeekdayShortName(i)
	}

	rows := (first + days + daysPerWeek - 1) / daysPerWeek
	m.Weeks = make([]Week, rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < daysPerWeek; col++ {
			day, ok := dayAt(row, col, first, days)
			if !ok {
				continue
			}
			m.Weeks[row][col] = Cell{
				Day:   day,
				Label: Numeral(day),
				Today: c.Contains(today) && today.Day == day,
				Hover: c.HoverDay == day,
			}
		}
	}
	return m
}

// CellCount is the number of grid squares, blanks included.
func (m Month) CellCount() int {
	return len(m.Weeks) * daysPerWeek
}
