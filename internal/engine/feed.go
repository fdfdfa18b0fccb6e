package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-bongabdo/internal/bangla"
	"github.com/tartampluch/go-bongabdo/internal/config"
)

// FeedConfig contains all parameters required to build a feed.
type FeedConfig struct {
	// Months is the number of Bangla months published on each side of the
	// current one.
	Months int
	Source SourceConfig
}

// Feed is the result of one generation.
type Feed struct {
	ICS            []byte
	Today          bangla.Date
	Days           int // Bangla-date events in the feed
	Birthdays      []BirthdayEntry
	BirthdaysToday int
}

// FeedGenerator builds the iCalendar feed: one all-day event per day naming
// its Bangla date, plus the contacts' Bangla birthdays.
type FeedGenerator struct {
	Clock   Clock        // Interface for time mocking.
	Fetcher VCardFetcher // Interface for network abstraction.
	Offset  OffsetMode

	// FormatSummary allows the UI to inject localized strings into the logic layer.
	FormatSummary func(name string, age int, yearKnown bool) string
}

// Generate executes the reading, conversion and encoding pipeline.
func (g *FeedGenerator) Generate(ctx context.Context, cfg FeedConfig) (Feed, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompFeed,
		config.LogKeyMode, cfg.Source.Mode,
		config.LogKeyOffset, string(g.Offset),
	)
	log.InfoContext(ctx, config.MsgFeedStarted)

	today := Today(g.Clock, g.Offset)
	todayG := TodayGregorian(g.Clock, g.Offset)

	birthdays, err := LoadBirthdays(ctx, g.Fetcher, cfg.Source, today)
	if err != nil {
		return Feed{}, err
	}

	cal := newCalendar()
	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(g.Clock.Now().UTC())

	days := dayEvents(today, cfg.Months)
	for _, e := range days {
		e.Props.Set(dtStamp)
		cal.Children = append(cal.Children, e.Component)
	}

	todayCount := 0
	for _, b := range birthdays {
		events, isToday := g.birthdayEvents(b, today.Year, todayG)
		if isToday {
			todayCount++
			log.Info(config.MsgBirthdayToday,
				config.LogKeyName, b.Name,
				config.LogKeyDOB, b.DateOfBirth.Format(config.DateFormatFullDash))
		}
		for _, e := range events {
			e.Props.Set(dtStamp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	if err := ctx.Err(); err != nil {
		return Feed{}, err
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return Feed{}, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	log.Info(config.MsgFeedSuccess,
		config.LogKeyBanglaDate, today.String(),
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyDays, len(days)),
			slog.Int(config.LogKeyFound, len(birthdays)),
			slog.Int(config.LogKeyToday, todayCount),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)

	return Feed{
		ICS:            buf.Bytes(),
		Today:          today,
		Days:           len(days),
		Birthdays:      birthdays,
		BirthdaysToday: todayCount,
	}, nil
}

func newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()

	// Set standard iCalendar headers
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	return cal
}

// FeedWindow returns the Gregorian range [from, to) covering the Bangla month
// of today and months on each side of it.
func FeedWindow(today bangla.Date, months int) (from, to bangla.GregorianDate) {
	first := bangla.CursorFor(today)
	last := first
	for i := 0; i < months; i++ {
		first = first.Retreat()
		last = last.Advance()
	}
	last = last.Advance()

	from = bangla.ToGregorian(bangla.Date{Day: 1, Month: first.Month, Year: first.Year})
	to = bangla.ToGregorian(bangla.Date{Day: 1, Month: last.Month, Year: last.Year})
	return from, to
}

// dayEvents emits one transparent all-day event per Gregorian day of the
// window, summarised with that day's Bangla date.
func dayEvents(today bangla.Date, months int) []*ical.Event {
	from, to := FeedWindow(today, months)

	var events []*ical.Event
	for d := from; d.Before(to); d = d.Next() {
		b := bangla.FromGregorian(d)

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatDayUID, d.Year, d.Month, d.Day, config.ICalDomain))
		event.Props.SetText(config.PropSummary, b.Line1()+" "+b.Line2())
		event.Props.SetText(config.PropDescription, b.String())
		event.Props.SetText(config.PropCategories, config.CategoryBanglaDate)
		event.Props.SetText(config.PropTransp, config.ICalTransparent)

		dtStart := ical.NewProp(config.PropDTStart)
		dtStart.SetDate(civilTime(d))
		event.Props.Set(dtStart)

		events = append(events, event)
	}
	return events
}

// birthdayEvents generates events for the previous, current and next Bangla
// year. No event is created before the person is born.
func (g *FeedGenerator) birthdayEvents(b BirthdayEntry, year int, today bangla.GregorianDate) ([]*ical.Event, bool) {
	var events []*ical.Event
	isToday := false

	for _, y := range []int{year - 1, year, year + 1} {
		if b.YearKnown && y < b.BanglaBirth.Year {
			continue
		}

		age := 0
		if b.YearKnown {
			age = y - b.BanglaBirth.Year
		}

		day := occurrenceIn(b.BanglaBirth, y)
		if day == today {
			isToday = true
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatBirthdayUID, b.UID, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, g.summary(b.Name, age, b.YearKnown && age >= 0))
		event.Props.SetText(config.PropDescription, b.BanglaLabel()+" "+bangla.YearLabel(y))
		event.Props.SetText(config.PropCategories, config.CategoryBirthday)

		dtStart := ical.NewProp(config.PropDTStart)
		dtStart.SetDate(civilTime(day))
		event.Props.Set(dtStart)

		events = append(events, event)
	}
	return events, isToday
}

func (g *FeedGenerator) summary(name string, age int, yearKnown bool) string {
	if g.FormatSummary != nil {
		return g.FormatSummary(name, age, yearKnown)
	}
	if yearKnown {
		return fmt.Sprintf(config.FallbackBirthdayAge, name, bangla.Numeral(age))
	}
	return fmt.Sprintf(config.FallbackBirthday, name)
}
