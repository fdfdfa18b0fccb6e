package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-bongabdo/internal/bangla"
	"github.com/tartampluch/go-bongabdo/internal/config"
)

// SourceConfig tells the engine where to read contacts from.
type SourceConfig struct {
	Mode      string // config.SourceModeNone, SourceModeLocal or SourceModeWeb
	LocalPath string // Absolute path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// BirthdayEntry is a contact whose birthday is kept in the Bangla calendar.
type BirthdayEntry struct {
	// UID is a unique identifier (hash) used for stability in lists and feeds.
	UID string

	// Name is the display name (Formatted Name or Structured Name).
	Name string

	// DateOfBirth is the Gregorian date read from the vCard.
	DateOfBirth time.Time

	// YearKnown indicates if the vCard contained a year or just --MM-DD.
	YearKnown bool

	// BanglaBirth is the Bangla date of birth. Its Year is meaningless when
	// YearKnown is false.
	BanglaBirth bangla.Date

	// NextBangla is the next birthday, today included, in the Bangla calendar.
	// Its Weekday is not set.
	NextBangla bangla.Date

	// NextOccurrence is the Gregorian day NextBangla is observed on, at UTC
	// midnight. A Bangla day the calendar skips is observed the day after.
	NextOccurrence time.Time

	// AgeNext is the age in Bangla years reached at NextOccurrence.
	// Only valid if YearKnown is true.
	AgeNext int
}

// BanglaLabel renders the birthday as "<ordinal> <month>".
func (e BirthdayEntry) BanglaLabel() string {
	return bangla.Ordinal(e.BanglaBirth.Day) + " " + bangla.MonthName(e.BanglaBirth.Month)
}

type birthdayStats struct{ processed, withBday int }

// acquireStream opens the appropriate data source based on configuration.
// Mode none yields a nil reader and no error.
func acquireStream(ctx context.Context, f VCardFetcher, src SourceConfig) (io.ReadCloser, error) {
	switch src.Mode {
	case config.SourceModeNone, "":
		return nil, nil
	case config.SourceModeLocal:
		if src.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(src.LocalPath)
	case config.SourceModeWeb:
		if src.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if f == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return f.Fetch(ctx, src.WebURL, src.WebUser, src.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, src.Mode)
	}
}

// LoadBirthdays reads the configured source and projects every birthday onto
// the Bangla calendar relative to today.
func LoadBirthdays(ctx context.Context, f VCardFetcher, src SourceConfig, today bangla.Date) ([]BirthdayEntry, error) {
	reader, err := acquireStream(ctx, f, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	if reader == nil {
		return nil, nil
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, stats, err := decodeBirthdays(ctx, reader, today)
	if err != nil {
		return nil, err
	}

	slog.Info(config.MsgBirthdaysRead,
		config.LogKeyComponent, config.CompBirthday,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
		),
	)
	return entries, nil
}

// decodeBirthdays walks the vCard stream. Malformed cards and unparsable
// dates are skipped.
func decodeBirthdays(ctx context.Context, r io.Reader, today bangla.Date) ([]BirthdayEntry, birthdayStats, error) {
	decoder := vcard.NewDecoder(r)
	var stats birthdayStats
	var entries []BirthdayEntry

	for {
		if ctx.Err() != nil {
			return nil, stats, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompBirthday,
				config.LogKeyError, err)
			continue
		}

		stats.processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birthDate, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompBirthday,
				config.LogKeyValue, bday.Value)
			continue
		}
		stats.withBday++

		entries = append(entries, newBirthdayEntry(cardName(card), birthDate, yearKnown, today))
	}

	return entries, stats, nil
}

// cardName applies FN (Formatted) > N (Structured) > Fallback.
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}

func newBirthdayEntry(name string, birthDate time.Time, yearKnown bool, today bangla.Date) BirthdayEntry {
	// Deterministic UID generation for stability across refreshes
	input := fmt.Sprintf(config.FormatHashInput, name, birthDate.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))

	birth := bangla.ToBangla(birthDate.Year(), int(birthDate.Month()), birthDate.Day())
	next, g := nextOccurrence(birth, today)

	age := 0
	if yearKnown {
		age = next.Year - birth.Year
	}

	return BirthdayEntry{
		UID:            fmt.Sprintf("%x", hash[:config.UIDHashLength]),
		Name:           name,
		DateOfBirth:    birthDate,
		YearKnown:      yearKnown,
		BanglaBirth:    birth,
		NextBangla:     next,
		NextOccurrence: civilTime(g),
		AgeNext:        age,
	}
}

// nextOccurrence finds the first Bangla year, starting with today's, in which
// the birthday's day and month are not yet past.
func nextOccurrence(birth, today bangla.Date) (bangla.Date, bangla.GregorianDate) {
	target := bangla.Date{Day: birth.Day, Month: birth.Month, Year: today.Year}
	if target.Before(today) {
		target.Year++
	}
	return target, occurrenceIn(birth, target.Year)
}

// occurrenceIn returns the Gregorian day a birthday is observed in a given
// Bangla year.
func occurrenceIn(birth bangla.Date, year int) bangla.GregorianDate {
	return bangla.ToGregorian(bangla.Date{Day: birth.Day, Month: birth.Month, Year: year})
}

// civilTime maps a civil date to midnight UTC.
func civilTime(g bangla.GregorianDate) time.Time {
	return time.Date(g.Year, time.Month(g.Month), g.Day, 0, 0, 0, 0, time.UTC)
}

// parseDate handles various vCard date formats.
func parseDate(value string) (time.Time, bool, error) {
	// Full dates (Year known)
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (Year unknown) - vCard specific
	// Safe leap year fallback
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safeDate := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
