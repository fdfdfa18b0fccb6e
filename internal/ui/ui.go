package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-bongabdo/internal/bangla"
	"github.com/tartampluch/go-bongabdo/internal/config"
	"github.com/tartampluch/go-bongabdo/internal/engine"
	"github.com/tartampluch/go-bongabdo/internal/server"
	"github.com/zalando/go-keyring"
)

// BongabdoApp encapsulates the UI state, preferences, and background logic.
type BongabdoApp struct {
	App         fyne.App
	Window      fyne.Window // Settings window, nil when closed.
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server  *server.CalendarServer
	Fetcher engine.VCardFetcher
	Clock   engine.Clock

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem    *fyne.MenuItem
	TrayCalendarItem  *fyne.MenuItem
	TrayBirthdaysItem *fyne.MenuItem
	TraySettingsItem  *fyne.MenuItem
	TrayCountryItem   *fyne.MenuItem
	TrayWebsiteItem   *fyne.MenuItem
	TrayRefreshItem   *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// Date state, written by the worker and read by the windows.
	stateMut sync.RWMutex
	today    bangla.Date

	// Widget state, owned by the UI goroutine. Other goroutines go through runOnMain.
	dateWidget *dateWidget
	calendar   *calendarView
	runOnMain  func(func())

	// Birthdays State
	BirthdaysMut    sync.RWMutex
	Birthdays       []engine.BirthdayEntry
	birthdaysToday  int
	birthdaysWindow fyne.Window
}

// NewBongabdoApp constructs the application and wires dependencies.
func NewBongabdoApp(a fyne.App, ctx context.Context, srv *server.CalendarServer, fetcher engine.VCardFetcher) *BongabdoApp {
	a.SetIcon(theme.CalendarIcon())

	return &BongabdoApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
		runOnMain:          fyne.Do,
		Birthdays:          make([]engine.BirthdayEntry, 0),
	}
}

// Run launches the application services and the main UI loop.
func (app *BongabdoApp) Run() {
	app.SetupI18n()
	app.watchPreferences()
	app.Server.SetOffsetMode(app.offsetMode())

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.ShowDateWidget()

	go app.backgroundWorker()
	app.App.Run()
}

// watchPreferences monitors changes to settings to trigger immediate updates.
func (app *BongabdoApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

// offsetMode reads the day-boundary preference. Unknown values fall back to
// legacy.
func (app *BongabdoApp) offsetMode() engine.OffsetMode {
	raw := app.Preferences.StringWithFallback(config.PrefOffsetMode, config.DefaultOffsetMode)
	mode, err := engine.ParseOffsetMode(raw)
	if err != nil {
		slog.Warn(config.ErrOffsetMode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyValue, raw)
	}
	return mode
}

// Today returns the current Bangla date under the configured offset.
func (app *BongabdoApp) Today() bangla.Date {
	return engine.Today(app.Clock, app.offsetMode())
}

// refreshDate recomputes today and schedules the widget, tray and calendar
// update on the UI goroutine. It is safe to call from the worker and reports
// whether the Bangla day changed.
func (app *BongabdoApp) refreshDate() bool {
	today := app.Today()

	app.stateMut.Lock()
	changed := !app.today.SameDay(today)
	app.today = today
	app.stateMut.Unlock()

	app.runOnMain(func() { app.showDate(today, changed) })
	return changed
}

// showDate must run on the UI goroutine.
func (app *BongabdoApp) showDate(today bangla.Date, changed bool) {
	if app.dateWidget != nil {
		app.dateWidget.show(today)
	}
	if app.TrayStatusItem != nil && app.Menu != nil {
		app.TrayStatusItem.Label = trayDateLabel(today)
		app.Menu.Refresh()
	}
	if changed && app.calendar != nil {
		app.calendar.render()
	}
}

func trayDateLabel(d bangla.Date) string {
	return d.Line1() + " " + d.Line2()
}

// setupTrayMenu constructs the system tray menu.
func (app *BongabdoApp) setupTrayMenu() {
	// The date line opens the calendar.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowCalendarWindow()
	})

	app.TrayCalendarItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuCalendar), func() {
		app.ShowCalendarWindow()
	})

	app.TrayBirthdaysItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuBirthdays), func() {
		app.ShowBirthdaysWindow()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.TrayCountryItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuCountry), nil)
	app.TrayCountryItem.ChildMenu = app.countryMenu()

	app.TrayWebsiteItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuWebsite), func() {
		app.openWebsite()
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performSync(true)
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayCalendarItem,
		app.TrayBirthdaysItem,
		app.TraySettingsItem,
		app.TrayCountryItem,
		fyne.NewMenuItemSeparator(),
		app.TrayWebsiteItem,
		app.TrayRefreshItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
	app.refreshDate()
}

// countryMenu lists the calendars. Only Bangladesh is available.
func (app *BongabdoApp) countryMenu() *fyne.Menu {
	bd := fyne.NewMenuItem(app.GetMsg(config.TKeyMenuBangladesh), func() {
		app.Preferences.SetString(config.PrefCountry, config.CountryBangladesh)
	})
	bd.Checked = app.Preferences.StringWithFallback(config.PrefCountry, config.DefaultCountry) == config.CountryBangladesh

	in := fyne.NewMenuItem(app.GetMsg(config.TKeyMenuIndia), func() {
		slog.Info(config.MsgCountryIgnored,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyValue, config.CountryIndia)
	})
	in.Disabled = true

	return fyne.NewMenu(app.GetMsg(config.TKeyMenuCountry), bd, in)
}

func (app *BongabdoApp) openWebsite() {
	u, err := url.Parse(config.WebsiteURL)
	if err == nil {
		err = app.App.OpenURL(u)
	}
	if err != nil {
		slog.Error(config.ErrOpenURL,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyURL, config.WebsiteURL,
			config.LogKeyError, err)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *BongabdoApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayCalendarItem.Label = app.GetMsg(config.TKeyMenuCalendar)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.TrayCountryItem.Label = app.GetMsg(config.TKeyMenuCountry)
	app.TrayCountryItem.ChildMenu = app.countryMenu()
	app.TrayWebsiteItem.Label = app.GetMsg(config.TKeyMenuWebsite)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)

	app.BirthdaysMut.RLock()
	count := app.birthdaysToday
	app.BirthdaysMut.RUnlock()
	app.updateTrayStatus(count)
}

// backgroundWorker manages the periodic feed generation and the day watch.
func (app *BongabdoApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performSync(false)

	interval := app.syncInterval()
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	resetTicker(ticker, interval)
	if interval == 0 {
		log.Info(config.MsgRefreshOff)
	}

	dayTicker := time.NewTicker(config.WidgetRefreshInterval)
	defer dayTicker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			if next := app.syncInterval(); next != interval {
				log.Info(config.MsgUpdateSync, config.LogKeyOld, interval, config.LogKeyNew, next)
				interval = next
				resetTicker(ticker, interval)
			}

		case <-ticker.C:
			app.performSync(false)

		case <-dayTicker.C:
			if app.refreshDate() {
				log.Info(config.MsgDayChanged, config.LogKeyBanglaDate, app.Today().String())
				app.performSync(false)
			}
		}
	}
}

// syncInterval is the feed regeneration period. Zero disables it and
// negative values fall back to the default.
func (app *BongabdoApp) syncInterval() time.Duration {
	minutes := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
	if minutes < 0 {
		minutes = config.DefaultRefreshMin
	}
	return time.Duration(minutes) * time.Minute
}

// resetTicker applies a period, stopping the ticker when it is zero.
func resetTicker(t *time.Ticker, d time.Duration) {
	if d > 0 {
		t.Reset(d)
		return
	}
	t.Stop()
}

// performSync regenerates the feed (Fetch -> Parse -> Convert -> Encode).
func (app *BongabdoApp) performSync(manual bool) {
	slog.Info(config.MsgSyncReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifStart)))
	}

	mode := app.offsetMode()
	gen := &engine.FeedGenerator{
		Clock:         app.Clock,
		Fetcher:       app.Fetcher,
		Offset:        mode,
		FormatSummary: app.buildSummaryFormatter(),
	}

	feed, err := gen.Generate(app.Ctx, app.loadFeedConfig())
	if err != nil {
		slog.Error(config.MsgSyncFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleSyncError, app.GetMsg(config.TKeyNotifError)))
		}
		app.runOnMain(func() { app.updateTrayStatus(-1) })
		return
	}

	app.BirthdaysMut.Lock()
	app.Birthdays = feed.Birthdays
	app.birthdaysToday = feed.BirthdaysToday
	app.BirthdaysMut.Unlock()

	app.Server.SetOffsetMode(mode)
	app.Server.Update(feed.ICS)
	app.refreshDate()
	app.runOnMain(func() { app.updateTrayStatus(feed.BirthdaysToday) })

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSuccess)))
	}
}

// updateTrayStatus shows how many Bangla birthdays fall today on the
// birthdays item. A negative count flags a failed generation. It must run on
// the UI goroutine.
func (app *BongabdoApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayBirthdaysItem == nil {
		return
	}

	menuLabel := app.GetMsg(config.TKeyMenuBirthdays)

	var status string
	switch {
	case count < 0:
		status = config.FallbackTrayError
	case count == 0:
		status = app.GetMsg(config.TKeyTrayNoBirthday)
	default:
		status = app.GetCountMsg(config.TKeyTrayBirthdays, count)
		if status == config.TKeyTrayBirthdays {
			status = fmt.Sprintf(config.FallbackTrayDefault, count)
		}
	}

	app.TrayBirthdaysItem.Label = menuLabel + " (" + status + ")"
	app.Menu.Refresh()
}

// loadFeedConfig assembles the engine configuration from UI preferences and Keyring.
func (app *BongabdoApp) loadFeedConfig() engine.FeedConfig {
	months := app.Preferences.IntWithFallback(config.PrefFeedMonths, config.DefaultFeedMonths)
	if months < 0 || months > config.MaxFeedMonths {
		months = config.DefaultFeedMonths
	}

	cfg := engine.FeedConfig{
		Months: months,
		Source: engine.SourceConfig{
			Mode:      app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeNone),
			LocalPath: app.Preferences.String(config.PrefLocalPath),
			WebURL:    app.Preferences.String(config.PrefCardDAVURL),
			WebUser:   app.Preferences.String(config.PrefUsername),
		},
	}

	if user := cfg.Source.WebUser; user != "" && cfg.Source.Mode == config.SourceModeWeb {
		if p, err := keyring.Get(config.KeyringService, user); err == nil {
			cfg.Source.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, user,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	return cfg
}

// buildSummaryFormatter returns a closure that localizes the event summary.
// Ages use the digits of the interface language.
func (app *BongabdoApp) buildSummaryFormatter() func(name string, age int, yearKnown bool) string {
	return func(name string, age int, yearKnown bool) string {
		if app.Localizer == nil {
			if yearKnown {
				return fmt.Sprintf(config.FallbackBirthdayAge, name, bangla.Numeral(age))
			}
			return fmt.Sprintf(config.FallbackBirthday, name)
		}

		if yearKnown {
			return app.GetMsgWith(config.TKeyEvtBirthdayAge, map[string]any{
				"Name": name,
				"Age":  app.numeral(age),
			})
		}
		return app.GetMsgWith(config.TKeyEvtBirthday, map[string]any{"Name": name})
	}
}
