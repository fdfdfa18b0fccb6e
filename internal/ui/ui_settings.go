package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-bongabdo/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets are the inputs read back by saveSettings.
type settingsWidgets struct {
	langSelect    *widget.Select
	offsetSelect  *widget.Select
	modeSelect    *widget.Select
	urlEntry      *widget.Entry
	userEntry     *widget.Entry
	passEntry     *widget.Entry
	pathEntry     *widget.Entry
	entryInterval *NumericalEntry
	entryPort     *NumericalEntry
	entryMonths   *NumericalEntry
}

// ShowSettingsWindow opens the settings window, or focuses it when open.
func (app *BongabdoApp) ShowSettingsWindow() {
	if app.Window != nil {
		slog.Debug(config.MsgWindowFocus, config.LogKeyComponent, config.CompUISet)
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenSettings, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.Window = w

	sw := app.newSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	minutes := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblMinutes)), sw.entryInterval)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(
		app.formItem(config.TKeyLblLanguage, config.TKeyHelpLanguage, sw.langSelect),
		app.formItem(config.TKeyLblOffset, config.TKeyHelpOffset, sw.offsetSelect),
		app.formItem(config.TKeyLblRefresh, config.TKeyHelpInterval, minutes),
		app.formItem(config.TKeyLblPort, config.TKeyHelpPort, sw.entryPort),
	))

	feedCard := widget.NewCard(app.GetMsg(config.TKeyLblFeed), "", widget.NewForm(
		app.formItem(config.TKeyLblFeedMonths, config.TKeyHelpFeedMonths, sw.entryMonths),
	))

	saveAction := func() {
		for _, e := range []*NumericalEntry{sw.entryPort, sw.entryMonths} {
			if err := e.Validate(); err != nil {
				dialog.ShowError(err, w)
				return
			}
		}
		app.saveSettings(sw, w)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footer := widget.NewLabelWithStyle(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version),
		fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	content := container.NewPadded(container.NewVBox(
		generalCard,
		feedCard,
		sourceCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footer,
	))

	// The window keeps a fixed width and follows the height of the visible
	// source form.
	refreshLayout = func() {
		content.Refresh()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	}

	w.SetContent(content)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.Window = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets builds the inputs pre-filled from the preferences.
func (app *BongabdoApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.language())

	sw.offsetSelect = widget.NewSelect([]string{
		app.offsetModeLabel(config.OffsetModeLegacy),
		app.offsetModeLabel(config.OffsetModeBangladesh),
	}, nil)
	sw.offsetSelect.SetSelected(app.offsetModeLabel(string(app.offsetMode())))

	// Mode labels are mapped back to values on save.
	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeNone),
		app.GetMsg(config.TKeyModeCardDAV),
		app.GetMsg(config.TKeyModeLocal),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	// Interval: empty or 0 disables periodic refresh, so no validator.
	sw.entryInterval = NewNumericalEntry()
	sw.entryInterval.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	sw.entryMonths = NewNumericalEntry()
	sw.entryMonths.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefFeedMonths, config.DefaultFeedMonths)))
	sw.entryMonths.Validator = app.validateFeedMonths

	return sw
}

func (app *BongabdoApp) validatePort(s string) error {
	s = normalizeDigits(s)
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

func (app *BongabdoApp) validateFeedMonths(s string) error {
	months, err := strconv.Atoi(normalizeDigits(s))
	if err != nil || months < 0 || months > config.MaxFeedMonths {
		return errors.New(app.GetMsg(config.TKeyErrFeedRange))
	}
	return nil
}

// buildSourceCard constructs the birthday source selection UI.
func (app *BongabdoApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	webForm := widget.NewForm(
		app.formItem(config.TKeyLblURL, config.TKeyHelpURL, sw.urlEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	)
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	applyVisibility := func(label string) {
		webForm.Hide()
		localForm.Hide()
		switch app.sourceModeFor(label) {
		case config.SourceModeWeb:
			webForm.Show()
		case config.SourceModeLocal:
			localForm.Show()
		}
	}

	sw.modeSelect.OnChanged = func(label string) {
		applyVisibility(label)
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	sw.modeSelect.SetSelected(app.sourceModeLabel(
		app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeNone)))
	applyVisibility(sw.modeSelect.Selected)

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// formItem builds a labelled form row with its hint line.
func (app *BongabdoApp) formItem(labelKey, hintKey string, obj fyne.CanvasObject) *widget.FormItem {
	item := widget.NewFormItem(app.GetMsg(labelKey), obj)
	item.HintText = app.GetMsg(hintKey)
	return item
}

// offsetModeLabel maps a stored offset mode to its translated label.
func (app *BongabdoApp) offsetModeLabel(mode string) string {
	if mode == config.OffsetModeBangladesh {
		return app.GetMsg(config.TKeyOffsetBD)
	}
	return app.GetMsg(config.TKeyOffsetLegacy)
}

// offsetModeFor maps a translated label back to the stored offset mode.
func (app *BongabdoApp) offsetModeFor(label string) string {
	if label == app.GetMsg(config.TKeyOffsetBD) {
		return config.OffsetModeBangladesh
	}
	return config.OffsetModeLegacy
}

// sourceModeLabel maps a stored source mode to its translated label.
func (app *BongabdoApp) sourceModeLabel(mode string) string {
	switch mode {
	case config.SourceModeWeb:
		return app.GetMsg(config.TKeyModeCardDAV)
	case config.SourceModeLocal:
		return app.GetMsg(config.TKeyModeLocal)
	default:
		return app.GetMsg(config.TKeyModeNone)
	}
}

// sourceModeFor maps a translated label back to the stored source mode.
func (app *BongabdoApp) sourceModeFor(label string) string {
	switch label {
	case app.GetMsg(config.TKeyModeCardDAV):
		return config.SourceModeWeb
	case app.GetMsg(config.TKeyModeLocal):
		return config.SourceModeLocal
	default:
		return config.SourceModeNone
	}
}

// saveSettings persists the data and triggers a sync.
// Empty numeric fields disable or keep the previous value.
func (app *BongabdoApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefOffsetMode, app.offsetModeFor(sw.offsetSelect.Selected))
	app.Preferences.SetString(config.PrefSourceMode, app.sourceModeFor(sw.modeSelect.Selected))
	app.Preferences.SetString(config.PrefCardDAVURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)

	// An empty password field keeps the stored secret.
	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.ErrKeyringSave, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	intervalText := sw.entryInterval.Value()
	if intervalText == "" || intervalText == "0" {
		app.Preferences.SetInt(config.PrefInterval, config.DisabledInterval)
		slog.Info(config.MsgRefreshOff, config.LogKeyComponent, config.CompUISet)
	} else if i, err := strconv.Atoi(intervalText); err == nil {
		app.Preferences.SetInt(config.PrefInterval, i)
	}

	if port := sw.entryPort.Value(); port != "" {
		app.Preferences.SetString(config.PrefServerPort, port)
	}

	if months, err := strconv.Atoi(sw.entryMonths.Value()); err == nil {
		app.Preferences.SetInt(config.PrefFeedMonths, months)
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	app.Server.SetOffsetMode(app.offsetMode())
	app.refreshDate()
	app.performSync(true)

	w.Close()
}
