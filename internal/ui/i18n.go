package ui

import (
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-bongabdo/internal/config"
	"github.com/tartampluch/go-bongabdo/internal/locale"
)

// SetupI18n loads the embedded translations and detects available languages.
func (app *BongabdoApp) SetupI18n() {
	bundle, langs, err := locale.NewBundle()
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	app.SupportedLanguages = langs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
func (app *BongabdoApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, app.language())
}

func (app *BongabdoApp) language() string {
	return app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
}

// GetMsg is a helper to translate a key safely.
func (app *BongabdoApp) GetMsg(key string) string {
	return app.localize(&i18n.LocalizeConfig{MessageID: key})
}

// GetMsgWith translates a templated key. Missing translations return the key.
func (app *BongabdoApp) GetMsgWith(key string, data map[string]any) string {
	return app.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// GetCountMsg translates a plural key, exposing the count as {{.Count}} in
// the digits of the interface language.
func (app *BongabdoApp) GetCountMsg(key string, count int) string {
	return app.localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: map[string]any{"Count": app.numeral(count)},
		PluralCount:  count,
	})
}

func (app *BongabdoApp) localize(lc *i18n.LocalizeConfig) string {
	return locale.Localize(app.Localizer, lc)
}

// numeral renders n in the digits of the interface language.
func (app *BongabdoApp) numeral(n int) string {
	return locale.Numeral(app.language(), n)
}
