// Package locale embeds the interface translations shared by the desktop
// and terminal clients.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-bongabdo/internal/bangla"
	"github.com/tartampluch/go-bongabdo/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// NewBundle loads every embedded active.<lang>.json file. It returns the
// bundle and the language codes that loaded.
func NewBundle() (*i18n.Bundle, []string, error) {
	bundle := i18n.NewBundle(language.Bengali)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var detected []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		detected = append(detected, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	return bundle, detected, nil
}

// Localize translates lc. A nil localizer or a missing translation yields
// the message ID.
func Localize(l *i18n.Localizer, lc *i18n.LocalizeConfig) string {
	if l == nil {
		return lc.MessageID
	}
	msg, err := l.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}

// Numeral renders n in the digits of lang.
func Numeral(lang string, n int) string {
	if lang == config.DefaultLanguage {
		return bangla.Numeral(n)
	}
	return strconv.Itoa(n)
}

// Translator binds a localizer to its language. The zero value and a nil
// Translator return message IDs.
type Translator struct {
	lang      string
	localizer *i18n.Localizer
}

// NewTranslator returns a translator for lang. A nil bundle gives a
// translator that only echoes keys.
func NewTranslator(bundle *i18n.Bundle, lang string) *Translator {
	t := &Translator{lang: lang}
	if bundle != nil {
		t.localizer = i18n.NewLocalizer(bundle, lang)
	}
	return t
}

// Lang returns the language code the translator was built for.
func (t *Translator) Lang() string {
	if t == nil {
		return config.DefaultLanguage
	}
	return t.lang
}

// Msg translates key.
func (t *Translator) Msg(key string) string {
	return t.MsgWith(key, nil)
}

// MsgWith translates a templated key.
func (t *Translator) MsgWith(key string, data map[string]any) string {
	if t == nil {
		return key
	}
	return Localize(t.localizer, &i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}
