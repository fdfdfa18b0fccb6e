package locale_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-bongabdo/internal/config"
)

var translationKeys = []string{
	config.TKeyAppTitle,
	config.TKeyWinCalendar,
	config.TKeyWinSettings,
	config.TKeyWinBirthdays,
	config.TKeyMenuCalendar,
	config.TKeyMenuBirthdays,
	config.TKeyMenuSettings,
	config.TKeyMenuCountry,
	config.TKeyMenuBangladesh,
	config.TKeyMenuIndia,
	config.TKeyMenuWebsite,
	config.TKeyMenuRefresh,
	config.TKeyTrayBirthdays,
	config.TKeyTrayNoBirthday,
	config.TKeyNavPrev,
	config.TKeyNavNext,
	config.TKeyNavToday,
	config.TKeyNavQuit,
	config.TKeyHoverGregorian,
	config.TKeyNotifStart,
	config.TKeyNotifSuccess,
	config.TKeyNotifError,
	config.TKeyLblGeneral,
	config.TKeyLblLanguage,
	config.TKeyHelpLanguage,
	config.TKeyLblOffset,
	config.TKeyHelpOffset,
	config.TKeyOffsetLegacy,
	config.TKeyOffsetBD,
	config.TKeyLblFeed,
	config.TKeyLblFeedMonths,
	config.TKeyHelpFeedMonths,
	config.TKeyLblMinutes,
	config.TKeyLblRefresh,
	config.TKeyHelpInterval,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblSource,
	config.TKeyModeNone,
	config.TKeyModeCardDAV,
	config.TKeyModeLocal,
	config.TKeyLblURL,
	config.TKeyHelpURL,
	config.TKeyLblUser,
	config.TKeyLblPass,
	config.TKeyBtnBrowse,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyLblFooter,
	config.TKeyEvtBirthday,
	config.TKeyEvtBirthdayAge,
	config.TKeyColName,
	config.TKeyColBanglaDate,
	config.TKeyColNextDate,
	config.TKeyColAge,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
	config.TKeyErrFeedRange,
}

func loadLocale(t *testing.T, lang string) map[string]any {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
	require.NoError(t, err, "Must load active.%s.json", lang)

	var m map[string]any
	require.NoError(t, json.Unmarshal(content, &m), "JSON must be valid")
	return m
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in every locale file, and that no locale carries orphans.
func TestI18nIntegrity(t *testing.T) {
	defined := make(map[string]bool, len(translationKeys))
	for _, k := range translationKeys {
		defined[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			m := loadLocale(t, lang)
			for key := range defined {
				assert.Containsf(t, m, key, "Key '%s' is missing in active.%s.json", key, lang)
			}
			for key := range m {
				assert.Truef(t, defined[key], "Key '%s' in active.%s.json is not defined in config.go", key, lang)
			}
		})
	}
}

// TestI18nPluralForms checks that plural messages provide the forms both
// languages select.
func TestI18nPluralForms(t *testing.T) {
	for _, lang := range config.SupportedLanguages {
		m := loadLocale(t, lang)
		forms, ok := m[config.TKeyTrayBirthdays].(map[string]any)
		require.Truef(t, ok, "%s: plural message must be an object", lang)
		assert.Contains(t, forms, "one")
		assert.Contains(t, forms, "other")
	}
}
