package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/tartampluch/go-bongabdo/internal/config"
	"github.com/tartampluch/go-bongabdo/internal/locale"
)

type keyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Today key.Binding
	Quit  key.Binding
}

// newKeyMap binds the navigation keys with help text in the language of tr.
func newKeyMap(tr *locale.Translator) keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys(config.TUIKeyPrev, config.TUIKeyPrevV),
			key.WithHelp(config.TUIHelpPrevKey, tr.Msg(config.TKeyNavPrev)),
		),
		Next: key.NewBinding(
			key.WithKeys(config.TUIKeyNext, config.TUIKeyNextV),
			key.WithHelp(config.TUIHelpNextKey, tr.Msg(config.TKeyNavNext)),
		),
		Today: key.NewBinding(
			key.WithKeys(config.TUIKeyToday),
			key.WithHelp(config.TUIHelpTodayKey, tr.Msg(config.TKeyNavToday)),
		),
		Quit: key.NewBinding(
			key.WithKeys(config.TUIKeyQuit, config.TUIKeyEsc, config.TUIKeyCtrlC),
			key.WithHelp(config.TUIHelpQuitKey, tr.Msg(config.TKeyNavQuit)),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
