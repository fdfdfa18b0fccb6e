package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tartampluch/go-bongabdo/internal/applog"
	"github.com/tartampluch/go-bongabdo/internal/config"
	"github.com/tartampluch/go-bongabdo/internal/engine"
	"github.com/tartampluch/go-bongabdo/internal/locale"
	"github.com/tartampluch/go-bongabdo/internal/tui"
)

func main() {
	os.Exit(runMain())
}

// runMain prints today's date or runs the interactive month browser.
func runMain() int {
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	configPath := flag.String(config.FlagConfig, "", config.FlagDescConfig)
	offset := flag.String(config.FlagOffset, "", config.FlagDescOffset)
	printOnly := flag.Bool(config.FlagPrint, false, config.FlagDescPrint)
	flag.Parse()

	if *showVersion {
		fmt.Printf(config.MsgVersionOutput, config.TUIName, config.Version, runtime.GOOS, runtime.GOARCH)
		return config.ExitCodeSuccess
	}

	if logFile := applog.Setup(applog.Options{
		FileName: config.TUILogFileName,
		Debug:    *debugMode,
	}); logFile != nil {
		defer func() { _ = logFile.Close() }()
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}

	if *offset != "" {
		cfg.OffsetMode = *offset
	}
	mode, err := engine.ParseOffsetMode(cfg.OffsetMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}

	clock := engine.RealClock{}

	if *printOnly {
		for _, line := range engine.Today(clock, mode).Lines() {
			fmt.Println(line)
		}
		return config.ExitCodeSuccess
	}

	p := tea.NewProgram(tui.New(clock, mode, newTranslator(cfg.Language)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error(config.ErrTUIFailed,
			config.LogKeyComponent, config.CompTUI,
			config.LogKeyError, err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.ErrTUIFailed, err)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// loadConfig reads the TOML file at path, or at the default location when
// path is empty. A missing file yields the defaults.
func loadConfig(path string) (config.File, error) {
	if path == "" {
		p, err := config.DefaultFilePath()
		if err != nil {
			return config.DefaultFile(), nil
		}
		path = p
	}

	cfg, found, err := config.LoadFile(path)
	if err != nil {
		return cfg, err
	}

	msg := config.MsgConfigLoaded
	if !found {
		msg = config.MsgConfigDefault
	}
	slog.Info(msg, config.LogKeyComponent, config.CompConfig, config.LogKeyPath, path)
	return cfg, nil
}

// newTranslator loads the embedded translations for lang. Without them the
// help line shows message IDs.
func newTranslator(lang string) *locale.Translator {
	bundle, _, err := locale.NewBundle()
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err)
	}
	return locale.NewTranslator(bundle, lang)
}
