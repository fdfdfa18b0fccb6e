package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-bongabdo/internal/applog"
	"github.com/tartampluch/go-bongabdo/internal/config"
	"github.com/tartampluch/go-bongabdo/internal/engine"
	"github.com/tartampluch/go-bongabdo/internal/server"
	"github.com/tartampluch/go-bongabdo/internal/ui"
)

// main returns through runMain so deferred closers run before os.Exit.
func main() {
	os.Exit(runMain())
}

func runMain() int {
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	flag.Parse()

	if *showVersion {
		fmt.Printf(config.MsgVersionOutput, config.AppName, config.Version, runtime.GOOS, runtime.GOARCH)
		return config.ExitCodeSuccess
	}

	if logFile := applog.Setup(applog.Options{
		FileName: config.LogFileName,
		Console:  os.Stdout,
		Debug:    *debugMode,
	}); logFile != nil {
		defer func() { _ = logFile.Close() }()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)

	runDesktop(ctx)

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// runDesktop wires the feed server, the vCard fetcher and the tray UI, and
// blocks until the app quits.
func runDesktop(ctx context.Context) {
	a := app.NewWithID(config.AppID)
	prefs := a.Preferences()
	prefs.SetString(config.PrefLastRun, config.Version)

	srv := server.NewCalendarServer(
		prefs.StringWithFallback(config.PrefServerPort, config.DefaultPort),
		engine.RealClock{},
	)
	gui := ui.NewBongabdoApp(a, ctx, srv, engine.NewHTTPFetcher())

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	gui.Run()
}
