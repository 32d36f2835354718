package main

import (
	"embed"
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"vibe/internal/config"
	"vibe/internal/singleinstance"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	// .env is optional; it may set VIBE_CONFIG_PATH or VIBE_LOG_LEVEL.
	if err := godotenv.Load(); err == nil {
		slog.Debug("[DEBUG-CONFIG] loaded .env")
	}
	if level, ok := config.ParseLogLevel(os.Getenv(config.LogLevelEnv)); ok {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	// A second instance would find every shortcut already taken.
	lock, err := singleinstance.TryLock(singleinstance.DefaultName())
	if errors.Is(err, singleinstance.ErrAlreadyRunning) {
		slog.Info("[DEBUG-SINGLE] another instance is already running, exiting")
		return
	}
	if err != nil {
		slog.Warn("[DEBUG-SINGLE] lock failed, proceeding without single-instance guard", "error", err)
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			slog.Warn("[DEBUG-SINGLE] lock release failed", "error", releaseErr)
		}
	}()

	app := NewApp()

	err = wails.Run(&options.App{
		Title:     "vibe",
		Width:     1024,
		Height:    720,
		MinWidth:  640,
		MinHeight: 480,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 10, G: 16, B: 22, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []any{
			app,
		},
	})

	if err != nil {
		slog.Error("[APP] wails run failed", "error", err)
	}
}
