// Command hotkeyprobe registers the recording hotkeys outside the desktop
// app and prints every action they fire. It is used to check whether a
// shortcut works on the current machine.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.design/x/hotkey/mainthread"

	"vibe/internal/actions"
	"vibe/internal/config"
	"vibe/internal/hotkeys"
	"vibe/internal/singleinstance"
)

type options struct {
	configPath string
	start      string
	stop       string
	check      bool
	logLevel   string
}

var errUsage = errors.New("usage")

// parseFlags reads options from args. Flags left unset fall back to the
// hotkey section of the config file, then to the built-in defaults.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("hotkeyprobe", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "config file to read shortcuts from (default: "+config.PathEnv+" or the user config dir)")
	fs.StringVar(&opts.start, "start", "", "start recording shortcut, e.g. CmdOrCtrl+Shift+R")
	fs.StringVar(&opts.stop, "stop", "", "stop recording shortcut")
	fs.BoolVar(&opts.check, "check", false, "only report whether the shortcuts are available, then exit")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (default: "+config.LogLevelEnv+")")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return options{}, errUsage
	}
	return opts, nil
}

// resolveConfig merges the config file with flag overrides. A missing file is
// not an error.
func resolveConfig(opts options) (hotkeys.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return hotkeys.Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	hk := cfg.Hotkeys
	hk.Enabled = true
	if opts.start != "" {
		hk.StartRecording = opts.start
	}
	if opts.stop != "" {
		hk.StopRecording = opts.stop
	}
	hk = hk.Normalize()
	if err := hk.Validate(); err != nil {
		return hotkeys.Config{}, err
	}
	return hk, nil
}

func configureLogging(raw string) {
	if raw == "" {
		raw = os.Getenv(config.LogLevelEnv)
	}
	if level, ok := config.ParseLogLevel(raw); ok {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}
}

// checkShortcuts prints availability for each configured shortcut and
// returns false when any is unavailable.
func checkShortcuts(ctx context.Context, manager *hotkeys.Manager, cfg hotkeys.Config, out io.Writer) bool {
	ok := true
	for _, shortcut := range []string{cfg.StartRecording, cfg.StopRecording} {
		if shortcut == "" {
			continue
		}
		available := manager.CheckAvailability(ctx, shortcut)
		fmt.Fprintf(out, "%-24s available=%t\n", shortcut, available)
		ok = ok && available
	}
	return ok
}

func printActions(logger *log.Logger) actions.Handler {
	return func(e actions.Event) {
		logger.Printf("action=%s shortcut=%q id=%s", e.Action, e.Shortcut, e.ID)
	}
}

var (
	tryLockFn     = singleinstance.TryLock
	releaseLockFn = func(l *singleinstance.Lock) error { return l.Release() }
)

// reportRunningApp warns when the desktop app holds the single-instance lock.
// The lock is only probed. A running app holds its shortcuts, which then
// report as unavailable.
func reportRunningApp(logger *log.Logger) {
	lock, err := tryLockFn(singleinstance.DefaultName())
	switch {
	case errors.Is(err, singleinstance.ErrAlreadyRunning):
		logger.Printf("the desktop app is running; shortcuts it holds will report as in use")
	case err != nil:
		logger.Printf("could not check for a running app: %v", err)
	default:
		if releaseErr := releaseLockFn(lock); releaseErr != nil {
			logger.Printf("failed to release instance lock: %v", releaseErr)
		}
	}
}

func run() int {
	if err := godotenv.Load(); err == nil {
		slog.Debug("[DEBUG-CONFIG] loaded .env")
	}
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	configureLogging(opts.logLevel)
	logger := log.New(os.Stdout, "[hotkeyprobe] ", log.LstdFlags|log.Lmsgprefix)

	cfg, err := resolveConfig(opts)
	if err != nil {
		logger.Printf("invalid hotkey config: %v", err)
		return 2
	}

	reportRunningApp(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := hotkeys.NewSystemHost()
	defer func() {
		if err := host.Close(); err != nil {
			logger.Printf("failed to release hotkeys cleanly: %v", err)
		}
	}()
	bus := actions.NewBus()
	manager := hotkeys.NewManager(host, bus)
	defer manager.Dispose()

	if opts.check {
		if !checkShortcuts(ctx, manager, cfg, os.Stdout) {
			return 1
		}
		return 0
	}

	sub := bus.SubscribeContext(ctx, printActions(logger))
	defer sub.Close()

	if err := manager.RegisterHotkeys(ctx, cfg); err != nil {
		var bindErr *hotkeys.BindError
		if errors.As(err, &bindErr) && bindErr.NeedsPermission {
			logger.Printf("permission required: %v", err)
		} else {
			logger.Printf("registration failed: %v", err)
		}
		return 1
	}
	for shortcut, action := range manager.ListRegistered(ctx) {
		logger.Printf("registered %s as %q", action, shortcut)
	}
	logger.Printf("listening, press Ctrl+C to exit")

	<-ctx.Done()
	if err := manager.UnregisterHotkeys(context.Background()); err != nil {
		logger.Printf("failed to unregister hotkeys: %v", err)
	}
	return 0
}

func main() {
	code := 0
	mainthread.Init(func() { code = run() })
	os.Exit(code)
}
