package main

import (
	"bytes"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vibe/internal/hotkeys"
	"vibe/internal/singleinstance"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr error
	}{
		{
			name: "defaults",
			args: nil,
			want: options{},
		},
		{
			name: "all flags",
			args: []string{"-start", "Ctrl+F9", "-stop", "Ctrl+F10", "-check", "-log-level", "debug", "-config", "/tmp/x.yaml"},
			want: options{configPath: "/tmp/x.yaml", start: "Ctrl+F9", stop: "Ctrl+F10", check: true, logLevel: "debug"},
		},
		{
			name:    "positional arguments rejected",
			args:    []string{"extra"},
			wantErr: errUsage,
		},
		{
			name:    "help",
			args:    []string{"-h"},
			wantErr: flag.ErrHelp,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			got, err := parseFlags(tt.args, &stderr)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("parseFlags() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("parseFlags() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "hotkeys:\n  enabled: false\n  start_recording: Ctrl+F9\n  stop_recording: Ctrl+F10\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	tests := []struct {
		name    string
		opts    options
		want    hotkeys.Config
		wantErr error
	}{
		{
			name: "file values are enabled",
			opts: options{configPath: path},
			want: hotkeys.Config{Enabled: true, StartRecording: "Ctrl+F9", StopRecording: "Ctrl+F10"},
		},
		{
			name: "flags override file",
			opts: options{configPath: path, start: " Alt+F1 "},
			want: hotkeys.Config{Enabled: true, StartRecording: "Alt+F1", StopRecording: "Ctrl+F10"},
		},
		{
			name: "missing file uses defaults",
			opts: options{configPath: filepath.Join(dir, "missing.yaml"), start: "Ctrl+F9", stop: "Ctrl+F10"},
			want: hotkeys.Config{Enabled: true, StartRecording: "Ctrl+F9", StopRecording: "Ctrl+F10"},
		},
		{
			name:    "duplicate shortcuts rejected",
			opts:    options{configPath: path, stop: "Ctrl+F9"},
			wantErr: hotkeys.ErrDuplicateShortcut,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveConfig(tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolveConfig() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveConfig() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("resolveConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCheckShortcuts(t *testing.T) {
	host := hotkeys.NewFakeHost()
	host.Occupy("Ctrl+F10")
	manager := hotkeys.NewManager(host, nil)

	var out bytes.Buffer
	ok := checkShortcuts(t.Context(), manager, hotkeys.Config{StartRecording: "Ctrl+F9", StopRecording: "Ctrl+F10"}, &out)
	if ok {
		t.Fatal("checkShortcuts() = true with an occupied shortcut")
	}
	if !bytes.Contains(out.Bytes(), []byte("available=false")) {
		t.Fatalf("output = %q", out.String())
	}
}

func TestReportRunningApp(t *testing.T) {
	origTry := tryLockFn
	origRelease := releaseLockFn
	t.Cleanup(func() {
		tryLockFn = origTry
		releaseLockFn = origRelease
	})

	tests := []struct {
		name       string
		lockErr    error
		releaseErr error
		want       string
	}{
		{name: "app running", lockErr: singleinstance.ErrAlreadyRunning, want: "desktop app is running"},
		{name: "lock failure", lockErr: errors.New("read-only tmp"), want: "could not check for a running app: read-only tmp"},
		{name: "release failure", releaseErr: errors.New("bad fd"), want: "failed to release instance lock: bad fd"},
		{name: "free", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tryLockFn = func(string) (*singleinstance.Lock, error) {
				if tt.lockErr != nil {
					return nil, tt.lockErr
				}
				return &singleinstance.Lock{}, nil
			}
			released := false
			releaseLockFn = func(*singleinstance.Lock) error {
				released = true
				return tt.releaseErr
			}

			var out bytes.Buffer
			reportRunningApp(log.New(&out, "", 0))

			if tt.want == "" {
				if out.Len() != 0 {
					t.Fatalf("unexpected output %q", out.String())
				}
			} else if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("output = %q, want %q", out.String(), tt.want)
			}
			if wantRelease := tt.lockErr == nil; released != wantRelease {
				t.Fatalf("released = %v, want %v", released, wantRelease)
			}
		})
	}
}
