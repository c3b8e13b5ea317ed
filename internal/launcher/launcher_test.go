package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eposter/internal/config"
	"github.com/google/go-cmp/cmp"
)

func testConfig() *config.LaunchConfiguration {
	return &config.LaunchConfiguration{
		Token:        "A999F1E2D3C4B5A697885746352413FE89D",
		CacheRefresh: 60,
		DisplayTime:  5,
	}
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"long token", "A999F1E2D3C4B5A697885746352413FE89D"},
		{"short token", "abc"},
		{"placeholder-like token", "********x"},
		{"empty token", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskToken(tt.token)
			if got != TokenPlaceholder {
				t.Errorf("MaskToken(%q) = %q, want %q", tt.token, got, TokenPlaceholder)
			}
			if tt.token != "" && strings.Contains(got, tt.token) {
				t.Errorf("MaskToken(%q) leaks the token value", tt.token)
			}
		})
	}
}

func envToMap(t *testing.T, env []string) map[string]string {
	t.Helper()
	m := make(map[string]string, len(env))
	for _, kv := range env {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			t.Fatalf("malformed env entry %q", kv)
		}
		if _, dup := m[key]; dup {
			t.Fatalf("duplicate env entry for %q", key)
		}
		m[key] = val
	}
	return m
}

func TestEnviron(t *testing.T) {
	tests := []struct {
		name string
		base []string
		want map[string]string
	}{
		{
			name: "empty base",
			base: nil,
			want: map[string]string{
				"POSTER_TOKEN":  "A999F1E2D3C4B5A697885746352413FE89D",
				"CACHE_REFRESH": "60",
				"DISPLAY_TIME":  "5",
			},
		},
		{
			name: "parent entries preserved",
			base: []string{"PATH=/usr/bin", "HOME=/home/pi"},
			want: map[string]string{
				"PATH":          "/usr/bin",
				"HOME":          "/home/pi",
				"POSTER_TOKEN":  "A999F1E2D3C4B5A697885746352413FE89D",
				"CACHE_REFRESH": "60",
				"DISPLAY_TIME":  "5",
			},
		},
		{
			name: "stale entries replaced not duplicated",
			base: []string{"POSTER_TOKEN=old", "CACHE_REFRESH=999", "DISPLAY_TIME=999", "PATH=/usr/bin"},
			want: map[string]string{
				"PATH":          "/usr/bin",
				"POSTER_TOKEN":  "A999F1E2D3C4B5A697885746352413FE89D",
				"CACHE_REFRESH": "60",
				"DISPLAY_TIME":  "5",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := envToMap(t, Environ(tt.base, testConfig()))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Environ mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEnvironRendersIntegersVerbatim(t *testing.T) {
	cfg := testConfig()
	cfg.CacheRefresh = 60
	env := envToMap(t, Environ(nil, cfg))
	if env["CACHE_REFRESH"] != "60" {
		t.Errorf("CACHE_REFRESH = %q, want %q", env["CACHE_REFRESH"], "60")
	}
	if env["DISPLAY_TIME"] != "5" {
		t.Errorf("DISPLAY_TIME = %q, want %q", env["DISPLAY_TIME"], "5")
	}
}

func TestExport(t *testing.T) {
	for _, key := range []string{EnvToken, EnvCacheRefresh, EnvDisplayTime} {
		t.Setenv(key, "stale")
	}

	if err := Export(testConfig()); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if got := os.Getenv(EnvToken); got != "A999F1E2D3C4B5A697885746352413FE89D" {
		t.Errorf("%s = %q after Export", EnvToken, got)
	}
	if got := os.Getenv(EnvCacheRefresh); got != "60" {
		t.Errorf("%s = %q, want 60", EnvCacheRefresh, got)
	}
	if got := os.Getenv(EnvDisplayTime); got != "5" {
		t.Errorf("%s = %q, want 5", EnvDisplayTime, got)
	}
}

func TestResolveViewer(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		dir := t.TempDir()
		want := filepath.Join(dir, ViewerScript)
		if err := os.WriteFile(want, []byte("#!/usr/bin/env python3\n"), 0755); err != nil {
			t.Fatal(err)
		}

		got, err := ResolveViewer(dir)
		if err != nil {
			t.Fatalf("ResolveViewer failed: %v", err)
		}
		if got != want {
			t.Errorf("ResolveViewer = %q, want %q", got, want)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ResolveViewer(t.TempDir())
		var pathErr *PathResolutionError
		if !errors.As(err, &pathErr) {
			t.Fatalf("ResolveViewer error = %v, want *PathResolutionError", err)
		}
		if !strings.Contains(pathErr.Path, ViewerScript) {
			t.Errorf("error path %q does not name the viewer script", pathErr.Path)
		}
	})

	t.Run("directory instead of file", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, ViewerScript), 0755); err != nil {
			t.Fatal(err)
		}

		_, err := ResolveViewer(dir)
		var pathErr *PathResolutionError
		if !errors.As(err, &pathErr) {
			t.Fatalf("ResolveViewer error = %v, want *PathResolutionError", err)
		}
	})
}

func TestLaunchWaitPropagatesExitCode(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "viewer.sh")
	if err := os.WriteFile(script, []byte("exit 7\n"), 0755); err != nil {
		t.Fatal(err)
	}

	code, err := Launch("/bin/sh", script, "", nil, ModeWait)
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	if code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}
}

func TestLaunchWaitPassesEnvAndPosterArg(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	script := filepath.Join(dir, "viewer.sh")
	body := "printf '%s|%s|%s|%s' \"$POSTER_TOKEN\" \"$CACHE_REFRESH\" \"$DISPLAY_TIME\" \"$1\" > " + out + "\n"
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}

	env := Environ([]string{"PATH=/usr/bin:/bin"}, testConfig())
	code, err := Launch("/bin/sh", script, "/tmp/poster.png", env, ModeWait)
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "A999F1E2D3C4B5A697885746352413FE89D|60|5|/tmp/poster.png"
	if string(got) != want {
		t.Errorf("child saw %q, want %q", got, want)
	}
}

func TestLaunchMissingInterpreter(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "python3")

	for _, mode := range []Mode{ModeExec, ModeWait} {
		t.Run(mode.String(), func(t *testing.T) {
			code, err := Launch(missing, "viewer.py", "", nil, mode)
			var launchErr *LaunchError
			if !errors.As(err, &launchErr) {
				t.Fatalf("Launch error = %v, want *LaunchError", err)
			}
			if code == 0 {
				t.Errorf("exit code = 0 for a failed launch")
			}
		})
	}
}
