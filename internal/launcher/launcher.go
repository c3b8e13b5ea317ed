// Package launcher resolves the viewer entry point, assembles the viewer
// environment, and transfers control to it.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"eposter/internal/config"
)

// ViewerScript is the viewer entry point, co-located with the launcher.
const ViewerScript = "show_png.py"

// Environment variables consumed by the viewer.
const (
	EnvToken        = "POSTER_TOKEN"
	EnvCacheRefresh = "CACHE_REFRESH"
	EnvDisplayTime  = "DISPLAY_TIME"
)

// TokenPlaceholder is what status output shows instead of the token value.
const TokenPlaceholder = "********"

// Mode selects how control is transferred to the viewer.
type Mode int

const (
	// ModeExec replaces the launcher's process image with the viewer.
	ModeExec Mode = iota
	// ModeWait spawns the viewer and waits, propagating its exit code.
	ModeWait
)

func (m Mode) String() string {
	switch m {
	case ModeExec:
		return "exec"
	case ModeWait:
		return "wait"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ResolveViewer computes the viewer entry point path. baseDir overrides the
// default base, which is the directory holding the launcher executable.
// No search, no fallback.
func ResolveViewer(baseDir string) (string, error) {
	if baseDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", &PathResolutionError{Path: ViewerScript, Err: err}
		}
		baseDir = filepath.Dir(exe)
	}
	path := filepath.Join(baseDir, ViewerScript)
	info, err := os.Stat(path)
	if err != nil {
		return "", &PathResolutionError{Path: path, Err: err}
	}
	if info.IsDir() {
		return "", &PathResolutionError{Path: path, Err: errors.New("is a directory")}
	}
	return path, nil
}

func managedVars(cfg *config.LaunchConfiguration) map[string]string {
	return map[string]string{
		EnvToken:        cfg.Token,
		EnvCacheRefresh: strconv.Itoa(cfg.CacheRefresh),
		EnvDisplayTime:  strconv.Itoa(cfg.DisplayTime),
	}
}

// Environ extends base (normally os.Environ()) with the three viewer
// variables. Existing entries for those keys are replaced, not duplicated.
func Environ(base []string, cfg *config.LaunchConfiguration) []string {
	managed := managedVars(cfg)

	env := make([]string, 0, len(base)+len(managed))
	for _, kv := range base {
		if key, _, ok := strings.Cut(kv, "="); ok {
			if _, replaced := managed[key]; replaced {
				continue
			}
		}
		env = append(env, kv)
	}
	for _, key := range []string{EnvToken, EnvCacheRefresh, EnvDisplayTime} {
		env = append(env, key+"="+managed[key])
	}
	return env
}

// Export also sets the three viewer variables in the launcher's own
// environment, so they reach the child even through code paths that do not
// pass an explicit environment slice.
func Export(cfg *config.LaunchConfiguration) error {
	for key, val := range managedVars(cfg) {
		if err := os.Setenv(key, val); err != nil {
			return &EnvironmentError{Key: key, Err: err}
		}
	}
	return nil
}

// MaskToken renders a token for status output. The real value never
// appears; every token masks to the same fixed placeholder.
func MaskToken(string) string { return TokenPlaceholder }

// Launch hands control to the viewer. In ModeExec it does not return on
// success; in ModeWait it returns the child's exit code.
func Launch(interp, viewer, poster string, env []string, mode Mode) (int, error) {
	argv := []string{interp, viewer}
	if poster != "" {
		argv = append(argv, poster)
	}

	switch mode {
	case ModeExec:
		if err := syscall.Exec(interp, argv, env); err != nil {
			return 1, &LaunchError{Program: interp, Err: err}
		}
		return 0, nil // not reached
	case ModeWait:
		cmd := exec.Command(interp, argv[1:]...)
		cmd.Env = env
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return exitErr.ExitCode(), nil
			}
			return 1, &LaunchError{Program: interp, Err: err}
		}
		return 0, nil
	}
	return 1, &LaunchError{Program: interp, Err: fmt.Errorf("unknown launch mode %v", mode)}
}
