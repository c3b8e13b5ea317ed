// Package python probes the host Python runtime the viewer depends on.
package python

import (
	"fmt"
	"os/exec"
	"strings"

	"eposter/pkg/models"
)

// Interpreter is the command the viewer is launched with.
const Interpreter = "python3"

// RequiredModules are imported by the viewer at startup.
var RequiredModules = []string{"pygame", "PIL"}

// Find locates the interpreter on PATH.
func Find() (string, error) {
	return exec.LookPath(Interpreter)
}

// Probe checks the interpreter and each required module.
func Probe() (*models.RuntimeStatus, error) {
	path, err := Find()
	if err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", Interpreter, err)
	}

	out, err := exec.Command(path, "--version").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("failed to get %s version: %w", path, err)
	}

	status := &models.RuntimeStatus{
		Interpreter: path,
		Version:     ParseVersion(string(out)),
	}
	for _, mod := range RequiredModules {
		status.Modules = append(status.Modules, probeModule(path, mod))
	}
	return status, nil
}

func probeModule(interp, name string) models.ModuleStatus {
	out, err := exec.Command(interp, "-c", "import "+name).CombinedOutput()
	if err != nil {
		detail := lastLine(string(out))
		if detail == "" {
			detail = err.Error()
		}
		return models.ModuleStatus{Name: name, Detail: detail}
	}
	return models.ModuleStatus{Name: name, OK: true}
}

// ParseVersion extracts the bare version from "Python 3.11.2" style output.
func ParseVersion(out string) string {
	out = strings.TrimSpace(out)
	if rest, ok := strings.CutPrefix(out, "Python "); ok {
		return rest
	}
	return out
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
