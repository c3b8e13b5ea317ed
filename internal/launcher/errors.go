package launcher

import "fmt"

// PathResolutionError reports a viewer entry point that does not exist at
// its computed location. Never retried; the launcher exits.
type PathResolutionError struct {
	Path string
	Err  error
}

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("viewer entry point not found at %s: %v", e.Path, e.Err)
}

func (e *PathResolutionError) Unwrap() error { return e.Err }

// LaunchError reports a child process that could not be started (missing
// interpreter, non-executable target, exec failure).
type LaunchError struct {
	Program string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Program, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// EnvironmentError reports a failure to prepare the child environment.
type EnvironmentError struct {
	Key string
	Err error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("failed to set %s in child environment: %v", e.Key, e.Err)
}

func (e *EnvironmentError) Unwrap() error { return e.Err }
