package dockerclient

import "fmt"

// BuildFailedError reports a build container that exited non-zero.
type BuildFailedError struct {
	Image    string
	ExitCode int64
	Stderr   string
}

func (e *BuildFailedError) Error() string {
	return fmt.Sprintf("build in %s exited with code %d", e.Image, e.ExitCode)
}
