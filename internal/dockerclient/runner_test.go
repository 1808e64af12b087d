package dockerclient

import (
	"strings"
	"testing"
)

func TestResolveContainerName(t *testing.T) {
	t.Parallel()

	name := resolveContainerName("demo")
	if !strings.HasPrefix(name, "demo-") {
		t.Fatalf("name %q does not start with project name", name)
	}
	if len(name) != len("demo-")+shortLen {
		t.Fatalf("name %q has unexpected length", name)
	}

	long := strings.Repeat("x", 400)
	name = resolveContainerName(long)
	if len(name) > dockerMaxNameLen {
		t.Fatalf("name length %d exceeds docker limit", len(name))
	}
	if !strings.HasPrefix(name, tailMarker) {
		t.Fatalf("trimmed name %q missing tail marker", name)
	}
}

func TestRenderDockerfile(t *testing.T) {
	t.Parallel()

	got := renderDockerfile("swift:6.0", []string{"apt-get update", "apt-get install -y libsqlite3-dev"})
	want := "FROM swift:6.0\nRUN apt-get update\nRUN apt-get install -y libsqlite3-dev\n"
	if got != want {
		t.Fatalf("renderDockerfile = %q, want %q", got, want)
	}
}
