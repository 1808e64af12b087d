// Tests in this file cover git output parsing and push confirmation.
package gitver

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func fakeCLI(stdout, stderr string, err error) *CLI {
	c := NewCLI()
	c.run = func(ctx context.Context, dir string, args ...string) (string, string, error) {
		return stdout, stderr, err
	}
	return c
}

func TestTagsSplitsBlob(t *testing.T) {
	t.Parallel()

	c := fakeCLI("1.0.0\n1.2.0\n\nnightly\n", "", nil)
	got, err := c.Tags(context.Background(), "/repo")
	if err != nil {
		t.Fatalf("Tags failed: %v", err)
	}
	want := []string{"1.0.0", "1.2.0", "nightly"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tags = %v, want %v", got, want)
	}
}

func TestTagsSurfacesStderr(t *testing.T) {
	t.Parallel()

	c := fakeCLI("", "fatal: not a git repository", fmt.Errorf("exit status 128"))
	if _, err := c.Tags(context.Background(), "/repo"); err == nil {
		t.Fatal("expected error")
	} else if got := err.Error(); !contains(got, "not a git repository") {
		t.Fatalf("error %q does not carry stderr", got)
	}
}

func TestPushTagConfirmed(t *testing.T) {
	t.Parallel()

	c := fakeCLI("", "To origin\n * [new tag]         1.3.0 -> 1.3.0\n", nil)
	if err := c.PushTag(context.Background(), "/repo", "1.3.0"); err != nil {
		t.Fatalf("PushTag failed: %v", err)
	}
}

func TestPushTagZeroExitWithoutConfirmationFails(t *testing.T) {
	t.Parallel()

	c := fakeCLI("Everything up-to-date with unrelated refs", "", nil)
	err := c.PushTag(context.Background(), "/repo", "1.3.0")
	if !errors.Is(err, ErrPushRejected) {
		t.Fatalf("expected ErrPushRejected, got %v", err)
	}
	var pre *PushRejectedError
	if !errors.As(err, &pre) || !pre.Unconfirmed {
		t.Fatalf("expected unconfirmed push error, got %v", err)
	}
}

func TestPushTagRemoteRejection(t *testing.T) {
	t.Parallel()

	c := fakeCLI("", "! [rejected] 1.3.0 -> 1.3.0 (already exists)", fmt.Errorf("exit status 1"))
	err := c.PushTag(context.Background(), "/repo", "1.3.0")
	if !errors.Is(err, ErrPushRejected) {
		t.Fatalf("expected ErrPushRejected, got %v", err)
	}
	var pre *PushRejectedError
	if !errors.As(err, &pre) || !contains(pre.Output, "already exists") {
		t.Fatalf("rejection output not carried: %v", err)
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}
