// Package release drives the tag-cutting workflow: pick the latest valid
// tag, increment the requested component, create and push the new tag, and
// verify against the remote that it actually landed.
package release

import (
	"context"
	"fmt"
	"time"

	"github.com/tidewater-dev/slipway/internal/gitver"
	"github.com/tidewater-dev/slipway/internal/semver"
	"github.com/tidewater-dev/slipway/internal/state"
)

// RecordStore is the slice of the state layer the workflow writes to.
type RecordStore interface {
	Record(ctx context.Context, r state.Release) error
}

// Workflow wires the collaborators of one release run. Tags is required;
// the rest are optional and default to sensible no-ops.
type Workflow struct {
	Tags  gitver.TagService
	Store RecordStore

	// Confirm is asked before the tag is created. Nil auto-confirms,
	// which is what scripted callers want.
	Confirm func(prompt string) bool

	// Initial is used as the first version when the repository has no
	// valid tag yet. Nil means a missing tag is an error.
	Initial *semver.Version

	Now func() time.Time
}

// Result reports what a release run did.
type Result struct {
	Previous     semver.Version
	Next         semver.Version
	FirstRelease bool
}

// Run cuts one release in repo. The happy path is
// list -> select latest -> increment -> tag -> push -> verify -> record.
func (w *Workflow) Run(ctx context.Context, repo, project, bucket string, target semver.Component) (*Result, error) {
	tags, err := w.Tags.Tags(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	res := &Result{}
	current, err := semver.SelectLatest(tags)
	switch {
	case err == nil:
		res.Previous = current
		res.Next = semver.Increment(current, target)
	case w.Initial != nil:
		res.FirstRelease = true
		res.Next = *w.Initial
	default:
		return nil, err
	}

	next := res.Next.String()
	if w.Confirm != nil && !w.Confirm(fmt.Sprintf("Create and push tag %s?", next)) {
		return nil, ErrAborted
	}

	if err := w.Tags.CreateTag(ctx, repo, next); err != nil {
		return nil, fmt.Errorf("create tag %s: %w", next, err)
	}
	if err := w.Tags.PushTag(ctx, repo, next); err != nil {
		return nil, err
	}

	// The push already checked the remote's own output. Reading the tag
	// list back catches the remaining failure mode where the push looked
	// fine but the tag is not actually visible.
	if err := w.verifyTag(ctx, repo, next); err != nil {
		return nil, err
	}

	if w.Store != nil {
		now := time.Now().UTC()
		if w.Now != nil {
			now = w.Now()
		}
		err := w.Store.Record(ctx, state.Release{
			Project:     project,
			Tag:         next,
			Bucket:      bucket,
			PublishedAt: now,
		})
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (w *Workflow) verifyTag(ctx context.Context, repo, tag string) error {
	tags, err := w.Tags.Tags(ctx, repo)
	if err != nil {
		return fmt.Errorf("verify tag %s: %w", tag, err)
	}
	for _, t := range tags {
		if t == tag {
			return nil
		}
	}
	return &ReadBackMismatchError{Tag: tag, Tags: tags}
}
