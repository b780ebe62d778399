// Package vcs abstracts version control systems. Currently just git.
package vcs

import (
	"context"
	"fmt"

	"github.com/blang/semver/v4"

	"github.com/spinedocs/cichecks/model"
)

type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("vcs: ref %q not found", e.Ref)
}

// Interface is the read-only view of a repository the checks need. No
// implementation mutates history.
type Interface interface {
	// ReadCommits returns the commits selected by a log query such as
	// "origin/main..HEAD", in chronological order.
	ReadCommits(ctx context.Context, query string) ([]*model.Commit, error)
	CurrentBranch(ctx context.Context) (string, error)
	GetMainBranch(ctx context.Context, candidates []string) (string, error)
	// AuthorIdent returns the name and email of the in-progress author,
	// the identity a commit made right now would record.
	AuthorIdent(ctx context.Context) (name, email string, err error)
	Version(ctx context.Context) (semver.Version, error)
}
