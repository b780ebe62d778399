// Package runner manages command-line execution
package runner

import (
	"context"
	"io"
	"strings"

	"github.com/spinedocs/cichecks/config"
	"github.com/spinedocs/cichecks/model"
	"github.com/spinedocs/cichecks/signoff"
	"github.com/spinedocs/cichecks/vcs"
)

type Runner struct {
	cfg        config.Config
	vcs        vcs.Interface
	policy     signoff.Policy
	mainBranch string
}

func New(cfg config.Config, vcs vcs.Interface) *Runner {
	return &Runner{
		cfg:    cfg,
		vcs:    vcs,
		policy: PolicyFromConfig(cfg),
	}
}

// PolicyFromConfig translates the command-line configuration into the
// validator's match policy. The config booleans are negated so that the
// zero value of Config yields the documented defaults.
func PolicyFromConfig(cfg config.Config) signoff.Policy {
	pol := signoff.DefaultPolicy()
	pol.CaseInsensitiveEmail = !cfg.CaseSensitiveEmails
	pol.AllowMergeCommits = !cfg.NoMergeExemption
	pol.RequireAuthorMatch = !cfg.NoAuthorMatch
	return pol
}

// CheckRange validates every commit since base (PR mode). When base is
// empty the configured base ref is used, falling back to the repository's
// main branch.
func (r *Runner) CheckRange(ctx context.Context, base string) (signoff.Results, error) {
	if base == "" {
		base = r.cfg.Base
	}
	if base == "" {
		var err error
		base, err = r.resolveMainBranch(ctx)
		if err != nil {
			return nil, err
		}
	}
	if r.cfg.Verbose {
		if branch, err := r.vcs.CurrentBranch(ctx); err == nil {
			r.cfg.Debugf("current branch is %q", branch)
		}
	}
	query := base + "..HEAD"
	r.cfg.Debugf("checking commits in %s", query)
	commits, err := r.vcs.ReadCommits(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.validate(commits)
}

// CheckMessage validates a single raw, not-yet-committed message (hook
// mode). The author identity is read from the repository so author
// matching still applies; if it cannot be read, any well-formed sign-off
// is accepted.
func (r *Runner) CheckMessage(ctx context.Context, rdr io.Reader) (signoff.Results, error) {
	raw, err := io.ReadAll(rdr)
	if err != nil {
		return nil, err
	}
	commit := parseMessage(string(raw))
	if name, email, err := r.vcs.AuthorIdent(ctx); err != nil {
		r.cfg.Debugf("could not read author ident, skipping author match: %v", err)
	} else {
		commit.Author = name
		commit.AuthorEmail = email
	}
	return r.validate([]*model.Commit{commit})
}

// CheckSubjects validates message bodies passed directly on the command
// line. There is no recorded author to match against.
func (r *Runner) CheckSubjects(ctx context.Context, msgs []string) (signoff.Results, error) {
	commits := make([]*model.Commit, 0, len(msgs))
	for _, msg := range msgs {
		commits = append(commits, parseMessage(msg))
	}
	return r.validate(commits)
}

func (r *Runner) validate(commits []*model.Commit) (signoff.Results, error) {
	results, err := signoff.Validate(commits, r.policy)
	if err != nil {
		return nil, err
	}

	// results are ordered one-to-one with commits, so pair by index;
	// commits built from raw messages have no ID to look up.
	var failures []FailureEntry
	for i, res := range results {
		if res.Passed {
			continue
		}
		failures = append(failures, FailureEntry{
			commitID:    res.CommitID,
			commitTitle: commits[i].Subject,
			reason:      res.Reason,
		})
	}
	if len(failures) > 0 {
		return results, CheckFailure{Failures: failures}
	}
	return results, nil
}

func (r *Runner) resolveMainBranch(ctx context.Context) (string, error) {
	if r.mainBranch != "" {
		return r.mainBranch, nil
	}
	branches := r.cfg.Branches
	if r.cfg.InCI && !r.cfg.BranchesSet {
		branches = nil
	}
	mainBranch, err := r.vcs.GetMainBranch(ctx, branches)
	if err != nil {
		r.cfg.Printf("Get remote failed, falling back to defaults: %v", r.cfg.Branches)
		mainBranch, err = r.vcs.GetMainBranch(ctx, r.cfg.Branches)
		if err != nil {
			return "", err
		}
	}
	r.mainBranch = mainBranch
	r.cfg.Debugf("Main branch is %q", mainBranch)
	return mainBranch, nil
}

// parseMessage reads one raw commit message, stripping comment lines the
// way git does before committing. The subject is the first non-comment,
// non-blank line; a template-only message yields an empty commit.
func parseMessage(s string) *model.Commit {
	var cleaned []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		cleaned = append(cleaned, line)
	}
	for len(cleaned) > 0 && strings.TrimSpace(cleaned[0]) == "" {
		cleaned = cleaned[1:]
	}
	if len(cleaned) == 0 {
		return &model.Commit{}
	}
	body := strings.TrimSpace(strings.Join(cleaned[1:], "\n"))
	return &model.Commit{Subject: cleaned[0], Body: body}
}
