// Package gitcli implements vcs.Interface using the git commandline tool.
package gitcli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/spinedocs/cichecks/config"
	"github.com/spinedocs/cichecks/model"
	"github.com/spinedocs/cichecks/vcs"
)

// Git implements vcs.Interface using the git commandline tool.
type Git struct {
	cfg config.Config
	wd  string
}

func New(cfg config.Config, wd string) *Git {
	return &Git{
		cfg: cfg,
		wd:  wd,
	}
}

const expectedLogParts = 10

// ReadCommits reads the commits selected by query in chronological order.
// Parents are included so merge commits can be detected structurally.
func (g *Git) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	args := []string{
		"log", "--reverse",
		"--pretty=tformat:_START_%H_SEP_%P_SEP_%aN_SEP_%ae_SEP_%ai_SEP_%cN_SEP_%ce_SEP_%ci_SEP_%s_SEP_%b_END_",
		query,
	}
	b, err := g.call(ctx, args)
	if err != nil {
		return nil, err
	}

	var commits []*model.Commit
	scanner := bufio.NewScanner(bytes.NewBuffer(b))
	for scanner.Scan() {
		s := scanner.Text()
		parts := strings.Split(s, "_SEP_")
		if len(parts) != expectedLogParts {
			return nil, fmt.Errorf("gitcli: expected %d parts from git log, got %d", expectedLogParts, len(parts))
		}

		commitID := parts[0]
		if !strings.HasPrefix(commitID, "_START_") {
			return nil, fmt.Errorf("gitcli: unexpected git log line: %q", s)
		}
		commitID = strings.TrimPrefix(commitID, "_START_")

		// body can be multiple lines.
		var body string
		bodypart := parts[len(parts)-1]
		if strings.HasSuffix(bodypart, "_END_") {
			body = strings.TrimSuffix(bodypart, "_END_")
		} else {
			var bodyb strings.Builder
			bodyb.WriteString(bodypart)
			bodyb.WriteString("\n")
			for scanner.Scan() {
				bodyline := scanner.Text()
				if strings.HasSuffix(bodyline, "_END_") {
					if trimmed := strings.TrimSpace(strings.TrimSuffix(bodyline, "_END_")); trimmed != "" {
						bodyb.WriteString(trimmed)
					}
					break
				}
				bodyb.WriteString(bodyline)
				bodyb.WriteString("\n")
			}
			body = bodyb.String()
		}

		authorDate, err := ParseGitISO8601(parts[4])
		if err != nil {
			return nil, err
		}
		committerDate, err := ParseGitISO8601(parts[7])
		if err != nil {
			return nil, err
		}

		commits = append(commits, &model.Commit{
			ID:             commitID,
			Parents:        strings.Fields(parts[1]),
			Author:         parts[2],
			AuthorEmail:    parts[3],
			AuthorDate:     authorDate,
			Committer:      parts[5],
			CommitterEmail: parts[6],
			CommitterDate:  committerDate,
			Subject:        parts[8],
			Body:           body,
		})
	}
	return commits, nil
}

func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	b, err := g.call(ctx, []string{"rev-parse", "--abbrev-ref", "HEAD"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// GetMainBranch resolves the repository's main branch, preferring the
// remote HEAD and falling back to the first candidate branch that exists.
func (g *Git) GetMainBranch(ctx context.Context, candidates []string) (string, error) {
	if b, err := g.call(ctx, []string{"symbolic-ref", "--short", "refs/remotes/origin/HEAD"}); err == nil {
		ref := strings.TrimSpace(string(b))
		return strings.TrimPrefix(ref, "origin/"), nil
	}
	for _, cand := range candidates {
		if _, err := g.call(ctx, []string{"rev-parse", "--verify", "--quiet", "refs/heads/" + cand}); err == nil {
			return cand, nil
		}
	}
	return "", vcs.NotFoundError{Ref: strings.Join(candidates, ", ")}
}

// AuthorIdent reads the identity a commit made right now would record, via
// "git var GIT_AUTHOR_IDENT" (e.g. "Jane Doe <jane@example.com> 1600000000
// -0700").
func (g *Git) AuthorIdent(ctx context.Context) (string, string, error) {
	b, err := g.call(ctx, []string{"var", "GIT_AUTHOR_IDENT"})
	if err != nil {
		return "", "", err
	}
	return parseIdent(strings.TrimSpace(string(b)))
}

func parseIdent(s string) (string, string, error) {
	start := strings.Index(s, "<")
	end := strings.Index(s, ">")
	if start < 0 || end < start {
		return "", "", fmt.Errorf("gitcli: malformed ident %q", s)
	}
	name := strings.TrimSpace(s[:start])
	email := s[start+1 : end]
	return name, email, nil
}
