package vcs

import (
	"context"
	"time"

	"github.com/blang/semver/v4"

	"github.com/spinedocs/cichecks/model"
)

// Mock implements Interface for tests.
type Mock struct {
	t           time.Time
	commits     []*model.Commit
	branch      string
	mainBranch  string
	identName   string
	identEmail  string
	identErr    error
	version     semver.Version
	readErr     error
}

func NewMock() *Mock {
	return &Mock{
		t:          time.Now(),
		branch:     "main",
		mainBranch: "main",
		version:    semver.Version{Major: 2, Minor: 40},
	}
}

func (m *Mock) SetCommits(commits ...*model.Commit) *Mock {
	finalCommits := make([]*model.Commit, len(commits))
	for i, commit := range commits {
		c := *commit
		if c.CommitterDate.IsZero() {
			c.CommitterDate = m.t
			m.t = m.t.Add(-time.Minute)
		}
		finalCommits[i] = &c
	}
	m.commits = finalCommits
	return m
}

func (m *Mock) SetBranch(branch string) *Mock {
	m.branch = branch
	return m
}

func (m *Mock) SetMainBranch(branch string) *Mock {
	m.mainBranch = branch
	return m
}

func (m *Mock) SetAuthorIdent(name, email string) *Mock {
	m.identName = name
	m.identEmail = email
	return m
}

func (m *Mock) SetAuthorIdentErr(err error) *Mock {
	m.identErr = err
	return m
}

func (m *Mock) SetReadErr(err error) *Mock {
	m.readErr = err
	return m
}

func (m *Mock) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.commits, nil
}

func (m *Mock) CurrentBranch(ctx context.Context) (string, error) {
	return m.branch, nil
}

func (m *Mock) GetMainBranch(ctx context.Context, candidates []string) (string, error) {
	return m.mainBranch, nil
}

func (m *Mock) AuthorIdent(ctx context.Context) (string, string, error) {
	if m.identErr != nil {
		return "", "", m.identErr
	}
	return m.identName, m.identEmail, nil
}

func (m *Mock) Version(ctx context.Context) (semver.Version, error) {
	return m.version, nil
}
