package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinedocs/cichecks/config"
	"github.com/spinedocs/cichecks/model"
	"github.com/spinedocs/cichecks/signoff"
	"github.com/spinedocs/cichecks/vcs"
)

func newTestConfig(overrides *config.Config, out, errOut *bytes.Buffer) config.Config {
	tio := config.TerminalIO{Stdin: strings.NewReader(""), Stdout: out, Stderr: errOut}
	return config.NewWithTerminalIO(overrides, &tio)
}

func TestCheckRange(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cfg := newTestConfig(nil, out, errOut)
	m := vcs.NewMock().SetCommits(
		&model.Commit{
			ID:          "aaaa0000aaaa0000",
			Author:      "Jane Doe",
			AuthorEmail: "jane@example.com",
			Subject:     "fix: cool fix",
			Body:        "Signed-off-by: Jane Doe <jane@example.com>",
		},
		&model.Commit{
			ID:          "bbbb0000bbbb0000",
			Author:      "Jane Doe",
			AuthorEmail: "jane@example.com",
			Subject:     "Merge branch 'feature' into main",
			Parents:     []string{"aaaa0000aaaa0000", "cccc0000cccc0000"},
		},
	)
	r := New(cfg, m)

	results, err := r.CheckRange(context.Background(), "origin/main")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results.OK())
}

func TestCheckRangeFailure(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cfg := newTestConfig(nil, out, errOut)
	m := vcs.NewMock().SetCommits(
		&model.Commit{
			ID:          "aaaa0000aaaa0000",
			Author:      "Jane Doe",
			AuthorEmail: "jane@example.com",
			Subject:     "fix: cool fix",
		},
	)
	r := New(cfg, m)

	results, err := r.CheckRange(context.Background(), "origin/main")
	require.Error(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)

	cf := CheckFailure{}
	require.True(t, errors.As(err, &cf))
	require.Len(t, cf.Failures, 1)

	b := &bytes.Buffer{}
	require.NoError(t, cf.WriteFailure(b))
	assert.Contains(t, b.String(), "aaaa0000 fix: cool fix")
	assert.Contains(t, b.String(), signoff.ReasonNoSignoff)
}

func TestCheckRangeEmpty(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cfg := newTestConfig(nil, out, errOut)
	r := New(cfg, vcs.NewMock())

	_, err := r.CheckRange(context.Background(), "origin/main")
	require.ErrorIs(t, err, signoff.ErrNoCommits)
}

func TestCheckRangeResolvesBase(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cfg := newTestConfig(&config.Config{Verbose: true}, out, errOut)
	m := vcs.NewMock().SetMainBranch("trunk").SetCommits(
		&model.Commit{
			ID:          "aaaa0000aaaa0000",
			Author:      "Jane Doe",
			AuthorEmail: "jane@example.com",
			Subject:     "fix: cool fix",
			Body:        "Signed-off-by: Jane Doe <jane@example.com>",
		},
	)
	r := New(cfg, m)

	_, err := r.CheckRange(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "trunk")
}

func TestCheckMessage(t *testing.T) {
	tcs := []struct {
		name      string
		message   string
		ident     [2]string
		identErr  error
		expectOK  bool
	}{
		{
			name:     "signed matching author",
			message:  "Fix bug\n\nSigned-off-by: Jane Doe <jane@example.com>",
			ident:    [2]string{"Jane Doe", "jane@example.com"},
			expectOK: true,
		},
		{
			name:     "signed by someone else",
			message:  "Fix bug\n\nSigned-off-by: John Roe <john@example.com>",
			ident:    [2]string{"Jane Doe", "jane@example.com"},
			expectOK: false,
		},
		{
			name:     "unsigned",
			message:  "Fix bug",
			ident:    [2]string{"Jane Doe", "jane@example.com"},
			expectOK: false,
		},
		{
			name:     "ident unavailable degrades to well-formedness",
			message:  "Fix bug\n\nSigned-off-by: John Roe <john@example.com>",
			identErr: errors.New("no ident"),
			expectOK: true,
		},
		{
			name:     "comment lines are stripped",
			message:  "Fix bug\n# Signed-off-by: Jane Doe <jane@example.com>\n",
			ident:    [2]string{"Jane Doe", "jane@example.com"},
			expectOK: false,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
			cfg := newTestConfig(nil, out, errOut)
			m := vcs.NewMock().SetAuthorIdent(tc.ident[0], tc.ident[1])
			if tc.identErr != nil {
				m.SetAuthorIdentErr(tc.identErr)
			}
			r := New(cfg, m)

			results, err := r.CheckMessage(context.Background(), strings.NewReader(tc.message))
			if tc.expectOK {
				require.NoError(t, err)
				assert.True(t, results.OK())
			} else {
				require.Error(t, err)
				assert.False(t, results.OK())
			}
		})
	}
}

func TestCheckSubjects(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cfg := newTestConfig(nil, out, errOut)
	r := New(cfg, vcs.NewMock())

	results, err := r.CheckSubjects(context.Background(), []string{
		"Fix bug\n\nSigned-off-by: John Roe <john@example.com>",
	})
	require.NoError(t, err)
	assert.True(t, results.OK())

	_, err = r.CheckSubjects(context.Background(), []string{"Fix bug"})
	require.Error(t, err)
}

func TestCheckSubjectsFailureAttribution(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cfg := newTestConfig(nil, out, errOut)
	r := New(cfg, vcs.NewMock())

	results, err := r.CheckSubjects(context.Background(), []string{
		"unsigned change A",
		"other change B\n\nSigned-off-by: John Roe <john@example.com>",
	})
	require.Error(t, err)
	require.Len(t, results, 2)
	assert.False(t, results[0].Passed)
	assert.True(t, results[1].Passed)

	cf := CheckFailure{}
	require.True(t, errors.As(err, &cf))
	require.Len(t, cf.Failures, 1)

	b := &bytes.Buffer{}
	require.NoError(t, cf.WriteFailure(b))
	assert.Contains(t, b.String(), "unsigned change A")
	assert.NotContains(t, b.String(), "other change B")
}

func TestParseMessage(t *testing.T) {
	tcs := []struct {
		name    string
		message string
		subject string
		body    string
	}{
		{
			name:    "subject and body",
			message: "Fix bug\n\nSigned-off-by: Jane Doe <jane@example.com>\n",
			subject: "Fix bug",
			body:    "Signed-off-by: Jane Doe <jane@example.com>",
		},
		{
			name:    "subject only",
			message: "Fix bug",
			subject: "Fix bug",
		},
		{
			name:    "comment before subject",
			message: "# Please enter the commit message for your changes.\nFix bug\n\nSigned-off-by: Jane Doe <jane@example.com>\n",
			subject: "Fix bug",
			body:    "Signed-off-by: Jane Doe <jane@example.com>",
		},
		{
			name:    "template-only message",
			message: "# Please enter the commit message for your changes.\n# Lines starting with '#' will be ignored.\n",
			subject: "",
		},
		{
			name:    "comment in body",
			message: "Fix bug\n# Signed-off-by: Jane Doe <jane@example.com>\n",
			subject: "Fix bug",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			c := parseMessage(tc.message)
			assert.Equal(t, tc.subject, c.Subject)
			assert.Equal(t, tc.body, c.Body)
		})
	}
}

func TestPolicyFromConfig(t *testing.T) {
	pol := PolicyFromConfig(config.New(nil))
	assert.Equal(t, signoff.DefaultPolicy(), pol)

	pol = PolicyFromConfig(config.New(&config.Config{
		CaseSensitiveEmails: true,
		NoMergeExemption:    true,
		NoAuthorMatch:       true,
	}))
	assert.Equal(t, signoff.Policy{}, pol)
}
