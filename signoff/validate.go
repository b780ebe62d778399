package signoff

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/text/cases"

	"github.com/spinedocs/cichecks/model"
)

// ErrNoCommits is returned when Validate is called with nothing to check.
// An empty range is a configuration anomaly the caller must handle
// explicitly rather than report as a passing run.
var ErrNoCommits = errors.New("signoff: no commits to validate")

// ReasonNoSignoff is the failure reason for commits with zero valid
// trailers.
const ReasonNoSignoff = "no DCO sign-off found"

// mergeSubjectRE is the fallback merge-commit heuristic for commits whose
// parents are unknown (messages not yet committed).
var mergeSubjectRE = regexp.MustCompile(`^Merge (branch|pull request|remote-tracking branch|tag) `)

// Validate checks every commit for a valid sign-off under pol. It returns
// exactly one Result per input commit, in input order, and never fails on
// malformed messages: a garbled or empty message simply has zero trailers.
//
// Merge-commit exemption is checked first and short-circuits, so an exempt
// merge commit passes without any trailer scan.
func Validate(commits []*model.Commit, pol Policy) (Results, error) {
	if len(commits) == 0 {
		return nil, ErrNoCommits
	}
	results := make(Results, 0, len(commits))
	for _, c := range commits {
		results = append(results, validateCommit(c, pol))
	}
	return results, nil
}

func validateCommit(c *model.Commit, pol Policy) Result {
	res := Result{CommitID: c.ID}
	if pol.AllowMergeCommits && isMergeCommit(c) {
		res.Passed = true
		return res
	}

	trailers := ParseTrailers(c.Message())
	if len(trailers) == 0 {
		res.Reason = ReasonNoSignoff
		return res
	}

	// With no recorded author identity (raw messages, commit-msg hooks
	// without git context) there is nothing to match against, so any
	// well-formed trailer is enough.
	if !pol.RequireAuthorMatch || (c.Author == "" && c.AuthorEmail == "") {
		res.Passed = true
		return res
	}

	for _, tr := range trailers {
		if pol.matches(tr, c.Author, c.AuthorEmail) {
			res.Passed = true
			return res
		}
	}
	res.Reason = fmt.Sprintf("sign-off does not match commit author %s <%s> (found %s)",
		c.Author, c.AuthorEmail, trailerList(trailers))
	return res
}

func isMergeCommit(c *model.Commit) bool {
	if len(c.Parents) > 0 {
		return c.IsMerge()
	}
	return mergeSubjectRE.MatchString(c.Subject)
}

func (p Policy) matches(tr Trailer, name, email string) bool {
	if tr.Name != name {
		return false
	}
	if p.CaseInsensitiveEmail {
		// cases.Caser carries state, so don't share one between calls.
		fold := cases.Fold()
		return fold.String(tr.Email) == fold.String(email)
	}
	return tr.Email == email
}

func trailerList(trailers []Trailer) string {
	s := ""
	for i, tr := range trailers {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s <%s>", tr.Name, tr.Email)
	}
	return s
}
