// Package signoff validates Developer Certificate of Origin sign-off
// trailers on commit messages.
package signoff

// Policy controls how sign-off trailers are matched against commits.
type Policy struct {
	// CaseInsensitiveEmail folds case when comparing trailer emails
	// against the commit author email.
	CaseInsensitiveEmail bool `json:"case_insensitive_email"`
	// AllowMergeCommits exempts merge commits from sign-off entirely.
	AllowMergeCommits bool `json:"allow_merge_commits"`
	// RequireAuthorMatch requires at least one trailer to name the
	// commit's recorded author identity. When false any well-formed
	// trailer is accepted.
	RequireAuthorMatch bool `json:"require_author_match"`
}

// DefaultPolicy returns the documented defaults: case-insensitive email
// comparison, merge commits exempt, and exact author matching required.
func DefaultPolicy() Policy {
	return Policy{
		CaseInsensitiveEmail: true,
		AllowMergeCommits:    true,
		RequireAuthorMatch:   true,
	}
}

// Result is the validation outcome for a single commit. Reason is empty
// when the commit passed.
type Result struct {
	CommitID string `json:"commit"`
	Passed   bool   `json:"passed"`
	Reason   string `json:"reason,omitempty"`
}

type Results []Result

// OK reports whether every result passed.
func (rs Results) OK() bool {
	for _, r := range rs {
		if !r.Passed {
			return false
		}
	}
	return true
}

// Failed returns the subset of results that did not pass, in order.
func (rs Results) Failed() Results {
	var failed Results
	for _, r := range rs {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
