package runner

import (
	"bufio"
	"fmt"
	"io"
)

// CheckFailure aggregates per-commit validation failures. It is the error
// returned when any commit in a run fails; callers render it with
// WriteFailure and set a nonzero exit code.
type CheckFailure struct {
	Failures []FailureEntry
}

type FailureEntry struct {
	commitID    string
	commitTitle string
	reason      string
}

func (cf CheckFailure) Error() string {
	return fmt.Sprintf("%d commit(s) failed validation", len(cf.Failures))
}

func (cf CheckFailure) Is(other error) bool {
	_, ok := other.(CheckFailure)
	return ok
}

// WriteFailure renders the failures grouped per commit.
func (cf CheckFailure) WriteFailure(w io.Writer) error {
	if len(cf.Failures) == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)

	type group struct {
		title   string
		reasons []string
	}
	var order []string
	groups := make(map[string]*group)
	for _, failure := range cf.Failures {
		key := failure.commitID
		if key == "" {
			key = failure.commitTitle
		}
		g, ok := groups[key]
		if !ok {
			g = &group{title: failure.commitTitle}
			if g.title == "" {
				g.title = shortID(failure.commitID)
			} else if failure.commitID != "" {
				g.title = fmt.Sprintf("%s %s", shortID(failure.commitID), failure.commitTitle)
			}
			groups[key] = g
			order = append(order, key)
		}
		g.reasons = append(g.reasons, failure.reason)
	}

	for _, key := range order {
		g := groups[key]
		bw.WriteString(g.title)
		bw.WriteString("\n")
		for _, reason := range g.reasons {
			bw.WriteString("  ")
			bw.WriteString(reason)
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}

func shortID(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}
