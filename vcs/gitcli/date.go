package gitcli

import "time"

// gitISO8601 is the layout of the %ai/%ci dates in git log output, e.g.
// "2025-08-27 09:15:02 +0200".
const gitISO8601 = "2006-01-02 15:04:05 -0700"

// ParseGitISO8601 parses an author or committer date as emitted by git log.
func ParseGitISO8601(s string) (time.Time, error) {
	return time.Parse(gitISO8601, s)
}
