package gitcli

import (
	"context"
	"fmt"
	"strings"

	"github.com/blang/semver/v4"
)

// MinVersion is the oldest git the checks are known to work with ("git
// var" and the log pretty-format placeholders in use).
var MinVersion = semver.Version{Major: 2, Minor: 3}

// Version reports the git binary's version.
func (g *Git) Version(ctx context.Context) (semver.Version, error) {
	b, err := g.call(ctx, []string{"version"})
	if err != nil {
		return semver.Version{}, err
	}
	return parseGitVersion(strings.TrimSpace(string(b)))
}

// parseGitVersion extracts a semver version from "git version" output,
// tolerating platform suffixes like "2.39.2 (Apple Git-143)" and
// "2.39.2.windows.1".
func parseGitVersion(s string) (semver.Version, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 || fields[0] != "git" || fields[1] != "version" {
		return semver.Version{}, fmt.Errorf("gitcli: unexpected git version output: %q", s)
	}
	raw := fields[2]
	if parts := strings.SplitN(raw, ".", 4); len(parts) > 3 {
		raw = strings.Join(parts[:3], ".")
	}
	v, err := semver.ParseTolerant(raw)
	if err != nil {
		return semver.Version{}, fmt.Errorf("gitcli: parsing git version %q: %w", raw, err)
	}
	return v, nil
}

// EnsureVersion fails when the installed git is older than MinVersion,
// so CI runs produce a clear diagnostic instead of a confusing log
// parse error.
func (g *Git) EnsureVersion(ctx context.Context) error {
	v, err := g.Version(ctx)
	if err != nil {
		return err
	}
	if v.LT(MinVersion) {
		return fmt.Errorf("gitcli: git %s is older than the minimum supported version %s", v, MinVersion)
	}
	g.cfg.Debugf("git version %s", v)
	return nil
}
