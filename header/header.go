// Package header checks for and inserts SPDX license headers in source
// files.
package header

import (
	"os"
	"strings"
)

// Config describes the required header block.
type Config struct {
	// Lines must each appear somewhere within the first SearchLimit lines
	// of the file. Comment leaders are not stripped, so a required line of
	// "SPDX-License-Identifier: Apache-2.0" matches both "#" and "//"
	// style headers.
	Lines []string
	// SearchLimit is how many leading lines are searched.
	SearchLimit int
	// CommentPrefix is prepended to inserted lines by Fix.
	CommentPrefix string
}

// Check reports whether content carries every required header line within
// the search window.
func Check(content string, cfg Config) bool {
	window := strings.Join(firstLines(content, cfg.SearchLimit), "\n")
	for _, line := range cfg.Lines {
		if !strings.Contains(window, line) {
			return false
		}
	}
	return true
}

// Fix inserts the missing header block at the top of content, after a
// shebang line when one is present. It returns the new content and whether
// anything changed.
func Fix(content string, cfg Config) (string, bool) {
	if Check(content, cfg) {
		return content, false
	}

	prefix := cfg.CommentPrefix
	if prefix == "" {
		prefix = "# "
	}
	block := make([]string, 0, len(cfg.Lines)+1)
	for _, line := range cfg.Lines {
		block = append(block, prefix+line)
	}
	block = append(block, "")

	lines := strings.Split(content, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "#!") {
		fixed := append([]string{lines[0]}, block...)
		fixed = append(fixed, lines[1:]...)
		return strings.Join(fixed, "\n"), true
	}
	return strings.Join(block, "\n") + "\n" + content, true
}

// CheckFile reports whether the file at path carries the required headers.
func CheckFile(path string, cfg Config) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return Check(string(b), cfg), nil
}

// FixFile rewrites the file at path with the headers inserted, reporting
// whether it was modified.
func FixFile(path string, cfg Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	fixed, changed := Fix(string(b), cfg)
	if !changed {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(fixed), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

func firstLines(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
