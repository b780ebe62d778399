// Package model contains abstract data models.
package model

import (
	"strings"
	"time"
)

// Commit is one commit record as read from version control history. It is
// immutable once read.
type Commit struct {
	ID             string `json:"commit"`
	Author         string
	AuthorEmail    string
	AuthorDate     time.Time
	Committer      string
	CommitterEmail string
	CommitterDate  time.Time
	Subject        string
	Body           string
	Parents        []string
}

func (c *Commit) ShortID() string {
	if len(c.ID) < 8 {
		return c.ID
	}
	return c.ID[:8]
}

// Message returns the full commit message, subject and body, as the single
// block of text trailer scanning operates on.
func (c *Commit) Message() string {
	if c.Body == "" {
		return c.Subject
	}
	return c.Subject + "\n\n" + strings.TrimRight(c.Body, "\n")
}

// IsMerge reports whether the commit has more than one recorded parent.
// Parents are only populated when the commit was read from git; commits
// built from raw message text have none.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}
