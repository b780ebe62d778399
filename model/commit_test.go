package model

import "testing"

func TestCommit(t *testing.T) {
	cmt := &Commit{ID: "deadbeefdeadbeef"}
	short := cmt.ShortID()
	expect := "deadbeef"
	if short != expect {
		t.Fatal("expected", expect, "got", short)
	}
}

func TestCommitMessage(t *testing.T) {
	cmt := &Commit{Subject: "fix bug", Body: "Signed-off-by: Jane Doe <jane@example.com>\n"}
	expect := "fix bug\n\nSigned-off-by: Jane Doe <jane@example.com>"
	if msg := cmt.Message(); msg != expect {
		t.Fatalf("expected %q, got %q", expect, msg)
	}

	cmt = &Commit{Subject: "fix bug"}
	if msg := cmt.Message(); msg != "fix bug" {
		t.Fatalf("expected %q, got %q", "fix bug", msg)
	}
}

func TestCommitIsMerge(t *testing.T) {
	cmt := &Commit{ID: "deadbeef", Parents: []string{"aaaa", "bbbb"}}
	if !cmt.IsMerge() {
		t.Fatal("expected merge commit")
	}
	cmt = &Commit{ID: "deadbeef", Parents: []string{"aaaa"}}
	if cmt.IsMerge() {
		t.Fatal("expected non-merge commit")
	}
}
