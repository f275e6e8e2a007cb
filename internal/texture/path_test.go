package texture

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scenery/internal/logging"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{".", ""},
		{"textures/brick.png", "textures/brick.png"},
		{`textures\brick.png`, "textures/brick.png"},
		{`C:\Users\artist\textures\brick.png`, "/Users/artist/textures/brick.png"},
		{`d:relative\brick.png`, "relative/brick.png"},
		{"a/./b/../c.png", "a/c.png"},
		{"a//b.png", "a/b.png"},
		{"../shared/tex.png", "../shared/tex.png"},
	}
	for _, tt := range tests {
		got := NormalizePath(tt.raw)
		if got != filepath.FromSlash(tt.want) {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.raw, got, filepath.FromSlash(tt.want))
		}
	}
}

func TestCandidatesLongestSuffixFirst(t *testing.T) {
	got := Candidates("/assets", filepath.FromSlash("/home/art/tex/a.png"))
	want := []string{
		"/assets/home/art/tex/a.png",
		"/assets/art/tex/a.png",
		"/assets/tex/a.png",
		"/assets/a.png",
	}
	if len(got) != len(want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != filepath.FromSlash(want[i]) {
			t.Errorf("candidate %d = %q, want %q", i, got[i], filepath.FromSlash(want[i]))
		}
	}
}

func TestCandidatesSkipParentElements(t *testing.T) {
	got := Candidates("base", filepath.FromSlash("../x/y.png"))
	if len(got) != 2 || got[0] != filepath.Join("base", "x", "y.png") || got[1] != filepath.Join("base", "y.png") {
		t.Errorf("Candidates = %v", got)
	}
}

func TestResolveMissing(t *testing.T) {
	if _, err := Resolve(t.TempDir(), "nope/missing.png"); err != ErrNotFound {
		t.Errorf("Resolve error = %v, want ErrNotFound", err)
	}
}

func TestResolveLogsCandidates(t *testing.T) {
	var buf bytes.Buffer
	logging.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { logging.SetLogger(nil) })

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "b.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Resolve(dir, filepath.FromSlash("a/b.png"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if filepath.Base(got) != "b.png" {
		t.Errorf("Resolve = %q", got)
	}
	for _, want := range []string{filepath.Join(dir, "a", "b.png"), filepath.Join(dir, "b.png")} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing candidate %q:\n%s", want, buf.String())
		}
	}
}

func TestCandidatesEmptyDirIsRelative(t *testing.T) {
	got := Candidates("", filepath.FromSlash("a/b.png"))
	if len(got) != 2 || got[0] != filepath.Join("a", "b.png") || got[1] != "b.png" {
		t.Errorf("Candidates = %v", got)
	}
}
