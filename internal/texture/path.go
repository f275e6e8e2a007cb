package texture

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"scenery/internal/logging"
)

// NormalizePath converts an imported path to the host convention: backslashes
// become slashes, a leading drive letter is dropped, "." and ".." elements are
// collapsed, and the result uses the host separator. An empty or blank input
// yields "".
func NormalizePath(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, `\`, "/")
	if hasDriveLetter(p) {
		p = p[2:]
	}
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." {
		return ""
	}
	return filepath.FromSlash(p)
}

func hasDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Candidates lists the paths tried for a normalized path under dir, longest
// suffix first: dir/a/b/c.png, dir/b/c.png, dir/c.png.
func Candidates(dir, normalized string) []string {
	var parts []string
	for _, part := range strings.Split(filepath.ToSlash(normalized), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		parts = append(parts, part)
	}
	out := make([]string, 0, len(parts))
	for i := range parts {
		out = append(out, filepath.Join(append([]string{dir}, parts[i:]...)...))
	}
	return out
}

// Resolve returns the absolute path of the first candidate that exists as a
// regular file, or ErrNotFound. An empty dir searches relative to the working
// directory.
func Resolve(dir, normalized string) (string, error) {
	log := logging.Logger()
	for _, candidate := range Candidates(dir, normalized) {
		log.Debug("texture candidate", "path", candidate)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return "", err
		}
		return filepath.Clean(abs), nil
	}
	return "", ErrNotFound
}
