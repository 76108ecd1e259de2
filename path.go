package syncname

import (
	"os"
	"path/filepath"
	"unicode/utf8"
)

// PathExt is the set of name queries available on a path value.
// P is the type returned for the parent path.
type PathExt[P any] interface {
	// HasNameSuffix reports whether the final component of the path ends with suffix.
	// It returns false when the path has no final component or the component is not valid UTF-8.
	HasNameSuffix(suffix string) bool
	// TrimNameSuffix returns the final component of the path with suffix removed.
	TrimNameSuffix(suffix string) (string, error)
	// RequireParent returns the path without its final component.
	RequireParent() (P, error)
}

// Path represents a slash-separated path in the target tree (e.g., "/folder/subfolder/file").
type Path string

var _ PathExt[Path] = Path("")

func (p Path) HasNameSuffix(suffix string) bool {
	return hasNameSuffix(slashSyntax, string(p), suffix)
}

func (p Path) TrimNameSuffix(suffix string) (string, error) {
	return trimNameSuffix(slashSyntax, string(p), suffix)
}

func (p Path) RequireParent() (Path, error) {
	parent, err := requireParent(slashSyntax, string(p))
	return Path(parent), err
}

// LocalPath represents a path on the local filesystem using the separator and
// volume rules of the host OS. It is never resolved against the filesystem.
type LocalPath string

var _ PathExt[LocalPath] = LocalPath("")

func (p LocalPath) HasNameSuffix(suffix string) bool {
	return hasNameSuffix(localSyntax, string(p), suffix)
}

func (p LocalPath) TrimNameSuffix(suffix string) (string, error) {
	return trimNameSuffix(localSyntax, string(p), suffix)
}

func (p LocalPath) RequireParent() (LocalPath, error) {
	parent, err := requireParent(localSyntax, string(p))
	return LocalPath(parent), err
}

func hasNameSuffix(s syntax, p, suffix string) bool {
	c := s.split(p)
	if !c.hasName || !utf8.ValidString(c.name) {
		return false
	}
	_, ok := MatchTrailing(c.name, suffix)
	return ok
}

func trimNameSuffix(s syntax, p, suffix string) (string, error) {
	c := s.split(p)
	if !c.hasName || !utf8.ValidString(c.name) {
		return "", newPathError("trim name suffix", p, ErrNoFileName)
	}
	trimmed, ok := MatchTrailing(c.name, suffix)
	if !ok {
		return "", newSuffixError("trim name suffix", p, suffix)
	}
	return trimmed, nil
}

func requireParent(s syntax, p string) (string, error) {
	c := s.split(p)
	if !c.hasParent {
		return "", newPathError("require parent", p, ErrNoParent)
	}
	return c.parent, nil
}

type syntax struct {
	isSep     func(c byte) bool
	volumeLen func(p string) int
}

var (
	slashSyntax = syntax{
		isSep:     func(c byte) bool { return c == '/' },
		volumeLen: func(string) int { return 0 },
	}
	localSyntax = syntax{
		isSep:     os.IsPathSeparator,
		volumeLen: func(p string) int { return len(filepath.VolumeName(p)) },
	}
)

// components holds the final component of a path and its parent, both as
// substrings of the original path.
type components struct {
	parent    string
	name      string
	hasName   bool
	hasParent bool
}

func (s syntax) split(p string) (c components) {
	vol := s.volumeLen(p)
	rest := p[vol:]
	rooted := rest != "" && s.isSep(rest[0])

	end := s.trimTrailing(rest)
	start := end
	for start > 0 && !s.isSep(rest[start-1]) {
		start--
	}
	if last := rest[start:end]; last != "" && last != "." && last != ".." {
		c.name, c.hasName = last, true
	}
	// Empty, root-only and single relative segment paths have no parent.
	if end == 0 || start == 0 {
		return c
	}

	parentEnd := s.trimTrailing(rest[:start])
	if parentEnd == 0 && rooted {
		parentEnd = 1
	}
	c.parent, c.hasParent = p[:vol+parentEnd], true
	return c
}

// trimTrailing returns the length of p without trailing separators and
// trailing "." components. A leading "." is kept.
func (s syntax) trimTrailing(p string) int {
	end := len(p)
	for {
		for end > 0 && s.isSep(p[end-1]) {
			end--
		}
		start := end
		for start > 0 && !s.isSep(p[start-1]) {
			start--
		}
		if start == 0 || p[start:end] != "." {
			return end
		}
		end = start
	}
}
