package syncname

import (
	"strings"
	"unicode/utf8"
)

// MatchTrailing reports whether input ends with suffix and, if so, returns the
// portion of input before the suffix.
//
// The comparison is byte-for-byte. An empty suffix always matches. A suffix that
// starts in the middle of a UTF-8 sequence never matches, so the returned prefix
// never ends with a partial character.
func MatchTrailing(input, suffix string) (prefix string, ok bool) {
	if !strings.HasSuffix(input, suffix) {
		return "", false
	}
	if suffix != "" && !utf8.RuneStart(suffix[0]) {
		return "", false
	}
	return input[:len(input)-len(suffix)], true
}
