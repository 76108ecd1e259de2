package syncname

import (
	"maps"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
)

// instanceNameReplacements maps characters that are legal in file names but
// reserved in instance names to the character they are synced as.
var instanceNameReplacements = map[rune]rune{
	'@': '|',
}

var instanceNameMapper = runes.Map(func(r rune) rune {
	if replacement, ok := instanceNameReplacements[r]; ok {
		return replacement
	}
	return r
})

// InstanceNameReplacements returns a copy of the character table used by SanitizeInstanceName.
func InstanceNameReplacements() map[rune]rune {
	return maps.Clone(instanceNameReplacements)
}

// SanitizeInstanceName converts a file or directory name into a valid instance name.
// Each reserved character is replaced by its counterpart in InstanceNameReplacements
// and all other characters are kept, so "test@script" becomes "test|script".
// Bytes that are not valid UTF-8 are kept as they are.
func SanitizeInstanceName(name string) string {
	if utf8.ValidString(name) {
		return instanceNameMapper.String(name)
	}
	var b strings.Builder
	b.Grow(len(name))
	for name != "" {
		n := validPrefixLen(name)
		b.WriteString(instanceNameMapper.String(name[:n]))
		name = name[n:]
		for name != "" && !startsWithValidRune(name) {
			b.WriteByte(name[0])
			name = name[1:]
		}
	}
	return b.String()
}

func validPrefixLen(s string) int {
	n := 0
	for n < len(s) && startsWithValidRune(s[n:]) {
		_, size := utf8.DecodeRuneInString(s[n:])
		n += size
	}
	return n
}

func startsWithValidRune(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError || size != 1
}
