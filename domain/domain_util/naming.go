package domain_util

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/unicode/norm"
)

var pinyinArgs = pinyin.NewArgs()

// SafeModelName turns a user-supplied model name into a directory-safe
// identifier: NFKC normalization, CJK transliterated to pinyin, anything
// outside [A-Za-z0-9._-] collapsed to underscores. The result is what the
// training directory and checkpoint file are named after.
func SafeModelName(name string) string {
	name = norm.NFKC.String(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range name {
		if unicode.Is(unicode.Han, r) {
			py := pinyin.SinglePinyin(r, pinyinArgs)
			if len(py) > 0 {
				b.WriteString(py[0])
				continue
			}
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := b.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}
