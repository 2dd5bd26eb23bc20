// Package textclean tidies user submitted text before it is polished or scored.
// Pipeline order
// 1 drop invalid UTF-8
// 2 drop control characters except tab and newline (CR is folded first)
// 3 drop format characters (zero width, BOM, bidi marks)
// 4 NFC composition
// 5 trim trailing spaces per line, cap blank line runs at one, trim the ends
//
// Width and case are kept: the text is shown back to the user.
package textclean

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.Predicate(isControl)),
			runes.Remove(runes.In(unicode.Cf)),
			norm.NFC,
		)
	},
}

func isControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t'
}

// Clean returns the tidied form of s
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		out = s
	}
	return tidyLines(out)
}

func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	blank := false
	for _, l := range lines {
		l = strings.TrimRightFunc(l, unicode.IsSpace)
		if l == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		kept = append(kept, l)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
