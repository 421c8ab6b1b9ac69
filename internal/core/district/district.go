// Package district canonicalizes district names so feed spellings and user
// input land on the same index key.
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD decomposition so diacritics become combining marks
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Width fold fullwidth to ASCII
// 6 NFC recomposition of whatever survives
// 7 Collapse whitespace and separators to single spaces and trim
package district

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		// NFKD first: precomposed letters must split into base + mark
		// before the Mn removal can see the mark
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
			norm.NFC,
		)
	},
}

// Canon returns the canonical index form of a district name.
// "Mitte", " mitte ", "MITTE" and "Mítte" all map to the same key.
// Empty input canonicalizes to the empty string
func Canon(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return collapseSeparators(ns)
}

// collapseSeparators folds runs of whitespace, hyphens and slashes into a
// single space so "Prenzlauer  Berg" and "Prenzlauer-Berg" agree
func collapseSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' || r == '/' {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
