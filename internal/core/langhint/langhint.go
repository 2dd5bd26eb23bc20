// Package langhint guesses the dominant script of a text and, when the script
// is decisive, its language
package langhint

import "unicode"

// minLetters is the letter count below which no language is guessed
const minLetters = 8

type script struct {
	name  string
	table *unicode.RangeTable
	// lang is set when the script alone is decisive
	lang string
}

// order matters: kana before Han so Japanese text is not read as Chinese,
// Latin last so any other script wins a tie
var scripts = []script{
	{"Hiragana", unicode.Hiragana, "ja"},
	{"Katakana", unicode.Katakana, "ja"},
	{"Hangul", unicode.Hangul, "ko"},
	{"Han", unicode.Han, ""},
	{"Arabic", unicode.Arabic, "ar"},
	{"Hebrew", unicode.Hebrew, "he"},
	{"Thai", unicode.Thai, "th"},
	{"Greek", unicode.Greek, "el"},
	{"Cyrillic", unicode.Cyrillic, ""},
	{"Devanagari", unicode.Devanagari, ""},
	{"Latin", unicode.Latin, ""},
}

// Hint is the detection result. Empty strings mean unknown.
type Hint struct {
	Script string `json:"script"`
	Lang   string `json:"language"`
}

// Detect returns the predominant script and a best-effort BCP-47 code.
// Han text without kana is reported as "zh"; Latin and Cyrillic stay unset.
func Detect(s string) Hint {
	counts := make([]int, len(scripts))
	letters := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		for i, sc := range scripts {
			if unicode.Is(sc.table, r) {
				counts[i]++
				break
			}
		}
	}

	best := -1
	for i, c := range counts {
		if c > 0 && (best < 0 || c > counts[best]) {
			best = i
		}
	}
	if best < 0 {
		return Hint{}
	}
	h := Hint{Script: scripts[best].name}
	if letters < minLetters {
		return h
	}

	kana := counts[0] + counts[1]
	switch {
	case kana > 0:
		h.Lang = "ja"
	case scripts[best].name == "Han":
		h.Lang = "zh"
	default:
		h.Lang = scripts[best].lang
	}
	return h
}
