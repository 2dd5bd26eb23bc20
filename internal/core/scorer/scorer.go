// Package scorer estimates how machine-written a text looks from three
// explainable signals: discourse markers, sentence length uniformity and
// list-like structure
package scorer

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"textpolish/internal/core/markers"
)

// Confidence buckets the combined probability
type Confidence string

const (
	// ConfidenceLow is below 0.3
	ConfidenceLow Confidence = "low"
	// ConfidenceMedium is [0.3, 0.6)
	ConfidenceMedium Confidence = "medium"
	// ConfidenceHigh is 0.6 and above
	ConfidenceHigh Confidence = "high"
)

const (
	patternNorm   = 3.0
	structureNorm = 2.0
	lowCut        = 0.3
	highCut       = 0.6
)

// Signals are the three sub-scores, each in [0,1]
type Signals struct {
	Pattern    float64 `json:"pattern_score"`
	Complexity float64 `json:"complexity_score"`
	Structure  float64 `json:"structure_score"`
}

// Mean is the unweighted mean clamped to [0,1]
func (s Signals) Mean() float64 {
	return clamp01((s.Pattern + s.Complexity + s.Structure) / 3)
}

// Result is one scoring of a text
type Result struct {
	Probability float64
	Confidence  Confidence
	Signals     Signals
	// Matched lists the discourse and structure marker ids that fired, sorted
	Matched   []string
	Sentences int
}

// Scorer is safe for concurrent use; it holds only the compiled pack
type Scorer struct {
	pack *markers.Pack
}

// New returns a Scorer over p, or over the embedded pack when p is nil
func New(p *markers.Pack) *Scorer {
	if p == nil {
		p = markers.MustLoad()
	}
	return &Scorer{pack: p}
}

// Score evaluates text. It is deterministic and never fails.
func (s *Scorer) Score(text string) Result {
	var res Result
	if text == "" {
		res.Confidence = Bucket(0)
		return res
	}

	discourse, hitsD := presence(s.pack.Discourse, text)
	structure, hitsS := presence(s.pack.Structure, text)
	sentences := Sentences(text)

	res.Signals = Signals{
		Pattern:    math.Min(float64(discourse)/patternNorm, 1),
		Complexity: uniformity(sentences),
		Structure:  math.Min(float64(structure)/structureNorm, 1),
	}
	res.Probability = res.Signals.Mean()
	res.Confidence = Bucket(res.Probability)
	res.Sentences = len(sentences)
	res.Matched = append(hitsD, hitsS...)
	sort.Strings(res.Matched)
	return res
}

// Bucket maps a probability to its confidence label
func Bucket(p float64) Confidence {
	switch {
	case p < lowCut:
		return ConfidenceLow
	case p < highCut:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}

// presence counts markers that match at least once
func presence(ms []markers.Marker, text string) (int, []string) {
	var ids []string
	for _, m := range ms {
		if m.Re.MatchString(text) {
			ids = append(ids, m.ID)
		}
	}
	return len(ids), ids
}

// uniformity is max(0, 1 - 2*CV) over sentence rune lengths, where CV is the
// population standard deviation over the mean
func uniformity(sentences []string) float64 {
	if len(sentences) == 0 {
		return 0
	}
	lengths := make([]float64, len(sentences))
	var sum float64
	for i, s := range sentences {
		lengths[i] = float64(utf8.RuneCountInString(s))
		sum += lengths[i]
	}
	mean := sum / float64(len(lengths))
	if mean == 0 {
		return 0
	}
	var sq float64
	for _, l := range lengths {
		sq += (l - mean) * (l - mean)
	}
	cv := math.Sqrt(sq/float64(len(lengths))) / mean
	return clamp01(1 - 2*cv)
}

// Sentences splits on 。！？ always, and on .!? when followed by whitespace or
// the end of text. A "." closing a bare number ("1.") does not split. Pieces
// are trimmed and empties dropped.
func Sentences(text string) []string {
	var out []string
	start := 0
	flush := func(end int) {
		if s := strings.TrimSpace(text[start:end]); s != "" {
			out = append(out, s)
		}
	}
	for i := 0; i < len(text); {
		r, w := utf8.DecodeRuneInString(text[i:])
		next := i + w
		if cut(text, start, i, next, r) {
			flush(i)
			start = next
		}
		i = next
	}
	flush(len(text))
	return out
}

// cut reports whether the terminal r at [i,next) ends a sentence
func cut(text string, start, i, next int, r rune) bool {
	switch r {
	case '。', '！', '？':
		return true
	case '.', '!', '?':
		if next < len(text) {
			nr, _ := utf8.DecodeRuneInString(text[next:])
			if !unicode.IsSpace(nr) {
				return false
			}
		}
		return r != '.' || !bareNumber(text[start:i])
	}
	return false
}

func bareNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
