package fraud

import (
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// TextSimilarity returns a [0,1] similarity between two feedback texts using
// Sorensen-Dice over bigrams. Texts are normalized first so trivial
// punctuation or casing edits do not dodge the comparison.
func TextSimilarity(a, b string) float64 {
	na, nb := NormalizeText(a), NormalizeText(b)
	if na == "" || nb == "" {
		return 0
	}
	sd := metrics.NewSorensenDice()
	sd.CaseSensitive = false
	sd.NgramSize = 2
	return strutil.Similarity(na, nb, sd)
}

// MaxSimilarity returns the highest similarity between text and any candidate,
// along with the index of the best match (-1 when candidates is empty).
func MaxSimilarity(text string, candidates []string) (float64, int) {
	best, bestIdx := 0.0, -1
	for i, c := range candidates {
		if s := TextSimilarity(text, c); s > best {
			best, bestIdx = s, i
		}
	}
	return best, bestIdx
}

// NormalizeText lowercases, strips punctuation, and collapses whitespace.
func NormalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}
