package sentiment

import (
	"strings"
	"unicode"
)

// lexicon assigns signed weights to sentiment-bearing tokens, AFINN style.
// Weights are tuned so a typical short post sums to roughly [-5, 5]; the
// normalizer divides by 5 to land in [-1, 1].
var lexicon = map[string]int{
	"bullish":     3,
	"moon":        3,
	"amazing":     4,
	"good":        3,
	"best":        3,
	"strong":      2,
	"confident":   2,
	"positive":    2,
	"promising":   2,
	"profits":     2,
	"growing":     2,
	"growth":      2,
	"support":     2,
	"adoption":    2,
	"expanding":   1,
	"big":         1,
	"breaking":    1,

	"bearish":      -3,
	"manipulation": -3,
	"ridiculous":   -3,
	"fears":        -2,
	"drops":        -2,
	"dump":         -2,
	"crash":        -3,
	"selling":      -1,
	"dip":          -1,
	"off":          -1,
}

const normalizeDivisor = 5

// Score runs the lexical scorer over text and returns the raw signed sum of
// matched token weights. Deterministic for a given text.
func Score(text string) int {
	raw := 0
	for _, token := range tokenize(text) {
		raw += lexicon[token]
	}
	return raw
}

// Normalize maps a raw lexical score into [-1, 1] with 0 meaning neutral.
func Normalize(raw int) float64 {
	return clamp(float64(raw)/normalizeDivisor, -1, 1)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
