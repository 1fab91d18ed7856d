package query

import (
	"regexp"
	"strconv"
	"strings"
)

// BufferRatio is the tolerance applied around a single typed price.
const BufferRatio = 0.10

// minBarePrice is the smallest unitless figure read as a price.
const minBarePrice = 100_000

var (
	largeUnitPriceRegexp = regexp.MustCompile(`(?i)` + numberExpr + `\s*(ล้าน|millions?\b)`)
	barePriceRegexp      = regexp.MustCompile(`\b(\d{1,3}(?:,\d{3})+|\d{6,})\b`)
)

// PriceBuffer is a forgiving "around this price" window.
type PriceBuffer struct {
	Target float64
	Min    float64
	Max    float64
}

// Contains reports whether v falls inside the window, bounds included.
func (b PriceBuffer) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// DetectPriceBuffer looks for one price figure ("2.5 ล้าน", "2500000") and
// returns a window of ±BufferRatio around it together with the query minus the
// figure. It serves ranking and suggestions; filtering uses ParsePrice instead.
func DetectPriceBuffer(q string) (PriceBuffer, string, bool) {
	text := strings.Join(strings.Fields(q), " ")

	if m := largeUnitPriceRegexp.FindStringSubmatchIndex(text); m != nil {
		if v, ok := parseAmount(submatch(text, m, 1), submatch(text, m, 2)); ok && v > 0 {
			return newBuffer(v), cut(text, m[0], m[1]), true
		}
	}

	for _, m := range barePriceRegexp.FindAllStringSubmatchIndex(text, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(submatch(text, m, 1), ",", ""), 64)
		if err != nil || v < minBarePrice {
			continue
		}
		return newBuffer(v), cut(text, m[0], m[1]), true
	}

	return PriceBuffer{}, text, false
}

func newBuffer(v float64) PriceBuffer {
	return PriceBuffer{Target: v, Min: v * (1 - BufferRatio), Max: v * (1 + BufferRatio)}
}
