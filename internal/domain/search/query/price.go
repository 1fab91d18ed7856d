package query

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unit multipliers.
const (
	// LargeUnit is one million (ล้าน).
	LargeUnit = 1_000_000
	// MediumUnit is one hundred thousand (แสน).
	MediumUnit = 100_000

	// minBareRangeValue is the smallest unitless number a range is read as a price from.
	// Below it, "2-3" is more likely bedrooms or a soi number than baht.
	minBareRangeValue = 1000
)

const (
	numberExpr = `(\d[\d,]*(?:\.\d+)?)`
	unitExpr   = `(?:\s*(ล้าน|แสน|millions?\b|lakhs?\b))?`
)

var (
	rangeRegexp = regexp.MustCompile(`(?i)` + numberExpr + `\s*[-–]\s*` + numberExpr + unitExpr)

	// maxPriceRegexps are tried in order; the first match sets the upper bound.
	maxPriceRegexps = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:ราคา|price)\s*(?:ไม่เกิน|ต่ำกว่า|not exceeding|below|under)\s*` + numberExpr + unitExpr),
		regexp.MustCompile(`(?i)(?:ไม่เกิน|not exceeding|not over|up to)\s*` + numberExpr + unitExpr),
		regexp.MustCompile(`(?i)(?:ต่ำกว่า|below|under|less than)\s*` + numberExpr + unitExpr),
		regexp.MustCompile(`(?i)(?:งบประมาณ|งบ|budget)\s*` + numberExpr + unitExpr),
		regexp.MustCompile(`(?i)(?:ราคา|price)\s*` + numberExpr + unitExpr),
	}
)

// Price is the outcome of reading price bounds out of a query.
// Min and Max are nil when the query does not constrain them.
type Price struct {
	Min          *float64
	Max          *float64
	CleanedQuery string
}

// HasBounds reports whether any bound was found.
func (p Price) HasBounds() bool { return p.Min != nil || p.Max != nil }

// ParsePrice extracts a price range ("2-3 ล้าน") or an upper bound
// ("ไม่เกิน 2 ล้าน", "งบ 5 แสน", "under 2 million") from q. The matched phrase
// is removed from CleanedQuery so it does not take part in keyword matching.
// A range wins over every upper-bound form.
func ParsePrice(q string) Price {
	text := strings.Join(strings.Fields(q), " ")

	for _, m := range rangeRegexp.FindAllStringSubmatchIndex(text, -1) {
		unit := submatch(text, m, 3)
		lo, okLo := parseAmount(submatch(text, m, 1), unit)
		hi, okHi := parseAmount(submatch(text, m, 2), unit)
		if !okLo || !okHi {
			continue
		}
		if unit == "" && (lo < minBareRangeValue || hi < minBareRangeValue) {
			continue
		}
		return Price{Min: &lo, Max: &hi, CleanedQuery: cut(text, m[0], m[1])}
	}

	for _, re := range maxPriceRegexps {
		m := re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		hi, ok := parseAmount(submatch(text, m, 1), submatch(text, m, 2))
		if !ok {
			continue
		}
		return Price{Max: &hi, CleanedQuery: cut(text, m[0], m[1])}
	}

	return Price{CleanedQuery: text}
}

// UnitMultiplier returns the multiplier of a unit word, 1 for none or unknown.
func UnitMultiplier(unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "ล้าน", "million", "millions":
		return LargeUnit
	case "แสน", "lakh", "lakhs":
		return MediumUnit
	default:
		return 1
	}
}

func parseAmount(number, unit string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(number, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	mult := UnitMultiplier(unit)
	if mult == 1 {
		return v, true
	}
	return math.Round(v * mult), true
}

func submatch(s string, m []int, group int) string {
	if 2*group+1 >= len(m) || m[2*group] < 0 {
		return ""
	}
	return s[m[2*group]:m[2*group+1]]
}

// cut removes s[start:end] and renormalizes whitespace.
func cut(s string, start, end int) string {
	return strings.Join(strings.Fields(s[:start]+" "+s[end:]), " ")
}
