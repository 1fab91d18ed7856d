// Package score orders listings by relevance to a free-text query.
package score

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/homefinder/internal/domain/listing"
	"github.com/kailas-cloud/homefinder/internal/domain/search/query"
	"github.com/kailas-cloud/homefinder/internal/domain/search/result"
)

// Points awarded per signal. Signals stack.
const (
	IdentifierMatch  = 1000
	IdentifierPrefix = 500
	TitleMatch       = 300
	TitlePrefix      = 100
	TagMatch         = 200
	DescriptionMatch = 100
	TypeMatch        = 50
	PriorityKeyword  = 50
	AvailableBonus   = 50
)

// priorityKeywords are the financial-service phrases the brokerage promotes.
var priorityKeywords = []string{
	"รวมหนี้",
	"ปลดหนี้",
	"เงินเหลือ",
	"เงินทอน",
	"ไม่มีดอกเบี้ย",
	"ปลอดดอกเบี้ย",
	"ปิดภาระ",
	"debt consolidation",
	"debt payoff",
	"cash back",
	"interest-free",
	"clear obligations",
}

// Score computes the relevance of l to q. It is only used for ordering:
// a zero score does not exclude a listing.
func Score(l *listing.Listing, q string) int {
	nq := query.Normalize(q)
	if nq == "" {
		return 0
	}

	total := 0

	if id := query.Normalize(l.Identifier()); id != "" &&
		(strings.Contains(id, nq) || strings.Contains(nq, id)) {
		total += IdentifierMatch
		if strings.HasPrefix(nq, id) {
			total += IdentifierPrefix
		}
	}

	if title := query.Normalize(l.Title); strings.Contains(title, nq) {
		total += TitleMatch
		if strings.HasPrefix(title, nq) {
			total += TitlePrefix
		}
	}

	if tagsMatch(l.Tags, nq) {
		total += TagMatch
	}

	if strings.Contains(query.Normalize(l.Description), nq) {
		total += DescriptionMatch
	}

	if typeMatches(l.Type, nq) {
		total += TypeMatch
	}

	total += priorityKeywordPoints(l, nq)

	if isAvailable(l) {
		total += AvailableBonus
	}

	return total
}

// Rank scores every listing against q and sorts by descending score.
// Equal scores keep their input order.
func Rank(listings []listing.Listing, q string) []result.Result {
	out := make([]result.Result, len(listings))
	for i := range listings {
		out[i] = result.New(listings[i], Score(&listings[i], q))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})
	return out
}

// tagsMatch awards the tag bonus. A single-token query may hit any one tag;
// a multi-token query must appear whole in the joined tag text, so common
// short words spread across unrelated tags do not count.
func tagsMatch(tags []listing.Tag, nq string) bool {
	labels := listing.Labels(tags)
	if len(labels) == 0 {
		return false
	}
	if tokens := query.Tokenize(nq); len(tokens) == 1 {
		for _, label := range labels {
			if strings.Contains(query.Normalize(label), tokens[0]) {
				return true
			}
		}
		return false
	}
	return strings.Contains(query.Normalize(strings.Join(labels, " ")), nq)
}

func typeMatches(code, nq string) bool {
	if code == "" {
		return false
	}
	return strings.Contains(query.Normalize(code), nq) ||
		strings.Contains(query.Normalize(listing.TypeLabel(code)), nq)
}

func priorityKeywordPoints(l *listing.Listing, nq string) int {
	var combined string
	points := 0
	for _, kw := range priorityKeywords {
		if !strings.Contains(nq, kw) && !strings.Contains(kw, nq) {
			continue
		}
		if combined == "" {
			combined = query.Normalize(l.Title + " " + l.Description + " " + strings.Join(listing.Labels(l.Tags), " "))
		}
		if strings.Contains(combined, kw) {
			points += PriorityKeyword
		}
	}
	return points
}

func isAvailable(l *listing.Listing) bool {
	return listing.EffectiveAvailability(l) == listing.Available ||
		listing.NormalizeCondition(listing.EffectiveCondition(l)) == listing.ConditionFirstHand
}
