package logger

import (
	"go.uber.org/zap"
)

// maxQueryRunes caps free-text queries in log lines.
const maxQueryRunes = 120

// Query logs a user search phrase, truncated.
func Query(q string) zap.Field {
	r := []rune(q)
	if len(r) > maxQueryRunes {
		q = string(r[:maxQueryRunes]) + "…"
	}
	return zap.String("query", q)
}

// ListingID tags an entry with a listing identifier.
func ListingID(id string) zap.Field {
	return zap.String("listing_id", id)
}

// SectionID tags an entry with a section identifier.
func SectionID(id string) zap.Field {
	return zap.String("section_id", id)
}
