package section

import (
	domsection "github.com/kailas-cloud/homefinder/internal/domain/section"
)

// sectionDTO is the stored JSON shape of a section.
type sectionDTO struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	Mode       string              `json:"mode"`
	ListingIDs []string            `json:"listingIds,omitempty"`
	Criteria   domsection.Criteria `json:"criteria"`
	Order      int                 `json:"order"`
	Limit      int                 `json:"limit"`
	Active     bool                `json:"active"`
}

func toDTO(s *domsection.Section) sectionDTO {
	p := s.Params()
	return sectionDTO{
		ID:         p.ID,
		Title:      p.Title,
		Mode:       string(p.Mode),
		ListingIDs: p.ListingIDs,
		Criteria:   p.Criteria,
		Order:      p.Order,
		Limit:      p.Limit,
		Active:     p.Active,
	}
}

func fromDTO(d *sectionDTO) domsection.Section {
	return domsection.Reconstruct(domsection.Params{
		ID:         d.ID,
		Title:      d.Title,
		Mode:       domsection.Mode(d.Mode),
		ListingIDs: d.ListingIDs,
		Criteria:   d.Criteria,
		Order:      d.Order,
		Limit:      d.Limit,
		Active:     d.Active,
	})
}
