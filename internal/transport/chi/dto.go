package chi

import (
	domlisting "github.com/kailas-cloud/homefinder/internal/domain/listing"
	"github.com/kailas-cloud/homefinder/internal/domain/search/filter"
	"github.com/kailas-cloud/homefinder/internal/domain/search/result"
	domsection "github.com/kailas-cloud/homefinder/internal/domain/section"
	searchuc "github.com/kailas-cloud/homefinder/internal/usecase/search"
	sectionuc "github.com/kailas-cloud/homefinder/internal/usecase/section"
)

type healthResponse struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks"`
	Listings int               `json:"listings"`
}

// searchBody is the POST /listings/search payload: criteria plus paging.
type searchBody struct {
	filter.Criteria
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type scoredListing struct {
	domlisting.Listing
	Score int `json:"score"`
}

type searchResponse struct {
	Items  []scoredListing `json:"items"`
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Limit  int             `json:"limit"`
}

type suggestResponse struct {
	Items []scoredListing `json:"items"`
}

type priceBounds struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

type inspectResponse struct {
	Query        string          `json:"query"`
	Tokens       []string        `json:"tokens"`
	Price        *priceBounds    `json:"price,omitempty"`
	CleanedQuery string          `json:"cleanedQuery"`
	Buffer       *bufferResponse `json:"buffer,omitempty"`
}

type bufferResponse struct {
	Target float64 `json:"target"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

type listingPage struct {
	Items  []domlisting.Listing `json:"items"`
	Total  int                  `json:"total"`
	Offset int                  `json:"offset"`
}

type importRequest struct {
	Items []domlisting.Listing `json:"items"`
}

type importItem struct {
	ID     string         `json:"id"`
	Status string         `json:"status"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

type importResponse struct {
	Items     []importItem `json:"items"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
}

type sectionRequest struct {
	Title      string               `json:"title"`
	Mode       string               `json:"mode"`
	ListingIDs []string             `json:"listingIds"`
	Criteria   *domsection.Criteria `json:"criteria"`
	Order      int                  `json:"order"`
	Limit      int                  `json:"limit"`
	Active     *bool                `json:"active"`
}

type sectionResponse struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Mode       string               `json:"mode"`
	ListingIDs []string             `json:"listingIds,omitempty"`
	Criteria   *domsection.Criteria `json:"criteria,omitempty"`
	Order      int                  `json:"order"`
	Limit      int                  `json:"limit"`
	Active     bool                 `json:"active"`
}

type sectionListResponse struct {
	Items []sectionResponse `json:"items"`
}

type resolvedSection struct {
	sectionResponse
	Listings []domlisting.Listing `json:"listings"`
}

type homepageResponse struct {
	Sections []resolvedSection `json:"sections"`
}

type previewRequest struct {
	Criteria domsection.Criteria `json:"criteria"`
	Limit    int                 `json:"limit"`
}

type previewResponse struct {
	Items []domlisting.Listing `json:"items"`
}

func scored(rs []result.Result) []scoredListing {
	out := make([]scoredListing, len(rs))
	for i := range rs {
		out[i] = scoredListing{Listing: rs[i].Listing(), Score: rs[i].Score()}
	}
	return out
}

func inspectToResponse(in searchuc.Interpretation) inspectResponse {
	resp := inspectResponse{
		Query:        in.Query,
		Tokens:       in.Tokens,
		CleanedQuery: in.Price.CleanedQuery,
	}
	if in.Buffer != nil {
		resp.Buffer = &bufferResponse{Target: in.Buffer.Target, Min: in.Buffer.Min, Max: in.Buffer.Max}
	}
	if resp.Tokens == nil {
		resp.Tokens = []string{}
	}
	if in.Price.HasBounds() {
		resp.Price = &priceBounds{Min: in.Price.Min, Max: in.Price.Max}
	}
	return resp
}

func sectionToResponse(sec *domsection.Section) sectionResponse {
	resp := sectionResponse{
		ID:     sec.ID(),
		Title:  sec.Title(),
		Mode:   string(sec.Mode()),
		Order:  sec.Order(),
		Limit:  sec.Limit(),
		Active: sec.Active(),
	}
	if sec.Mode() == domsection.Manual {
		resp.ListingIDs = sec.ListingIDs()
	} else {
		c := sec.Criteria()
		resp.Criteria = &c
	}
	return resp
}

func sectionParams(id string, req sectionRequest) domsection.Params {
	p := domsection.Params{
		ID:         id,
		Title:      req.Title,
		Mode:       domsection.Mode(req.Mode),
		ListingIDs: req.ListingIDs,
		Order:      req.Order,
		Limit:      req.Limit,
		Active:     true,
	}
	if req.Criteria != nil {
		p.Criteria = *req.Criteria
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	return p
}

func resolvedToResponse(r sectionuc.Resolved) resolvedSection {
	ls := r.Listings
	if ls == nil {
		ls = []domlisting.Listing{}
	}
	return resolvedSection{
		sectionResponse: sectionToResponse(&r.Section),
		Listings:        ls,
	}
}

func listingsOrEmpty(ls []domlisting.Listing) []domlisting.Listing {
	if ls == nil {
		return []domlisting.Listing{}
	}
	return ls
}
