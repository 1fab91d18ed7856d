package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/oapi-codegen/runtime"

	domlisting "github.com/kailas-cloud/homefinder/internal/domain/listing"
	"github.com/kailas-cloud/homefinder/internal/domain/search/filter"
	"github.com/kailas-cloud/homefinder/internal/domain/search/request"
)

// SearchListings handles GET /listings/search.
func (s *Server) SearchListings(w http.ResponseWriter, r *http.Request) {
	crit, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	offset, limit, err := bindPaging(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	s.runSearch(w, r, crit, offset, limit)
}

// SearchListingsJSON handles POST /listings/search.
func (s *Server) SearchListingsJSON(w http.ResponseWriter, r *http.Request) {
	var body searchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.runSearch(w, r, body.Criteria, body.Offset, body.Limit)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, crit filter.Criteria, offset, limit int) {
	req, err := request.New(crit, offset, s.pageLimit(limit))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	page, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Items:  scored(page.Items),
		Total:  page.Total,
		Offset: req.Offset(),
		Limit:  req.Limit(),
	})
}

// SuggestListings handles GET /listings/suggest.
func (s *Server) SuggestListings(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var q string
	if err := runtime.BindQueryParameter("form", true, true, "q", params, &q); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", params, &limit); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	n := s.limits.SuggestLimit
	if limit != nil && *limit > 0 {
		n = *limit
	}

	results, err := s.search.Suggest(r.Context(), q, n)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestResponse{Items: scored(results)})
}

// InspectQuery handles GET /query/inspect.
func (s *Server) InspectQuery(w http.ResponseWriter, r *http.Request) {
	var q string
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inspectToResponse(s.search.Inspect(q)))
}

// criteriaFromQuery binds the query-string form of filter.Criteria. Numeric
// parameters are kept as text so that a malformed value reaches the filter.
func criteriaFromQuery(params url.Values) (filter.Criteria, error) {
	var c filter.Criteria

	texts := []struct {
		name string
		dest **string
	}{
		{"q", &c.Keyword},
		{"location", &c.Location},
		{"listingType", &c.ListingType},
		{"subListingType", &c.SubListingType},
		{"condition", &c.PropertyCondition},
		{"availability", &c.Availability},
		{"type", &c.PropertyType},
	}
	for _, t := range texts {
		if err := runtime.BindQueryParameter("form", true, false, t.name, params, t.dest); err != nil {
			return filter.Criteria{}, err
		}
	}

	numbers := []struct {
		name string
		dest *domlisting.Number
	}{
		{"minPrice", &c.MinPrice},
		{"maxPrice", &c.MaxPrice},
		{"minArea", &c.MinArea},
		{"maxArea", &c.MaxArea},
		{"bedrooms", &c.Bedrooms},
		{"bathrooms", &c.Bathrooms},
	}
	for _, n := range numbers {
		var raw *string
		if err := runtime.BindQueryParameter("form", true, false, n.name, params, &raw); err != nil {
			return filter.Criteria{}, err
		}
		if raw != nil {
			*n.dest = domlisting.ParseNumber(*raw)
		}
	}

	return c, nil
}

func bindPaging(params url.Values) (offset, limit int, err error) {
	var o, l *int
	if err := runtime.BindQueryParameter("form", true, false, "offset", params, &o); err != nil {
		return 0, 0, fmt.Errorf("offset: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", params, &l); err != nil {
		return 0, 0, fmt.Errorf("limit: %w", err)
	}
	if o != nil {
		offset = *o
	}
	if l != nil {
		limit = *l
	}
	return offset, limit, nil
}
