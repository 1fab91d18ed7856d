package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	domlisting "github.com/kailas-cloud/homefinder/internal/domain/listing"
)

// ListListings handles GET /listings.
func (s *Server) ListListings(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := bindPaging(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	items, total, err := s.listings.List(r.Context(), offset, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listingPage{
		Items:  listingsOrEmpty(items),
		Total:  total,
		Offset: offset,
	})
}

// GetListing handles GET /listings/{id}.
func (s *Server) GetListing(w http.ResponseWriter, r *http.Request) {
	l, err := s.listings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// UpsertListing handles PUT /listings/{id}.
func (s *Server) UpsertListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var l domlisting.Listing
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if l.ID == "" {
		l.ID = id
	}
	if l.ID != id {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("body id %q does not match path id %q", l.ID, id))
		return
	}

	created, err := s.listings.Upsert(r.Context(), &l)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", "/listings/"+id)
	}
	writeJSON(w, status, l)
}

// DeleteListing handles DELETE /listings/{id}.
func (s *Server) DeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := s.listings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportListings handles POST /listings/import.
func (s *Server) ImportListings(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "items must not be empty")
		return
	}

	results := s.listings.Import(r.Context(), req.Items)

	resp := importResponse{Items: make([]importItem, len(results))}
	for i, res := range results {
		item := importItem{ID: res.ID, Status: "ok"}
		if res.OK() {
			resp.Succeeded++
		} else {
			resp.Failed++
			item.Status = "error"
			code := errorCode(res.Err)
			msg := res.Err.Error()
			if code == CodeInternalError {
				s.logger.Error("import item failed", zap.String("id", res.ID), zap.Error(res.Err))
				msg = "internal error"
			}
			item.Error = &ErrorResponse{Code: code, Message: msg}
		}
		resp.Items[i] = item
	}

	writeJSON(w, http.StatusOK, resp)
}
