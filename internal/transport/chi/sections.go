package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListSections handles GET /sections.
func (s *Server) ListSections(w http.ResponseWriter, r *http.Request) {
	secs, err := s.sections.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]sectionResponse, len(secs))
	for i := range secs {
		items[i] = sectionToResponse(&secs[i])
	}
	writeJSON(w, http.StatusOK, sectionListResponse{Items: items})
}

// GetSection handles GET /sections/{id}.
func (s *Server) GetSection(w http.ResponseWriter, r *http.Request) {
	sec, err := s.sections.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sectionToResponse(&sec))
}

// UpsertSection handles PUT /sections/{id}.
func (s *Server) UpsertSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req sectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sec, created, err := s.sections.Upsert(r.Context(), sectionParams(id, req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", "/sections/"+id)
	}
	writeJSON(w, status, sectionToResponse(&sec))
}

// DeleteSection handles DELETE /sections/{id}.
func (s *Server) DeleteSection(w http.ResponseWriter, r *http.Request) {
	if err := s.sections.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResolveSection handles GET /sections/{id}/listings.
func (s *Server) ResolveSection(w http.ResponseWriter, r *http.Request) {
	res, err := s.sections.Resolve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resolvedToResponse(res))
}

// Homepage handles GET /homepage.
func (s *Server) Homepage(w http.ResponseWriter, r *http.Request) {
	all, err := s.sections.Homepage(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := homepageResponse{Sections: make([]resolvedSection, len(all))}
	for i := range all {
		resp.Sections[i] = resolvedToResponse(all[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// PreviewSection handles POST /sections/preview.
func (s *Server) PreviewSection(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ls, err := s.sections.Preview(r.Context(), req.Criteria, req.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{Items: listingsOrEmpty(ls)})
}
