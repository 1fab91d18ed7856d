package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	healthuc "github.com/kailas-cloud/homefinder/internal/usecase/health"
	listinguc "github.com/kailas-cloud/homefinder/internal/usecase/listing"
	searchuc "github.com/kailas-cloud/homefinder/internal/usecase/search"
	sectionuc "github.com/kailas-cloud/homefinder/internal/usecase/section"
)

// Limits bounds the page sizes clients may request from the search endpoints.
type Limits struct {
	DefaultLimit int
	MaxLimit     int
	SuggestLimit int
}

// Server is the homefinder HTTP API.
type Server struct {
	listings      *listinguc.Service
	sections      *sectionuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	limits        Limits
	apiKeys       []string
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	listings *listinguc.Service,
	sections *sectionuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		listings: listings,
		sections: sections,
		search:   search,
		health:   health,
		logger:   logger,
		limits: Limits{
			DefaultLimit: 20,
			MaxLimit:     100,
			SuggestLimit: searchuc.DefaultSuggestLimit,
		},
		errorHandlers: defaultErrorHandlers(),
	}
}

// WithLimits overrides the search page sizes. Zero fields keep their defaults.
func (s *Server) WithLimits(l Limits) *Server {
	if l.DefaultLimit > 0 {
		s.limits.DefaultLimit = l.DefaultLimit
	}
	if l.MaxLimit > 0 {
		s.limits.MaxLimit = l.MaxLimit
	}
	if l.SuggestLimit > 0 {
		s.limits.SuggestLimit = l.SuggestLimit
	}
	return s
}

// WithAPIKeys sets the Bearer keys that guard write endpoints.
func (s *Server) WithAPIKeys(keys []string) *Server {
	s.apiKeys = keys
	return s
}

// Register mounts every endpoint on r. Reads are public; writes go through
// BearerAuthMiddleware.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/listings/search", s.SearchListings)
	r.Post("/listings/search", s.SearchListingsJSON)
	r.Get("/listings/suggest", s.SuggestListings)
	r.Get("/query/inspect", s.InspectQuery)

	r.Get("/listings", s.ListListings)
	r.Get("/listings/{id}", s.GetListing)

	r.Get("/homepage", s.Homepage)
	r.Get("/sections", s.ListSections)
	r.Get("/sections/{id}", s.GetSection)
	r.Get("/sections/{id}/listings", s.ResolveSection)
	r.Post("/sections/preview", s.PreviewSection)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuthMiddleware(s.apiKeys))

		r.Put("/listings/{id}", s.UpsertListing)
		r.Delete("/listings/{id}", s.DeleteListing)
		r.Post("/listings/import", s.ImportListings)

		r.Put("/sections/{id}", s.UpsertSection)
		r.Delete("/sections/{id}", s.DeleteSection)
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:   string(report.Status),
		Checks:   checks,
		Listings: report.Listings,
	})
}

func (s *Server) pageLimit(limit int) int {
	if limit <= 0 {
		return s.limits.DefaultLimit
	}
	return min(limit, s.limits.MaxLimit)
}
