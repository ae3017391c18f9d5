package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stayfinder/internal/domain"
	"github.com/kailas-cloud/stayfinder/internal/domain/search/request"
	"github.com/kailas-cloud/stayfinder/internal/metrics"
	discoveryuc "github.com/kailas-cloud/stayfinder/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/stayfinder/internal/usecase/health"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// Server serves the discovery HTTP API.
type Server struct {
	discovery     *discoveryuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates a Server.
func NewServer(discovery *discoveryuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{
		discovery:     discovery,
		health:        health,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// RouterOptions configures the middleware chain.
type RouterOptions struct {
	APIKeys     []string
	CORSOrigins []string
}

// Router assembles the middleware chain and mounts all routes.
func (s *Server) Router(opts RouterOptions) http.Handler {
	r := gochi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(corsMiddleware(opts.CORSOrigins))
	r.Use(BearerAuthMiddleware(opts.APIKeys))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r gochi.Router) {
		r.Post("/search", s.SearchText)
		r.Get("/search", s.SearchTextQuery)
		r.Post("/search/nearby", s.SearchNearby)
		r.Get("/search/nearby", s.SearchNearbyQuery)
		r.Get("/landmarks", s.ListLandmarks)
		r.Get("/listings/{id}", s.GetListing)
	})
	return r
}

// SearchText handles POST /api/v1/search.
func (s *Server) SearchText(w http.ResponseWriter, r *http.Request) {
	var body searchRequest
	if !s.decodeBody(w, r, &body) {
		return
	}
	cat := body.Category
	if cat == "" {
		cat = body.PropertyType
	}
	s.searchText(w, r, body.Query, cat)
}

// SearchTextQuery handles GET /api/v1/search?q=&category=.
func (s *Server) SearchTextQuery(w http.ResponseWriter, r *http.Request) {
	var q, cat *string
	if err := bindQuery(r, "q", &q); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if err := bindQuery(r, "category", &cat); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	s.searchText(w, r, deref(q), deref(cat))
}

func (s *Server) searchText(w http.ResponseWriter, r *http.Request, query, cat string) {
	req, err := request.NewText(query, cat)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.discovery.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	data := matchesToDTO(res.Matches)
	writeJSON(w, http.StatusOK, searchResponse{
		Success:  true,
		Data:     data,
		Count:    len(data),
		Query:    res.Query,
		Category: res.Category.String(),
	})
}

// SearchNearby handles POST /api/v1/search/nearby.
func (s *Server) SearchNearby(w http.ResponseWriter, r *http.Request) {
	var body nearbyRequest
	if !s.decodeBody(w, r, &body) {
		return
	}
	radius, err := radiusFromJSON(body.RadiusKm)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	name := body.LandmarkName
	if name == "" {
		name = body.CollegeName
	}
	cat := body.Category
	if cat == "" {
		cat = body.PropertyType
	}
	s.searchNearby(w, r, name, cat, radius)
}

// SearchNearbyQuery handles GET /api/v1/search/nearby?landmark=&category=&radius_km=.
func (s *Server) SearchNearbyQuery(w http.ResponseWriter, r *http.Request) {
	var name, cat, rawRadius *string
	for param, dest := range map[string]**string{
		"landmark":  &name,
		"category":  &cat,
		"radius_km": &rawRadius,
	} {
		if err := bindQuery(r, param, dest); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
			return
		}
	}
	radius, err := request.ParseRadius(deref(rawRadius))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.searchNearby(w, r, deref(name), deref(cat), radius)
}

func (s *Server) searchNearby(w http.ResponseWriter, r *http.Request, name, cat string, radius *float64) {
	req, err := request.NewProximity(name, cat, radius, s.discovery.DefaultRadiusKm())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.discovery.Nearby(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	data := matchesToDTO(res.Matches)
	writeJSON(w, http.StatusOK, nearbyResponse{
		Success:  true,
		Data:     data,
		Count:    len(data),
		Landmark: landmarkToDTO(res.Landmark),
		RadiusKm: res.RadiusKm,
	})
}

// ListLandmarks handles GET /api/v1/landmarks.
func (s *Server) ListLandmarks(w http.ResponseWriter, _ *http.Request) {
	all := s.discovery.Landmarks()
	data := make([]landmarkDTO, len(all))
	for i, lm := range all {
		data[i] = landmarkToDTO(lm)
	}
	writeJSON(w, http.StatusOK, landmarksResponse{Success: true, Data: data, Count: len(data)})
}

// GetListing handles GET /api/v1/listings/{id}.
func (s *Server) GetListing(w http.ResponseWriter, r *http.Request) {
	l, err := s.discovery.Listing(r.Context(), gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listingResponse{Success: true, Data: listingToDTO(&l)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decodeBody reads a JSON body into v. An empty body leaves v zero-valued.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func bindQuery(r *http.Request, name string, dest **string) error {
	return runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest)
}

// radiusFromJSON accepts a JSON number, a numeric string or null.
func radiusFromJSON(v any) (*float64, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return &t, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, domain.InvalidInput("radiusKm must not be empty")
		}
		return request.ParseRadius(t)
	default:
		return nil, domain.InvalidInput("radiusKm must be a number")
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
