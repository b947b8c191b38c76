package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// viewerHeader carries the identity of the user making the request. The
// services enforce what that identity may see and do; this layer only
// parses it.
const viewerHeader = "X-Sharer-User-Id"

// Services bundles the domain services the HTTP layer exposes.
type Services struct {
	Users    domain.UserService
	Items    domain.ItemService
	Bookings domain.BookingService
	Comments domain.CommentService
	Requests domain.RequestService
}

// HTTPServer exposes the REST surface. It owns request parsing, syntactic
// validation and the error-kind to status-code mapping; domain rules live
// in the services.
type HTTPServer struct {
	cfg      config.HTTPConfig
	services Services
	logger   *zerolog.Logger
	server   *http.Server
}

func NewHTTPServer(cfg config.HTTPConfig, services Services, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{cfg: cfg, services: services, logger: logger}
	auth := NewHTTPAuth(cfg)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", srv.handleCreateUser)
	mux.HandleFunc("GET /users", srv.handleListUsers)
	mux.HandleFunc("GET /users/{id}", srv.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", srv.handlePatchUser)
	mux.HandleFunc("DELETE /users/{id}", srv.handleDeleteUser)

	mux.HandleFunc("POST /items", srv.handleCreateItem)
	mux.HandleFunc("GET /items", srv.handleListItems)
	mux.HandleFunc("GET /items/search", srv.handleSearchItems)
	mux.HandleFunc("GET /items/{id}", srv.handleGetItem)
	mux.HandleFunc("PATCH /items/{id}", srv.handlePatchItem)
	mux.HandleFunc("DELETE /items/{id}", srv.handleDeleteItem)
	mux.HandleFunc("POST /items/{id}/comment", srv.handleAddComment)

	mux.HandleFunc("POST /bookings", srv.handleCreateBooking)
	mux.HandleFunc("GET /bookings", srv.handleListBookings)
	mux.HandleFunc("GET /bookings/owner", srv.handleListOwnerBookings)
	mux.HandleFunc("GET /bookings/{id}", srv.handleGetBooking)
	mux.HandleFunc("PATCH /bookings/{id}", srv.handleDecideBooking)

	mux.HandleFunc("POST /requests", srv.handleCreateRequest)
	mux.HandleFunc("GET /requests", srv.handleListOwnRequests)
	mux.HandleFunc("GET /requests/all", srv.handleListOtherRequests)
	mux.HandleFunc("GET /requests/{id}", srv.handleGetRequest)

	handler := srv.loggingMiddleware(auth.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the composed handler for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		dur := time.Since(start)

		metrics.IncHTTP(r.URL.Path, strconv.Itoa(recorder.status))
		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", dur).
			Msg("http request")
	})
}

// viewerID extracts the viewer identity from the request header.
func viewerID(r *http.Request) (int64, error) {
	raw := r.Header.Get(viewerHeader)
	if raw == "" {
		return 0, fmt.Errorf("%s header is required", viewerHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s header must be a positive integer", viewerHeader)
	}
	return id, nil
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// pageParams parses from/size query parameters with defaults.
func pageParams(r *http.Request) (limit, offset int) {
	limit, offset = 10, 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// statusForError maps domain error kinds to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrInvalidInterval):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, statusForError(err), err.Error())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
