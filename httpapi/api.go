// Package httpapi exposes the ledger service over HTTP with JSON responses.
//
// Endpoints:
//
//	POST /api/upload                   multipart "file" field or raw body
//	POST /api/process/{fileID}
//	GET  /api/dashboard/{fileID}
//	GET  /api/review/{fileID}?date=2024-01-02
//
// Every response is wrapped in a {success, data, error} envelope; failures
// carry the error kind so clients can dispatch without parsing messages.
package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"tradeview"
	"tradeview/service"
)

// maxUploadBytes caps one uploaded ledger file.
const maxUploadBytes = 20 << 20

// Server handles the HTTP surface of the ledger service.
type Server struct {
	svc *service.Service
	log *zap.Logger
}

// New creates the HTTP server over a ledger service. logger may be nil.
func New(svc *service.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{svc: svc, log: logger}
}

// Router assembles the chi routing tree with its middleware stack.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", s.handleUpload)
		r.Post("/process/{fileID}", s.handleProcess)
		r.Get("/dashboard/{fileID}", s.handleDashboard)
		r.Get("/review/{fileID}", s.handleReview)
	})
	r.Get("/health", s.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	raw, err := readUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := s.svc.Upload(r.Context(), raw)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"fileId": id})
}

// readUpload extracts the uploaded bytes: a multipart "file" field when the
// request is a form upload, the raw body otherwise.
func readUpload(r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		raw, err := io.ReadAll(file)
		if err != nil {
			return nil, &tradeview.ValidationError{Field: "file", Reason: "unreadable upload"}
		}
		return raw, nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, &tradeview.ValidationError{Field: "file", Reason: "unreadable upload"}
	}
	return raw, nil
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "fileID")
	result, err := s.svc.Process(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "fileID")
	stats, err := s.svc.Dashboard(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "fileID")
	param := r.URL.Query().Get("date")
	if param == "" {
		writeError(w, &tradeview.ValidationError{Field: "date", Reason: "missing date parameter"})
		return
	}
	on, err := tradeview.ParseDate(param)
	if err != nil {
		writeError(w, &tradeview.ValidationError{Field: "date", Reason: "invalid date " + param})
		return
	}

	review, err := s.svc.Review(r.Context(), id, on)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, review)
}
