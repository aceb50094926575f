// Package server exposes the scoring engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/labelcritic/internal/catalog"
	"github.com/dshills/labelcritic/internal/nutrition"
	"github.com/dshills/labelcritic/internal/render"
	"github.com/dshills/labelcritic/internal/schema"
)

// maxBody caps POST /analyze request bodies.
const maxBody = 1 << 20

// Server serves analyses for catalog products and posted records.
type Server struct {
	engine  *nutrition.Engine
	store   *catalog.Store
	log     *zap.Logger
	version string
}

// New returns a server. store supplies both catalog lookups and the
// alternative resolver.
func New(engine *nutrition.Engine, store *catalog.Store, log *zap.Logger, version string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{engine: engine, store: store, log: log, version: version}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Get("/products", s.listProducts)
	r.Get("/products/{id}", s.getProduct)
	r.Get("/products/{id}/analysis", s.analyzeProduct)
	r.Post("/analyze", s.analyzePosted)
	return r
}

type errorBody struct {
	Error   string                   `json:"error"`
	Details []schema.ValidationError `json:"details,omitempty"`
}

type productSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type productList struct {
	Catalog  string           `json:"catalog"`
	Hash     string           `json:"hash"`
	Products []productSummary `json:"products"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	c := s.store.Current()
	out := productList{Catalog: c.Name, Hash: c.Hash, Products: []productSummary{}}
	for _, p := range c.Products() {
		out.Products = append(out.Products, productSummary{ID: p.ID, Name: p.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := s.store.Current().Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: fmt.Sprintf("no product data for %q", id)})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) analyzeProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c := s.store.Current()
	p, ok := c.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: fmt.Sprintf("no product data for %q", id)})
		return
	}
	// Resolve alternatives against the same catalog snapshot as the product.
	s.writeReport(w, p, c)
}

func (s *Server) analyzePosted(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "failed to read body"})
		return
	}

	var p nutrition.Product
	if err := json.Unmarshal(body, &p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("invalid product JSON: %v", err)})
		return
	}
	if errs := schema.Validate(p, "product"); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid product", Details: errs})
		return
	}
	s.writeReport(w, p, s.store.Current())
}

func (s *Server) writeReport(w http.ResponseWriter, p nutrition.Product, c *catalog.Catalog) {
	res := s.engine.Analyze(p, c)
	rep := render.NewReport(p, res)
	rep.Tool = "labelcritic"
	rep.Version = s.version
	rep.Source = &render.Source{Catalog: c.Name, Hash: c.Hash}
	writeJSON(w, http.StatusOK, rep)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// HeaderRequestID carries the request id on requests and responses.
const HeaderRequestID = "X-Request-ID"

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", w.Header().Get(HeaderRequestID)))
	})
}
