// Package api exposes motif over HTTP.
//
// Routes:
//
//	POST /api/generate  JSON params            -> {"image": data URL, "params": normalized params}
//	POST /api/combine   {"images", "blendMode", "opacity"} -> {"image": data URL}
//	GET  /api/health    -> {"status": "ok"}
//
// Failures are reported as {"error": message}: 400 for invalid input,
// undecodable images and failed jobs, 503 when a job could not be admitted.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/motif"
	"github.com/gogpu/motif/worker"
)

// Generator renders generation params. *worker.Pool implements it.
type Generator interface {
	Generate(ctx context.Context, p motif.Params) (*image.NRGBA, error)
}

// Server is the HTTP front end. It is safe for concurrent use.
type Server struct {
	gen         Generator
	allowOrigin string
	maxBody     int64
	mux         *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithAllowOrigin sets the Access-Control-Allow-Origin header. The empty
// string disables CORS headers.
func WithAllowOrigin(origin string) Option {
	return func(s *Server) { s.allowOrigin = origin }
}

// WithMaxBodyBytes limits request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// NewServer creates a server that renders with gen.
func NewServer(gen Generator, opts ...Option) (*Server, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	s := &Server{
		gen:     gen,
		maxBody: 32 << 20,
		mux:     http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mux.HandleFunc("POST /api/generate", s.handleGenerate)
	s.mux.HandleFunc("POST /api/combine", s.handleCombine)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	if s.allowOrigin != "" {
		h := rec.Header()
		h.Set("Access-Control-Allow-Origin", s.allowOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
	}
	if r.Method == http.MethodOptions {
		rec.WriteHeader(http.StatusOK)
	} else {
		s.mux.ServeHTTP(rec, r)
	}

	motif.Logger().Info("api: request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"elapsed", time.Since(start))
}

type generateResponse struct {
	Image  string       `json:"image"`
	Params motif.Params `json:"params"`
}

type combineRequest struct {
	Images    []string `json:"images"`
	BlendMode string   `json:"blendMode"`
	Opacity   *float64 `json:"opacity"`
}

type imageResponse struct {
	Image string `json:"image"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	params, err := DecodeParams(body)
	if err != nil {
		writeError(w, err)
		return
	}
	img, err := s.gen.Generate(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	url, err := EncodeDataURL(img)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Image: url, Params: params})
}

func (s *Server) handleCombine(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req combineRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", motif.ErrDecodeFailed, err))
		return
	}
	if len(req.Images) < 2 {
		writeError(w, fmt.Errorf("%w: got %d", motif.ErrInsufficientImages, len(req.Images)))
		return
	}
	mode, err := motif.ParseBlendMode(req.BlendMode)
	if err != nil {
		writeError(w, err)
		return
	}
	opacity := 1.0
	if req.Opacity != nil {
		opacity = *req.Opacity
	}

	images := make([]image.Image, len(req.Images))
	var g errgroup.Group
	for i, data := range req.Images {
		g.Go(func() error {
			img, err := DecodeDataURL(data)
			if err != nil {
				return fmt.Errorf("image %d: %w", i, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeError(w, err)
		return
	}

	out, err := motif.Combine(images, mode, opacity)
	if err != nil {
		writeError(w, err)
		return
	}
	url, err := EncodeDataURL(out)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, imageResponse{Image: url})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: request body: %v", motif.ErrDecodeFailed, err)
	}
	return body, nil
}

// DecodeParams decodes a JSON generation request. Fields the request
// omits keep the defaults of its mode; the result is normalized.
func DecodeParams(body []byte) (motif.Params, error) {
	var head struct {
		Mode motif.Mode `json:"mode"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return motif.Params{}, fmt.Errorf("%w: %v", motif.ErrDecodeFailed, err)
	}
	if head.Mode == "" {
		head.Mode = motif.ModeGeometric
	}
	p := motif.DefaultParams(head.Mode)
	if err := json.Unmarshal(body, &p); err != nil {
		return motif.Params{}, fmt.Errorf("%w: %v", motif.ErrInvalidParameters, err)
	}
	return p.Normalize()
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, worker.ErrNotAdmitted):
		return http.StatusServiceUnavailable
	case errors.Is(err, motif.ErrInvalidParameters),
		errors.Is(err, motif.ErrDecodeFailed),
		errors.Is(err, motif.ErrInsufficientImages),
		errors.Is(err, motif.ErrGenerationFailed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		motif.Logger().Error("api: request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		motif.Logger().Warn("api: write response", "err", err)
	}
}

// statusRecorder captures the status code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
