package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	goahttp "goa.design/goa/v3/http"
	"goa.design/goa/v3/http/middleware"
	goa "goa.design/goa/v3/pkg"

	health "portfolio/gen/health"
	healthsvr "portfolio/gen/http/health/server"
	inquirysvr "portfolio/gen/http/inquiry/server"
	inquiry "portfolio/gen/inquiry"

	"portfolio/internal/config"
	"portfolio/internal/metrics"
	"portfolio/internal/services"
)

// newHandler mounts the goa servers and wraps them in the middleware chain
func newHandler(cfg *config.Config, healthSvc health.Service, inquirySvc inquiry.Service) http.Handler {
	// Create service endpoints
	healthEndpoints := health.NewEndpoints(healthSvc)
	inquiryEndpoints := inquiry.NewEndpoints(inquirySvc)

	// Create HTTP mux
	mux := goahttp.NewMuxer()

	// Create error handler that logs errors
	errorHandler := func(ctx context.Context, w http.ResponseWriter, err error) {
		log.Printf("[ERROR] %v", err)
	}

	// Mount HTTP handlers with middleware and error handler
	log.Println("Mounting HTTP handlers...")
	healthServer := healthsvr.New(healthEndpoints, mux, goahttp.RequestDecoder, goahttp.ResponseEncoder, errorHandler, formatError)
	healthServer.Use(middleware.RequestID())
	healthServer.Use(middleware.PopulateRequestContext())
	healthServer.Mount(mux)

	inquiryServer := inquirysvr.New(inquiryEndpoints, mux, goahttp.RequestDecoder, goahttp.ResponseEncoder, errorHandler, formatError)
	inquiryServer.Use(middleware.RequestID())
	inquiryServer.Use(middleware.PopulateRequestContext())
	inquiryServer.Mount(mux)

	// Route /metrics to Prometheus and everything else to the goa mux
	metricsHandler := promhttp.Handler()
	rootHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			metricsHandler.ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})

	// Setup middleware chain: Security -> CORS -> Logging -> Prometheus -> Handler
	return setupSecurityHeaders(setupCORS(requestLogging(metrics.PrometheusMiddleware(rootHandler)), cfg), cfg)
}

// errorResponse is the body of every error response: {"error": "..."}
type errorResponse struct {
	Message string `json:"error"`
	status  int
}

func (e *errorResponse) StatusCode() int { return e.status }

// formatError renders errors as {"error": message}. Designed inquiry errors
// keep their fixed message; anything else gets a generic one so internal
// error text never reaches the caller.
func formatError(ctx context.Context, err error) goahttp.Statuser {
	var se *goa.ServiceError
	if errors.As(err, &se) {
		switch se.Name {
		case "bad_request":
			return &errorResponse{Message: se.Message, status: http.StatusBadRequest}
		case "submission_failed":
			return &errorResponse{Message: se.Message, status: http.StatusInternalServerError}
		}
	}

	status := goahttp.NewErrorResponse(ctx, err).StatusCode()
	if status == http.StatusBadRequest {
		return &errorResponse{Message: services.MsgInvalidBody, status: status}
	}
	return &errorResponse{Message: services.MsgInternal, status: status}
}

// setupSecurityHeaders adds security headers to responses
func setupSecurityHeaders(handler http.Handler, cfg *config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Security headers
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		// Remove server identification
		w.Header().Set("Server", "")

		// HSTS (only in production with HTTPS)
		if !cfg.App.Debug && r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		handler.ServeHTTP(w, r)
	})
}

// setupCORS configures CORS based on environment
func setupCORS(handler http.Handler, cfg *config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// In production, validate against allowed origins
		if !cfg.App.Debug && len(cfg.CORS.AllowedOrigins) > 0 && cfg.CORS.AllowedOrigins[0] != "*" {
			allowed := false
			for _, allowedOrigin := range cfg.CORS.AllowedOrigins {
				if origin == allowedOrigin {
					allowed = true
					break
				}
			}
			if !allowed && origin != "" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
		}

		// Set CORS headers
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		} else if cfg.App.Debug {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.CORS.AllowedMethods, ", "))
		w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.CORS.AllowedHeaders, ", "))
		w.Header().Set("Access-Control-Expose-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", fmt.Sprintf("%d", cfg.CORS.MaxAge))

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		handler.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestLogging logs all incoming requests and their responses
func requestLogging(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health checks to reduce noise
		if r.URL.Path == "/health" {
			handler.ServeHTTP(w, r)
			return
		}

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		log.Printf("[REQUEST] %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

		handler.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		statusText := "OK"
		if wrapped.statusCode >= 400 {
			statusText = "ERROR"
		}
		log.Printf("[RESPONSE] %s %s -> %d %s (%v)", r.Method, r.URL.Path, wrapped.statusCode, statusText, duration)
	})
}
