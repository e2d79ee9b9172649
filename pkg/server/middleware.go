package server

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const headerRequestID = "X-Request-ID"

type contextKey string

const ctxKeyRequestID contextKey = "request_id"

// routes bounds the cardinality of the route metric label.
var routes = map[string]struct{}{
	"/root":              {},
	"/proof":             {},
	"/verify":            {},
	"/versions":          {},
	"/versions/activate": {},
	"/versions/commit":   {},
	"/snapshot":          {},
	"/allowlist":         {},
	"/healthz":           {},
	"/metrics":           {},
}

// unlimited paths are never rate limited
var unlimited = map[string]struct{}{
	"/healthz": {},
	"/metrics": {},
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

// middlewareRequestID keeps a caller supplied UUID or assigns a new one.
func (s *Server) middlewareRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		w.Header().Set(headerRequestID, requestID)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
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

func (s *Server) middlewareLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		route := r.URL.Path
		if _, ok := routes[route]; !ok {
			route = "other"
		}
		s.recorder.ObserveRequest(route, strconv.Itoa(wrapped.status), duration)

		fields := []interface{}{
			"requestId", requestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"durationMs", duration.Milliseconds(),
		}
		switch {
		case wrapped.status >= 500:
			s.logger.Sugar().Errorw("Request failed", fields...)
		case wrapped.status >= 400:
			s.logger.Sugar().Debugw("Request rejected", fields...)
		default:
			s.logger.Sugar().Debugw("Request completed", fields...)
		}
	})
}

func (s *Server) middlewarePanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Sugar().Errorw("Panic recovered",
					"requestId", requestIDFrom(r.Context()),
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				s.writeError(w, r, "Internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) middlewareRateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := unlimited[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}
		if !s.limiter.Allow(clientKey(r, s.config.TrustProxy)) {
			s.recorder.ObserveRateLimited()
			w.Header().Set("Retry-After", "1")
			s.writeError(w, r, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin guards operator endpoints with the configured bearer token.
// With no token configured those endpoints are disabled.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.AdminToken == "" {
			s.writeError(w, r, "Publishing is disabled on this server", http.StatusForbidden)
			return
		}
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.config.AdminToken)) != 1 {
			s.writeError(w, r, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// clientKey identifies a client by the connection's remote host. With
// trustProxy the first X-Forwarded-For hop takes precedence.
func clientKey(r *http.Request, trustProxy bool) string {
	if fwd := r.Header.Get("X-Forwarded-For"); trustProxy && fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
