package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

type corsPolicy struct {
	allowed map[string]struct{}
}

// newCORS accepts exactly the listed origins.
func newCORS(origins []string) *corsPolicy {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o != "" {
			allowed[o] = struct{}{}
		}
	}
	return &corsPolicy{allowed: allowed}
}

func (c *corsPolicy) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		_, ok := c.allowed[origin]

		if ok {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			if !ok {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			h := w.Header()
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
				h.Set("Access-Control-Allow-Headers", reqHeaders)
			} else {
				h.Set("Access-Control-Allow-Headers", "Content-Type")
			}
			h.Set("Access-Control-Max-Age", "3600")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "no-origin"
		}
		s.requestLogger(r).Info("request",
			zap.String("method", r.Method),
			zap.String("url", r.URL.RequestURI()),
			zap.String("origin", origin),
		)
		next.ServeHTTP(w, r)
	})
}

// recoverJSON turns a panic in a handler into the JSON 500 body clients
// expect instead of a dropped connection.
func (s *server) recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.requestLogger(r).Error("handler panic",
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
			s.writeServerError(w, fmt.Sprint(rec))
		}()
		next.ServeHTTP(w, r)
	})
}
