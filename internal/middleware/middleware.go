package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws to h so that the first middleware is outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Timing adds an X-Processing-Time-Micros header to all responses.
// The value is the time from entering the middleware to sending the header.
func Timing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
			beforeHeader: func(h http.Header) {
				h.Set("X-Processing-Time-Micros", strconv.FormatInt(time.Since(start).Microseconds(), 10))
			},
		}

		next.ServeHTTP(sw, r)
	})
}

// Recover turns a panic in next into a plain 500 response.
func Recover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.ErrorContext(r.Context(), "panic serving request",
						"method", r.Method,
						"path", r.URL.Path,
						"panic", err,
					)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// AccessLog logs one line per request once the handler returns. clientIP
// extracts the caller's address as the application sees it.
func AccessLog(logger *slog.Logger, clientIP func(*http.Request) string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := wrap(w)

			next.ServeHTTP(sw, r)

			level := slog.LevelInfo
			if sw.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(r.Context(), level, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start),
				"client_ip", clientIP(r),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// RequestObserver receives per-request measurements.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, d time.Duration)
}

// Instrument reports every request to observer, labelled by routeOf(r).
func Instrument(observer RequestObserver, routeOf func(*http.Request) string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := routeOf(r)
			sw := wrap(w)

			next.ServeHTTP(sw, r)

			observer.ObserveRequest(route, r.Method, sw.status, time.Since(start))
		})
	}
}
