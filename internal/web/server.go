// Package web provides the HTTP server and handlers for the streamgraph UI.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/streamgraph/internal/chart"
	"github.com/JonMunkholm/streamgraph/internal/config"
	"github.com/JonMunkholm/streamgraph/internal/core"
	webmw "github.com/JonMunkholm/streamgraph/internal/web/middleware"
)

//go:embed static
var staticFiles embed.FS

// Server is the HTTP server for the streamgraph application.
type Server struct {
	service *core.Service
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server

	streamLayout  chart.Layout
	tooltipLayout chart.Layout

	limiters []*rateLimiter
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	s := &Server{
		service:       service,
		cfg:           cfg,
		router:        chi.NewRouter(),
		streamLayout:  chart.StreamLayout(cfg.Chart.Width, cfg.Chart.Height),
		tooltipLayout: chart.TooltipLayout(cfg.Chart.TooltipWidth, cfg.Chart.TooltipHeight),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(webmw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(sessionCookie(s.cfg.Session.CookieSecure))
	s.router.Use(webmw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
}

// setupRoutes configures all HTTP routes.
// Rate limits are attached per group: hover lookups have their own budget
// so pointer traffic cannot lock a client out of uploads and exports.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("static files: %v", err))
	}

	general := s.limit(s.cfg.Rate.RequestsPerMinute)

	s.router.Group(func(r chi.Router) {
		r.Use(general)
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
		r.Get("/", s.handleIndex)
		r.Get("/health", s.handleHealth)
	})

	s.router.Route("/api", func(r chi.Router) {
		// Upload gets its own, tighter budget on top of the general one.
		r.Group(func(r chi.Router) {
			r.Use(general, s.limit(s.cfg.Rate.UploadLimit))
			r.Post("/upload", s.handleUpload)
		})

		// Hover interaction. Hide is a constant patch and is never limited.
		r.With(s.limit(s.cfg.Rate.HoverLimit)).Get("/tooltip", s.handleTooltip)
		r.Post("/tooltip/hide", s.handleTooltipHide)

		// Read-only exports, optionally key protected
		r.Group(func(r chi.Router) {
			r.Use(general)
			r.Use(webmw.APIKeyAuth(&s.cfg.Security))
			r.Get("/chart.svg", s.handleChartSVG)
			r.Get("/chart.png", s.handleChartPNG)
			r.Get("/dataset", s.handleDataset)
			r.Get("/geometry", s.handleGeometry)
			r.Get("/entities", s.handleEntities)
		})
	})
}

// limit returns a per-IP limiter middleware allowing rate requests a minute,
// or a pass-through when rate limiting is disabled.
func (s *Server) limit(rate int) func(http.Handler) http.Handler {
	if !s.cfg.Rate.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return s.newRateLimiter(rate, time.Minute).middleware
}

// Start begins listening for HTTP requests on the configured address.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout, // 0 keeps SSE streams open
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and its background cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, rl := range s.limiters {
		rl.stop()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// datastarCDN serves the client runtime that applies SSE patches.
const datastarCDN = "https://cdn.jsdelivr.net"

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	csp := strings.Join([]string{
		"default-src 'self'",
		// datastar evaluates data-* expressions with the Function constructor
		"script-src 'self' " + datastarCDN + " 'unsafe-eval'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"connect-src 'self'",
	}, "; ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				w.Header().Set("Content-Security-Policy", csp)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// rateLimiter implements a simple fixed-window limiter per IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // requests per window
	window   time.Duration // time window
	done     chan struct{}
	once     sync.Once
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

// newRateLimiter creates a limiter owned by the server so Shutdown can stop
// its cleanup goroutine.
func (s *Server) newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		done:     make(chan struct{}),
	}
	go rl.cleanup()
	s.limiters = append(s.limiters, rl)
	return rl
}

// cleanup removes stale visitor entries every window.
func (rl *rateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
		}
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *rateLimiter) stop() {
	rl.once.Do(func() { close(rl.done) })
}

// allow checks if the request should be allowed and consumes a token if so.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		rl.visitors[ip] = &visitor{
			tokens:    rl.rate - 1,
			lastReset: time.Now(),
		}
		return true
	}

	if time.Since(v.lastReset) > rl.window {
		v.tokens = rl.rate - 1
		v.lastReset = time.Now()
		return true
	}

	if v.tokens <= 0 {
		return false
	}

	v.tokens--
	return true
}

// middleware returns an HTTP middleware that rate limits by IP.
// RemoteAddr has already been rewritten by TrustedRealIP.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}

		if !rl.allow(ip) {
			w.Header().Set("Retry-After", "60")
			respondErrorJSON(w, core.MapError(errRateLimited), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
