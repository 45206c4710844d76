package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog/log"
)

type Options struct {
	RequestTimeout time.Duration
	// RateLimit is requests per minute per client IP; 0 disables it.
	RateLimit int
	// TrustedProxies lists the peers (CIDRs or addresses) whose forwarding
	// headers are believed. Empty means RemoteAddr is always the client.
	TrustedProxies []string
}

type Server struct{ mux *chi.Mux }

func New(opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	trusted, err := ParseTrustedProxies(opts.TrustedProxies)
	if err != nil {
		log.Error().Err(err).Msg("ignoring trusted proxies")
		trusted = nil
	}
	m := chi.NewRouter()

	// all middlewares go before any routes are added
	m.Use(TrustedRealIP(trusted))
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(opts.RequestTimeout))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))
	if opts.RateLimit > 0 {
		m.Use(httprate.LimitByIP(opts.RateLimit, time.Minute))
	}

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
