package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/vital-sales-pro/internal/infra/http/middleware"
)

type RouterConfig struct {
	Leads    *LeadHandler
	AI       *AIHandler
	Prospect *ProspectHandler
	Sessions *SessionHandler
	Health   *HealthHandler

	// AILimiter throttles every endpoint that reaches the completion service.
	AILimiter      *middleware.RateLimiter
	AllowedOrigins []string
	AccessLog      bool
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.AccessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	limited := func(h http.HandlerFunc) http.Handler {
		if cfg.AILimiter == nil {
			return h
		}
		return cfg.AILimiter.Handler(h)
	}

	r.Get("/health", cfg.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", cfg.Leads.List)
		r.Post("/", cfg.Leads.Create)
		r.Get("/stats", cfg.Leads.Stats)
		r.Get("/{id}", cfg.Leads.Get)
	})

	r.Method(http.MethodPost, "/ai/analysis", limited(cfg.AI.Complete))

	r.Route("/prospect", func(r chi.Router) {
		r.Post("/search", cfg.Prospect.Search)
		r.Method(http.MethodPost, "/extract", limited(cfg.Prospect.Extract))
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", cfg.Sessions.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", cfg.Sessions.Get)
			r.Put("/auto-response", cfg.Sessions.SetAutoResponse)
			r.Post("/select", cfg.Sessions.SelectLead)
			r.Method(http.MethodPost, "/analysis", limited(cfg.Sessions.Analyze))
			r.Method(http.MethodPost, "/messages", limited(cfg.Sessions.SendMessage))
			r.Method(http.MethodPost, "/suggest", limited(cfg.Sessions.Suggest))
			r.Method(http.MethodPost, "/prospect", limited(cfg.Sessions.Prospect))
			r.Post("/candidates/promote", cfg.Sessions.Promote)
		})
	})

	return r
}
