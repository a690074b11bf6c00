package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arielgp/salesfunnel-ai/internal/conversation"
	httpmiddleware "github.com/arielgp/salesfunnel-ai/internal/http/middleware"
	"github.com/arielgp/salesfunnel-ai/internal/leads"
	"github.com/arielgp/salesfunnel-ai/internal/webchat"
	"github.com/arielgp/salesfunnel-ai/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	ConversationHandler *conversation.Handler
	LeadsHandler        *leads.Handler
	WebchatHandler      *webchat.Handler
	MetricsHandler      http.Handler
	AdminAuthSecret     string
	CORSAllowedOrigins  []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}

	// The websocket endpoint stays outside the logging group so the response
	// writer keeps its Hijacker.
	if cfg.WebchatHandler != nil {
		r.Get("/ws", cfg.WebchatHandler.HandleWebSocket)
	}

	r.Group(func(public chi.Router) {
		if cfg.Logger != nil {
			public.Use(httpmiddleware.RequestLogger(cfg.Logger))
		}

		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		if cfg.ConversationHandler != nil {
			public.Route("/conversations", func(r chi.Router) {
				r.Post("/start", cfg.ConversationHandler.Start)
				r.Post("/turn", cfg.ConversationHandler.Turn)
			})
		}

		if cfg.LeadsHandler != nil {
			public.Route("/admin", func(admin chi.Router) {
				admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
				admin.Get("/leads", cfg.LeadsHandler.ListLeads)
				admin.Get("/leads/{leadID}", cfg.LeadsHandler.GetLead)
			})
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
