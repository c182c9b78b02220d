package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/waitlist-api/internal/application/consensus"
	"github.com/waitlist-api/internal/application/subscription"
	"github.com/waitlist-api/internal/config"
	"github.com/waitlist-api/internal/transport/http/handler"
	appmiddleware "github.com/waitlist-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(appmiddleware.AccessLog(deps.Logger))
	r.Use(appmiddleware.RecoverJSON(deps.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	subDeps := subscription.ServiceDeps{
		Store:     deps.Store,
		Mailer:    deps.Mailer,
		Template:  deps.Template,
		From:      cfg.EmailFrom,
		Announcer: deps.Announcer,
		Logger:    deps.Logger,
	}
	var consensusSvc consensus.Service
	if deps.Metrics != nil {
		subDeps.Metrics = deps.Metrics
		consensusSvc = consensus.NewService(deps.Metrics)
	} else {
		consensusSvc = consensus.NewService(nil)
	}
	subscriptionSvc := subscription.NewService(subDeps)

	healthH := handler.NewHealthHandler()
	subscribeH := handler.NewSubscribeHandler(subscriptionSvc, deps.Logger)
	consensusH := handler.NewConsensusHandler(consensusSvc)

	r.Get("/health-check/{action}", healthH.Ping)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Handle("/subscribe", limitPost(deps.RateLimiter, http.HandlerFunc(subscribeH.Subscribe)))
		r.Get("/consensus", consensusH.Evaluate)
	})

	return r
}

// limitPost rate limits POST requests only, so OPTIONS and the method gate
// always answer.
func limitPost(rl *appmiddleware.RateLimiter, next http.Handler) http.Handler {
	if rl == nil {
		return next
	}
	limited := rl.Limit(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			limited.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
