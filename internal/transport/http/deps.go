package http

import (
	"github.com/rs/zerolog"
	"github.com/waitlist-api/internal/application/subscription"
	"github.com/waitlist-api/internal/infrastructure/mailtemplate"
	"github.com/waitlist-api/internal/infrastructure/metrics"
	appmiddleware "github.com/waitlist-api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router. Nil optional
// collaborators disable the corresponding behavior.
type Deps struct {
	Store       subscription.SubscriberStore
	Mailer      subscription.EmailSender
	Template    mailtemplate.Renderer
	Announcer   subscription.Announcer
	Metrics     *metrics.Recorder
	RateLimiter *appmiddleware.RateLimiter
	Logger      zerolog.Logger
}
