package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/waitlist-api/internal/domain"
	"github.com/waitlist-api/internal/infrastructure/mailtemplate"
	"github.com/waitlist-api/internal/pkg/validate"
)

// Outcome labels reported to the metrics recorder.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
	OutcomeSkipped   = "skipped"
)

// Notification channels reported to the metrics recorder.
const (
	ChannelEmail    = "email"
	ChannelAnnounce = "announce"
)

type Service interface {
	Subscribe(ctx context.Context, req domain.SubscriptionRequest) error
}

// SubscriberStore is the external system of record for signups.
type SubscriberStore interface {
	Insert(ctx context.Context, rec *domain.SubscriptionRecord) error
}

// EmailSender delivers a rendered confirmation email.
type EmailSender interface {
	Send(ctx context.Context, msg domain.Email) error
}

// Announcer publishes a new-subscriber event.
type Announcer interface {
	Announce(ctx context.Context, ev domain.Announcement) error
}

type outcomeRecorder interface {
	Subscription(outcome string)
	Notification(channel, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) Subscription(string) {}
func (noopRecorder) Notification(string, string) {}

// ServiceDeps wires the optional collaborators. A nil Store, Mailer or
// Announcer disables that step.
type ServiceDeps struct {
	Store     SubscriberStore
	Mailer    EmailSender
	Template  mailtemplate.Renderer
	From      string
	Announcer Announcer
	Metrics   outcomeRecorder
	Logger    zerolog.Logger
	Now       func() time.Time
}

type service struct {
	store     SubscriberStore
	mailer    EmailSender
	template  mailtemplate.Renderer
	from      string
	announcer Announcer
	metrics   outcomeRecorder
	log       zerolog.Logger
	now       func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		store:     deps.Store,
		mailer:    deps.Mailer,
		template:  deps.Template,
		from:      deps.From,
		announcer: deps.Announcer,
		metrics:   deps.Metrics,
		log:       deps.Logger.With().Str("component", "subscription").Logger(),
		now:       deps.Now,
	}
	if s.metrics == nil {
		s.metrics = noopRecorder{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.mailer != nil && s.template == nil {
		s.template = mailtemplate.Default("Welcome to the waitlist")
	}
	return s
}

// Subscribe validates req, records it in the store (or the log when no store
// is configured) and then attempts the confirmation email and announcement.
// Only validation and store errors are returned; delivery failures are logged.
func (s *service) Subscribe(ctx context.Context, req domain.SubscriptionRequest) error {
	if err := checkRequest(req); err != nil {
		s.metrics.Subscription(OutcomeInvalid)
		return err
	}

	rec := domain.NewSubscriptionRecord(req.Email, s.now())
	if err := s.record(ctx, rec); err != nil {
		return err
	}

	s.notify(ctx, rec.Email)
	s.announce(ctx, rec)
	s.metrics.Subscription(OutcomeSuccess)
	return nil
}

func checkRequest(req domain.SubscriptionRequest) error {
	tags, err := validate.FailedTags(req)
	if err != nil {
		return fmt.Errorf("validate subscription: %w", err)
	}
	switch tags["Email"] {
	case "":
		return nil
	case "required":
		return domain.ErrEmailRequired
	default:
		return domain.ErrInvalidEmail
	}
}

func (s *service) record(ctx context.Context, rec *domain.SubscriptionRecord) error {
	if s.store == nil {
		s.log.Info().
			Str("email", rec.Email).
			Time("subscribed_at", rec.SubscribedAt).
			Msg("new subscriber recorded in log only, no subscriber store configured")
		return nil
	}

	err := s.store.Insert(ctx, rec)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrConflict):
		s.metrics.Subscription(OutcomeDuplicate)
		s.log.Info().Str("email", rec.Email).Msg("email already subscribed")
		return err
	default:
		s.metrics.Subscription(OutcomeFailed)
		s.log.Error().Err(err).Str("email", rec.Email).Msg("subscriber store insert failed")
		if !errors.Is(err, domain.ErrUpstream) {
			err = fmt.Errorf("%w: %w", err, domain.ErrUpstream)
		}
		return fmt.Errorf("save subscriber: %w", err)
	}
}

// notify never returns an error and recovers provider panics, so a delivery
// problem cannot change an already decided outcome.
func (s *service) notify(ctx context.Context, to string) {
	if s.mailer == nil {
		s.metrics.Notification(ChannelEmail, OutcomeSkipped)
		s.log.Info().Msg("no email provider configured, skipping confirmation email")
		return
	}
	defer func() {
		if v := recover(); v != nil {
			s.metrics.Notification(ChannelEmail, OutcomeFailed)
			s.log.Error().Interface("panic", v).Str("email", to).Msg("confirmation email panicked")
		}
	}()

	subject, html, err := s.template.Render(to)
	if err == nil {
		err = s.mailer.Send(ctx, domain.Email{From: s.from, To: to, Subject: subject, HTML: html})
	}
	if err != nil {
		s.metrics.Notification(ChannelEmail, OutcomeFailed)
		s.log.Error().Err(err).Str("email", to).Msg("confirmation email failed")
		return
	}
	s.metrics.Notification(ChannelEmail, OutcomeSuccess)
	s.log.Debug().Str("email", to).Msg("confirmation email sent")
}

func (s *service) announce(ctx context.Context, rec *domain.SubscriptionRecord) {
	if s.announcer == nil {
		return
	}
	defer func() {
		if v := recover(); v != nil {
			s.metrics.Notification(ChannelAnnounce, OutcomeFailed)
			s.log.Error().Interface("panic", v).Msg("subscriber announcement panicked")
		}
	}()

	err := s.announcer.Announce(ctx, domain.Announcement{
		Email:        rec.Email,
		SubscribedAt: rec.SubscribedAt.Format(time.RFC3339),
	})
	if err != nil {
		s.metrics.Notification(ChannelAnnounce, OutcomeFailed)
		s.log.Warn().Err(err).Str("email", rec.Email).Msg("subscriber announcement failed")
		return
	}
	s.metrics.Notification(ChannelAnnounce, OutcomeSuccess)
}
