package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/waitlist-api/internal/application/subscription"
	"github.com/waitlist-api/internal/config"
	"github.com/waitlist-api/internal/infrastructure/awsenv"
	"github.com/waitlist-api/internal/infrastructure/dynamo"
	"github.com/waitlist-api/internal/infrastructure/mailtemplate"
	"github.com/waitlist-api/internal/infrastructure/metrics"
	"github.com/waitlist-api/internal/infrastructure/resend"
	"github.com/waitlist-api/internal/infrastructure/smtp"
	"github.com/waitlist-api/internal/infrastructure/sns"
	"github.com/waitlist-api/internal/infrastructure/supabase"
	"github.com/waitlist-api/internal/pkg/logger"
	transporthttp "github.com/waitlist-api/internal/transport/http"
	appmiddleware "github.com/waitlist-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

func main() {
	dotenvErr := godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "waitlist-api",
		Env:     cfg.AppEnv,
	})
	if dotenvErr != nil {
		log.Debug().Msg("no .env file found, reading from environment")
	}

	// Loaded at most once, and only when an AWS-backed component is enabled.
	awsConfig := sync.OnceValues(func() (aws.Config, error) {
		return awsenv.Load(context.Background(), cfg)
	})

	deps := &transporthttp.Deps{Logger: log}
	deps.Store = buildStore(cfg, awsConfig, log)
	deps.Mailer = buildMailer(cfg, log)
	deps.Announcer = buildAnnouncer(cfg, awsConfig, log)

	// A bad template override is logged and the embedded default is used.
	tmpl, err := mailtemplate.Load(cfg.EmailSubject, cfg.EmailTemplatePath)
	if err != nil {
		log.Warn().Err(err).Msg("email template override not usable, using default")
		tmpl = mailtemplate.Default(cfg.EmailSubject)
	}
	deps.Template = tmpl

	if cfg.MetricsEnabled {
		deps.Metrics = metrics.New()
	}
	if cfg.RateLimitRPS > 0 {
		deps.RateLimiter = appmiddleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
		defer deps.RateLimiter.Stop()
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.AppEnv).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		return
	}
	log.Info().Msg("server stopped")
}

// buildStore returns nil when the selected backend is not configured, which
// makes the subscribe flow log signups instead of storing them.
func buildStore(cfg *config.Config, awsConfig func() (aws.Config, error), log zerolog.Logger) subscription.SubscriberStore {
	switch cfg.StoreBackend {
	case config.StoreDynamo:
		awsCfg, err := awsConfig()
		if err != nil {
			log.Warn().Err(err).Msg("dynamo subscriber store not available")
			return nil
		}
		client := dynamo.NewClient(awsCfg, cfg)
		dynamo.Bootstrap(context.Background(), client, cfg.SubscribersTable, log)
		log.Info().Str("table", cfg.SubscribersTable).Msg("using dynamo subscriber store")
		return dynamo.NewSubscriberRepo(client, cfg.SubscribersTable)
	case config.StoreSupabase:
		if !cfg.SupabaseConfigured() {
			log.Warn().Msg("no database configured, set SUPABASE_URL and SUPABASE_KEY to store subscribers")
			return nil
		}
		log.Info().Str("table", cfg.SupabaseTable).Msg("using supabase subscriber store")
		return supabase.NewStore(cfg, &http.Client{})
	default:
		log.Warn().Str("backend", cfg.StoreBackend).Msg("unknown STORE_BACKEND, subscribers will only be logged")
		return nil
	}
}

func buildMailer(cfg *config.Config, log zerolog.Logger) subscription.EmailSender {
	switch {
	case cfg.ResendAPIKey != "":
		client, err := resend.NewClient(cfg, &http.Client{})
		if err != nil {
			log.Warn().Err(err).Msg("resend client not available, confirmation emails disabled")
			return nil
		}
		log.Info().Msg("confirmation emails via resend")
		return client
	case cfg.SMTPHost != "":
		log.Info().Str("host", cfg.SMTPHost).Msg("confirmation emails via smtp")
		return smtp.NewMailer(cfg)
	default:
		log.Info().Msg("no email provider configured, set RESEND_API_KEY to send confirmation emails")
		return nil
	}
}

func buildAnnouncer(cfg *config.Config, awsConfig func() (aws.Config, error), log zerolog.Logger) subscription.Announcer {
	if cfg.SNSTopicARN == "" {
		return nil
	}
	awsCfg, err := awsConfig()
	if err != nil {
		log.Warn().Err(err).Msg("SNS announcer not available")
		return nil
	}
	log.Info().Str("topic", cfg.SNSTopicARN).Msg("announcing signups via sns")
	return sns.NewAnnouncer(awsCfg, cfg)
}
