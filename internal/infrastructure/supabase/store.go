package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/waitlist-api/internal/config"
	"github.com/waitlist-api/internal/domain"
)

// maxErrorBody caps how much of an error response is read for logging and
// duplicate detection.
const maxErrorBody = 4 << 10

// Store inserts subscribers through the Supabase (PostgREST) REST API.
type Store struct {
	endpoint string
	key      string
	client   *http.Client
}

// NewStore returns a Store for cfg's project. client may be nil.
func NewStore(cfg *config.Config, client *http.Client) *Store {
	if client == nil {
		client = http.DefaultClient
	}
	return &Store{
		endpoint: fmt.Sprintf("%s/rest/v1/%s", cfg.SupabaseURL, cfg.SupabaseTable),
		key:      cfg.SupabaseKey,
		client:   client,
	}
}

// Insert issues a single insert of rec. A 409, or any error body mentioning
// "duplicate", is reported as domain.ErrConflict; every other failure wraps
// domain.ErrUpstream.
func (s *Store) Insert(ctx context.Context, rec *domain.SubscriptionRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal subscriber: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build supabase request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("supabase insert: %v: %w", err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode == http.StatusConflict || strings.Contains(string(msg), "duplicate") {
		return fmt.Errorf("email already subscribed: %w", domain.ErrConflict)
	}
	return fmt.Errorf("supabase insert: status %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(msg)), domain.ErrUpstream)
}
