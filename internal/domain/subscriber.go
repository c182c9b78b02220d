package domain

import (
	"regexp"
	"time"
)

// emailPart is a run of characters that are neither "@" nor whitespace. RE2's
// \s is ASCII only, so vertical tab, the Unicode space separators and the
// byte order mark are excluded explicitly.
const emailPart = `[^\s\x{0B}\p{Z}\x{FEFF}@]+`

// EmailPattern is the accepted shape of a signup address: local@domain.tld with
// no whitespace and exactly one "@".
var EmailPattern = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)

// SubscriptionRequest is the body accepted by the subscribe endpoint.
type SubscriptionRequest struct {
	Email string `json:"email" validate:"required,signup_email"`
}

// SubscriptionRecord is the row inserted into the external subscriber store.
type SubscriptionRecord struct {
	SubscriberID string    `json:"-" dynamodbav:"subscriber_id,omitempty"`
	Email        string    `json:"email" dynamodbav:"email"`
	SubscribedAt time.Time `json:"subscribed_at" dynamodbav:"subscribed_at"`
}

// NewSubscriptionRecord stamps email with the current UTC time.
func NewSubscriptionRecord(email string, now time.Time) *SubscriptionRecord {
	return &SubscriptionRecord{Email: email, SubscribedAt: now.UTC()}
}
