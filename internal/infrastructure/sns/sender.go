package sns

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/waitlist-api/internal/config"
	"github.com/waitlist-api/internal/domain"
	"github.com/waitlist-api/internal/infrastructure/awsenv"
)

type publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Announcer publishes new-subscriber events to an SNS topic.
type Announcer struct {
	client   publisher
	topicARN string
}

// NewAnnouncer publishes to cfg.SNSTopicARN, through the LocalStack endpoint
// when one is configured.
func NewAnnouncer(awsCfg aws.Config, cfg *config.Config) *Announcer {
	return newAnnouncer(sns.NewFromConfig(awsCfg, clientOptions(cfg)...), cfg.SNSTopicARN)
}

func clientOptions(cfg *config.Config) []func(*sns.Options) {
	endpoint := awsenv.BaseEndpoint(cfg)
	if endpoint == nil {
		return nil
	}
	return []func(*sns.Options){func(o *sns.Options) { o.BaseEndpoint = endpoint }}
}

func newAnnouncer(client publisher, topicARN string) *Announcer {
	return &Announcer{client: client, topicARN: topicARN}
}

func (a *Announcer) Announce(ctx context.Context, ev domain.Announcement) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal announcement: %w", err)
	}
	_, err = a.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(a.topicARN),
		Subject:  aws.String("New waitlist subscriber"),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
