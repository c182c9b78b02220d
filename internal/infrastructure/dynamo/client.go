package dynamo

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/waitlist-api/internal/config"
	"github.com/waitlist-api/internal/infrastructure/awsenv"
)

// NewClient creates a DynamoDB client. When cfg.AWSEndpointURL is set (LocalStack),
// it overrides the endpoint so all traffic goes to the local instance.
func NewClient(awsCfg aws.Config, cfg *config.Config) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg, clientOptions(cfg)...)
}

func clientOptions(cfg *config.Config) []func(*dynamodb.Options) {
	endpoint := awsenv.BaseEndpoint(cfg)
	if endpoint == nil {
		return nil
	}
	return []func(*dynamodb.Options){func(o *dynamodb.Options) { o.BaseEndpoint = endpoint }}
}
