package dynamo

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waitlist-api/internal/config"
)

func TestClientOptions_EndpointOverride(t *testing.T) {
	assert.Empty(t, clientOptions(&config.Config{}))

	opts := clientOptions(&config.Config{AWSEndpointURL: "http://localhost:4566"})
	require.Len(t, opts, 1)
	var o dynamodb.Options
	opts[0](&o)
	require.NotNil(t, o.BaseEndpoint)
	assert.Equal(t, "http://localhost:4566", *o.BaseEndpoint)
}
