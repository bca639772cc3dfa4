// Package dynamo implements the remote store contract on top of DynamoDB.
// Records live in one table per entity kind, keyed by id, with a
// user_id-index GSI (hash user_id, range updated_at) for owner-scoped
// fetches.
package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// OwnerIndexName is the GSI used for owner-scoped queries.
const OwnerIndexName = "user_id-index"

// ClientConfig selects the DynamoDB endpoint and credentials.
type ClientConfig struct {
	Region    string
	Endpoint  string // optional, for local stacks
	AccessKey string // optional static credentials
	SecretKey string
}

// NewClient builds a DynamoDB client from the given settings, falling back
// to the default AWS credential chain when no static keys are set.
func NewClient(ctx context.Context, cc ClientConfig) (*dynamodb.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cc.Region),
	}
	if cc.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cc.AccessKey, cc.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	if cc.Endpoint != "" {
		cfg.BaseEndpoint = aws.String(cc.Endpoint)
	}

	return dynamodb.NewFromConfig(cfg), nil
}
