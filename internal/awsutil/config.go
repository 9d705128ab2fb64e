// Package awsutil provides utilities for loading AWS configuration.
package awsutil

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
)

// Load builds the SDK configuration for region. A non-empty AWS_ENDPOINT_URL
// reroutes every service client to that endpoint; the endpoint is also
// returned so S3 callers can switch on path-style addressing. Production
// leaves the variable unset and gets the default resolver chain.
func Load(ctx context.Context, region string) (aws.Config, string, error) {
	endpoint := os.Getenv("AWS_ENDPOINT_URL")
	if endpoint == "" {
		cfg, err := awsCfg.LoadDefaultConfig(ctx, awsCfg.WithRegion(region))
		return cfg, "", err
	}
	cfg, err := awsCfg.LoadDefaultConfig(ctx,
		awsCfg.WithRegion(region),
		awsCfg.WithEndpointResolverWithOptions(staticResolver(endpoint)),
	)
	return cfg, endpoint, err
}

// staticResolver points every service at one endpoint, hostname pinned.
func staticResolver(endpoint string) aws.EndpointResolverWithOptionsFunc {
	return func(service, region string, _ ...any) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               endpoint,
			HostnameImmutable: true,
			PartitionID:       "aws",
		}, nil
	}
}
