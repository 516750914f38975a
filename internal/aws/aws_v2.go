// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/identitystore"
	lambdasvc "github.com/aws/aws-sdk-go-v2/service/lambda"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/log"
)

// DefaultRegion is used when neither a flag nor the environment names one.
const DefaultRegion = "us-east-1"

// options holds optional overrides for AWS config loading.
type options struct {
	profile string
	region  string
	retryer func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS). Options can override
// profile, region, and retryer without changing callers.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("opts applied: profile=%s, region=%s", o.profile, o.region)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}
	log.Debugf("loadOpts built: len=%d", len(loadOpts))

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("config load err: err=%v", err)
		return awsv2.Config{}, err
	}
	log.Debugf("config loaded")
	return cfg, nil
}

// NewS3 constructs a v2 S3 client from the provided config. Additional service
// options can be supplied via optFns.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	client := s3v2.NewFromConfig(cfg, optFns...)
	log.Debugf("s3 client created")
	return client
}

// NewUploader wraps an S3 client in the transfer manager used for file
// uploads.
func NewUploader(client *s3v2.Client) *manager.Uploader {
	return manager.NewUploader(client)
}

// Clients bundles every service client the provisioning and teardown paths
// talk to. All are built from one config so they share region and
// credentials. IAM is global; the SDK resolves its endpoint regardless of
// region.
type Clients struct {
	Region        string
	S3            *s3v2.Client
	Uploader      *manager.Uploader
	CloudTrail    *cloudtrail.Client
	IAM           *iam.Client
	Lambda        *lambdasvc.Client
	EventBridge   *eventbridge.Client
	SSOAdmin      *ssoadmin.Client
	IdentityStore *identitystore.Client
	STS           *sts.Client
}

// NewClients constructs all service clients from cfg.
func NewClients(cfg awsv2.Config) *Clients {
	s3c := NewS3(cfg)
	c := &Clients{
		Region:        cfg.Region,
		S3:            s3c,
		Uploader:      NewUploader(s3c),
		CloudTrail:    cloudtrail.NewFromConfig(cfg),
		IAM:           iam.NewFromConfig(cfg),
		Lambda:        lambdasvc.NewFromConfig(cfg),
		EventBridge:   eventbridge.NewFromConfig(cfg),
		SSOAdmin:      ssoadmin.NewFromConfig(cfg),
		IdentityStore: identitystore.NewFromConfig(cfg),
		STS:           sts.NewFromConfig(cfg),
	}
	log.Debugf("service clients created: region=%s", cfg.Region)
	return c
}

// Connect loads config with opts and returns the client bundle. When no
// region is resolved from opts or the environment, DefaultRegion is used.
func Connect(ctx context.Context, opts ...Option) (*Clients, error) {
	cfg, err := LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	return NewClients(cfg), nil
}

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}
