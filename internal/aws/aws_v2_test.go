// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOptions verifies that each option sets its field.
func TestOptions(t *testing.T) {
	var opts options
	WithProfile("my-profile")(&opts)
	WithRegion("eu-west-1")(&opts)
	WithRetryer(func() awsv2.Retryer { return retry.NewStandard() })(&opts)

	assert.Equal(t, "my-profile", opts.profile)
	assert.Equal(t, "eu-west-1", opts.region)
	require.NotNil(t, opts.retryer)
	assert.NotNil(t, opts.retryer())
}

// TestLoadAWSConfig_WithRegion verifies that the region option is applied
// during config loading.
func TestLoadAWSConfig_WithRegion(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-west-2"))

	assert.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)
}

// TestLoadAWSConfig_OptionsOrder verifies that later options override
// earlier ones.
func TestLoadAWSConfig_OptionsOrder(t *testing.T) {
	cfg, err := LoadAWSConfig(
		context.Background(),
		WithRegion("us-east-1"),
		WithRegion("eu-west-1"),
	)

	assert.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)
}

// TestNewS3_BasicConstruction verifies that NewS3 constructs an S3 client
// from a valid config.
func TestNewS3_BasicConstruction(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-east-1"))
	require.NoError(t, err)

	client := NewS3(cfg)

	assert.IsType(t, &s3v2.Client{}, client)
}

// TestNewClients verifies that every client in the bundle is built and the
// bundle carries the config region.
func TestNewClients(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("ap-southeast-2"))
	require.NoError(t, err)

	c := NewClients(cfg)

	assert.Equal(t, "ap-southeast-2", c.Region)
	assert.NotNil(t, c.S3)
	assert.NotNil(t, c.Uploader)
	assert.NotNil(t, c.CloudTrail)
	assert.NotNil(t, c.IAM)
	assert.NotNil(t, c.Lambda)
	assert.NotNil(t, c.EventBridge)
	assert.NotNil(t, c.SSOAdmin)
	assert.NotNil(t, c.IdentityStore)
	assert.NotNil(t, c.STS)
}

// TestConnect_DefaultRegion verifies the fallback region when nothing in the
// environment names one.
func TestConnect_DefaultRegion(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent/aws/config")
	t.Setenv("AWS_PROFILE", "")

	c, err := Connect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, c.Region)
}

// TestConnect_RegionOverride verifies that an explicit region wins.
func TestConnect_RegionOverride(t *testing.T) {
	c, err := Connect(context.Background(), WithRegion("us-west-2"))

	require.NoError(t, err)
	assert.Equal(t, "us-west-2", c.Region)
}
