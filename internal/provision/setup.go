// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awsx "github.com/aws-samples/sample-amazon-q-logging-stats/internal/aws"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/directory"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/log"
)

// Provisioner owns the bucket and trail steps.
type Provisioner struct {
	s3         awsx.BucketAPI
	cloudtrail awsx.TrailAPI
	region     string
}

// NewProvisioner returns a Provisioner for region. An empty region means
// awsx.DefaultRegion.
func NewProvisioner(s3 awsx.BucketAPI, ct awsx.TrailAPI, region string) *Provisioner {
	if region == "" {
		region = awsx.DefaultRegion
	}
	return &Provisioner{s3: s3, cloudtrail: ct, region: region}
}

// UserExporter writes the Identity Center user list to the bucket.
// *directory.Exporter satisfies it with the in-memory upload and
// directory.FileExporter with the temp-file upload.
type UserExporter interface {
	Export(ctx context.Context, bucket, outputFile string) (directory.Result, error)
}

// ManualStep is invoked after the bucket is ready and before the trail is
// configured, so an operator can finish the Amazon Q console settings that
// have no API. A returned error aborts setup.
type ManualStep func(ctx context.Context, bucket string) error

// Options select what a Setup run does.
type Options struct {
	BucketName  string
	ExportUsers bool
	OutputFile  string
	TrailName   string
}

// Summary describes a finished setup run. ExportError is set when the
// optional user export failed; it never fails the run.
type Summary struct {
	BucketName  string           `json:"bucket_name" yaml:"bucket_name"`
	Region      string           `json:"region" yaml:"region"`
	AccountID   string           `json:"account_id,omitempty" yaml:"account_id,omitempty"`
	TrailName   string           `json:"trail_name" yaml:"trail_name"`
	TrailPrefix string           `json:"trail_prefix" yaml:"trail_prefix"`
	ExportUsers bool             `json:"export_users" yaml:"export_users"`
	Export      directory.Result `json:"export,omitempty" yaml:"export,omitempty"`
	ExportError string           `json:"export_error,omitempty" yaml:"export_error,omitempty"`
}

// Setup runs the provisioning sequence. Identity, Exporter and Manual are
// optional.
type Setup struct {
	*Provisioner
	Identity awsx.CallerIdentityAPI
	Exporter UserExporter
	Manual   ManualStep
}

// NewSetup wires a Setup from a client bundle. The exporter uploads from
// memory; callers wanting the temp-file variant replace Exporter.
func NewSetup(c *awsx.Clients) *Setup {
	return &Setup{
		Provisioner: NewProvisioner(c.S3, c.CloudTrail, c.Region),
		Identity:    c.STS,
		Exporter:    directory.NewExporter(c.SSOAdmin, c.IdentityStore, c.S3),
	}
}

// Run provisions the bucket, pauses for the manual step, provisions the
// trail and optionally exports users. Bucket, manual and trail failures abort
// the run and are returned; an export failure is logged and recorded in the
// summary only. Nothing already created is rolled back.
func (s *Setup) Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.OutputFile == "" {
		opts.OutputFile = directory.DefaultOutputFile
	}
	if opts.TrailName == "" {
		opts.TrailName = DefaultTrailName
	}

	summary := &Summary{
		BucketName:  opts.BucketName,
		Region:      s.region,
		TrailName:   opts.TrailName,
		TrailPrefix: fmt.Sprintf("%s/%s/", opts.BucketName, TrailKeyPrefix),
		ExportUsers: opts.ExportUsers,
	}

	log.Infof("Initializing Amazon Q Developer to 3P setup in %s", s.region)
	if s.Identity != nil {
		if out, err := s.Identity.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{}); err != nil {
			log.WithError(err).Warn("could not resolve caller account")
		} else {
			summary.AccountID = awsv2.ToString(out.Account)
			log.Infof("Running as account %s", summary.AccountID)
		}
	}

	log.Infof("Starting Amazon Q Developer to 3P setup...")

	if err := s.EnsureBucket(ctx, opts.BucketName); err != nil {
		log.Errorf("Error creating S3 bucket: %v", err)
		log.Errorf("Failed to create S3 bucket. Aborting setup.")
		return summary, err
	}

	if s.Manual != nil {
		if err := s.Manual(ctx, opts.BucketName); err != nil {
			return summary, fmt.Errorf("manual configuration step: %w", err)
		}
	}

	if err := s.EnsureTrail(ctx, opts.BucketName, opts.TrailName); err != nil {
		log.Errorf("Error setting up CloudTrail: %v", err)
		log.Errorf("Failed to setup CloudTrail. Aborting setup.")
		return summary, err
	}

	if opts.ExportUsers {
		if s.Exporter == nil {
			summary.ExportError = "no exporter configured"
			log.Errorf("Failed to export IAM Identity Center users: %s", summary.ExportError)
		} else {
			res, err := s.Exporter.Export(ctx, opts.BucketName, opts.OutputFile)
			summary.Export = res
			if err != nil {
				summary.ExportError = err.Error()
				log.WithError(err).Error("Failed to export IAM Identity Center users")
			}
		}
	}

	log.Infof("Setup completed successfully!")
	log.Infof("S3 bucket '%s' is configured for Amazon Q Developer data ingestion", opts.BucketName)
	log.Infof("CloudTrail is configured to log Q Developer events to '%s'", summary.TrailPrefix)
	if opts.ExportUsers && summary.ExportError == "" {
		log.Infof("IAM Identity Center users exported to s3://%s/%s", opts.BucketName, summary.Export.Key)
	}

	return summary, nil
}

// ConsoleURL is the Amazon Q Developer settings page.
const ConsoleURL = "https://us-east-1.console.aws.amazon.com/amazonq/developer/home?region=us-east-1#/settings?region=us-east-1"

// ManualInstructions lists the console steps an operator completes while
// setup is paused. Prompt logs and usage metrics go under q-developer/ in
// bucket.
func ManualInstructions(bucket string) []string {
	return []string{
		"Subscribe to Amazon Q Developer Pro",
		"Go to: " + ConsoleURL,
		fmt.Sprintf("Edit Preferences, enable prompt logging and set the S3 location to s3://%s/q-developer/prompt-logs/", bucket),
		fmt.Sprintf("Edit usage activity, enable 'Collect granular metrics per user' and set the S3 location to s3://%s/q-developer/metrics/", bucket),
	}
}
