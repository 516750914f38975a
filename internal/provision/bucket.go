// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"
	"encoding/json"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	awsx "github.com/aws-samples/sample-amazon-q-logging-stats/internal/aws"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/log"
)

const (
	// TrailKeyPrefix is where CloudTrail writes inside the bucket.
	TrailKeyPrefix = "cloudtrail"

	qServicePrincipal          = "q.amazonaws.com"
	cloudTrailServicePrincipal = "cloudtrail.amazonaws.com"
)

// PolicyDocument is an IAM resource policy.
type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Statement is one policy statement. Action and Resource hold either a string
// or a []string, matching what the IAM grammar accepts.
type Statement struct {
	Sid       string                       `json:"Sid"`
	Effect    string                       `json:"Effect"`
	Principal map[string]string            `json:"Principal"`
	Action    any                          `json:"Action"`
	Resource  any                          `json:"Resource"`
	Condition map[string]map[string]string `json:"Condition,omitempty"`
}

// BucketPolicy returns the policy that lets Amazon Q read, list and write the
// bucket and lets CloudTrail check the bucket ACL and write under
// TrailKeyPrefix with the bucket-owner-full-control canned ACL.
func BucketPolicy(bucket string) PolicyDocument {
	bucketArn := "arn:aws:s3:::" + bucket
	return PolicyDocument{
		Version: "2012-10-17",
		Statement: []Statement{
			{
				Sid:       "AllowAmazonQAccess",
				Effect:    "Allow",
				Principal: map[string]string{"Service": qServicePrincipal},
				Action:    []string{"s3:GetObject", "s3:ListBucket", "s3:PutObject"},
				Resource:  []string{bucketArn, bucketArn + "/*"},
			},
			{
				Sid:       "AWSCloudTrailAclCheck",
				Effect:    "Allow",
				Principal: map[string]string{"Service": cloudTrailServicePrincipal},
				Action:    "s3:GetBucketAcl",
				Resource:  bucketArn,
			},
			{
				Sid:       "AWSCloudTrailWrite",
				Effect:    "Allow",
				Principal: map[string]string{"Service": cloudTrailServicePrincipal},
				Action:    "s3:PutObject",
				Resource:  bucketArn + "/" + TrailKeyPrefix + "/*",
				Condition: map[string]map[string]string{
					"StringEquals": {"s3:x-amz-acl": "bucket-owner-full-control"},
				},
			},
		},
	}
}

// BucketExists checks the bucket with HeadBucket. A not-found response is
// reported as (false, nil); any other failure is returned.
func (p *Provisioner) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := p.s3.HeadBucket(ctx, &s3v2.HeadBucketInput{Bucket: awsv2.String(bucket)})
	if err == nil {
		return true, nil
	}
	if awsx.IsNotFound(err, "404", "NotFound", "NoSuchBucket") {
		return false, nil
	}
	return false, err
}

// EnsureBucket creates the bucket if it is absent and then (re)applies
// BucketPolicy. us-east-1 must not be sent as a location constraint; every
// other region must be.
func (p *Provisioner) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := p.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}

	if exists {
		log.Infof("Bucket %s already exists", bucket)
	} else {
		input := &s3v2.CreateBucketInput{Bucket: awsv2.String(bucket)}
		if p.region != awsx.DefaultRegion {
			input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
				LocationConstraint: types.BucketLocationConstraint(p.region),
			}
		}
		if _, err := p.s3.CreateBucket(ctx, input); err != nil {
			if !awsx.IsAlreadyExists(err) {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
			log.Infof("Bucket %s already exists", bucket)
		} else {
			log.Infof("Created bucket: %s", bucket)
		}
	}

	doc, err := json.Marshal(BucketPolicy(bucket))
	if err != nil {
		return fmt.Errorf("failed to marshal bucket policy: %w", err)
	}

	if _, err := p.s3.PutBucketPolicy(ctx, &s3v2.PutBucketPolicyInput{
		Bucket: awsv2.String(bucket),
		Policy: awsv2.String(string(doc)),
	}); err != nil {
		return fmt.Errorf("failed to put policy on bucket %s: %w", bucket, err)
	}
	log.Infof("Updated bucket policy for %s with Amazon Q and CloudTrail permissions", bucket)

	return nil
}
