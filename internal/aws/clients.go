// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/identitystore"
	lambdasvc "github.com/aws/aws-sdk-go-v2/service/lambda"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// BucketAPI is the S3 surface used to provision the export bucket.
type BucketAPI interface {
	HeadBucket(ctx context.Context, params *s3v2.HeadBucketInput, optFns ...func(*s3v2.Options)) (*s3v2.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3v2.CreateBucketInput, optFns ...func(*s3v2.Options)) (*s3v2.CreateBucketOutput, error)
	PutBucketPolicy(ctx context.Context, params *s3v2.PutBucketPolicyInput, optFns ...func(*s3v2.Options)) (*s3v2.PutBucketPolicyOutput, error)
}

// BucketCleanerAPI is the S3 surface used to empty and remove the bucket.
// It satisfies the SDK paginator client interfaces for ListObjectsV2 and
// ListObjectVersions.
type BucketCleanerAPI interface {
	HeadBucket(ctx context.Context, params *s3v2.HeadBucketInput, optFns ...func(*s3v2.Options)) (*s3v2.HeadBucketOutput, error)
	ListObjectsV2(ctx context.Context, params *s3v2.ListObjectsV2Input, optFns ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error)
	ListObjectVersions(ctx context.Context, params *s3v2.ListObjectVersionsInput, optFns ...func(*s3v2.Options)) (*s3v2.ListObjectVersionsOutput, error)
	DeleteObjects(ctx context.Context, params *s3v2.DeleteObjectsInput, optFns ...func(*s3v2.Options)) (*s3v2.DeleteObjectsOutput, error)
	DeleteBucket(ctx context.Context, params *s3v2.DeleteBucketInput, optFns ...func(*s3v2.Options)) (*s3v2.DeleteBucketOutput, error)
}

// ObjectPutAPI writes a single object from memory.
type ObjectPutAPI interface {
	PutObject(ctx context.Context, params *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// UploaderAPI streams a file through the S3 transfer manager.
type UploaderAPI interface {
	Upload(ctx context.Context, input *s3v2.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// TrailAPI is the CloudTrail surface used by setup.
type TrailAPI interface {
	DescribeTrails(ctx context.Context, params *cloudtrail.DescribeTrailsInput, optFns ...func(*cloudtrail.Options)) (*cloudtrail.DescribeTrailsOutput, error)
	CreateTrail(ctx context.Context, params *cloudtrail.CreateTrailInput, optFns ...func(*cloudtrail.Options)) (*cloudtrail.CreateTrailOutput, error)
	PutEventSelectors(ctx context.Context, params *cloudtrail.PutEventSelectorsInput, optFns ...func(*cloudtrail.Options)) (*cloudtrail.PutEventSelectorsOutput, error)
	StartLogging(ctx context.Context, params *cloudtrail.StartLoggingInput, optFns ...func(*cloudtrail.Options)) (*cloudtrail.StartLoggingOutput, error)
}

// TrailDeleteAPI is the CloudTrail surface used by teardown.
type TrailDeleteAPI interface {
	DeleteTrail(ctx context.Context, params *cloudtrail.DeleteTrailInput, optFns ...func(*cloudtrail.Options)) (*cloudtrail.DeleteTrailOutput, error)
}

// RoleDeleteAPI removes inline role policies and roles.
type RoleDeleteAPI interface {
	DeleteRolePolicy(ctx context.Context, params *iam.DeleteRolePolicyInput, optFns ...func(*iam.Options)) (*iam.DeleteRolePolicyOutput, error)
	DeleteRole(ctx context.Context, params *iam.DeleteRoleInput, optFns ...func(*iam.Options)) (*iam.DeleteRoleOutput, error)
}

// FunctionDeleteAPI removes Lambda functions.
type FunctionDeleteAPI interface {
	DeleteFunction(ctx context.Context, params *lambdasvc.DeleteFunctionInput, optFns ...func(*lambdasvc.Options)) (*lambdasvc.DeleteFunctionOutput, error)
}

// RuleDeleteAPI removes EventBridge schedule rules and their targets.
type RuleDeleteAPI interface {
	ListTargetsByRule(ctx context.Context, params *eventbridge.ListTargetsByRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListTargetsByRuleOutput, error)
	RemoveTargets(ctx context.Context, params *eventbridge.RemoveTargetsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.RemoveTargetsOutput, error)
	DeleteRule(ctx context.Context, params *eventbridge.DeleteRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DeleteRuleOutput, error)
}

// InstanceAPI lists IAM Identity Center instances.
type InstanceAPI interface {
	ListInstances(ctx context.Context, params *ssoadmin.ListInstancesInput, optFns ...func(*ssoadmin.Options)) (*ssoadmin.ListInstancesOutput, error)
}

// UserListAPI pages through identity store users.
type UserListAPI interface {
	ListUsers(ctx context.Context, params *identitystore.ListUsersInput, optFns ...func(*identitystore.Options)) (*identitystore.ListUsersOutput, error)
}

// CallerIdentityAPI reports the account the credentials belong to.
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

var (
	_ BucketAPI         = (*s3v2.Client)(nil)
	_ BucketCleanerAPI  = (*s3v2.Client)(nil)
	_ ObjectPutAPI      = (*s3v2.Client)(nil)
	_ UploaderAPI       = (*manager.Uploader)(nil)
	_ TrailAPI          = (*cloudtrail.Client)(nil)
	_ TrailDeleteAPI    = (*cloudtrail.Client)(nil)
	_ RoleDeleteAPI     = (*iam.Client)(nil)
	_ FunctionDeleteAPI = (*lambdasvc.Client)(nil)
	_ RuleDeleteAPI     = (*eventbridge.Client)(nil)
	_ InstanceAPI       = (*ssoadmin.Client)(nil)
	_ UserListAPI       = (*identitystore.Client)(nil)
	_ CallerIdentityAPI = (*sts.Client)(nil)

	_ s3v2.ListObjectsV2APIClient      = (BucketCleanerAPI)(nil)
	_ s3v2.ListObjectVersionsAPIClient = (BucketCleanerAPI)(nil)
)
