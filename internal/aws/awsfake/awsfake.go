// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package awsfake provides in-memory stand-ins for the narrow client
// interfaces in internal/aws. Every fake records the operations it receives
// on a shared Recorder so tests can assert ordering across services. A nil
// hook returns an empty output and no error.
package awsfake

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/identitystore"
	lambdasvc "github.com/aws/aws-sdk-go-v2/service/lambda"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	awsx "github.com/aws-samples/sample-amazon-q-logging-stats/internal/aws"
)

// Recorder collects "Service.Operation" names in call order.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *Recorder) record(op string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, op)
}

// Calls returns a copy of the recorded operations.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Count returns how many times op was recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

// APIError returns a smithy API error with code and message.
func APIError(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message}
}

// Set bundles one fake per service, all sharing Rec.
type Set struct {
	Rec           *Recorder
	S3            *S3
	Uploader      *Uploader
	CloudTrail    *CloudTrail
	IAM           *IAM
	Lambda        *Lambda
	EventBridge   *EventBridge
	SSOAdmin      *SSOAdmin
	IdentityStore *IdentityStore
	STS           *STS
}

// NewSet returns a Set with no hooks installed.
func NewSet() *Set {
	rec := &Recorder{}
	return &Set{
		Rec:           rec,
		S3:            &S3{Rec: rec},
		Uploader:      &Uploader{Rec: rec},
		CloudTrail:    &CloudTrail{Rec: rec},
		IAM:           &IAM{Rec: rec},
		Lambda:        &Lambda{Rec: rec},
		EventBridge:   &EventBridge{Rec: rec},
		SSOAdmin:      &SSOAdmin{Rec: rec},
		IdentityStore: &IdentityStore{Rec: rec},
		STS:           &STS{Rec: rec},
	}
}

// S3 fakes every S3 operation the module uses.
type S3 struct {
	Rec *Recorder

	HeadBucketFn         func(*s3v2.HeadBucketInput) (*s3v2.HeadBucketOutput, error)
	CreateBucketFn       func(*s3v2.CreateBucketInput) (*s3v2.CreateBucketOutput, error)
	PutBucketPolicyFn    func(*s3v2.PutBucketPolicyInput) (*s3v2.PutBucketPolicyOutput, error)
	PutObjectFn          func(*s3v2.PutObjectInput) (*s3v2.PutObjectOutput, error)
	ListObjectsV2Fn      func(*s3v2.ListObjectsV2Input) (*s3v2.ListObjectsV2Output, error)
	ListObjectVersionsFn func(*s3v2.ListObjectVersionsInput) (*s3v2.ListObjectVersionsOutput, error)
	DeleteObjectsFn      func(*s3v2.DeleteObjectsInput) (*s3v2.DeleteObjectsOutput, error)
	DeleteBucketFn       func(*s3v2.DeleteBucketInput) (*s3v2.DeleteBucketOutput, error)
}

func (f *S3) HeadBucket(_ context.Context, in *s3v2.HeadBucketInput, _ ...func(*s3v2.Options)) (*s3v2.HeadBucketOutput, error) {
	f.Rec.record("S3.HeadBucket")
	if f.HeadBucketFn != nil {
		return f.HeadBucketFn(in)
	}
	return &s3v2.HeadBucketOutput{}, nil
}

func (f *S3) CreateBucket(_ context.Context, in *s3v2.CreateBucketInput, _ ...func(*s3v2.Options)) (*s3v2.CreateBucketOutput, error) {
	f.Rec.record("S3.CreateBucket")
	if f.CreateBucketFn != nil {
		return f.CreateBucketFn(in)
	}
	return &s3v2.CreateBucketOutput{}, nil
}

func (f *S3) PutBucketPolicy(_ context.Context, in *s3v2.PutBucketPolicyInput, _ ...func(*s3v2.Options)) (*s3v2.PutBucketPolicyOutput, error) {
	f.Rec.record("S3.PutBucketPolicy")
	if f.PutBucketPolicyFn != nil {
		return f.PutBucketPolicyFn(in)
	}
	return &s3v2.PutBucketPolicyOutput{}, nil
}

func (f *S3) PutObject(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	f.Rec.record("S3.PutObject")
	if f.PutObjectFn != nil {
		return f.PutObjectFn(in)
	}
	return &s3v2.PutObjectOutput{}, nil
}

func (f *S3) ListObjectsV2(_ context.Context, in *s3v2.ListObjectsV2Input, _ ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error) {
	f.Rec.record("S3.ListObjectsV2")
	if f.ListObjectsV2Fn != nil {
		return f.ListObjectsV2Fn(in)
	}
	return &s3v2.ListObjectsV2Output{}, nil
}

func (f *S3) ListObjectVersions(_ context.Context, in *s3v2.ListObjectVersionsInput, _ ...func(*s3v2.Options)) (*s3v2.ListObjectVersionsOutput, error) {
	f.Rec.record("S3.ListObjectVersions")
	if f.ListObjectVersionsFn != nil {
		return f.ListObjectVersionsFn(in)
	}
	return &s3v2.ListObjectVersionsOutput{}, nil
}

func (f *S3) DeleteObjects(_ context.Context, in *s3v2.DeleteObjectsInput, _ ...func(*s3v2.Options)) (*s3v2.DeleteObjectsOutput, error) {
	f.Rec.record("S3.DeleteObjects")
	if f.DeleteObjectsFn != nil {
		return f.DeleteObjectsFn(in)
	}
	return &s3v2.DeleteObjectsOutput{}, nil
}

func (f *S3) DeleteBucket(_ context.Context, in *s3v2.DeleteBucketInput, _ ...func(*s3v2.Options)) (*s3v2.DeleteBucketOutput, error) {
	f.Rec.record("S3.DeleteBucket")
	if f.DeleteBucketFn != nil {
		return f.DeleteBucketFn(in)
	}
	return &s3v2.DeleteBucketOutput{}, nil
}

// Uploader fakes the S3 transfer manager.
type Uploader struct {
	Rec      *Recorder
	UploadFn func(*s3v2.PutObjectInput) (*manager.UploadOutput, error)
}

func (f *Uploader) Upload(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.Rec.record("S3.Upload")
	if f.UploadFn != nil {
		return f.UploadFn(in)
	}
	return &manager.UploadOutput{}, nil
}

// CloudTrail fakes the trail operations.
type CloudTrail struct {
	Rec *Recorder

	DescribeTrailsFn    func(*cloudtrail.DescribeTrailsInput) (*cloudtrail.DescribeTrailsOutput, error)
	CreateTrailFn       func(*cloudtrail.CreateTrailInput) (*cloudtrail.CreateTrailOutput, error)
	PutEventSelectorsFn func(*cloudtrail.PutEventSelectorsInput) (*cloudtrail.PutEventSelectorsOutput, error)
	StartLoggingFn      func(*cloudtrail.StartLoggingInput) (*cloudtrail.StartLoggingOutput, error)
	DeleteTrailFn       func(*cloudtrail.DeleteTrailInput) (*cloudtrail.DeleteTrailOutput, error)
}

func (f *CloudTrail) DescribeTrails(_ context.Context, in *cloudtrail.DescribeTrailsInput, _ ...func(*cloudtrail.Options)) (*cloudtrail.DescribeTrailsOutput, error) {
	f.Rec.record("CloudTrail.DescribeTrails")
	if f.DescribeTrailsFn != nil {
		return f.DescribeTrailsFn(in)
	}
	return &cloudtrail.DescribeTrailsOutput{}, nil
}

func (f *CloudTrail) CreateTrail(_ context.Context, in *cloudtrail.CreateTrailInput, _ ...func(*cloudtrail.Options)) (*cloudtrail.CreateTrailOutput, error) {
	f.Rec.record("CloudTrail.CreateTrail")
	if f.CreateTrailFn != nil {
		return f.CreateTrailFn(in)
	}
	return &cloudtrail.CreateTrailOutput{}, nil
}

func (f *CloudTrail) PutEventSelectors(_ context.Context, in *cloudtrail.PutEventSelectorsInput, _ ...func(*cloudtrail.Options)) (*cloudtrail.PutEventSelectorsOutput, error) {
	f.Rec.record("CloudTrail.PutEventSelectors")
	if f.PutEventSelectorsFn != nil {
		return f.PutEventSelectorsFn(in)
	}
	return &cloudtrail.PutEventSelectorsOutput{}, nil
}

func (f *CloudTrail) StartLogging(_ context.Context, in *cloudtrail.StartLoggingInput, _ ...func(*cloudtrail.Options)) (*cloudtrail.StartLoggingOutput, error) {
	f.Rec.record("CloudTrail.StartLogging")
	if f.StartLoggingFn != nil {
		return f.StartLoggingFn(in)
	}
	return &cloudtrail.StartLoggingOutput{}, nil
}

func (f *CloudTrail) DeleteTrail(_ context.Context, in *cloudtrail.DeleteTrailInput, _ ...func(*cloudtrail.Options)) (*cloudtrail.DeleteTrailOutput, error) {
	f.Rec.record("CloudTrail.DeleteTrail")
	if f.DeleteTrailFn != nil {
		return f.DeleteTrailFn(in)
	}
	return &cloudtrail.DeleteTrailOutput{}, nil
}

// IAM fakes role teardown.
type IAM struct {
	Rec *Recorder

	DeleteRolePolicyFn func(*iam.DeleteRolePolicyInput) (*iam.DeleteRolePolicyOutput, error)
	DeleteRoleFn       func(*iam.DeleteRoleInput) (*iam.DeleteRoleOutput, error)
}

func (f *IAM) DeleteRolePolicy(_ context.Context, in *iam.DeleteRolePolicyInput, _ ...func(*iam.Options)) (*iam.DeleteRolePolicyOutput, error) {
	f.Rec.record("IAM.DeleteRolePolicy")
	if f.DeleteRolePolicyFn != nil {
		return f.DeleteRolePolicyFn(in)
	}
	return &iam.DeleteRolePolicyOutput{}, nil
}

func (f *IAM) DeleteRole(_ context.Context, in *iam.DeleteRoleInput, _ ...func(*iam.Options)) (*iam.DeleteRoleOutput, error) {
	f.Rec.record("IAM.DeleteRole")
	if f.DeleteRoleFn != nil {
		return f.DeleteRoleFn(in)
	}
	return &iam.DeleteRoleOutput{}, nil
}

// Lambda fakes function teardown.
type Lambda struct {
	Rec              *Recorder
	DeleteFunctionFn func(*lambdasvc.DeleteFunctionInput) (*lambdasvc.DeleteFunctionOutput, error)
}

func (f *Lambda) DeleteFunction(_ context.Context, in *lambdasvc.DeleteFunctionInput, _ ...func(*lambdasvc.Options)) (*lambdasvc.DeleteFunctionOutput, error) {
	f.Rec.record("Lambda.DeleteFunction")
	if f.DeleteFunctionFn != nil {
		return f.DeleteFunctionFn(in)
	}
	return &lambdasvc.DeleteFunctionOutput{}, nil
}

// EventBridge fakes schedule rule teardown.
type EventBridge struct {
	Rec *Recorder

	ListTargetsByRuleFn func(*eventbridge.ListTargetsByRuleInput) (*eventbridge.ListTargetsByRuleOutput, error)
	RemoveTargetsFn     func(*eventbridge.RemoveTargetsInput) (*eventbridge.RemoveTargetsOutput, error)
	DeleteRuleFn        func(*eventbridge.DeleteRuleInput) (*eventbridge.DeleteRuleOutput, error)
}

func (f *EventBridge) ListTargetsByRule(_ context.Context, in *eventbridge.ListTargetsByRuleInput, _ ...func(*eventbridge.Options)) (*eventbridge.ListTargetsByRuleOutput, error) {
	f.Rec.record("EventBridge.ListTargetsByRule")
	if f.ListTargetsByRuleFn != nil {
		return f.ListTargetsByRuleFn(in)
	}
	return &eventbridge.ListTargetsByRuleOutput{}, nil
}

func (f *EventBridge) RemoveTargets(_ context.Context, in *eventbridge.RemoveTargetsInput, _ ...func(*eventbridge.Options)) (*eventbridge.RemoveTargetsOutput, error) {
	f.Rec.record("EventBridge.RemoveTargets")
	if f.RemoveTargetsFn != nil {
		return f.RemoveTargetsFn(in)
	}
	return &eventbridge.RemoveTargetsOutput{}, nil
}

func (f *EventBridge) DeleteRule(_ context.Context, in *eventbridge.DeleteRuleInput, _ ...func(*eventbridge.Options)) (*eventbridge.DeleteRuleOutput, error) {
	f.Rec.record("EventBridge.DeleteRule")
	if f.DeleteRuleFn != nil {
		return f.DeleteRuleFn(in)
	}
	return &eventbridge.DeleteRuleOutput{}, nil
}

// SSOAdmin fakes Identity Center instance discovery.
type SSOAdmin struct {
	Rec             *Recorder
	ListInstancesFn func(*ssoadmin.ListInstancesInput) (*ssoadmin.ListInstancesOutput, error)
}

func (f *SSOAdmin) ListInstances(_ context.Context, in *ssoadmin.ListInstancesInput, _ ...func(*ssoadmin.Options)) (*ssoadmin.ListInstancesOutput, error) {
	f.Rec.record("SSOAdmin.ListInstances")
	if f.ListInstancesFn != nil {
		return f.ListInstancesFn(in)
	}
	return &ssoadmin.ListInstancesOutput{}, nil
}

// IdentityStore fakes user listing.
type IdentityStore struct {
	Rec         *Recorder
	ListUsersFn func(*identitystore.ListUsersInput) (*identitystore.ListUsersOutput, error)
}

func (f *IdentityStore) ListUsers(_ context.Context, in *identitystore.ListUsersInput, _ ...func(*identitystore.Options)) (*identitystore.ListUsersOutput, error) {
	f.Rec.record("IdentityStore.ListUsers")
	if f.ListUsersFn != nil {
		return f.ListUsersFn(in)
	}
	return &identitystore.ListUsersOutput{}, nil
}

// STS fakes caller identity.
type STS struct {
	Rec                 *Recorder
	GetCallerIdentityFn func(*sts.GetCallerIdentityInput) (*sts.GetCallerIdentityOutput, error)
}

func (f *STS) GetCallerIdentity(_ context.Context, in *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	f.Rec.record("STS.GetCallerIdentity")
	if f.GetCallerIdentityFn != nil {
		return f.GetCallerIdentityFn(in)
	}
	return &sts.GetCallerIdentityOutput{}, nil
}

var (
	_ awsx.BucketAPI         = (*S3)(nil)
	_ awsx.BucketCleanerAPI  = (*S3)(nil)
	_ awsx.ObjectPutAPI      = (*S3)(nil)
	_ awsx.UploaderAPI       = (*Uploader)(nil)
	_ awsx.TrailAPI          = (*CloudTrail)(nil)
	_ awsx.TrailDeleteAPI    = (*CloudTrail)(nil)
	_ awsx.RoleDeleteAPI     = (*IAM)(nil)
	_ awsx.FunctionDeleteAPI = (*Lambda)(nil)
	_ awsx.RuleDeleteAPI     = (*EventBridge)(nil)
	_ awsx.InstanceAPI       = (*SSOAdmin)(nil)
	_ awsx.UserListAPI       = (*IdentityStore)(nil)
	_ awsx.CallerIdentityAPI = (*STS)(nil)
)
