// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package teardown

import (
	"context"
	"fmt"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	lambdasvc "github.com/aws/aws-sdk-go-v2/service/lambda"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dustin/go-humanize"

	awsx "github.com/aws-samples/sample-amazon-q-logging-stats/internal/aws"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/log"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/provision"
)

// RoleSpec names a role and the single inline policy attached to it.
type RoleSpec struct {
	Role   string
	Policy string
}

var (
	// DefaultRules are the schedule rules that trigger the Lambda functions.
	DefaultRules = []string{"QDeveloper3PSetupSchedule", "IAMIdentityCenterUserExtractSchedule"}

	// DefaultFunctions are the deployed Lambda functions.
	DefaultFunctions = []string{"QDeveloper3PSetup", "IAMIdentityCenterUserExtract"}

	// DefaultRoles are the Lambda execution roles.
	DefaultRoles = []RoleSpec{
		{Role: "lambda-q-developer-role", Policy: "QDeveloper3PPermissions"},
		{Role: "lambda-iam-identity-center-extract-role", Policy: "IAMIdentityCenterExtractPermissions"},
	}

	// ManualSteps are the console settings that have no API and must be
	// undone by hand.
	ManualSteps = []string{
		"Go to Amazon Q Developer console",
		"Disable prompt logging in Preferences",
		"Disable 'Collect granular metrics per user' in usage activity",
		"Remove S3 location configurations",
	}
)

// TrailNameFor returns the trail name cleanup targets for bucket when no
// explicit name is given. Setup creates provision.DefaultTrailName instead.
func TrailNameFor(bucket string) string {
	return "q-developer-3p-trail-" + bucket
}

// Cleaner removes everything setup and the Lambda deployment created. Each
// step tolerates resources that are already gone and carries on past
// failures.
type Cleaner struct {
	BucketName string
	Region     string
	TrailName  string
	Rules      []string
	Functions  []string
	Roles      []RoleSpec

	s3     awsx.BucketCleanerAPI
	trail  awsx.TrailDeleteAPI
	iam    awsx.RoleDeleteAPI
	lambda awsx.FunctionDeleteAPI
	events awsx.RuleDeleteAPI
}

// Clients groups the services a Cleaner calls.
type Clients struct {
	S3          awsx.BucketCleanerAPI
	CloudTrail  awsx.TrailDeleteAPI
	IAM         awsx.RoleDeleteAPI
	Lambda      awsx.FunctionDeleteAPI
	EventBridge awsx.RuleDeleteAPI
}

// New returns a Cleaner for bucket with the default resource names.
func New(bucket, region string, c Clients) *Cleaner {
	if region == "" {
		region = awsx.DefaultRegion
	}
	return &Cleaner{
		BucketName: bucket,
		Region:     region,
		TrailName:  TrailNameFor(bucket),
		Rules:      DefaultRules,
		Functions:  DefaultFunctions,
		Roles:      DefaultRoles,
		s3:         c.S3,
		trail:      c.CloudTrail,
		iam:        c.IAM,
		lambda:     c.Lambda,
		events:     c.EventBridge,
	}
}

// NewFromClients wires a Cleaner from a connected client bundle.
func NewFromClients(c *awsx.Clients, bucket string) *Cleaner {
	return New(bucket, c.Region, Clients{
		S3:          c.S3,
		CloudTrail:  c.CloudTrail,
		IAM:         c.IAM,
		Lambda:      c.Lambda,
		EventBridge: c.EventBridge,
	})
}

// Plan lists the resources Run will try to delete, one line each.
func (c *Cleaner) Plan() []string {
	roles := make([]string, 0, len(c.Roles))
	for _, r := range c.Roles {
		roles = append(roles, r.Role)
	}
	return []string{
		fmt.Sprintf("S3 bucket: %s (and ALL its contents)", c.BucketName),
		fmt.Sprintf("CloudTrail: %s", c.TrailName),
		fmt.Sprintf("Lambda functions: %s", strings.Join(c.Functions, ", ")),
		fmt.Sprintf("IAM roles: %s", strings.Join(roles, ", ")),
		fmt.Sprintf("EventBridge rules: %s", strings.Join(c.Rules, ", ")),
		fmt.Sprintf("Region: %s", c.Region),
	}
}

// Run executes every step in reverse provisioning order and returns what
// happened. It never stops early.
func (c *Cleaner) Run(ctx context.Context) *Report {
	log.Infof("Starting cleanup for Q Developer 3P integration...")
	log.Infof("Bucket: %s", c.BucketName)
	log.Infof("Region: %s", c.Region)

	steps := []struct {
		title string
		fn    func(context.Context) StepResult
	}{
		{"Deleting EventBridge rules", c.DeleteScheduleRules},
		{"Deleting Lambda functions", c.DeleteFunctions},
		{"Deleting IAM roles and policies", c.DeleteRoles},
		{"Deleting CloudTrail", c.DeleteTrail},
		{"Emptying S3 bucket", c.EmptyBucket},
		{"Deleting S3 bucket", c.DeleteBucket},
	}

	report := &Report{BucketName: c.BucketName, Region: c.Region, ManualSteps: ManualSteps}
	for i, s := range steps {
		log.Infof("%d. %s...", i+1, s.title)
		report.Steps = append(report.Steps, s.fn(ctx))
	}

	log.Infof("Cleanup completed!")
	log.Warnf("IMPORTANT: Manual steps required:")
	for i, m := range ManualSteps {
		log.Warnf("%d. %s", i+1, m)
	}

	return report
}

// DeleteScheduleRules detaches every target from each rule and deletes it.
func (c *Cleaner) DeleteScheduleRules(ctx context.Context) StepResult {
	res := StepResult{Step: "schedule-rules"}
	for _, rule := range c.Rules {
		outcome, detail := c.deleteRule(ctx, rule)
		res.add("eventbridge-rule", rule, outcome, detail)
	}
	return res
}

func (c *Cleaner) deleteRule(ctx context.Context, rule string) (Outcome, string) {
	targets, err := c.events.ListTargetsByRule(ctx, &eventbridge.ListTargetsByRuleInput{Rule: awsv2.String(rule)})
	if err != nil {
		return c.classify(err, "EventBridge rule", rule)
	}

	if len(targets.Targets) > 0 {
		ids := make([]string, 0, len(targets.Targets))
		for _, t := range targets.Targets {
			ids = append(ids, awsv2.ToString(t.Id))
		}
		if _, err := c.events.RemoveTargets(ctx, &eventbridge.RemoveTargetsInput{
			Rule: awsv2.String(rule),
			Ids:  ids,
		}); err != nil {
			return c.classify(err, "EventBridge rule", rule)
		}
		log.Infof("Removed targets from EventBridge rule: %s", rule)
	}

	if _, err := c.events.DeleteRule(ctx, &eventbridge.DeleteRuleInput{Name: awsv2.String(rule)}); err != nil {
		return c.classify(err, "EventBridge rule", rule)
	}
	log.Infof("Deleted EventBridge rule: %s", rule)
	return Deleted, ""
}

// DeleteFunctions deletes each Lambda function.
func (c *Cleaner) DeleteFunctions(ctx context.Context) StepResult {
	res := StepResult{Step: "functions"}
	for _, fn := range c.Functions {
		if _, err := c.lambda.DeleteFunction(ctx, &lambdasvc.DeleteFunctionInput{FunctionName: awsv2.String(fn)}); err != nil {
			outcome, detail := c.classify(err, "Lambda function", fn)
			res.add("lambda-function", fn, outcome, detail)
			continue
		}
		log.Infof("Deleted Lambda function: %s", fn)
		res.add("lambda-function", fn, Deleted, "")
	}
	return res
}

// DeleteRoles removes each role's inline policy and then the role. A policy
// failure is logged and the role delete is still attempted.
func (c *Cleaner) DeleteRoles(ctx context.Context) StepResult {
	res := StepResult{Step: "roles"}
	for _, r := range c.Roles {
		var detail string
		if _, err := c.iam.DeleteRolePolicy(ctx, &iam.DeleteRolePolicyInput{
			RoleName:   awsv2.String(r.Role),
			PolicyName: awsv2.String(r.Policy),
		}); err != nil {
			if !awsx.IsNotFound(err) {
				detail = fmt.Sprintf("policy %s: %s", r.Policy, awsx.ErrorMessage(err))
				log.Errorf("Error deleting policy %s: %v", r.Policy, err)
			}
		} else {
			log.Infof("Deleted inline policy %s from role %s", r.Policy, r.Role)
		}

		if _, err := c.iam.DeleteRole(ctx, &iam.DeleteRoleInput{RoleName: awsv2.String(r.Role)}); err != nil {
			outcome, msg := c.classify(err, "IAM role", r.Role)
			if detail != "" && msg != "" {
				msg = detail + "; " + msg
			} else if detail != "" {
				msg = detail
			}
			res.add("iam-role", r.Role, outcome, msg)
			continue
		}
		log.Infof("Deleted IAM role: %s", r.Role)
		res.add("iam-role", r.Role, Deleted, detail)
	}
	return res
}

// DeleteTrail deletes TrailName.
func (c *Cleaner) DeleteTrail(ctx context.Context) StepResult {
	res := StepResult{Step: "trail"}
	if c.TrailName != provision.DefaultTrailName {
		log.WithField("setup_trail", provision.DefaultTrailName).
			Warnf("Deleting trail %s, which is not the trail setup creates", c.TrailName)
	}

	if _, err := c.trail.DeleteTrail(ctx, &cloudtrail.DeleteTrailInput{Name: awsv2.String(c.TrailName)}); err != nil {
		outcome, detail := c.classify(err, "CloudTrail", c.TrailName)
		res.add("cloudtrail-trail", c.TrailName, outcome, detail)
		return res
	}
	log.Infof("Deleted CloudTrail: %s", c.TrailName)
	res.add("cloudtrail-trail", c.TrailName, Deleted, "")
	return res
}

// EmptyBucket deletes every current object and then every object version
// and delete marker, one DeleteObjects call per listed page. A failure to
// list versions is ignored since the bucket may never have been versioned.
func (c *Cleaner) EmptyBucket(ctx context.Context) StepResult {
	res := StepResult{Step: "empty-bucket"}

	if _, err := c.s3.HeadBucket(ctx, &s3v2.HeadBucketInput{Bucket: awsv2.String(c.BucketName)}); err != nil {
		outcome, detail := c.classify(err, "S3 bucket", c.BucketName)
		res.add("s3-objects", c.BucketName, outcome, detail)
		return res
	}

	deleted := 0

	objects := s3v2.NewListObjectsV2Paginator(c.s3, &s3v2.ListObjectsV2Input{Bucket: awsv2.String(c.BucketName)})
	for objects.HasMorePages() {
		page, err := objects.NextPage(ctx)
		if err != nil {
			log.Errorf("Error emptying S3 bucket %s: %v", c.BucketName, err)
			res.add("s3-objects", c.BucketName, Failed, awsx.ErrorMessage(err))
			return res
		}
		ids := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, o := range page.Contents {
			ids = append(ids, types.ObjectIdentifier{Key: o.Key})
		}
		n, err := c.deleteObjects(ctx, ids)
		deleted += n
		if err != nil {
			log.Errorf("Error emptying S3 bucket %s: %v", c.BucketName, err)
			res.add("s3-objects", c.BucketName, Failed, awsx.ErrorMessage(err))
			return res
		}
	}

	versions := s3v2.NewListObjectVersionsPaginator(c.s3, &s3v2.ListObjectVersionsInput{Bucket: awsv2.String(c.BucketName)})
	for versions.HasMorePages() {
		page, err := versions.NextPage(ctx)
		if err != nil {
			log.WithError(err).Debug("listing object versions failed, treating bucket as unversioned")
			break
		}
		ids := make([]types.ObjectIdentifier, 0, len(page.Versions)+len(page.DeleteMarkers))
		for _, v := range page.Versions {
			ids = append(ids, types.ObjectIdentifier{Key: v.Key, VersionId: v.VersionId})
		}
		for _, m := range page.DeleteMarkers {
			ids = append(ids, types.ObjectIdentifier{Key: m.Key, VersionId: m.VersionId})
		}
		n, err := c.deleteObjects(ctx, ids)
		deleted += n
		if err != nil {
			log.WithError(err).Debug("deleting object versions failed, treating bucket as unversioned")
			break
		}
	}

	log.Infof("Emptied S3 bucket %s (%s objects deleted)", c.BucketName, humanize.Comma(int64(deleted)))
	res.add("s3-objects", c.BucketName, Deleted, fmt.Sprintf("%d objects deleted", deleted))
	return res
}

// deleteObjects removes ids in one call and returns how many S3 reported
// as removed. Per-key errors are logged and not counted.
func (c *Cleaner) deleteObjects(ctx context.Context, ids []types.ObjectIdentifier) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	out, err := c.s3.DeleteObjects(ctx, &s3v2.DeleteObjectsInput{
		Bucket: awsv2.String(c.BucketName),
		Delete: &types.Delete{Objects: ids},
	})
	if err != nil {
		return 0, err
	}
	for _, e := range out.Errors {
		log.Errorf("Error deleting s3://%s/%s: %s", c.BucketName, awsv2.ToString(e.Key), awsv2.ToString(e.Message))
	}
	return len(ids) - len(out.Errors), nil
}

// DeleteBucket deletes the bucket itself. It must already be empty.
func (c *Cleaner) DeleteBucket(ctx context.Context) StepResult {
	res := StepResult{Step: "bucket"}
	if _, err := c.s3.DeleteBucket(ctx, &s3v2.DeleteBucketInput{Bucket: awsv2.String(c.BucketName)}); err != nil {
		outcome, detail := c.classify(err, "S3 bucket", c.BucketName)
		res.add("s3-bucket", c.BucketName, outcome, detail)
		return res
	}
	log.Infof("Deleted S3 bucket: %s", c.BucketName)
	res.add("s3-bucket", c.BucketName, Deleted, "")
	return res
}

// classify maps a delete error to Absent when the resource is already gone
// and to Failed otherwise, logging either way.
func (c *Cleaner) classify(err error, kind, name string) (Outcome, string) {
	if awsx.IsNotFound(err) {
		log.Infof("%s %s not found (already deleted)", kind, name)
		return Absent, ""
	}
	log.Errorf("Error deleting %s %s: %v", kind, name, err)
	return Failed, awsx.ErrorMessage(err)
}
