// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail/types"

	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/log"
)

// DefaultTrailName is the trail setup creates.
const DefaultTrailName = "QDeveloper3PTrail"

// selectorResourceTypes maps each advanced selector name to the data-event
// resource type it captures.
var selectorResourceTypes = []struct {
	name         string
	resourceType string
}{
	{"Log CodeWhisperer events", "AWS::CodeWhisperer::Profile"},
	{"Log Q Developer Integration events", "AWS::QDeveloper::Integration"},
	{"Log CodeWhisperer Customization events", "AWS::CodeWhisperer::Customization"},
}

// AdvancedEventSelectors returns one selector per Q Developer resource type,
// each matching data-category events only.
func AdvancedEventSelectors() []types.AdvancedEventSelector {
	selectors := make([]types.AdvancedEventSelector, 0, len(selectorResourceTypes))
	for _, s := range selectorResourceTypes {
		selectors = append(selectors, types.AdvancedEventSelector{
			Name: awsv2.String(s.name),
			FieldSelectors: []types.AdvancedFieldSelector{
				{Field: awsv2.String("eventCategory"), Equals: []string{"Data"}},
				{Field: awsv2.String("resources.type"), Equals: []string{s.resourceType}},
			},
		})
	}
	return selectors
}

// TrailExists reports whether DescribeTrails lists a trail called name.
func (p *Provisioner) TrailExists(ctx context.Context, name string) (bool, error) {
	out, err := p.cloudtrail.DescribeTrails(ctx, &cloudtrail.DescribeTrailsInput{})
	if err != nil {
		return false, err
	}
	for _, t := range out.TrailList {
		if awsv2.ToString(t.Name) == name {
			return true, nil
		}
	}
	return false, nil
}

// EnsureTrail creates the trail pointing at bucket if it does not exist, then
// applies AdvancedEventSelectors and starts logging. Selectors and
// StartLogging are sent every time; both are safe to repeat.
func (p *Provisioner) EnsureTrail(ctx context.Context, bucket, name string) error {
	if name == "" {
		name = DefaultTrailName
	}

	exists, err := p.TrailExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to describe trails: %w", err)
	}

	if exists {
		log.Infof("CloudTrail trail %s already exists", name)
	} else {
		if _, err := p.cloudtrail.CreateTrail(ctx, &cloudtrail.CreateTrailInput{
			Name:                    awsv2.String(name),
			S3BucketName:            awsv2.String(bucket),
			S3KeyPrefix:             awsv2.String(TrailKeyPrefix),
			IsMultiRegionTrail:      awsv2.Bool(true),
			EnableLogFileValidation: awsv2.Bool(true),
		}); err != nil {
			return fmt.Errorf("failed to create trail %s: %w", name, err)
		}
		log.Infof("Created CloudTrail trail: %s", name)
	}

	if _, err := p.cloudtrail.PutEventSelectors(ctx, &cloudtrail.PutEventSelectorsInput{
		TrailName:              awsv2.String(name),
		AdvancedEventSelectors: AdvancedEventSelectors(),
	}); err != nil {
		return fmt.Errorf("failed to put event selectors on %s: %w", name, err)
	}
	log.Infof("Configured data events for CloudTrail trail: %s", name)

	if _, err := p.cloudtrail.StartLogging(ctx, &cloudtrail.StartLoggingInput{
		Name: awsv2.String(name),
	}); err != nil {
		return fmt.Errorf("failed to start logging on %s: %w", name, err)
	}
	log.Infof("Started logging for CloudTrail trail: %s", name)

	return nil
}
