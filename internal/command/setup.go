// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/log"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/meta"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/output"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/provision"
)

// setupCommandAction provisions the bucket, pauses for the console step
// unless --yes, provisions the trail and optionally exports users. The run
// summary is emitted per --output.
func setupCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "setup") {
		return nil
	}

	useNamespace("setup")

	bucket, err := requireBucket(cmd)
	if err != nil {
		return err
	}

	s, err := newSetup(ctx, cmd)
	if err != nil {
		return err
	}

	in, out := streams(m)
	opts := output.OptionsFrom(cmd)

	if !switchOn(cmd, "yes") {
		s.Manual = func(_ context.Context, bucket string) error {
			output.Banner(out, "MANUAL STEP: Amazon Q Developer Configuration", provision.ManualInstructions(bucket), opts)
			return Pause(in, out, "After completing these steps, press Enter to continue...")
		}
	}

	summary, err := s.Run(ctx, provision.Options{
		BucketName:  bucket,
		ExportUsers: switchOn(cmd, "export-users"),
		OutputFile:  cmd.String("output-file"),
		TrailName:   cmd.String("trail-name"),
	})
	if err != nil {
		return err
	}

	return output.Spit(summary, output.SummaryTable(summary), cmd, out)
}

// setupCommandBuilder constructs the cli.Command for "setup".
func setupCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "setup",
		Usage:     "provision the bucket and trail for Amazon Q Developer export",
		UsageText: "q3p setup --bucket-name NAME [options]",
		Flags: []cli.Flag{
			NewBucketFlag("setup", meta.Config.Source),
			NewOutputFileFlag("setup", meta.Config.Source),
			NewFilterFlag("setup", meta.Config.Source),
			&cli.BoolFlag{
				Name:  "export-users",
				Usage: "export IAM Identity Center users to the bucket after setup",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "trail-name",
				Usage: "CloudTrail trail to create",
				Value: provision.DefaultTrailName,
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "skip the pause for the manual console step",
				Value:   false,
			},
		},
		Action: setupCommandAction,
		Meta:   meta,
	}).Build()
}
