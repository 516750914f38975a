// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/log"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/meta"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/output"
)

// cleanupCommandAction lists what will be removed, asks for confirmation
// unless --confirm, and tears everything down. Individual resource failures
// are reported in the output and do not fail the command.
func cleanupCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "cleanup") {
		return nil
	}

	useNamespace("cleanup")

	if _, err := requireBucket(cmd); err != nil {
		return err
	}

	c, err := newCleaner(ctx, cmd)
	if err != nil {
		return err
	}
	if name := cmd.String("trail-name"); name != "" {
		c.TrailName = name
	}

	in, out := streams(m)
	opts := output.OptionsFrom(cmd)

	if !switchOn(cmd, "confirm") {
		output.Banner(out, "This will delete the following resources:", c.Plan(), opts)
		fmt.Fprintln(out, "This action cannot be undone!")

		ok, err := Confirm(in, out, "Are you sure you want to proceed?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cleanup cancelled.")
			return nil
		}
	}

	report := c.Run(ctx)

	if err := output.Spit(report, output.ReportTable(report), cmd, out); err != nil {
		return err
	}
	if opts.Format == "text" {
		output.Banner(out, "IMPORTANT: Manual steps required:", report.ManualSteps, opts)
	}
	return nil
}

// cleanupCommandBuilder constructs the cli.Command for "cleanup".
func cleanupCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "cleanup",
		Usage:     "delete the export resources",
		UsageText: "q3p cleanup --bucket-name NAME [options]",
		Flags: []cli.Flag{
			NewBucketFlag("cleanup", meta.Config.Source),
			&cli.BoolFlag{
				Name:  "confirm",
				Usage: "skip the confirmation prompt",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "trail-name",
				Usage: "trail to delete (default q-developer-3p-trail-<bucket>)",
			},
		},
		Action: cleanupCommandAction,
		Meta:   meta,
	}).Build()
}
