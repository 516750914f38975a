// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/log"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/meta"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/output"
)

// exportCommandAction writes the Identity Center user CSV to the bucket.
func exportCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "export-users") {
		return nil
	}

	useNamespace("export-users")

	bucket, err := requireBucket(cmd)
	if err != nil {
		return err
	}

	exporter, err := newExporter(ctx, cmd)
	if err != nil {
		return err
	}

	res, err := exporter.Export(ctx, bucket, cmd.String("output-file"))
	if err != nil {
		return err
	}

	_, out := streams(m)
	return output.Spit(res, output.ExportTable(bucket, res), cmd, out)
}

// exportCommandBuilder constructs the cli.Command for "export-users".
func exportCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "export-users",
		Usage:     "export IAM Identity Center users to the bucket as CSV",
		UsageText: "q3p export-users --bucket-name NAME [options]",
		Flags: []cli.Flag{
			NewBucketFlag("export-users", meta.Config.Source),
			NewOutputFileFlag("export-users", meta.Config.Source),
			NewFilterFlag("export-users", meta.Config.Source),
		},
		Action: exportCommandAction,
		Meta:   meta,
	}).Build()
}
