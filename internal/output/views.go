// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/directory"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/provision"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/teardown"
)

// SummaryTable renders a setup summary as key/value rows.
func SummaryTable(s *provision.Summary) Table {
	rows := [][]string{
		{"bucket", s.BucketName},
		{"region", s.Region},
		{"account", InterfaceToString(s.AccountID, "-")},
		{"trail", s.TrailName},
		{"trail prefix", s.TrailPrefix},
		{"export users", InterfaceToString(s.ExportUsers, "false")},
	}
	if s.ExportUsers {
		if s.ExportError != "" {
			rows = append(rows, []string{"export error", s.ExportError})
		} else {
			rows = append(rows, exportRows(s.BucketName, s.Export)...)
		}
	}

	return Table{
		Header: "Setup completed successfully!",
		Titles: []string{"SETTING", "VALUE"},
		Rows:   rows,
	}
}

// ExportTable renders a standalone user export.
func ExportTable(bucket string, res directory.Result) Table {
	return Table{
		Header: res.Message,
		Titles: []string{"SETTING", "VALUE"},
		Rows:   append([][]string{{"bucket", bucket}}, exportRows(bucket, res)...),
	}
}

func exportRows(bucket string, res directory.Result) [][]string {
	return [][]string{
		{"users exported", humanize.Comma(int64(res.UserCount))},
		{"size", humanize.Bytes(uint64(res.Bytes))},
		{"location", fmt.Sprintf("s3://%s/%s", bucket, res.Key)},
	}
}

// ReportTable renders one row per resource a cleanup touched.
func ReportTable(r *teardown.Report) Table {
	var rows [][]string
	for _, s := range r.Steps {
		for _, res := range s.Resources {
			rows = append(rows, []string{s.Step, res.Kind, res.Name, string(res.Outcome), InterfaceToString(res.Detail, "-")})
		}
	}

	footer := "Cleanup completed!"
	if n := len(r.Failures()); n > 0 {
		footer = fmt.Sprintf("Cleanup completed with %d %s.", n, plural(n, "failure", "failures"))
	}

	return Table{
		Header: fmt.Sprintf("Cleanup of %s in %s", r.BucketName, r.Region),
		Titles: []string{"STEP", "KIND", "NAME", "OUTCOME", "DETAIL"},
		Rows:   rows,
		Footer: footer,
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
