// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeFlags(t *testing.T) {
	common := []Flag{{ID: "region"}, {ID: "bucket-name"}}
	got := mergeFlags(common, []Flag{{ID: "confirm"}})

	var ids []string
	for _, f := range got {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"bucket-name", "confirm", "region"}, ids)
	assert.Equal(t, "region", common[0].ID)
}

func TestRun(t *testing.T) {
	docs := t.TempDir()
	tmpl := filepath.Join(docs, "templates")
	require.NoError(t, os.MkdirAll(tmpl, 0o755))

	for name, body := range map[string]string{
		"q3p.yaml": `common:
  flags:
    - {id: region, syntax: "-r, --region", description: AWS region}
subcommands:
  - id: cleanup
    short: Delete the export resources.
    examples:
      - {command: "q3p cleanup -b b", description: Ask first}
`,
		"q3p.md.tmpl":   "{{ .ID }} {{ .Version }} {{ .Date }}{{ range .Flags }} {{ .ID }}{{ end }}",
		"q3p.tldr.tmpl": "> {{ .Short }}{{ range .Examples }} `{{ .Command }}`{{ end }}",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpl, name), []byte(body), 0o600))
	}

	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	require.NoError(t, run(docs, "1.2.3", now))

	md, err := os.ReadFile(filepath.Join(docs, "commands", "cleanup.md"))
	require.NoError(t, err)
	assert.Equal(t, "cleanup 1.2.3 October 17, 2026 region", string(md))

	tldr, err := os.ReadFile(filepath.Join(docs, "tldr", "q3p-cleanup.md"))
	require.NoError(t, err)
	assert.Equal(t, "> Delete the export resources. `q3p cleanup -b b`", string(tldr))
}

func TestRun_MissingConfig(t *testing.T) {
	assert.Error(t, run(t.TempDir(), "dev", time.Now()))
}
