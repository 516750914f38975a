// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/config"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"q3p", "setup"},
			expected: []string{"q3p", "setup"},
		},
		{
			name:     "no duplicates",
			args:     []string{"q3p", "setup", "--output", "text", "--yes"},
			expected: []string{"q3p", "setup", "--output", "text", "--yes"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"q3p", "setup", "--region", "us-west-2", "--yes", "--region", "eu-west-1"},
			expected: []string{"q3p", "setup", "--yes", "--region", "eu-west-1"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"q3p", "setup", "--yes", "--export-users", "--yes"},
			expected: []string{"q3p", "setup", "--export-users", "--yes"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"q3p", "setup", "--output=json", "--yes", "--output=yaml"},
			expected: []string{"q3p", "setup", "--yes", "--output=yaml"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"q3p", "cleanup", "--bucket-name=a-bucket", "--bucket-name", "b-bucket"},
			expected: []string{"q3p", "cleanup", "--bucket-name", "b-bucket"},
		},
		{
			name:     "multiple different flags with duplicates",
			args:     []string{"q3p", "export-users", "--profile", "dev", "--output-file", "a.csv", "--profile", "prod", "--output-file", "b.csv"},
			expected: []string{"q3p", "export-users", "--profile", "prod", "--output-file", "b.csv"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"q3p", "completion", "bash", "--output", "json", "--output", "text"},
			expected: []string{"q3p", "completion", "bash", "--output", "text"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"q3p", "setup", "-b", "one-bucket", "-b", "two-bucket"},
			expected: []string{"q3p", "setup", "-b", "two-bucket"},
		},
		{
			name:     "short and long forms are different tokens",
			args:     []string{"q3p", "setup", "-b", "one-bucket", "--bucket-name", "two-bucket"},
			expected: []string{"q3p", "setup", "-b", "one-bucket", "--bucket-name", "two-bucket"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"q3p", "setup", "--output", "a", "--output", "b", "--output", "c"},
			expected: []string{"q3p", "setup", "--output", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := deduplicateFlags(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("deduplicateFlags(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestDeduplicateFlagsPreservesOrder(t *testing.T) {
	// Ensure non-duplicate flags maintain their relative order.
	args := []string{"q3p", "cleanup", "--confirm", "--color", "--titles"}
	result := deduplicateFlags(args)
	expected := []string{"q3p", "cleanup", "--confirm", "--color", "--titles"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Order not preserved: got %v, want %v", result, expected)
	}
}

func TestDeduplicateFlagsDoesNotMutateInput(t *testing.T) {
	args := []string{"q3p", "setup", "--region", "us-west-2", "--region", "us-east-2"}
	orig := append([]string{}, args...)
	_ = deduplicateFlags(args)

	if !reflect.DeepEqual(args, orig) {
		t.Errorf("input mutated: got %v, want %v", args, orig)
	}
}

func TestProcessSetOnly(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "q3p.yaml")
	content := `setup:
  prod:
    - --region us-west-2
    - --bucket-name prod-q-bucket
    - --export-users
cleanup:
  prod:
    - --bucket-name prod-q-bucket
`
	if err := os.WriteFile(cfg, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("Q3P_CFG_FILE", cfg)
	if _, err := config.Load(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no set",
			args:     []string{"q3p", "setup", "--yes"},
			expected: []string{"q3p", "setup", "--yes"},
		},
		{
			name:     "set expanded in place",
			args:     []string{"q3p", "setup", "@prod", "--yes"},
			expected: []string{"q3p", "setup", "--region", "us-west-2", "--bucket-name", "prod-q-bucket", "--export-users", "--yes"},
		},
		{
			name:     "set after flags",
			args:     []string{"q3p", "cleanup", "--confirm", "@prod"},
			expected: []string{"q3p", "cleanup", "--confirm", "--bucket-name", "prod-q-bucket"},
		},
		{
			name:     "unknown set is dropped",
			args:     []string{"q3p", "setup", "@nope", "--yes"},
			expected: []string{"q3p", "setup", "--yes"},
		},
		{
			name:     "too short",
			args:     []string{"q3p", "setup"},
			expected: []string{"q3p", "setup"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := processSetOnly(append([]string{}, tt.args...))
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("processSetOnly(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestProcessCommandArgs_FlagsOverrideSet(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "q3p.yaml")
	if err := os.WriteFile(cfg, []byte("setup:\n  prod:\n    - --region us-west-2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("Q3P_CFG_FILE", cfg)
	if _, err := config.Load(); err != nil {
		t.Fatal(err)
	}

	result := processCommandArgs([]string{"q3p", "setup", "@prod", "--region", "eu-west-1"})
	expected := []string{"q3p", "setup", "--region", "eu-west-1"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}

	args := []string{"q3p", "completion", "bash"}
	if result := processCommandArgs(args); !reflect.DeepEqual(result, args) {
		t.Errorf("completion args changed: %v", result)
	}
}

func TestHandleNakedCommand(t *testing.T) {
	if got := handleNakedCommand([]string{"q3p"}); !reflect.DeepEqual(got, []string{"q3p", "--help"}) {
		t.Errorf("got %v", got)
	}
	if got := handleNakedCommand([]string{"q3p", "setup"}); !reflect.DeepEqual(got, []string{"q3p", "setup"}) {
		t.Errorf("got %v", got)
	}
}

func TestHandleVersion(t *testing.T) {
	if handleVersion([]string{"q3p", "setup"}) {
		t.Error("expected no version handling")
	}
	if !handleVersion([]string{"q3p", "--version"}) {
		t.Error("expected --version to be handled")
	}
}
