// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for q3p. It wires flags,
// validators, prompts, actions, and shell completion for subcommands.
package command
