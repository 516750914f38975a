// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders command results as text tables, JSON or YAML, and
// draws the banners shown around interactive steps.
package output
