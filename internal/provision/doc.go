// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package provision creates the resources Amazon Q Developer needs to export
// usage data: an S3 bucket whose policy lets Amazon Q and CloudTrail write to
// it, and a multi-region CloudTrail trail logging Q Developer data events
// into that bucket. Setup strings those steps together with the optional
// Identity Center user export.
//
// Every call is safe to repeat. Existing resources are detected and reused;
// the bucket policy and event selectors are always re-applied.
package provision
