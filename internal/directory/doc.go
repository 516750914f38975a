// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package directory exports IAM Identity Center users to S3 as CSV.
//
// The exporter resolves the account's single Identity Center instance, pages
// through its identity store and writes one row per user:
//
//	UserId,Username,Email,GivenName,FamilyName
//
// The object lands at users/<file> in the target bucket. Exporter uploads
// from memory with PutObject; FileExporter stages a temporary file and
// uploads it with the S3 transfer manager.
package directory
