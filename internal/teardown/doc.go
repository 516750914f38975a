// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package teardown removes the Amazon Q Developer export resources.
//
// Cleaner runs six steps in reverse provisioning order: schedule rules,
// Lambda functions, IAM roles, the CloudTrail trail, the bucket contents and
// finally the bucket. A resource that is already gone counts as done and any
// other failure is recorded in the Report before moving on. Nothing is
// retried.
//
// By default the trail targeted is q-developer-3p-trail-<bucket>, which is
// not the name setup uses. Set Cleaner.TrailName to reach the setup trail.
package teardown
