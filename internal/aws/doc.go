// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS SDK v2 configuration, builds the service clients used
// by provisioning, export and teardown, and classifies provider errors. The
// narrow per-service interfaces let callers accept fakes in tests.
package aws
