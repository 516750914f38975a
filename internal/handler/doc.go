// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package handler holds the Lambda entry points.
//
// Both handlers answer with an API Gateway proxy response: 400 when
// bucket_name is missing, 500 when the work failed and 200 otherwise. The
// JSON body echoes the effective parameters:
//
//	{"message": "...", "bucket_name": "b", "region": "us-east-1",
//	 "export_users": true, "output_file": "users.csv"}
//
//	{"message": "...", "bucket_name": "b", "region": "us-east-1",
//	 "output_file": "users.csv", "user_count": 2}
package handler
