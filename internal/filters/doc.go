// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects records with --filter expressions.
//
// A spec is a comma-delimited list (override the delimiter with
// Q3P_FILTER_DELIM) of key-operator-target expressions. Keys are gjson paths
// into the JSON form of the record, e.g. email or username for exported users.
//
// Operators, each negatable with a leading !:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : lexically less than
//   - > : lexically greater than
//   - @ : contains substring
//   - / : regular expression match
//
// Examples:
//
//   - "email@@example.com" : users with an example.com address
//   - "username!^svc-" : skip service accounts
//   - "family_name/^(A|B)" : family names starting with A or B
package filters
