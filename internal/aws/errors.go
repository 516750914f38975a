// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"errors"
	"slices"

	"github.com/aws/smithy-go"
)

// NotFoundCodes are the provider error codes that mean the resource is
// already gone. HeadBucket reports a bare 404 as "NotFound"; older paths
// surface the status code itself.
var NotFoundCodes = []string{
	"404",
	"NotFound",
	"NoSuchBucket",
	"NoSuchEntity",
	"TrailNotFoundException",
	"ResourceNotFoundException",
}

// AlreadyExistsCodes are the provider error codes that mean a create call
// found the resource in place.
var AlreadyExistsCodes = []string{
	"BucketAlreadyOwnedByYou",
	"EntityAlreadyExists",
	"ResourceConflictException",
	"TrailAlreadyExistsException",
}

// ErrorCode returns the provider error code carried by err, or "" when err is
// not an API error.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// ErrorMessage returns the provider message carried by err, falling back to
// err.Error().
func ErrorMessage(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// HasCode reports whether err is an API error with one of codes.
func HasCode(err error, codes ...string) bool {
	code := ErrorCode(err)
	return code != "" && slices.Contains(codes, code)
}

// IsNotFound reports whether err means the resource does not exist. Without
// explicit codes, NotFoundCodes is used.
func IsNotFound(err error, codes ...string) bool {
	if len(codes) == 0 {
		codes = NotFoundCodes
	}
	return HasCode(err, codes...)
}

// IsAlreadyExists reports whether err means the resource already exists.
func IsAlreadyExists(err error) bool {
	return HasCode(err, AlreadyExistsCodes...)
}
