// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"errors"
	"fmt"
	"testing"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func apiErr(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code + " message"}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "NoSuchEntity", ErrorCode(apiErr("NoSuchEntity")))
	assert.Equal(t, "NoSuchEntity", ErrorCode(fmt.Errorf("wrapped: %w", apiErr("NoSuchEntity"))))
	assert.Equal(t, "", ErrorCode(errors.New("plain")))
	assert.Equal(t, "", ErrorCode(nil))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "AccessDenied message", ErrorMessage(apiErr("AccessDenied")))
	assert.Equal(t, "plain", ErrorMessage(errors.New("plain")))
	assert.Equal(t, "", ErrorMessage(nil))
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		codes    []string
		expected bool
	}{
		{name: "head bucket 404", err: apiErr("NotFound"), expected: true},
		{name: "bare status", err: apiErr("404"), expected: true},
		{name: "typed s3 not found", err: &s3types.NotFound{}, expected: true},
		{name: "no such bucket", err: apiErr("NoSuchBucket"), expected: true},
		{name: "iam", err: apiErr("NoSuchEntity"), expected: true},
		{name: "trail", err: apiErr("TrailNotFoundException"), expected: true},
		{name: "lambda and events", err: apiErr("ResourceNotFoundException"), expected: true},
		{name: "access denied", err: apiErr("AccessDenied"), expected: false},
		{name: "plain error", err: errors.New("boom"), expected: false},
		{name: "nil", err: nil, expected: false},
		{name: "explicit codes match", err: apiErr("NoSuchEntity"), codes: []string{"NoSuchEntity"}, expected: true},
		{name: "explicit codes exclude", err: apiErr("NotFound"), codes: []string{"NoSuchEntity"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFound(tt.err, tt.codes...))
		})
	}
}

func TestIsAlreadyExists(t *testing.T) {
	assert.True(t, IsAlreadyExists(apiErr("BucketAlreadyOwnedByYou")))
	assert.True(t, IsAlreadyExists(apiErr("TrailAlreadyExistsException")))
	assert.False(t, IsAlreadyExists(apiErr("NoSuchBucket")))
	assert.False(t, IsAlreadyExists(errors.New("boom")))
}
