// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator re-checks values that may have arrived from the
// environment or config file, which bypass per-flag validators.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if r := c.String("region"); r != "" {
		if err := RegionValidator(r); err != nil {
			return fmt.Errorf("region %q: %w", r, err)
		}
	}
	if b := c.String("bucket-name"); b != "" {
		if err := BucketNameValidator(b); err != nil {
			return fmt.Errorf("bucket-name %q: %w", b, err)
		}
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "yaml"}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

var (
	bucketNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)
	regionRe     = regexp.MustCompile(`^[a-z]{2}(-gov|-iso[a-z]?)?-[a-z]+-[0-9]+$`)
)

// BucketNameValidator applies the S3 general purpose bucket naming rules.
func BucketNameValidator(value any) error {
	s, _ := value.(string)
	switch {
	case !bucketNameRe.MatchString(s):
		return errors.New("must be 3-63 characters of lowercase letters, digits, dots and hyphens, starting and ending with a letter or digit")
	case strings.Contains(s, ".."):
		return errors.New("must not contain two adjacent periods")
	case net.ParseIP(s) != nil:
		return errors.New("must not be formatted as an IP address")
	case strings.HasPrefix(s, "xn--"), strings.HasPrefix(s, "sthree-"):
		return errors.New("must not use a reserved prefix")
	case strings.HasSuffix(s, "-s3alias"), strings.HasSuffix(s, "--ol-s3"):
		return errors.New("must not use a reserved suffix")
	}
	return nil
}

// RegionValidator accepts names shaped like AWS regions.
func RegionValidator(value any) error {
	s, _ := value.(string)
	if !regionRe.MatchString(s) {
		return errors.New("must look like an AWS region, e.g. us-east-1")
	}
	return nil
}

// OutputFileValidator requires a bare file name so the object stays under
// users/.
func OutputFileValidator(value any) error {
	s, _ := value.(string)
	if s == "" || path.Base(s) != s || slices.Contains([]string{".", ".."}, s) || strings.ContainsRune(s, '\\') {
		return errors.New("must be a plain file name")
	}
	return nil
}
