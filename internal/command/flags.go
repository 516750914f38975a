// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/directory"
)

func newTLDRFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewGlobalFlags returns the flags every AWS-facing subcommand carries. ns
// and path namespace the config file lookups for profile and region.
func NewGlobalFlags(ns string, path string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   true,
		},
		NewProfileFlag(ns, path),
		NewRegionFlag(ns, path),
		newTLDRFlag(),
	}

	return
}

// NewBucketFlag constructs the "bucket-name" flag, optionally namespaced to a
// command and config file.
func NewBucketFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "bucket-name",
		Aliases: []string{"b"},
		Usage:   "S3 bucket that receives Amazon Q Developer data",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("Q3P_BUCKET_NAME"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, BucketNameValidator)
		},
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewRegionFlag constructs the "region" flag. Q3P_REGION wins over the
// standard AWS_REGION.
func NewRegionFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "region",
		Aliases: []string{"r"},
		Usage:   "AWS region",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("Q3P_REGION"),
			cli.EnvVar("AWS_REGION"),
		),
		Value: "us-east-1",
		Validator: func(value string) error {
			return FlagValidators(value, RegionValidator)
		},
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewProfileFlag constructs the "profile" flag for the shared AWS config.
func NewProfileFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "AWS shared config profile",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWS_PROFILE"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewOutputFileFlag constructs the "output-file" flag naming the CSV written
// under users/ in the bucket.
func NewOutputFileFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "output-file",
		Aliases: []string{"f"},
		Usage:   "name of the user CSV written under users/ in the bucket",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("Q3P_OUTPUT_FILE"),
		),
		Value: directory.DefaultOutputFile,
		Validator: func(value string) error {
			return FlagValidators(value, OutputFileValidator)
		},
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewFilterFlag constructs the "filter" flag selecting which users are
// exported.
func NewFilterFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "filter",
		Usage: "comma-separated list of filters selecting exported users, e.g. email@@example.com",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("Q3P_FILTER"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain. An empty path adds nothing.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	if path == "" {
		return flag
	}

	key := configKey(flag.Name)

	src := yaml.YAML(ns+"."+key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// configKey maps a flag name to its config file key: bucket-name becomes
// bucket_name.
func configKey(name string) string {
	b := []byte(name)
	for i, c := range b {
		if c == '-' {
			b[i] = '_'
		}
	}
	return string(b)
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
