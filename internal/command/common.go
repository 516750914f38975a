// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/urfave/cli/v3"

	awsx "github.com/aws-samples/sample-amazon-q-logging-stats/internal/aws"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/config"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/directory"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/filters"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/log"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/meta"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/provision"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/teardown"
)

// ErrBucketRequired is returned when no bucket name was given by flag,
// environment or config file.
var ErrBucketRequired = errors.New("--bucket-name is required (or set Q3P_BUCKET_NAME)")

// Service factories. Tests replace them to run actions against fakes.
var (
	connect = awsx.Connect

	newSetup = func(ctx context.Context, cmd *cli.Command) (*provision.Setup, error) {
		c, err := connectFor(ctx, cmd)
		if err != nil {
			return nil, err
		}
		s := provision.NewSetup(c)
		s.Exporter = newFileExporter(c, cmd)
		return s, nil
	}

	newCleaner = func(ctx context.Context, cmd *cli.Command) (*teardown.Cleaner, error) {
		c, err := connectFor(ctx, cmd)
		if err != nil {
			return nil, err
		}
		return teardown.NewFromClients(c, cmd.String("bucket-name")), nil
	}

	newExporter = func(ctx context.Context, cmd *cli.Command) (provision.UserExporter, error) {
		c, err := connectFor(ctx, cmd)
		if err != nil {
			return nil, err
		}
		return newFileExporter(c, cmd), nil
	}
)

// newFileExporter stages the CSV on disk and uploads it with the transfer
// manager. --filter limits the exported users.
func newFileExporter(c *awsx.Clients, cmd *cli.Command) *directory.FileExporter {
	e := directory.NewExporter(c.SSOAdmin, c.IdentityStore, c.S3)
	e.Filters = filters.Parse(cmd.String("filter"))
	return directory.NewFileExporter(e, c.Uploader)
}

// connectFor loads AWS config honoring --profile and --region.
func connectFor(ctx context.Context, cmd *cli.Command) (*awsx.Clients, error) {
	var opts []awsx.Option
	if p := cmd.String("profile"); p != "" {
		opts = append(opts, awsx.WithProfile(p))
	}
	if r := cmd.String("region"); r != "" {
		opts = append(opts, awsx.WithRegion(r))
	}
	log.Debugf("connecting: profile=%s region=%s", cmd.String("profile"), cmd.String("region"))
	return connect(ctx, opts...)
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// streams returns the meta's terminal streams, defaulting to the process
// stdin and stdout.
func streams(m meta.Meta) (io.Reader, io.Writer) {
	in, out := m.Stdin, m.Stdout
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return in, out
}

// requireBucket returns the bucket name or ErrBucketRequired.
func requireBucket(cmd *cli.Command) (string, error) {
	b := cmd.String("bucket-name")
	if b == "" {
		return "", ErrBucketRequired
	}
	return b, nil
}

// switchOn reports the bool flag name. When the flag was not given on the
// command line, the subcommand's config section decides, e.g.
//
//	cleanup:
//	  confirm: true
func switchOn(cmd *cli.Command, name string) bool {
	if cmd.IsSet(name) {
		return cmd.Bool(name)
	}
	on, err := config.GetBool(configKey(name), cmd.Bool(name))
	if err != nil {
		log.WithError(err).Warnf("ignoring config value for --%s", name)
		return cmd.Bool(name)
	}
	return on
}

// useNamespace points config lookups at the subcommand's section.
func useNamespace(ns string) {
	config.Config.Namespace = ns
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr q3p <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "q3p", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}
