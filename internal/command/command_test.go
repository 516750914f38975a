// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	"github.com/aws/aws-sdk-go-v2/service/identitystore"
	idtypes "github.com/aws/aws-sdk-go-v2/service/identitystore/types"
	"github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	ssotypes "github.com/aws/aws-sdk-go-v2/service/ssoadmin/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/aws/awsfake"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/directory"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/filters"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/meta"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/provision"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/teardown"
)

// useFakes points the service factories at fakes for the duration of t and
// isolates the run from any config file or AWS env on the host.
func useFakes(t *testing.T) *awsfake.Set {
	t.Helper()

	t.Setenv("Q3P_CFG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	for _, k := range []string{"Q3P_FILTER", "Q3P_BUCKET_NAME", "Q3P_REGION", "Q3P_OUTPUT_FILE", "AWS_REGION", "AWS_PROFILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	set := awsfake.NewSet()
	exporter := func(cmd *cli.Command) *directory.FileExporter {
		e := directory.NewExporter(set.SSOAdmin, set.IdentityStore, set.S3)
		e.Filters = filters.Parse(cmd.String("filter"))
		return directory.NewFileExporter(e, set.Uploader)
	}

	origSetup, origCleaner, origExporter := newSetup, newCleaner, newExporter
	t.Cleanup(func() {
		newSetup, newCleaner, newExporter = origSetup, origCleaner, origExporter
	})

	newSetup = func(_ context.Context, cmd *cli.Command) (*provision.Setup, error) {
		return &provision.Setup{
			Provisioner: provision.NewProvisioner(set.S3, set.CloudTrail, cmd.String("region")),
			Identity:    set.STS,
			Exporter:    exporter(cmd),
		}, nil
	}
	newCleaner = func(_ context.Context, cmd *cli.Command) (*teardown.Cleaner, error) {
		return teardown.New(cmd.String("bucket-name"), cmd.String("region"), teardown.Clients{
			S3:          set.S3,
			CloudTrail:  set.CloudTrail,
			IAM:         set.IAM,
			Lambda:      set.Lambda,
			EventBridge: set.EventBridge,
		}), nil
	}
	newExporter = func(_ context.Context, cmd *cli.Command) (provision.UserExporter, error) {
		return exporter(cmd), nil
	}

	return set
}

// runApp builds the app, swaps the terminal streams on every subcommand and
// runs args. It returns what was written to stdout.
func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	args = append([]string{"q3p"}, args...)
	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	var out strings.Builder
	for _, cmd := range app.Commands {
		m := cmd.Metadata["meta"].(meta.Meta)
		m.Stdin = strings.NewReader(stdin)
		m.Stdout = &out
		cmd.Metadata["meta"] = m
	}

	err = app.Run(context.Background(), args)
	return out.String(), err
}

func stubDirectory(set *awsfake.Set) {
	set.SSOAdmin.ListInstancesFn = func(*ssoadmin.ListInstancesInput) (*ssoadmin.ListInstancesOutput, error) {
		return &ssoadmin.ListInstancesOutput{Instances: []ssotypes.InstanceMetadata{{
			InstanceArn:     awsv2.String("arn:aws:sso:::instance/ssoins-1"),
			IdentityStoreId: awsv2.String("d-12345"),
		}}}, nil
	}
	set.IdentityStore.ListUsersFn = func(*identitystore.ListUsersInput) (*identitystore.ListUsersOutput, error) {
		return &identitystore.ListUsersOutput{Users: []idtypes.User{
			{UserId: awsv2.String("u-1"), UserName: awsv2.String("alice")},
			{UserId: awsv2.String("u-2"), UserName: awsv2.String("bob")},
		}}, nil
	}
}

func TestInitApp_Commands(t *testing.T) {
	useFakes(t)

	app, err := InitApp(context.Background(), []string{"q3p", "setup"})
	require.NoError(t, err)

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"setup", "cleanup", "export-users", "completion"}, names)

	setup := app.Command("setup")
	require.NotNil(t, setup)
	for i := 1; i < len(setup.Flags); i++ {
		assert.LessOrEqual(t, setup.Flags[i-1].Names()[0], setup.Flags[i].Names()[0])
	}
}

func TestSetupCommand_SkipPause(t *testing.T) {
	set := useFakes(t)

	out, err := runApp(t, "", "setup", "-b", "my-q-bucket", "--yes", "-o", "json")
	require.NoError(t, err)

	assert.Equal(t, "my-q-bucket", gjson.Get(out, "bucket_name").String())
	assert.Equal(t, "us-east-1", gjson.Get(out, "region").String())
	assert.Equal(t, provision.DefaultTrailName, gjson.Get(out, "trail_name").String())
	assert.Equal(t, "my-q-bucket/cloudtrail/", gjson.Get(out, "trail_prefix").String())
	assert.False(t, gjson.Get(out, "export_users").Bool())

	assert.Equal(t, 1, set.Rec.Count("CloudTrail.StartLogging"))
	assert.Zero(t, set.Rec.Count("SSOAdmin.ListInstances"))
	assert.NotContains(t, out, "MANUAL STEP")
}

func TestSetupCommand_PausesForManualStep(t *testing.T) {
	set := useFakes(t)

	out, err := runApp(t, "\n", "setup", "-b", "my-q-bucket")
	require.NoError(t, err)

	assert.Contains(t, out, "MANUAL STEP: Amazon Q Developer Configuration")
	assert.Contains(t, out, "s3://my-q-bucket/q-developer/prompt-logs/")
	assert.Contains(t, out, "s3://my-q-bucket/q-developer/metrics/")
	assert.Contains(t, out, "press Enter to continue")
	assert.Equal(t, 1, set.Rec.Count("CloudTrail.CreateTrail"))
}

func TestSetupCommand_ClosedStdinStopsBeforeTrail(t *testing.T) {
	set := useFakes(t)

	_, err := runApp(t, "", "setup", "-b", "my-q-bucket")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoInput)

	assert.Equal(t, 1, set.Rec.Count("S3.HeadBucket"))
	assert.Zero(t, set.Rec.Count("CloudTrail.DescribeTrails"))
}

func TestSetupCommand_ExportUsers(t *testing.T) {
	set := useFakes(t)
	stubDirectory(set)

	out, err := runApp(t, "", "setup", "-b", "my-q-bucket", "-y", "--export-users", "-f", "team.csv", "-o", "json")
	require.NoError(t, err)

	assert.True(t, gjson.Get(out, "export_users").Bool())
	assert.Equal(t, int64(2), gjson.Get(out, "export.user_count").Int())
	assert.Equal(t, "users/team.csv", gjson.Get(out, "export.key").String())
	assert.False(t, gjson.Get(out, "export_error").Exists())
	assert.Equal(t, 1, set.Rec.Count("S3.Upload"))
}

func TestSetupCommand_TrailNameFlag(t *testing.T) {
	set := useFakes(t)

	var created string
	set.CloudTrail.CreateTrailFn = func(in *cloudtrail.CreateTrailInput) (*cloudtrail.CreateTrailOutput, error) {
		created = awsv2.ToString(in.Name)
		return &cloudtrail.CreateTrailOutput{}, nil
	}

	_, err := runApp(t, "", "setup", "-b", "my-q-bucket", "-y", "--trail-name", "team-trail", "-o", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "team-trail", created)
}

func TestSetupCommand_BucketFromConfigFile(t *testing.T) {
	useFakes(t)

	cfg := filepath.Join(t.TempDir(), "q3p.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("setup:\n  bucket_name: cfg-bucket\n"), 0o600))
	t.Setenv("Q3P_CFG_FILE", cfg)

	out, err := runApp(t, "", "setup", "-y", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "cfg-bucket", gjson.Get(out, "bucket_name").String())
}

func TestSetupCommand_SwitchesFromConfigFile(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		stdin      string
		wantPause  bool
		wantExport bool
	}{
		{"config decides", nil, "", false, true},
		{"flags override config", []string{"--yes=false", "--export-users=false"}, "\n", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := useFakes(t)
			stubDirectory(set)

			cfg := filepath.Join(t.TempDir(), "q3p.yaml")
			require.NoError(t, os.WriteFile(cfg, []byte("setup:\n  bucket_name: cfg-bucket\n  yes: true\n  export_users: true\n"), 0o600))
			t.Setenv("Q3P_CFG_FILE", cfg)

			out, err := runApp(t, tt.stdin, append([]string{"setup", "-o", "json"}, tt.args...)...)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPause, strings.Contains(out, "MANUAL STEP"))
			assert.Equal(t, tt.wantExport, set.Rec.Count("S3.Upload") == 1)
		})
	}
}

func TestSetupCommand_BucketFromEnv(t *testing.T) {
	useFakes(t)
	t.Setenv("Q3P_BUCKET_NAME", "env-bucket")

	out, err := runApp(t, "", "setup", "-y", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "env-bucket", gjson.Get(out, "bucket_name").String())
}

func TestSetupCommand_InputErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing bucket", []string{"setup", "-y"}, "--bucket-name is required"},
		{"invalid bucket", []string{"setup", "-y", "-b", "My_Bucket"}, "3-63 characters"},
		{"invalid region", []string{"setup", "-y", "-b", "my-q-bucket", "-r", "nowhere"}, "AWS region"},
		{"invalid output", []string{"setup", "-y", "-b", "my-q-bucket", "-o", "raw"}, "must be one of"},
		{"invalid output file", []string{"setup", "-y", "-b", "my-q-bucket", "-f", "a/b.csv"}, "plain file name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := useFakes(t)

			_, err := runApp(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, set.Rec.Calls())
		})
	}
}

func TestCleanupCommand_Confirmed(t *testing.T) {
	set := useFakes(t)

	out, err := runApp(t, "", "cleanup", "-b", "my-q-bucket", "--confirm", "-o", "json")
	require.NoError(t, err)

	assert.Equal(t, "my-q-bucket", gjson.Get(out, "bucket_name").String())
	assert.Equal(t, int64(6), gjson.Get(out, "steps.#").Int())
	assert.NotEmpty(t, gjson.Get(out, "manual_steps").Array())
	assert.Equal(t, 1, set.Rec.Count("S3.DeleteBucket"))
	assert.NotContains(t, out, "This will delete the following resources:")
}

func TestCleanupCommand_Prompt(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantRun   bool
		wantInOut string
	}{
		{"yes", "yes\n", true, "Cleanup completed"},
		{"no", "no\n", false, "Cleanup cancelled."},
		{"y only", "y\n", false, "Cleanup cancelled."},
		{"uppercase", "YES\n", true, "Cleanup completed"},
		{"title case", "Yes\n", true, "Cleanup completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := useFakes(t)

			out, err := runApp(t, tt.input, "cleanup", "-b", "my-q-bucket")
			require.NoError(t, err)

			assert.Contains(t, out, "This will delete the following resources:")
			assert.Contains(t, out, "This action cannot be undone!")
			assert.Contains(t, out, "q-developer-3p-trail-my-q-bucket")
			assert.Contains(t, out, tt.wantInOut)
			assert.Equal(t, tt.wantRun, len(set.Rec.Calls()) > 0)
		})
	}
}

func TestCleanupCommand_ConfirmFromConfigFile(t *testing.T) {
	set := useFakes(t)

	cfg := filepath.Join(t.TempDir(), "q3p.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("cleanup:\n  confirm: true\n"), 0o600))
	t.Setenv("Q3P_CFG_FILE", cfg)

	out, err := runApp(t, "", "cleanup", "-b", "my-q-bucket")
	require.NoError(t, err)
	assert.NotContains(t, out, "This will delete the following resources:")
	assert.Equal(t, 1, set.Rec.Count("S3.DeleteBucket"))
}

func TestCleanupCommand_ClosedStdin(t *testing.T) {
	set := useFakes(t)

	_, err := runApp(t, "", "cleanup", "-b", "my-q-bucket")
	assert.ErrorIs(t, err, ErrNoInput)
	assert.Empty(t, set.Rec.Calls())
}

func TestCleanupCommand_TrailNameFlag(t *testing.T) {
	set := useFakes(t)

	var deleted string
	set.CloudTrail.DeleteTrailFn = func(in *cloudtrail.DeleteTrailInput) (*cloudtrail.DeleteTrailOutput, error) {
		deleted = awsv2.ToString(in.Name)
		return &cloudtrail.DeleteTrailOutput{}, nil
	}

	_, err := runApp(t, "", "cleanup", "-b", "my-q-bucket", "--confirm", "--trail-name", provision.DefaultTrailName, "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, provision.DefaultTrailName, deleted)
}

func TestCleanupCommand_FailuresDoNotFailCommand(t *testing.T) {
	set := useFakes(t)
	set.CloudTrail.DeleteTrailFn = func(*cloudtrail.DeleteTrailInput) (*cloudtrail.DeleteTrailOutput, error) {
		return nil, awsfake.APIError("AccessDeniedException", "denied")
	}

	out, err := runApp(t, "", "cleanup", "-b", "my-q-bucket", "--confirm")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleanup completed with 1 failure")
	assert.Contains(t, out, "IMPORTANT: Manual steps required:")
}

func TestExportCommand(t *testing.T) {
	set := useFakes(t)
	stubDirectory(set)

	out, err := runApp(t, "", "export-users", "-b", "my-q-bucket", "-o", "json")
	require.NoError(t, err)

	assert.Equal(t, int64(2), gjson.Get(out, "user_count").Int())
	assert.Equal(t, "users/users.csv", gjson.Get(out, "key").String())
	assert.Equal(t, "Successfully exported 2 users to S3", gjson.Get(out, "message").String())
	assert.Equal(t, []string{"SSOAdmin.ListInstances", "IdentityStore.ListUsers", "S3.Upload"}, set.Rec.Calls())
}

func TestExportCommand_Filter(t *testing.T) {
	set := useFakes(t)
	stubDirectory(set)

	out, err := runApp(t, "", "export-users", "-b", "my-q-bucket", "--filter", "username=bob", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.Get(out, "user_count").Int())
}

func TestExportCommand_NoInstance(t *testing.T) {
	set := useFakes(t)

	_, err := runApp(t, "", "export-users", "-b", "my-q-bucket")
	assert.ErrorIs(t, err, directory.ErrNoInstance)
	assert.Zero(t, set.Rec.Count("S3.Upload"))
}

func TestCompletionCommand(t *testing.T) {
	useFakes(t)

	out, err := runApp(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _q3p q3p")
	assert.Contains(t, out, "export-users")

	out, err = runApp(t, "", "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef q3p")
}
