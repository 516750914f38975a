// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/identitystore"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"

	awsx "github.com/aws-samples/sample-amazon-q-logging-stats/internal/aws"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/filters"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/log"
)

const (
	// DefaultOutputFile is the CSV name used when none is given.
	DefaultOutputFile = "users.csv"

	// KeyPrefix is the bucket prefix every export lands under.
	KeyPrefix = "users/"
)

// NoInstanceMessage is the operator-facing text for ErrNoInstance.
const NoInstanceMessage = "No IAM Identity Center instances found"

// ErrNoInstance is returned when the account has no IAM Identity Center
// instance.
var ErrNoInstance = errors.New("no IAM Identity Center instances found")

// Instance identifies the Identity Center instance and its backing identity
// store.
type Instance struct {
	ARN             string
	IdentityStoreID string
}

// Result describes a completed export.
type Result struct {
	UserCount int    `json:"user_count" yaml:"user_count"`
	Key       string `json:"key,omitempty" yaml:"key,omitempty"`
	Bytes     int    `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Exporter reads users from the identity store and writes them to S3.
// Filters, when set, limit the export to matching users.
type Exporter struct {
	Filters []filters.Filter

	instances awsx.InstanceAPI
	users     awsx.UserListAPI
	s3        awsx.ObjectPutAPI
}

// NewExporter returns an Exporter that uploads with PutObject.
func NewExporter(instances awsx.InstanceAPI, users awsx.UserListAPI, s3 awsx.ObjectPutAPI) *Exporter {
	return &Exporter{instances: instances, users: users, s3: s3}
}

// ObjectKey returns the bucket key for outputFile.
func ObjectKey(outputFile string) string {
	if outputFile == "" {
		outputFile = DefaultOutputFile
	}
	return KeyPrefix + outputFile
}

// ResolveInstance returns the first Identity Center instance in the account.
// Accounts have at most one.
func (e *Exporter) ResolveInstance(ctx context.Context) (Instance, error) {
	out, err := e.instances.ListInstances(ctx, &ssoadmin.ListInstancesInput{})
	if err != nil {
		return Instance{}, err
	}
	if len(out.Instances) == 0 {
		return Instance{}, ErrNoInstance
	}

	inst := Instance{
		ARN:             awsv2.ToString(out.Instances[0].InstanceArn),
		IdentityStoreID: awsv2.ToString(out.Instances[0].IdentityStoreId),
	}
	log.Infof("Found IAM Identity Center instance: %s", inst.ARN)
	log.Infof("Identity Store ID: %s", inst.IdentityStoreID)
	return inst, nil
}

// ListUsers returns every user in the identity store, following NextToken
// until the service stops returning one.
func (e *Exporter) ListUsers(ctx context.Context, identityStoreID string) ([]User, error) {
	var users []User
	var token *string

	for {
		out, err := e.users.ListUsers(ctx, &identitystore.ListUsersInput{
			IdentityStoreId: awsv2.String(identityStoreID),
			NextToken:       token,
		})
		if err != nil {
			return nil, err
		}

		for _, u := range out.Users {
			users = append(users, userFromType(u))
		}

		if awsv2.ToString(out.NextToken) == "" {
			break
		}
		token = out.NextToken
		log.Debugf("list users next page: fetched=%d", len(users))
	}

	return users, nil
}

// collect resolves the instance and lists its users.
func (e *Exporter) collect(ctx context.Context) ([]User, error) {
	inst, err := e.ResolveInstance(ctx)
	if err != nil {
		return nil, err
	}
	users, err := e.ListUsers(ctx, inst.IdentityStoreID)
	if err != nil {
		return nil, err
	}
	return selectUsers(users, e.Filters), nil
}

// selectUsers keeps the users matching every filter. Filter keys are the
// user's JSON field names.
func selectUsers(users []User, fs []filters.Filter) []User {
	if len(fs) == 0 {
		return users
	}

	selected := make([]User, 0, len(users))
	for _, u := range users {
		raw, err := json.Marshal(u)
		if err != nil {
			continue
		}
		if filters.Match(gjson.ParseBytes(raw), fs) {
			selected = append(selected, u)
		}
	}
	log.Infof("Selected %d of %d users with filter %v", len(selected), len(users), fs)
	return selected
}

// Export writes the CSV to a memory buffer and uploads it with PutObject to
// ObjectKey(outputFile).
func (e *Exporter) Export(ctx context.Context, bucket, outputFile string) (Result, error) {
	users, err := e.collect(ctx)
	if err != nil {
		return failed(err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, users); err != nil {
		return failed(err)
	}
	size := buf.Len()

	key := ObjectKey(outputFile)
	if _, err := e.s3.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(bucket),
		Key:         awsv2.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: awsv2.String("text/csv"),
	}); err != nil {
		return failed(fmt.Errorf("failed to upload s3://%s/%s: %w", bucket, key, err))
	}

	return exported(bucket, key, len(users), size), nil
}

// FileExporter uploads through a temporary CSV file and the S3 transfer
// manager instead of a memory buffer.
type FileExporter struct {
	*Exporter
	Uploader awsx.UploaderAPI
}

// NewFileExporter returns a FileExporter.
func NewFileExporter(e *Exporter, uploader awsx.UploaderAPI) *FileExporter {
	return &FileExporter{Exporter: e, Uploader: uploader}
}

// Export writes the CSV to a temporary file, syncs and closes it, uploads it
// and removes it. The file is removed on every path out of Export.
func (f *FileExporter) Export(ctx context.Context, bucket, outputFile string) (res Result, err error) {
	users, err := f.collect(ctx)
	if err != nil {
		return failed(err)
	}

	tmp, err := os.CreateTemp("", "q3p-users-*.csv")
	if err != nil {
		return failed(fmt.Errorf("failed to create temp file: %w", err))
	}
	path := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warnf("Could not clean up temporary file %s: %v", path, rmErr)
		}
	}()

	if err := WriteCSV(tmp, users); err != nil {
		return failed(err)
	}
	if err := tmp.Sync(); err != nil {
		return failed(fmt.Errorf("failed to sync %s: %w", path, err))
	}
	if err := tmp.Close(); err != nil {
		return failed(fmt.Errorf("failed to close %s: %w", path, err))
	}

	info, err := os.Stat(path)
	if err != nil {
		return failed(err)
	}

	body, err := os.Open(path)
	if err != nil {
		return failed(err)
	}
	defer body.Close()

	key := ObjectKey(outputFile)
	if _, err := f.Uploader.Upload(ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(bucket),
		Key:         awsv2.String(key),
		Body:        body,
		ContentType: awsv2.String("text/csv"),
	}); err != nil {
		return failed(fmt.Errorf("failed to upload s3://%s/%s: %w", bucket, key, err))
	}

	return exported(bucket, key, len(users), int(info.Size())), nil
}

func exported(bucket, key string, count, size int) Result {
	log.Infof("Exported %s users (%s) to s3://%s/%s",
		humanize.Comma(int64(count)), humanize.Bytes(uint64(size)), bucket, key)
	return Result{
		UserCount: count,
		Key:       key,
		Bytes:     size,
		Message:   fmt.Sprintf("Successfully exported %d users to S3", count),
	}
}

func failed(err error) (Result, error) {
	msg := fmt.Sprintf("Error exporting IAM Identity Center users: %s", awsx.ErrorMessage(err))
	if errors.Is(err, ErrNoInstance) {
		msg = NoInstanceMessage
	}
	log.Errorf("%s", msg)
	return Result{Message: msg}, err
}
