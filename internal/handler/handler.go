// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	awsx "github.com/aws-samples/sample-amazon-q-logging-stats/internal/aws"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/directory"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/log"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/provision"
)

// MissingBucketMessage is the 400 response message for an event without
// bucket_name.
const MissingBucketMessage = "Missing required parameter: bucket_name"

// ErrMissingBucket is logged when an event carries no bucket_name.
var ErrMissingBucket = errors.New("missing required parameter: bucket_name")

// SetupEvent is the setup function's invocation payload.
type SetupEvent struct {
	BucketName  string `json:"bucket_name"`
	Region      string `json:"region"`
	ExportUsers bool   `json:"export_users"`
	OutputFile  string `json:"output_file"`
}

// SetupBody is the JSON body returned by the setup function. OutputFile is
// null unless users were requested.
type SetupBody struct {
	Message     string  `json:"message"`
	BucketName  string  `json:"bucket_name"`
	Region      string  `json:"region"`
	ExportUsers bool    `json:"export_users"`
	OutputFile  *string `json:"output_file"`
}

// ExtractEvent is the user extract function's invocation payload.
type ExtractEvent struct {
	BucketName string `json:"bucket_name"`
	Region     string `json:"region"`
	OutputFile string `json:"output_file"`
}

// ExtractBody is the JSON body returned by the user extract function.
type ExtractBody struct {
	Message    string `json:"message"`
	BucketName string `json:"bucket_name"`
	Region     string `json:"region"`
	OutputFile string `json:"output_file"`
	UserCount  int    `json:"user_count"`
}

// SetupRunner runs the provisioning sequence.
type SetupRunner interface {
	Run(ctx context.Context, opts provision.Options) (*provision.Summary, error)
}

// Handlers builds its collaborators per invocation so each event can target
// its own region.
type Handlers struct {
	NewSetup    func(ctx context.Context, region string) (SetupRunner, error)
	NewExporter func(ctx context.Context, region string) (provision.UserExporter, error)
}

// New returns Handlers backed by real AWS clients.
func New() *Handlers {
	return &Handlers{
		NewSetup: func(ctx context.Context, region string) (SetupRunner, error) {
			c, err := awsx.Connect(ctx, awsx.WithRegion(region))
			if err != nil {
				return nil, err
			}
			return provision.NewSetup(c), nil
		},
		NewExporter: func(ctx context.Context, region string) (provision.UserExporter, error) {
			c, err := awsx.Connect(ctx, awsx.WithRegion(region))
			if err != nil {
				return nil, err
			}
			return directory.NewExporter(c.SSOAdmin, c.IdentityStore, c.S3), nil
		},
	}
}

// Setup handles a SetupEvent. There is no pause for the manual console step.
func (h *Handlers) Setup(ctx context.Context, ev SetupEvent) (events.APIGatewayProxyResponse, error) {
	if ev.BucketName == "" {
		return badRequest()
	}
	if ev.Region == "" {
		ev.Region = awsx.DefaultRegion
	}
	if ev.OutputFile == "" {
		ev.OutputFile = directory.DefaultOutputFile
	}

	body := SetupBody{
		Message:     "Setup completed successfully",
		BucketName:  ev.BucketName,
		Region:      ev.Region,
		ExportUsers: ev.ExportUsers,
	}
	if ev.ExportUsers {
		body.OutputFile = &ev.OutputFile
	}

	status := http.StatusOK
	setup, err := h.NewSetup(ctx, ev.Region)
	if err == nil {
		_, err = setup.Run(ctx, provision.Options{
			BucketName:  ev.BucketName,
			ExportUsers: ev.ExportUsers,
			OutputFile:  ev.OutputFile,
		})
	}
	if err != nil {
		log.WithError(err).Error("setup failed")
		status = http.StatusInternalServerError
		body.Message = "Setup failed"
	}

	return respond(status, body)
}

// ExtractUsers handles an ExtractEvent.
func (h *Handlers) ExtractUsers(ctx context.Context, ev ExtractEvent) (events.APIGatewayProxyResponse, error) {
	if ev.BucketName == "" {
		return badRequest()
	}
	if ev.Region == "" {
		ev.Region = awsx.DefaultRegion
	}
	if ev.OutputFile == "" {
		ev.OutputFile = directory.DefaultOutputFile
	}

	body := ExtractBody{
		BucketName: ev.BucketName,
		Region:     ev.Region,
		OutputFile: ev.OutputFile,
	}

	exporter, err := h.NewExporter(ctx, ev.Region)
	if err != nil {
		log.WithError(err).Error("could not build exporter")
		body.Message = "Unexpected error exporting users: " + err.Error()
		return respond(http.StatusInternalServerError, body)
	}

	res, err := exporter.Export(ctx, ev.BucketName, ev.OutputFile)
	body.Message = res.Message
	body.UserCount = res.UserCount
	if err != nil {
		return respond(http.StatusInternalServerError, body)
	}
	return respond(http.StatusOK, body)
}

func badRequest() (events.APIGatewayProxyResponse, error) {
	log.WithError(ErrMissingBucket).Warn("rejecting event")
	return respond(http.StatusBadRequest, map[string]string{"message": MissingBucketMessage})
}

func respond(status int, body any) (events.APIGatewayProxyResponse, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}
	return events.APIGatewayProxyResponse{StatusCode: status, Body: string(b)}, nil
}
