// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/handler"
	"github.com/aws-samples/sample-amazon-q-logging-stats/internal/log"
)

func main() {
	log.InitLogger()
	lambda.Start(handler.New().ExtractUsers)
}
