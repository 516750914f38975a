// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler_LevelLetters(t *testing.T) {
	tests := []struct {
		level    log.Level
		expected string
	}{
		{log.DebugLevel, " D "},
		{log.InfoLevel, " I "},
		{log.WarnLevel, " W "},
		{log.ErrorLevel, " E "},
		{log.FatalLevel, " F "},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			h := &CustomHandler{Writer: &buf}
			err := h.HandleLog(&log.Entry{Level: tt.level, Message: "hello", Fields: log.Fields{}})
			assert.NoError(t, err)
			assert.Contains(t, buf.String(), tt.expected+"hello")
		})
	}
}

func TestCustomHandler_Trace(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}
	_ = h.HandleLog(&log.Entry{Level: log.DebugLevel, Message: "TRACE: deep", Fields: log.Fields{}})
	assert.Contains(t, buf.String(), " T deep")
}

func TestCustomHandler_Fields(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}
	_ = h.HandleLog(&log.Entry{
		Level:   log.ErrorLevel,
		Message: "delete failed",
		Fields:  log.Fields{"error": errors.New("boom"), "bucket": "b1"},
	})
	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(line, "delete failed bucket=b1 error=boom"), line)
}

func TestInitLogger_Levels(t *testing.T) {
	tests := []struct {
		env      string
		expected log.Level
	}{
		{"", log.InfoLevel},
		{"debug", log.DebugLevel},
		{"TRACE", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"bogus", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("Q3P_LOG", tt.env)
			InitLogger()
			l, ok := log.Log.(*log.Logger)
			if assert.True(t, ok) {
				assert.Equal(t, tt.expected, l.Level)
			}
		})
	}
}
