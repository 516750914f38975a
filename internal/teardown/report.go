// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package teardown

// Outcome is what happened to one resource.
type Outcome string

const (
	Deleted Outcome = "deleted"
	Absent  Outcome = "absent"
	Failed  Outcome = "failed"
)

// ResourceResult records the outcome for one named resource.
type ResourceResult struct {
	Kind    string  `json:"kind" yaml:"kind"`
	Name    string  `json:"name" yaml:"name"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	Detail  string  `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// StepResult collects the resources one teardown step touched.
type StepResult struct {
	Step      string           `json:"step" yaml:"step"`
	Resources []ResourceResult `json:"resources" yaml:"resources"`
}

func (s *StepResult) add(kind, name string, outcome Outcome, detail string) {
	s.Resources = append(s.Resources, ResourceResult{Kind: kind, Name: name, Outcome: outcome, Detail: detail})
}

// Failures returns the resources in the step that could not be removed.
func (s StepResult) Failures() []ResourceResult {
	var out []ResourceResult
	for _, r := range s.Resources {
		if r.Outcome == Failed {
			out = append(out, r)
		}
	}
	return out
}

// Report is the result of a full teardown run.
type Report struct {
	BucketName  string       `json:"bucket_name" yaml:"bucket_name"`
	Region      string       `json:"region" yaml:"region"`
	Steps       []StepResult `json:"steps" yaml:"steps"`
	ManualSteps []string     `json:"manual_steps" yaml:"manual_steps"`
}

// Failures returns every failed resource across all steps.
func (r *Report) Failures() []ResourceResult {
	var out []ResourceResult
	for _, s := range r.Steps {
		out = append(out, s.Failures()...)
	}
	return out
}

// Resources flattens the report, in step order.
func (r *Report) Resources() []ResourceResult {
	var out []ResourceResult
	for _, s := range r.Steps {
		out = append(out, s.Resources...)
	}
	return out
}
