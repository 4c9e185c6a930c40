/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package eventbuilder

import (
	"go.uber.org/zap"

	"github.com/numaproj/eventbuilder/pkg/trigger"
)

type options struct {
	// logger is the logger of the builder
	logger *zap.SugaredLogger
	// runID labels the metrics of the builder
	runID string
	// evaluator decides the trigger of every detector
	evaluator *trigger.Evaluator
}

// Option to apply to the builder
type Option func(*options) error

func defaultOptions() *options {
	return &options{
		runID:     "default",
		evaluator: trigger.NewEvaluator(),
	}
}

// WithLogger sets the logger of the builder
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) error {
		o.logger = l
		return nil
	}
}

// WithRunID sets the run identifier used to label metrics
func WithRunID(id string) Option {
	return func(o *options) error {
		o.runID = id
		return nil
	}
}

// WithEvaluator overrides the trigger evaluator, to plug in custom layer strategies
func WithEvaluator(e *trigger.Evaluator) Option {
	return func(o *options) error {
		o.evaluator = e
		return nil
	}
}
