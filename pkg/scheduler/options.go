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

package scheduler

import (
	"fmt"

	"go.uber.org/zap"

	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
	"github.com/numaproj/eventbuilder/pkg/seedfinder"
)

type options struct {
	// parallelism is the number of batches built concurrently
	parallelism int
	// runID labels the metrics of the run
	runID string
	// finder computes explicit seeds when set
	finder *seedFinder
	logger *zap.SugaredLogger
}

type seedFinder struct {
	window    seedfinder.SlidingWindow
	detectors []dfv1.DetectorKind
}

type Option func(*options) error

func defaultOptions() *options {
	return &options{
		parallelism: dfv1.DefaultParallelism,
		runID:       "default",
	}
}

// WithParallelism sets the number of batches built concurrently.
func WithParallelism(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return fmt.Errorf("parallelism must be positive, got %d", n)
		}
		o.parallelism = n
		return nil
	}
}

// WithRunID sets the run label of the metrics.
func WithRunID(id string) Option {
	return func(o *options) error {
		o.runID = id
		return nil
	}
}

// WithSeedFinder computes the seeds of every batch from the merged streams of the detectors.
func WithSeedFinder(sw seedfinder.SlidingWindow, detectors ...dfv1.DetectorKind) Option {
	return func(o *options) error {
		if err := sw.Validate(); err != nil {
			return err
		}
		if len(detectors) == 0 {
			return fmt.Errorf("seed finder needs at least one detector")
		}
		o.finder = &seedFinder{window: sw, detectors: detectors}
		return nil
	}
}

// WithLogger is used to return logger information
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) error {
		o.logger = l
		return nil
	}
}
