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

package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/numaproj/eventbuilder/pkg/shared/logging"
	"github.com/numaproj/eventbuilder/pkg/sinks"
)

// ToLog prints the built events to the log.
type ToLog struct {
	name   string
	logger *zap.SugaredLogger
}

var _ sinks.Sinker = (*ToLog)(nil)

type Option func(*ToLog) error

func WithLogger(log *zap.SugaredLogger) Option {
	return func(t *ToLog) error {
		t.logger = log
		return nil
	}
}

// NewToLog returns ToLog type.
func NewToLog(name string, opts ...Option) (*ToLog, error) {
	toLog := &ToLog{name: name}
	for _, o := range opts {
		if err := o(toLog); err != nil {
			return nil, err
		}
	}
	if toLog.logger == nil {
		toLog.logger = logging.NewLogger()
	}
	toLog.logger = toLog.logger.Named(name)
	return toLog, nil
}

// GetName returns the name.
func (t *ToLog) GetName() string {
	return t.name
}

// Write writes one line per event to the log.
func (t *ToLog) Write(_ context.Context, result *sinks.Result) error {
	for _, e := range result.Events {
		logSinkWriteCount.WithLabelValues(t.name).Inc()
		t.logger.Infow("Event",
			zap.Int("batch", result.Batch.Index),
			zap.Uint64("id", e.ID),
			zap.Float64("seedTime", e.SeedTime),
			zap.Float64("startTime", e.StartTime),
			zap.Float64("endTime", e.EndTime),
			zap.Int("size", e.Size()),
			zap.Any("kinds", e.Kinds()))
	}
	return nil
}

func (t *ToLog) Close() error {
	_ = t.logger.Sync()
	return nil
}
