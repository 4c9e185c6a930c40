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

package blackhole

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/numaproj/eventbuilder/pkg/metrics"
	"github.com/numaproj/eventbuilder/pkg/shared/logging"
	"github.com/numaproj/eventbuilder/pkg/sinks"
)

// sinkWriteCount is used to indicate the number of events written to the blackhole sink
var sinkWriteCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "blackhole_sink",
	Name:      "write_total",
	Help:      "Total number of events written to blackhole sink",
}, []string{metrics.LabelSink})

// Blackhole is a sink to emulate /dev/null
type Blackhole struct {
	name   string
	logger *zap.SugaredLogger
}

var _ sinks.Sinker = (*Blackhole)(nil)

// NewBlackhole returns a new Blackhole sink.
func NewBlackhole(ctx context.Context, name string) *Blackhole {
	return &Blackhole{
		name:   name,
		logger: logging.FromContext(ctx),
	}
}

// GetName returns the name.
func (b *Blackhole) GetName() string {
	return b.name
}

// Write drops the events.
func (b *Blackhole) Write(_ context.Context, result *sinks.Result) error {
	sinkWriteCount.WithLabelValues(b.name).Add(float64(len(result.Events)))
	return nil
}

func (b *Blackhole) Close() error {
	b.logger.Debugw("Blackhole sink closed", zap.String("sink", b.name))
	return nil
}
