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
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/montanaflynn/stats"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
	"github.com/numaproj/eventbuilder/pkg/digi"
	"github.com/numaproj/eventbuilder/pkg/eventbuilder"
	"github.com/numaproj/eventbuilder/pkg/metrics"
	"github.com/numaproj/eventbuilder/pkg/shared/logging"
	"github.com/numaproj/eventbuilder/pkg/sinks"
	"github.com/numaproj/eventbuilder/pkg/sources"
	"github.com/numaproj/eventbuilder/pkg/window"
)

// ErrNoBatchContext is returned for a batch without boundaries when the builder has no static
// batch parameters.
var ErrNoBatchContext = errors.New("batch has no boundaries and no static batch parameters are configured")

// Summary describes a finished run.
type Summary struct {
	Batches int64
	Events  int64
	// Statistics of the number of digis per event.
	MeanEventSize   float64
	MedianEventSize float64
	MaxEventSize    float64
}

// Scheduler reads the batches of a source, builds their events and writes them to a sink.
type Scheduler struct {
	spec   dfv1.BuilderSpec
	source sources.Sourcer
	sink   sinks.Sinker
	opts   *options
	log    *zap.SugaredLogger

	batches *atomic.Int64
	events  *atomic.Int64
	lastErr *atomic.Error
	sizes   []float64
}

var _ metrics.HealthChecker = (*Scheduler)(nil)

// NewScheduler returns a scheduler of the run.
func NewScheduler(spec dfv1.BuilderSpec, source sources.Sourcer, sink sinks.Sinker, opts ...Option) (*Scheduler, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.finder != nil && spec.HasReference() {
		return nil, fmt.Errorf("seed finder can not be used with reference detector %s", spec.Reference.Kind)
	}
	if o.logger == nil {
		o.logger = logging.NewLogger()
	}
	return &Scheduler{
		spec:    spec,
		source:  source,
		sink:    sink,
		opts:    o,
		log:     o.logger.With("run", o.runID),
		batches: atomic.NewInt64(0),
		events:  atomic.NewInt64(0),
		lastErr: atomic.NewError(nil),
	}, nil
}

// IsHealthy reports the last error of the run.
func (s *Scheduler) IsHealthy(_ context.Context) error {
	return s.lastErr.Load()
}

// Run processes every batch of the source. It stops at the first failing batch.
func (s *Scheduler) Run(ctx context.Context) (*Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pending := make(chan chan *sinks.Result, s.opts.parallelism)
	writeDone := make(chan error, 1)
	go func() {
		err := s.write(ctx, pending)
		if err != nil {
			cancel()
		}
		writeDone <- err
	}()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.parallelism)
	readErr := s.read(gCtx, g, pending)
	buildErr := g.Wait()
	close(pending)
	writeErr := <-writeDone

	err := multierr.Combine(buildErr, writeErr)
	if err == nil || !errors.Is(readErr, context.Canceled) {
		err = multierr.Append(err, readErr)
	}
	if err != nil {
		s.lastErr.Store(err)
	}
	summary := s.summary()
	s.log.Infow("Run finished", zap.Int64("batches", summary.Batches), zap.Int64("events", summary.Events),
		zap.Float64("meanEventSize", summary.MeanEventSize), zap.Error(err))
	return summary, err
}

// read schedules the batches of the source. The streams of the first batch must cover every
// configured detector; later batches may miss some, their detectors then match nothing.
func (s *Scheduler) read(ctx context.Context, g *errgroup.Group, pending chan<- chan *sinks.Result) error {
	for first := true; ; first = false {
		b, err := s.source.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read from source %s: %w", s.source.GetName(), err)
		}
		if first {
			if err := eventbuilder.CheckStreams(s.spec, b.Input); err != nil {
				return fmt.Errorf("invalid first batch of source %s: %w", s.source.GetName(), err)
			}
		}
		out := make(chan *sinks.Result, 1)
		select {
		case pending <- out:
		case <-ctx.Done():
			return ctx.Err()
		}
		g.Go(func() error {
			defer close(out)
			res, err := s.build(b)
			if err != nil {
				return err
			}
			out <- res
			return nil
		})
	}
}

func (s *Scheduler) write(ctx context.Context, pending <-chan chan *sinks.Result) error {
	for out := range pending {
		res, ok := <-out
		if !ok {
			// the build failed and the run is being cancelled
			return nil
		}
		if err := s.sink.Write(ctx, res); err != nil {
			return fmt.Errorf("failed to write batch %d to sink %s: %w", res.Batch.Index, s.sink.GetName(), err)
		}
		s.batches.Inc()
		s.events.Add(int64(len(res.Events)))
		for _, ev := range res.Events {
			s.sizes = append(s.sizes, float64(ev.Size()))
		}
	}
	return nil
}

func (s *Scheduler) build(b *sources.Batch) (*sinks.Result, error) {
	labels := []string{s.opts.runID}
	metrics.InFlightBatches.WithLabelValues(labels...).Inc()
	defer metrics.InFlightBatches.WithLabelValues(labels...).Dec()
	start := time.Now()

	res, err := s.buildBatch(b)
	if err != nil {
		metrics.BatchErrors.WithLabelValues(labels...).Inc()
		return nil, fmt.Errorf("failed to build batch %d: %w", b.Index, err)
	}
	metrics.BatchesProcessed.WithLabelValues(labels...).Inc()
	metrics.BatchProcessingTime.WithLabelValues(labels...).Observe(float64(time.Since(start).Microseconds()))
	return res, nil
}

func (s *Scheduler) buildBatch(b *sources.Batch) (*sinks.Result, error) {
	bc, err := s.batchContext(b)
	if err != nil {
		return nil, err
	}
	in := b.Input
	if f := s.opts.finder; f != nil {
		streams := make([]digi.Stream, 0, len(f.detectors))
		for _, k := range f.detectors {
			if st := in.Stream(k); st != nil {
				streams = append(streams, st)
			}
		}
		in.SeedTimes = f.window.FindSeedsMerged(streams...)
	}
	log := s.log.With("batch", b.Index)
	builder, err := eventbuilder.New(s.spec, in, eventbuilder.WithLogger(log), eventbuilder.WithRunID(s.opts.runID))
	if err != nil {
		return nil, err
	}
	events, err := builder.Process(bc)
	if err != nil {
		return nil, err
	}
	return &sinks.Result{Batch: b, Context: bc, Events: events}, nil
}

func (s *Scheduler) batchContext(b *sources.Batch) (window.BatchContext, error) {
	if b.Context != nil {
		return *b.Context, nil
	}
	if s.spec.Batch == nil {
		return window.BatchContext{}, ErrNoBatchContext
	}
	return window.FromSpec(*s.spec.Batch, b.Index), nil
}

func (s *Scheduler) summary() *Summary {
	sum := &Summary{
		Batches: s.batches.Load(),
		Events:  s.events.Load(),
	}
	if len(s.sizes) == 0 {
		return sum
	}
	data := stats.Float64Data(s.sizes)
	sum.MeanEventSize, _ = stats.Mean(data)
	sum.MedianEventSize, _ = stats.Median(data)
	sum.MaxEventSize, _ = stats.Max(data)
	return sum
}
