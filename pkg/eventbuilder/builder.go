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
	"fmt"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
	"github.com/numaproj/eventbuilder/pkg/digi"
	"github.com/numaproj/eventbuilder/pkg/shared/logging"
	"github.com/numaproj/eventbuilder/pkg/trigger"
	"github.com/numaproj/eventbuilder/pkg/window"
)

// Input holds the digi streams of a batch and, without a reference detector, its seed times.
type Input struct {
	// Streams holds one time ordered stream per detector kind. Trd2d digis are read from the Trd
	// stream when no Trd2d stream is given.
	Streams map[dfv1.DetectorKind]digi.Stream
	// SeedTimes are explicit seeds in increasing order, exclusive with a reference detector.
	SeedTimes []float64
}

// Stream returns the stream of a detector kind.
func (in Input) Stream(kind dfv1.DetectorKind) digi.Stream {
	if s, ok := in.Streams[kind]; ok && s != nil {
		return s
	}
	if kind == dfv1.DetectorKindTrd2d {
		if s, ok := in.Streams[dfv1.DetectorKindTrd]; ok && s != nil {
			return s
		}
	}
	return nil
}

// Builder builds the events of one batch.
type Builder struct {
	spec      dfv1.BuilderSpec
	mode      dfv1.OverlapMode
	ext       window.Extrema
	ref       *detector
	detectors []*detector
	// bmon is the Bmon detector setting the event start time, nil when Bmon is not in use.
	bmon      *detector
	seeds     seedSource
	evaluator *trigger.Evaluator
	runID     string
	log       *zap.SugaredLogger
}

// New validates the configuration against the input and returns a builder for it.
func New(spec dfv1.BuilderSpec, in Input, opts ...Option) (*Builder, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.logger == nil {
		o.logger = logging.NewLogger()
	}

	switch {
	case !spec.HasReference() && in.SeedTimes == nil:
		return nil, ErrNoSeedSource
	case spec.HasReference() && in.SeedTimes != nil:
		return nil, ErrAmbiguousSeedSource
	}
	for i, d := range spec.AllDetectors() {
		seedOnly := i == 0 && spec.HasReference() && d.TimeWindowBegin == 0 && d.TimeWindowEnd == 0
		if !seedOnly && d.TimeWindowEnd <= d.TimeWindowBegin {
			return nil, fmt.Errorf("%w [%v, %v] for %s", ErrInvalidWindow, d.TimeWindowBegin, d.TimeWindowEnd, d.Kind)
		}
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid builder spec: %w", err)
	}

	b := &Builder{
		spec:      spec,
		mode:      spec.GetOverlapMode(),
		ext:       window.NewExtrema(spec),
		evaluator: o.evaluator,
		runID:     o.runID,
		log:       o.logger,
	}
	// A stream absent from the batch leaves its detector without matches, the trigger decides.
	if spec.HasReference() {
		stream := in.Stream(spec.Reference.Kind)
		b.ref = newDetector(*spec.Reference, stream)
		b.seeds = streamSeeds{stream: stream, stations: b.ref.stations}
	} else {
		b.seeds = explicitSeeds(in.SeedTimes)
	}
	for _, d := range spec.Detectors {
		b.detectors = append(b.detectors, newDetector(d, in.Stream(d.Kind)))
	}
	if spec.UsesBmon() {
		for _, d := range b.all() {
			if d.spec.Kind == dfv1.DetectorKindBmon {
				b.bmon = d
			}
		}
	}
	for _, d := range b.all() {
		if d.stream == nil {
			b.log.Debugw("No digi stream in batch", zap.String("detector", string(d.spec.Kind)))
		}
	}
	return b, nil
}

// CheckStreams returns an error wrapping ErrMissingStream for every configured detector without
// stream in the input. It validates the first input of a run.
func CheckStreams(spec dfv1.BuilderSpec, in Input) error {
	var errs error
	if spec.HasReference() && in.Stream(spec.Reference.Kind) == nil {
		errs = multierr.Append(errs, fmt.Errorf("%w for reference detector %s", ErrMissingStream, spec.Reference.Kind))
	}
	for _, d := range spec.Detectors {
		if in.Stream(d.Kind) == nil {
			errs = multierr.Append(errs, fmt.Errorf("%w for selection detector %s", ErrMissingStream, d.Kind))
		}
	}
	return errs
}

// all returns the reference detector, if any, followed by the selection detectors.
func (b *Builder) all() []*detector {
	all := make([]*detector, 0, len(b.detectors)+1)
	if b.ref != nil {
		all = append(all, b.ref)
	}
	return append(all, b.detectors...)
}

// Extrema returns the run-wide window quantities of the builder.
func (b *Builder) Extrema() window.Extrema {
	return b.ext
}

// Process builds the events of one batch. The output is ordered by start time and only depends on
// the input and the batch boundaries, so calling it again with the same boundaries returns the
// same events.
func (b *Builder) Process(bc window.BatchContext) ([]*Event, error) {
	if err := bc.Validate(); err != nil {
		return nil, err
	}
	for _, d := range b.all() {
		d.reset()
	}
	if !b.spec.IgnoreBatchOverlap && !window.FitsOverlap(bc, b.ext) {
		warningsCount.WithLabelValues(b.runID, warningOverlapTooShort).Inc()
		b.log.Warnw("Event windows are wider than the batch overlap, events at the end of the batch may be incomplete",
			zap.Float64("overlap", bc.OverlapLength()),
			zap.Float64("earliestBegin", b.ext.EarliestBegin),
			zap.Float64("latestEnd", b.ext.LatestEnd),
			zap.Float64("widestRange", b.ext.WidestRange))
	}

	iv := window.SeedWindow(bc, b.ext, b.spec.IgnoreBatchOverlap)
	acc := newAccumulator(b.mode, b.ext, b.finalize)
	beyond := 0
	b.seeds.each(iv, func(t float64, index int) {
		seedsCount.WithLabelValues(b.runID).Inc()
		if window.BeyondData(bc, b.ext, t) {
			beyond++
		}
		b.processSeed(acc, t, index)
	})
	acc.close()

	if beyond > 0 {
		warningsCount.WithLabelValues(b.runID, warningSeedBeyondData).Add(float64(beyond))
		b.log.Warnw("Seed windows run past the end of the batch data",
			zap.Int("seeds", beyond), zap.Float64("overlapEnd", bc.OverlapEndTime))
	}
	if b.bmon != nil {
		// Bmon start times may slightly reorder overlapping events.
		sort.SliceStable(acc.events, func(i, j int) bool {
			return acc.events[i].StartTime < acc.events[j].StartTime
		})
	}
	b.log.Debugw("Batch processed", zap.Int("seeds", b.seeds.size()), zap.Int("events", len(acc.events)),
		zap.Float64("seedWindowBegin", iv.Begin), zap.Float64("seedWindowEnd", iv.End))
	return acc.events, nil
}

func (b *Builder) processSeed(acc *accumulator, t float64, index int) {
	var ev *Event
	switch acc.decide(t) {
	case dropSeed:
		seedsDroppedCount.WithLabelValues(b.runID).Inc()
		b.log.Debugw("Seed dropped, overlapping previous event", zap.Float64("seed", t))
		return
	case mergeSeed:
		ev = acc.current
	default:
		ev = acc.open(t)
	}

	if b.ref != nil {
		if b.ref.spec.HasWindow() {
			b.ref.scan(t, ev)
			// The seed lies outside a window starting after it.
			if 0 < b.ref.spec.TimeWindowBegin {
				ev.add(b.ref.spec.Kind, index, t)
			}
		} else {
			ev.add(b.ref.spec.Kind, index, t)
		}
		if ok, reason := b.check(b.ref, ev); !ok {
			b.reject(acc, b.ref, reason, t)
			return
		}
	}
	for _, d := range b.detectors {
		d.scan(t, ev)
		if ok, reason := b.check(d, ev); !ok {
			b.reject(acc, d, reason, t)
			return
		}
	}

	acc.accept(t)
	if b.mode.AdvancesCursors() {
		for _, d := range b.all() {
			d.advance()
		}
	}
}

func (b *Builder) check(d *detector, ev *Event) (bool, trigger.Reason) {
	return b.evaluator.Check(d.spec, d.stream, ev.Indices(d.spec.Kind), d.count(ev))
}

func (b *Builder) reject(acc *accumulator, d *detector, reason trigger.Reason, t float64) {
	eventsRejectedCount.WithLabelValues(b.runID, string(d.spec.Kind), string(reason)).Inc()
	b.log.Debugw("Seed rejected by trigger", zap.Float64("seed", t), zap.String("detector", string(d.spec.Kind)), zap.String("reason", string(reason)))
	acc.discard()
}

// finalize sets the Bmon start time of an emitted event and records its size.
func (b *Builder) finalize(ev *Event) {
	if b.bmon != nil {
		if t, ok := b.bmonTime(ev); ok {
			ev.StartTime = t
		} else {
			warningsCount.WithLabelValues(b.runID, warningNoBmonTime).Inc()
			b.log.Warnw("No selected Bmon digi in event, keeping the seed time", zap.Uint64("event", ev.ID), zap.Float64("seed", ev.SeedTime))
		}
	}
	eventsBuiltCount.WithLabelValues(b.runID).Inc()
	for _, d := range b.all() {
		digisPerEventHistogram(d.spec.Kind, d.spec.GetHistMaxCount()).WithLabelValues(b.runID).Observe(float64(ev.NofData(d.spec.Kind)))
	}
}

// bmonTime returns the earliest selected Bmon digi of the event.
func (b *Builder) bmonTime(ev *Event) (float64, bool) {
	var (
		t     float64
		found bool
	)
	for _, i := range ev.Indices(dfv1.DetectorKindBmon) {
		g := b.bmon.stream.At(i)
		if !b.bmon.stations.Select(g) {
			continue
		}
		if !found || g.Time() < t {
			t, found = g.Time(), true
		}
	}
	return t, found
}
