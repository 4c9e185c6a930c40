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
	"errors"
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
	"github.com/numaproj/eventbuilder/pkg/digi"
	"github.com/numaproj/eventbuilder/pkg/window"
)

func basics(times ...float64) digi.Slice[digi.Basic] {
	s := make(digi.Slice[digi.Basic], len(times))
	for i, t := range times {
		s[i] = digi.Basic{T: t}
	}
	return s
}

// recordingStream counts the accesses to every index of a stream.
type recordingStream struct {
	digi.Stream
	reads map[int]int
}

func (r *recordingStream) At(i int) digi.Digi {
	r.reads[i]++
	return r.Stream.At(i)
}

func seedOnly(kind dfv1.DetectorKind) *dfv1.DetectorSpec {
	return &dfv1.DetectorSpec{Kind: kind}
}

func detectorSpec(kind dfv1.DetectorKind, begin, end float64, minCount int) dfv1.DetectorSpec {
	return dfv1.DetectorSpec{Kind: kind, TimeWindowBegin: begin, TimeWindowEnd: end, TriggerMinCount: minCount}
}

var wideBatch = window.NewBatchContext(0, 1000, 100)

func newTestBuilder(t *testing.T, spec dfv1.BuilderSpec, in Input) *Builder {
	t.Helper()
	b, err := New(spec, in, WithLogger(zap.NewNop().Sugar()), WithRunID(t.Name()))
	require.NoError(t, err)
	return b
}

func process(t *testing.T, b *Builder, bc window.BatchContext) []*Event {
	t.Helper()
	events, err := b.Process(bc)
	require.NoError(t, err)
	return events
}

func matches(events []*Event, kind dfv1.DetectorKind) [][]int {
	out := make([][]int, len(events))
	for i, e := range events {
		out[i] = e.Indices(kind)
	}
	return out
}

func TestBuilder_NoOverlap(t *testing.T) {
	a := &recordingStream{Stream: basics(95, 105, 245, 410), reads: map[int]int{}}
	spec := dfv1.BuilderSpec{
		Reference:   seedOnly(dfv1.DetectorKindTof),
		Detectors:   []dfv1.DetectorSpec{detectorSpec(dfv1.DetectorKindSts, -20, 20, 1)},
		OverlapMode: dfv1.NoOverlap,
	}
	b := newTestBuilder(t, spec, Input{Streams: map[dfv1.DetectorKind]digi.Stream{
		dfv1.DetectorKindTof: basics(100, 250, 400),
		dfv1.DetectorKindSts: a,
	}})

	events := process(t, b, wideBatch)
	require.Len(t, events, 3)
	assert.Equal(t, [][]int{{0, 1}, {2}, {3}}, matches(events, dfv1.DetectorKindSts))
	assert.Equal(t, [][]int{{0}, {1}, {2}}, matches(events, dfv1.DetectorKindTof))
	for i, e := range events {
		assert.Equal(t, uint64(i), e.ID)
	}
	assert.Equal(t, 100.0, events[0].StartTime)
	assert.Equal(t, 105.0, events[0].EndTime)
	assert.Equal(t, 410.0, events[2].EndTime)
	// Indices 0 and 1 are only read by the scan of the first seed.
	assert.Equal(t, 1, a.reads[0])
	assert.Equal(t, 1, a.reads[1])
	assert.Equal(t, 4, b.detectors[0].start)
}

func TestBuilder_TriggerRejection(t *testing.T) {
	spec := dfv1.BuilderSpec{
		Reference:   seedOnly(dfv1.DetectorKindTof),
		Detectors:   []dfv1.DetectorSpec{detectorSpec(dfv1.DetectorKindSts, -20, 20, 3)},
		OverlapMode: dfv1.NoOverlap,
	}
	b := newTestBuilder(t, spec, Input{Streams: map[dfv1.DetectorKind]digi.Stream{
		dfv1.DetectorKindTof: basics(100, 250, 400),
		dfv1.DetectorKindSts: basics(95, 105, 245, 410),
	}})
	assert.Empty(t, process(t, b, wideBatch))
	assert.Equal(t, 3.0, testutil.ToFloat64(eventsRejectedCount.WithLabelValues(t.Name(), "Sts", "min_count")))
}

func TestBuilder_MergeOverlap(t *testing.T) {
	spec := dfv1.BuilderSpec{
		Reference:   seedOnly(dfv1.DetectorKindTof),
		Detectors:   []dfv1.DetectorSpec{detectorSpec(dfv1.DetectorKindSts, -5, 5, 1)},
		OverlapMode: dfv1.MergeOverlap,
	}
	b := newTestBuilder(t, spec, Input{Streams: map[dfv1.DetectorKind]digi.Stream{
		dfv1.DetectorKindTof: basics(100, 104),
		dfv1.DetectorKindSts: basics(98, 103, 107),
	}})
	assert.Equal(t, 10.0, b.Extrema().WidestRange)

	events := process(t, b, wideBatch)
	require.Len(t, events, 1)
	assert.Equal(t, []int{0, 1}, events[0].Indices(dfv1.DetectorKindTof))
	assert.Equal(t, []int{0, 1, 2}, events[0].Indices(dfv1.DetectorKindSts))
	assert.Equal(t, 100.0, events[0].SeedTime)
	assert.Equal(t, 107.0, events[0].EndTime)
	assert.Equal(t, 5, events[0].Size())
}

func TestBuilder_MergeOverlapRejectedAfterMerge(t *testing.T) {
	maxCount := 2
	spec := dfv1.BuilderSpec{
		Reference: seedOnly(dfv1.DetectorKindTof),
		Detectors: []dfv1.DetectorSpec{{
			Kind: dfv1.DetectorKindSts, TimeWindowBegin: -5, TimeWindowEnd: 5, TriggerMaxCount: &maxCount,
		}},
		OverlapMode: dfv1.MergeOverlap,
	}
	b := newTestBuilder(t, spec, Input{Streams: map[dfv1.DetectorKind]digi.Stream{
		dfv1.DetectorKindTof: basics(100, 104, 200),
		dfv1.DetectorKindSts: basics(98, 103, 107, 201),
	}})
	events := process(t, b, wideBatch)
	require.Len(t, events, 1)
	assert.Equal(t, 200.0, events[0].SeedTime)
	assert.Equal(t, uint64(0), events[0].ID)
}

func TestBuilder_AllowOverlap(t *testing.T) {
	spec := dfv1.BuilderSpec{
		Reference:   &dfv1.DetectorSpec{Kind: dfv1.DetectorKindTof, TimeWindowBegin: -2, TimeWindowEnd: 3},
		Detectors:   []dfv1.DetectorSpec{detectorSpec(dfv1.DetectorKindSts, -5, 5, 1)},
		OverlapMode: dfv1.AllowOverlap,
	}
	in := Input{Streams: map[dfv1.DetectorKind]digi.Stream{
		dfv1.DetectorKindTof: basics(100, 108),
		dfv1.DetectorKindSts: basics(104),
	}}
	b := newTestBuilder(t, spec, in)
	assert.Equal(t, 5.0, b.Extrema().SeedRange)
	assert.Equal(t, 10.0, b.Extrema().WidestRange)

	events := process(t, b, wideBatch)
	require.Len(t, events, 2)
	assert.Equal(t, [][]int{{0}, {0}}, matches(events, dfv1.DetectorKindSts))
	assert.Equal(t, [][]int{{0}, {1}}, matches(events, dfv1.DetectorKindTof))

	t.Run("seed cluster", func(t *testing.T) {
		in.Streams[dfv1.DetectorKindTof] = basics(100, 103)
		b := newTestBuilder(t, spec, in)
		events := process(t, b, wideBatch)
		require.Len(t, events, 1)
		assert.Equal(t, []int{0, 1}, events[0].Indices(dfv1.DetectorKindTof))
		assert.Equal(t, 1.0, testutil.ToFloat64(seedsDroppedCount.WithLabelValues(t.Name())))
	})
}

func TestBuilder_NoOverlapDropsCloseSeeds(t *testing.T) {
	spec := dfv1.BuilderSpec{
		Reference:   &dfv1.DetectorSpec{Kind: dfv1.DetectorKindTof, TimeWindowBegin: -2, TimeWindowEnd: 3},
		Detectors:   []dfv1.DetectorSpec{detectorSpec(dfv1.DetectorKindSts, -5, 5, 1)},
		OverlapMode: dfv1.NoOverlap,
	}
	b := newTestBuilder(t, spec, Input{Streams: map[dfv1.DetectorKind]digi.Stream{
		dfv1.DetectorKindTof: basics(100, 108, 120),
		dfv1.DetectorKindSts: basics(104, 119),
	}})
	events := process(t, b, wideBatch)
	require.Len(t, events, 2)
	assert.Equal(t, []float64{100, 120}, []float64{events[0].SeedTime, events[1].SeedTime})
}

func TestBuilder_ReferenceWindowAfterSeed(t *testing.T) {
	spec := dfv1.BuilderSpec{
		Reference:   &dfv1.DetectorSpec{Kind: dfv1.DetectorKindTof, TimeWindowBegin: 1, TimeWindowEnd: 10},
		OverlapMode: dfv1.NoOverlap,
	}
	b := newTestBuilder(t, spec, Input{Streams: map[dfv1.DetectorKind]digi.Stream{
		dfv1.DetectorKindTof: basics(100, 105, 200),
	}})
	events := process(t, b, wideBatch)
	require.Len(t, events, 2)
	assert.Equal(t, []int{1, 0}, events[0].Indices(dfv1.DetectorKindTof))
	assert.Equal(t, []int{2}, events[1].Indices(dfv1.DetectorKindTof))
}

func TestBuilder_ExplicitSeeds(t *testing.T) {
	spec := dfv1.BuilderSpec{
		SeedWindow:  &dfv1.TimeWindow{Begin: -10, End: 10},
		Detectors:   []dfv1.DetectorSpec{detectorSpec(dfv1.DetectorKindRich, -10, 10, 1)},
		OverlapMode: dfv1.NoOverlap,
	}
	b := newTestBuilder(t, spec, Input{
		Streams:   map[dfv1.DetectorKind]digi.Stream{dfv1.DetectorKindRich: basics(12, 45, 48, 200)},
		SeedTimes: []float64{10, 50, 130},
	})
	// Seeds are searched in [10, 110].
	events := process(t, b, window.NewBatchContext(0, 100, 50))
	require.Len(t, events, 2)
	assert.Equal(t, [][]int{{0}, {1, 2}}, matches(events, dfv1.DetectorKindRich))

	t.Run("ignore batch overlap", func(t *testing.T) {
		spec.IgnoreBatchOverlap = true
		b := newTestBuilder(t, spec, Input{
			Streams:   map[dfv1.DetectorKind]digi.Stream{dfv1.DetectorKindRich: basics(12, 45, 48, 200)},
			SeedTimes: []float64{5, 50, 130},
		})
		events := process(t, b, window.NewBatchContext(0, 100, 50))
		require.Len(t, events, 2)
		assert.Equal(t, []float64{5, 50}, []float64{events[0].SeedTime, events[1].SeedTime})
	})
}

func TestBuilder_Warnings(t *testing.T) {
	spec := dfv1.BuilderSpec{
		Reference: seedOnly(dfv1.DetectorKindTof),
		Detectors: []dfv1.DetectorSpec{detectorSpec(dfv1.DetectorKindSts, -20, 20, 0)},
	}
	b := newTestBuilder(t, spec, Input{Streams: map[dfv1.DetectorKind]digi.Stream{
		dfv1.DetectorKindTof: basics(50, 95),
		dfv1.DetectorKindSts: basics(90),
	}})
	events := process(t, b, window.NewBatchContext(0, 100, 10))
	assert.Len(t, events, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(warningsCount.WithLabelValues(t.Name(), warningOverlapTooShort)))
	// The windows of the seed at 95 end at 115, past the batch data.
	assert.Equal(t, 1.0, testutil.ToFloat64(warningsCount.WithLabelValues(t.Name(), warningSeedBeyondData)))

	_, err := b.Process(window.BatchContext{StartTime: 10, CoreEndTime: 0})
	assert.Error(t, err)
}

func TestBuilder_Bmon(t *testing.T) {
	bmon := func(tm float64, station uint32) digi.Bmon {
		return digi.Bmon{T: tm, Addr: digi.TofAddress(0, dfv1.SmTypeBmon, 0, 0, station, 0)}
	}
	stream := digi.Slice[digi.Bmon]{bmon(93, 0), bmon(96, 1), bmon(104, 1)}
	det := dfv1.DetectorSpec{Kind: dfv1.DetectorKindBmon, TimeWindowBegin: -10, TimeWindowEnd: 10, Stations: []bool{false, true}}
	spec := dfv1.BuilderSpec{
		SeedWindow: &dfv1.TimeWindow{Begin: -10, End: 10},
		Detectors:  []dfv1.DetectorSpec{det},
	}
	in := Input{Streams: map[dfv1.DetectorKind]digi.Stream{dfv1.DetectorKindBmon: stream}, SeedTimes: []float64{100}}

	events := process(t, newTestBuilder(t, spec, in), wideBatch)
	require.Len(t, events, 1)
	assert.Equal(t, 100.0, events[0].SeedTime)
	assert.Equal(t, 96.0, events[0].StartTime)
	assert.Equal(t, []int{0, 1, 2}, events[0].Indices(dfv1.DetectorKindBmon))

	t.Run("station count", func(t *testing.T) {
		spec.Detectors[0].TriggerMinCount = 3
		assert.Empty(t, process(t, newTestBuilder(t, spec, in), wideBatch))
		spec.Detectors[0].TriggerMinCount = 2
		assert.Len(t, process(t, newTestBuilder(t, spec, in), wideBatch), 1)
	})

	t.Run("reference seeds", func(t *testing.T) {
		spec := dfv1.BuilderSpec{
			Reference:   &dfv1.DetectorSpec{Kind: dfv1.DetectorKindBmon, Stations: []bool{false, true}},
			OverlapMode: dfv1.NoOverlap,
		}
		events := process(t, newTestBuilder(t, spec, Input{Streams: in.Streams}), wideBatch)
		require.Len(t, events, 2)
		assert.Equal(t, []float64{96, 104}, []float64{events[0].StartTime, events[1].StartTime})
	})
}

func TestBuilder_TrdSplit(t *testing.T) {
	stream := digi.Slice[digi.Trd]{
		{T: 99, Asic: digi.AsicSpadic},
		{T: 100, Asic: digi.AsicFasp},
		{T: 101, Asic: digi.AsicSpadic},
	}
	spec := dfv1.BuilderSpec{
		SeedWindow: &dfv1.TimeWindow{Begin: -10, End: 10},
		Detectors: []dfv1.DetectorSpec{
			detectorSpec(dfv1.DetectorKindTrd, -5, 5, 0),
			detectorSpec(dfv1.DetectorKindTrd2d, -5, 5, 0),
		},
	}
	in := Input{Streams: map[dfv1.DetectorKind]digi.Stream{dfv1.DetectorKindTrd: stream}, SeedTimes: []float64{100}}
	events := process(t, newTestBuilder(t, spec, in), wideBatch)
	require.Len(t, events, 1)
	assert.Equal(t, []int{0, 2}, events[0].Indices(dfv1.DetectorKindTrd))
	assert.Equal(t, []int{1}, events[0].Indices(dfv1.DetectorKindTrd2d))
	assert.Equal(t, []dfv1.DetectorKind{dfv1.DetectorKindTrd, dfv1.DetectorKindTrd2d}, events[0].Kinds())
}

func TestNew_ConfigErrors(t *testing.T) {
	streams := map[dfv1.DetectorKind]digi.Stream{
		dfv1.DetectorKindTof: basics(1),
		dfv1.DetectorKindSts: basics(1),
	}
	tests := []struct {
		name string
		spec dfv1.BuilderSpec
		in   Input
		err  error
	}{
		{
			name: "no seed source",
			spec: dfv1.BuilderSpec{Detectors: []dfv1.DetectorSpec{detectorSpec(dfv1.DetectorKindSts, -1, 1, 0)}},
			in:   Input{Streams: streams},
			err:  ErrNoSeedSource,
		},
		{
			name: "ambiguous seed source",
			spec: dfv1.BuilderSpec{Reference: seedOnly(dfv1.DetectorKindTof)},
			in:   Input{Streams: streams, SeedTimes: []float64{1}},
			err:  ErrAmbiguousSeedSource,
		},
		{
			name: "invalid selection window",
			spec: dfv1.BuilderSpec{Reference: seedOnly(dfv1.DetectorKindTof), Detectors: []dfv1.DetectorSpec{detectorSpec(dfv1.DetectorKindSts, 1, 1, 0)}},
			in:   Input{Streams: streams},
			err:  ErrInvalidWindow,
		},
		{
			name: "invalid reference window",
			spec: dfv1.BuilderSpec{Reference: &dfv1.DetectorSpec{Kind: dfv1.DetectorKindTof, TimeWindowBegin: 5, TimeWindowEnd: -5}},
			in:   Input{Streams: streams},
			err:  ErrInvalidWindow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.spec, tt.in, WithLogger(zap.NewNop().Sugar()))
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
		})
	}

	t.Run("invalid spec", func(t *testing.T) {
		spec := dfv1.BuilderSpec{
			Reference: seedOnly(dfv1.DetectorKindTof),
			Detectors: []dfv1.DetectorSpec{detectorSpec(dfv1.DetectorKindSts, -1, 1, 0), detectorSpec(dfv1.DetectorKindSts, -1, 1, 0)},
		}
		_, err := New(spec, Input{Streams: streams}, WithLogger(zap.NewNop().Sugar()))
		assert.ErrorContains(t, err, "selected more than once")
	})
}

func TestCheckStreams(t *testing.T) {
	in := Input{Streams: map[dfv1.DetectorKind]digi.Stream{
		dfv1.DetectorKindTof: basics(1),
		dfv1.DetectorKindTrd: basics(1),
	}}
	spec := dfv1.BuilderSpec{
		Reference: seedOnly(dfv1.DetectorKindTof),
		Detectors: []dfv1.DetectorSpec{detectorSpec(dfv1.DetectorKindTrd2d, -1, 1, 0)},
	}
	assert.NoError(t, CheckStreams(spec, in))

	spec.Reference = seedOnly(dfv1.DetectorKindBmon)
	spec.Detectors = append(spec.Detectors, detectorSpec(dfv1.DetectorKindRich, -1, 1, 0))
	err := CheckStreams(spec, in)
	assert.True(t, errors.Is(err, ErrMissingStream))
	assert.ErrorContains(t, err, "reference detector Bmon")
	assert.ErrorContains(t, err, "selection detector Rich")
}

func TestBuilder_MissingStream(t *testing.T) {
	ref := basics(100, 300)
	tof := basics(102, 301)

	t.Run("trigger disabled", func(t *testing.T) {
		spec := dfv1.BuilderSpec{
			Reference: seedOnly(dfv1.DetectorKindSts),
			Detectors: []dfv1.DetectorSpec{
				detectorSpec(dfv1.DetectorKindTof, -5, 5, 1),
				detectorSpec(dfv1.DetectorKindRich, -5, 5, 0),
			},
		}
		b := newTestBuilder(t, spec, Input{Streams: map[dfv1.DetectorKind]digi.Stream{
			dfv1.DetectorKindSts: ref,
			dfv1.DetectorKindTof: tof,
		}})
		events := process(t, b, wideBatch)
		require.Len(t, events, 2)
		assert.Equal(t, [][]int{{0}, {1}}, matches(events, dfv1.DetectorKindTof))
		assert.Equal(t, 0, events[0].NofData(dfv1.DetectorKindRich))
	})

	t.Run("min count rejects", func(t *testing.T) {
		spec := dfv1.BuilderSpec{
			Reference: seedOnly(dfv1.DetectorKindSts),
			Detectors: []dfv1.DetectorSpec{detectorSpec(dfv1.DetectorKindRich, -5, 5, 1)},
		}
		b := newTestBuilder(t, spec, Input{Streams: map[dfv1.DetectorKind]digi.Stream{
			dfv1.DetectorKindSts: ref,
		}})
		assert.Empty(t, process(t, b, wideBatch))
		assert.Equal(t, 2.0, testutil.ToFloat64(eventsRejectedCount.WithLabelValues(t.Name(), "Rich", "missing_stream")))
	})

	t.Run("no reference digis", func(t *testing.T) {
		spec := dfv1.BuilderSpec{Reference: seedOnly(dfv1.DetectorKindSts)}
		b := newTestBuilder(t, spec, Input{Streams: map[dfv1.DetectorKind]digi.Stream{}})
		assert.Empty(t, process(t, b, wideBatch))
	})
}

// randomInput returns a reference stream and two selection streams with clustered hits.
func randomInput(seed int64) Input {
	r := rand.New(rand.NewSource(seed))
	gen := func(n int, spread float64) digi.Slice[digi.Basic] {
		s := make(digi.Slice[digi.Basic], n)
		t := 0.0
		for i := range s {
			t += r.Float64() * spread
			s[i] = digi.Basic{T: t}
		}
		return s
	}
	return Input{Streams: map[dfv1.DetectorKind]digi.Stream{
		dfv1.DetectorKindTof:  gen(200, 20),
		dfv1.DetectorKindSts:  gen(600, 7),
		dfv1.DetectorKindRich: gen(300, 13),
	}}
}

func randomSpec(mode dfv1.OverlapMode) dfv1.BuilderSpec {
	return dfv1.BuilderSpec{
		Reference: &dfv1.DetectorSpec{Kind: dfv1.DetectorKindTof, TimeWindowBegin: -5, TimeWindowEnd: 5},
		Detectors: []dfv1.DetectorSpec{
			detectorSpec(dfv1.DetectorKindSts, -15, 10, 2),
			detectorSpec(dfv1.DetectorKindRich, -8, 12, 1),
		},
		OverlapMode: mode,
	}
}

func TestBuilder_Properties(t *testing.T) {
	bc := window.NewBatchContext(0, 3000, 200)
	for _, mode := range []dfv1.OverlapMode{dfv1.NoOverlap, dfv1.MergeOverlap, dfv1.AllowOverlap} {
		t.Run(string(mode), func(t *testing.T) {
			spec := randomSpec(mode)
			in := randomInput(42)
			b := newTestBuilder(t, spec, in)
			events := process(t, b, bc)
			require.NotEmpty(t, events)

			// ordering
			for i := 1; i < len(events); i++ {
				assert.LessOrEqual(t, events[i-1].StartTime, events[i].StartTime)
			}
			// idempotence
			again := process(t, b, bc)
			assert.Equal(t, events, again)
			fresh := process(t, newTestBuilder(t, spec, in), bc)
			assert.Equal(t, events, fresh)

			if mode == dfv1.NoOverlap {
				for _, d := range spec.AllDetectors() {
					seen := map[int]bool{}
					for _, e := range events {
						for _, i := range e.Indices(d.Kind) {
							assert.False(t, seen[i], "%s digi %d in two events", d.Kind, i)
							seen[i] = true
						}
					}
				}
			}
			if mode != dfv1.MergeOverlap {
				// window correctness
				for _, e := range events {
					for _, d := range spec.AllDetectors() {
						for _, i := range e.Indices(d.Kind) {
							tm := in.Stream(d.Kind).At(i).Time()
							assert.GreaterOrEqual(t, tm, e.SeedTime+d.TimeWindowBegin)
							assert.LessOrEqual(t, tm, e.SeedTime+d.TimeWindowEnd)
						}
					}
				}
			}
		})
	}
}

func TestBuilder_TriggerMonotonicity(t *testing.T) {
	in := randomInput(7)
	bc := window.NewBatchContext(0, 3000, 200)
	spec := dfv1.BuilderSpec{
		Reference:   seedOnly(dfv1.DetectorKindTof),
		Detectors:   []dfv1.DetectorSpec{detectorSpec(dfv1.DetectorKindSts, -15, 10, 0)},
		OverlapMode: dfv1.AllowOverlap,
	}
	prev := -1
	for minCount := 0; minCount <= 6; minCount++ {
		spec.Detectors[0].TriggerMinCount = minCount
		n := len(process(t, newTestBuilder(t, spec, in), bc))
		if prev >= 0 {
			assert.LessOrEqual(t, n, prev, "min count %d", minCount)
		}
		prev = n
	}
	spec.Detectors[0].TriggerMinCount = 0
	prev = -1
	for maxCount := 6; maxCount >= 0; maxCount-- {
		m := maxCount
		spec.Detectors[0].TriggerMaxCount = &m
		n := len(process(t, newTestBuilder(t, spec, in), bc))
		if prev >= 0 {
			assert.LessOrEqual(t, n, prev, "max count %d", maxCount)
		}
		prev = n
	}
}
