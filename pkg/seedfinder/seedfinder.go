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

package seedfinder

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"go.uber.org/multierr"

	"github.com/numaproj/eventbuilder/pkg/digi"
)

// SlidingWindow finds seeds as clusters of digis in time.
//
// Starting from each digi, a seed is produced when at least MinDigis digis, that digi included,
// lie within WindowLength after it. The seed time is the mean time of the digis of the window
// shifted by Offset. The search then resumes at the first digi later than the last digi of the
// window by more than DeadTime.
type SlidingWindow struct {
	MinDigis     int     `json:"minDigis" validate:"gte=1"`
	WindowLength float64 `json:"windowLength" validate:"gte=0"`
	DeadTime     float64 `json:"deadTime" validate:"gte=0"`
	Offset       float64 `json:"offset"`
}

// Validate checks the parameters of the finder.
func (sw SlidingWindow) Validate() error {
	var errs error
	if sw.MinDigis < 1 {
		errs = multierr.Append(errs, fmt.Errorf("min digis must be positive, got %d", sw.MinDigis))
	}
	if sw.WindowLength < 0 {
		errs = multierr.Append(errs, fmt.Errorf("negative window length %v", sw.WindowLength))
	}
	if sw.DeadTime < 0 {
		errs = multierr.Append(errs, fmt.Errorf("negative dead time %v", sw.DeadTime))
	}
	return errs
}

// FindSeeds returns the seeds of a time ordered stream, in increasing order.
func (sw SlidingWindow) FindSeeds(stream digi.Stream) []float64 {
	return sw.find(digi.Times(stream))
}

func (sw SlidingWindow) find(times []float64) []float64 {
	seeds := make([]float64, 0)
	n := len(times)
	for i := 0; i < n; {
		end := i
		for end < n && times[end]-times[i] <= sw.WindowLength {
			end++
		}
		if end-i < sw.MinDigis {
			i++
			continue
		}
		// The window is never empty so the mean is always defined.
		mean, _ := stats.Mean(stats.Float64Data(times[i:end]))
		seeds = append(seeds, mean+sw.Offset)
		last := times[end-1]
		for i = end; i < n && times[i] <= last+sw.DeadTime; i++ {
		}
	}
	return seeds
}

// Merge returns the times of all digis of the streams in increasing order. Equal times keep the
// order of the streams.
func Merge(streams ...digi.Stream) []float64 {
	total := 0
	for _, s := range streams {
		total += s.Len()
	}
	out := make([]float64, 0, total)
	heads := make([]int, len(streams))
	for len(out) < total {
		next := -1
		for k, s := range streams {
			if heads[k] >= s.Len() {
				continue
			}
			if next < 0 || s.At(heads[k]).Time() < streams[next].At(heads[next]).Time() {
				next = k
			}
		}
		out = append(out, streams[next].At(heads[next]).Time())
		heads[next]++
	}
	return out
}

// FindSeedsMerged runs the finder on the union of several streams.
func (sw SlidingWindow) FindSeedsMerged(streams ...digi.Stream) []float64 {
	return sw.find(Merge(streams...))
}
