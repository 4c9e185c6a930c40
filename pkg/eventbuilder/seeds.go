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
	"github.com/numaproj/eventbuilder/pkg/digi"
	"github.com/numaproj/eventbuilder/pkg/window"
)

// seedSource yields the seeds of a batch in increasing time order.
type seedSource interface {
	// each calls fn for every seed in iv. index is the position of the seed digi in the reference
	// stream, or in the explicit seed list.
	each(iv window.Interval, fn func(t float64, index int))
	// size returns the number of candidate seeds, inside iv or not.
	size() int
}

// streamSeeds takes the seeds from the digis of the reference detector.
type streamSeeds struct {
	stream   digi.Stream
	stations digi.StationSelector
}

func (s streamSeeds) each(iv window.Interval, fn func(float64, int)) {
	for i := 0; i < s.size(); i++ {
		g := s.stream.At(i)
		t := g.Time()
		if iv.End < t {
			break
		}
		if iv.Contains(t) && s.stations.Select(g) {
			fn(t, i)
		}
	}
}

// size is zero for a batch without reference digis.
func (s streamSeeds) size() int {
	if s.stream == nil {
		return 0
	}
	return s.stream.Len()
}

// explicitSeeds takes the seeds from a list of times, sorted in increasing order.
type explicitSeeds []float64

func (s explicitSeeds) each(iv window.Interval, fn func(float64, int)) {
	for i, t := range s {
		if iv.End < t {
			break
		}
		if iv.Contains(t) {
			fn(t, i)
		}
	}
}

func (s explicitSeeds) size() int {
	return len(s)
}
