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
	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
	"github.com/numaproj/eventbuilder/pkg/digi"
	"github.com/numaproj/eventbuilder/pkg/window"
)

// detector is the per-batch scan state of one configured detector.
type detector struct {
	spec     dfv1.DetectorSpec
	stream   digi.Stream
	filter   digi.Filter
	stations digi.StationSelector
	// start is the first index which may still match a later seed.
	start int
	// end is the first index not consumed by the last scanned seed.
	end int
}

func newDetector(spec dfv1.DetectorSpec, stream digi.Stream) *detector {
	return &detector{
		spec:     spec,
		stream:   stream,
		filter:   digi.FilterFor(spec.Kind),
		stations: digi.NewStationSelector(spec.Stations),
	}
}

func (d *detector) reset() {
	d.start, d.end = 0, 0
}

// advance moves the start cursor past the digis consumed by the last scanned seed.
func (d *detector) advance() {
	d.start = d.end
}

// scan adds to ev every digi of the detector in its window around seed time t. The scan resumes at
// the start cursor, moves it past the digis lying before the window and stops at the first digi
// after the window, which becomes the end cursor. The end cursor is the stream length when the
// stream ends inside the window. A detector without stream in the batch matches nothing.
func (d *detector) scan(t float64, ev *Event) {
	if d.stream == nil {
		return
	}
	iv := window.Around(t, d.spec.Window())
	n := d.stream.Len()
	start, end := d.start, n
	for i := d.start; i < n; i++ {
		g := d.stream.At(i)
		if g.Time() < iv.Begin {
			start++
			continue
		}
		if iv.End < g.Time() {
			end = i
			break
		}
		if !d.filter(g) {
			continue
		}
		ev.add(d.spec.Kind, i, g.Time())
	}
	d.start, d.end = start, end
}

// count returns the number of matched digis taken into account by the count cuts.
func (d *detector) count(ev *Event) int {
	if d.stream == nil {
		return 0
	}
	return d.stations.Count(d.stream, ev.Indices(d.spec.Kind))
}
