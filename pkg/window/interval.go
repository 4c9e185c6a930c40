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

package window

import (
	"math"

	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
)

// Interval is an inclusive time interval in ns.
type Interval struct {
	Begin float64
	End   float64
}

// Around returns the acceptance interval of window w for a seed at t.
func Around(t float64, w dfv1.TimeWindow) Interval {
	return Interval{Begin: t + w.Begin, End: t + w.End}
}

// Contains tells whether t lies in the interval, bounds included.
func (i Interval) Contains(t float64) bool {
	return i.Begin <= t && t <= i.End
}

// Range returns the width of the interval.
func (i Interval) Range() float64 {
	return i.End - i.Begin
}

// Extrema holds the run-wide window quantities.
type Extrema struct {
	// EarliestBegin is the smallest window begin across detectors.
	EarliestBegin float64
	// LatestEnd is the largest window end across detectors.
	LatestEnd float64
	// WidestRange is the largest window range across detectors.
	WidestRange float64
	// SeedRange is the window range of the seeds themselves: the reference detector window or
	// the explicit seed window.
	SeedRange float64
}

// NewExtrema computes the run-wide quantities of a builder configuration. The seed window (reference detector
// or explicit seeds) initialises all of them, selection detectors extend them.
func NewExtrema(spec dfv1.BuilderSpec) Extrema {
	var seed dfv1.TimeWindow
	if spec.HasReference() {
		seed = spec.Reference.Window()
	} else {
		seed = spec.GetSeedWindow()
	}
	e := Extrema{
		EarliestBegin: seed.Begin,
		LatestEnd:     seed.End,
		WidestRange:   seed.Range(),
		SeedRange:     seed.Range(),
	}
	for _, d := range spec.Detectors {
		e.EarliestBegin = math.Min(e.EarliestBegin, d.TimeWindowBegin)
		e.LatestEnd = math.Max(e.LatestEnd, d.TimeWindowEnd)
		e.WidestRange = math.Max(e.WidestRange, d.TimeWindowRange())
	}
	return e
}
