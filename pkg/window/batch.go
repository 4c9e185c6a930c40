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
	"fmt"

	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
)

// BatchContext describes the time layout of one batch.
type BatchContext struct {
	// StartTime is the beginning of the batch.
	StartTime float64
	// CoreEndTime is the end of the core part and the start of the overlap part.
	CoreEndTime float64
	// OverlapEndTime is the end of the data available to the batch.
	OverlapEndTime float64
}

// NewBatchContext returns the context of a batch from its start, core length and overlap length.
func NewBatchContext(start, length, overlapLength float64) BatchContext {
	return BatchContext{
		StartTime:      start,
		CoreEndTime:    start + length,
		OverlapEndTime: start + length + overlapLength,
	}
}

// FromSpec returns the context of the index-th batch for static batch parameters.
func FromSpec(b dfv1.BatchSpec, index int) BatchContext {
	return NewBatchContext(b.StartTime+float64(index)*b.Length, b.Length, b.OverlapLength)
}

// OverlapLength returns the duration of the overlap part.
func (bc BatchContext) OverlapLength() float64 {
	return bc.OverlapEndTime - bc.CoreEndTime
}

// Validate checks the ordering of the batch boundaries.
func (bc BatchContext) Validate() error {
	if bc.CoreEndTime < bc.StartTime || bc.OverlapEndTime < bc.CoreEndTime {
		return fmt.Errorf("invalid batch boundaries: start %v, core end %v, overlap end %v", bc.StartTime, bc.CoreEndTime, bc.OverlapEndTime)
	}
	return nil
}

// SeedWindow returns the interval in which seeds may be searched in the batch.
//
// By default it is shifted by the earliest window begin when that begin is negative, so that a
// seed is only used when its full window fits in the batch: the first seeds of the batch would
// otherwise miss their earliest digis, and the previous batch already used its overlap part to
// build the events of those seeds. When ignoreOverlap is set the overlap part is not used and
// seeds are searched in the core part only.
func SeedWindow(bc BatchContext, ext Extrema, ignoreOverlap bool) Interval {
	if ignoreOverlap {
		return Interval{Begin: bc.StartTime, End: bc.CoreEndTime}
	}
	shift := 0.0
	if ext.EarliestBegin < 0 {
		shift = -ext.EarliestBegin
	}
	return Interval{Begin: bc.StartTime + shift, End: bc.CoreEndTime + shift}
}

// FitsOverlap tells whether every window of a seed at the end of the core part fits in the
// overlap part. When it does not, events close to the batch edge may be incomplete.
func FitsOverlap(bc BatchContext, ext Extrema) bool {
	overlap := bc.OverlapLength()
	if 0 < ext.EarliestBegin && overlap < ext.LatestEnd {
		return false
	}
	return ext.WidestRange <= overlap
}

// BeyondData tells whether the windows of a seed at t reach past the end of the batch data.
func BeyondData(bc BatchContext, ext Extrema, t float64) bool {
	return bc.OverlapEndTime < t+ext.LatestEnd
}
