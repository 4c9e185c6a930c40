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
)

// Event is a group of time-coincident digis, referenced by their index in each detector stream.
type Event struct {
	// ID is the position of the event in the output of its batch.
	ID uint64 `json:"id"`
	// SeedTime is the time of the seed which opened the event.
	SeedTime float64 `json:"seedTime"`
	// StartTime is the seed time, or the earliest selected Bmon digi when Bmon is in use.
	StartTime float64 `json:"startTime"`
	// EndTime is the time of the latest matched digi, the seed time for an empty event.
	EndTime float64 `json:"endTime"`
	// Matches holds the matched digi indices of each detector, in scan order.
	Matches map[dfv1.DetectorKind][]int `json:"matches"`

	hasData bool
}

func newEvent(id uint64, seedTime float64) *Event {
	return &Event{
		ID:        id,
		SeedTime:  seedTime,
		StartTime: seedTime,
		EndTime:   seedTime,
		Matches:   make(map[dfv1.DetectorKind][]int),
	}
}

func (e *Event) add(kind dfv1.DetectorKind, index int, t float64) {
	e.Matches[kind] = append(e.Matches[kind], index)
	if !e.hasData || e.EndTime < t {
		e.EndTime = t
	}
	e.hasData = true
}

// NofData returns the number of matched digis of a detector.
func (e *Event) NofData(kind dfv1.DetectorKind) int {
	return len(e.Matches[kind])
}

// Indices returns the matched digi indices of a detector.
func (e *Event) Indices(kind dfv1.DetectorKind) []int {
	return e.Matches[kind]
}

// Kinds returns the detectors with at least one match, in detector order.
func (e *Event) Kinds() []dfv1.DetectorKind {
	kinds := make([]dfv1.DetectorKind, 0, len(e.Matches))
	for k, idx := range e.Matches {
		if len(idx) > 0 {
			kinds = append(kinds, k)
		}
	}
	dfv1.SortDetectorKinds(kinds)
	return kinds
}

// Size returns the total number of matched digis.
func (e *Event) Size() int {
	n := 0
	for _, idx := range e.Matches {
		n += len(idx)
	}
	return n
}
