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

package digi

import (
	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
)

// Filter rejects individual digis of a stream before they are matched.
// It is a pure predicate and never affects the scan cursors.
type Filter func(d Digi) bool

// AcceptAll is the filter of kinds without a sub-variant.
func AcceptAll(Digi) bool {
	return true
}

// FilterFor returns the match filter of a detector kind. Trd and Trd2d share a
// stream, each keeps only the digis of its own ASIC type.
func FilterFor(kind dfv1.DetectorKind) Filter {
	switch kind {
	case dfv1.DetectorKindTrd:
		return rejectAsic(AsicFasp)
	case dfv1.DetectorKindTrd2d:
		return rejectAsic(AsicSpadic)
	default:
		return AcceptAll
	}
}

func rejectAsic(asic AsicType) Filter {
	return func(d Digi) bool {
		if t, ok := d.(Trd); ok {
			return t.Asic != asic
		}
		return true
	}
}

// StationSelector restricts the Bmon stations used for seeding, trigger counting and the
// event start time. The zero value selects every station.
type StationSelector struct {
	stations []bool
}

// NewStationSelector returns a selector using the given station map.
func NewStationSelector(stations []bool) StationSelector {
	return StationSelector{stations: append([]bool(nil), stations...)}
}

// Enabled tells whether a station map is in use.
func (s StationSelector) Enabled() bool {
	return len(s.stations) > 0
}

// Select tells whether the digi belongs to a selected station. Digis which are not Bmon
// digis, or whose address is not a Bmon address, are rejected when a map is in use.
func (s StationSelector) Select(d Digi) bool {
	if !s.Enabled() {
		return true
	}
	b, ok := d.(Bmon)
	if !ok || b.SmType() != dfv1.SmTypeBmon {
		return false
	}
	station := b.Station()
	return station < len(s.stations) && s.stations[station]
}

// Count returns the number of selected digis among the given stream indices.
func (s StationSelector) Count(stream Stream, indices []int) int {
	if !s.Enabled() {
		return len(indices)
	}
	n := 0
	for _, i := range indices {
		if s.Select(stream.At(i)) {
			n++
		}
	}
	return n
}
