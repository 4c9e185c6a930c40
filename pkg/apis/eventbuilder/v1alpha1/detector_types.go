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

package v1alpha1

import (
	"fmt"
	"sort"
)

// DetectorKind identifies a detector subsystem. The set of kinds is fixed.
type DetectorKind string

const (
	DetectorKindNotExist DetectorKind = ""
	DetectorKindBmon     DetectorKind = "Bmon"
	DetectorKindSts      DetectorKind = "Sts"
	DetectorKindMuch     DetectorKind = "Much"
	DetectorKindTrd      DetectorKind = "Trd"
	DetectorKindTrd2d    DetectorKind = "Trd2d"
	DetectorKindTof      DetectorKind = "Tof"
	DetectorKindRich     DetectorKind = "Rich"
	DetectorKindPsd      DetectorKind = "Psd"
	DetectorKindFsd      DetectorKind = "Fsd"
)

// DetectorKinds lists every supported kind in canonical order.
var DetectorKinds = []DetectorKind{
	DetectorKindBmon,
	DetectorKindSts,
	DetectorKindMuch,
	DetectorKindTrd,
	DetectorKindTrd2d,
	DetectorKindTof,
	DetectorKindRich,
	DetectorKindPsd,
	DetectorKindFsd,
}

// ParseDetectorKind returns the kind matching s, case sensitive.
func ParseDetectorKind(s string) (DetectorKind, error) {
	for _, k := range DetectorKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return DetectorKindNotExist, fmt.Errorf("unsupported detector kind %q", s)
}

func (k DetectorKind) String() string {
	if k == DetectorKindNotExist {
		return "NotExist"
	}
	return string(k)
}

// Order returns the position of the kind in DetectorKinds, or -1.
func (k DetectorKind) Order() int {
	for i, dk := range DetectorKinds {
		if dk == k {
			return i
		}
	}
	return -1
}

// SortDetectorKinds sorts kinds in canonical order.
func SortDetectorKinds(kinds []DetectorKind) {
	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i].Order() < kinds[j].Order()
	})
}

// TimeWindow is an acceptance window relative to a seed time, in ns.
type TimeWindow struct {
	Begin float64 `json:"begin"`
	End   float64 `json:"end"`
}

// Range returns End - Begin.
func (w TimeWindow) Range() float64 {
	return w.End - w.Begin
}

// DetectorSpec defines how one detector participates in event building.
type DetectorSpec struct {
	Kind DetectorKind `json:"kind" validate:"required"`
	// TimeWindowBegin and TimeWindowEnd bound the acceptance window around a seed, in ns.
	TimeWindowBegin float64 `json:"timeWindowBegin"`
	TimeWindowEnd   float64 `json:"timeWindowEnd"`
	// TriggerMinCount is the minimum number of matched digis, 0 disables the cut.
	// +optional
	TriggerMinCount int `json:"triggerMinCount,omitempty" validate:"gte=0"`
	// TriggerMaxCount is the maximum number of matched digis, unset disables the cut and
	// 0 turns the detector into a veto.
	// +optional
	TriggerMaxCount *int `json:"triggerMaxCount,omitempty" validate:"omitempty,gte=0"`
	// TriggerMinLayers is the minimum number of fired layers, 0 disables the cut.
	// +optional
	TriggerMinLayers int `json:"triggerMinLayers,omitempty" validate:"gte=0"`
	// HistMaxCount is the upper bound of the digis-per-event histogram of this detector.
	// +optional
	HistMaxCount float64 `json:"histMaxCount,omitempty" validate:"gte=0"`
	// Stations selects the Bmon stations used for seeding, counting and event time.
	// Empty means all stations.
	// +optional
	Stations []bool `json:"stations,omitempty"`
}

// NewDetectorSpec returns a spec for kind with the default window and no trigger cut.
func NewDetectorSpec(kind DetectorKind) DetectorSpec {
	return DetectorSpec{
		Kind:            kind,
		TimeWindowBegin: DefaultTimeWindowBegin,
		TimeWindowEnd:   DefaultTimeWindowEnd,
		HistMaxCount:    DefaultHistMaxCount,
	}
}

// Window returns the acceptance window of the detector.
func (d DetectorSpec) Window() TimeWindow {
	return TimeWindow{Begin: d.TimeWindowBegin, End: d.TimeWindowEnd}
}

// TimeWindowRange returns the width of the acceptance window.
func (d DetectorSpec) TimeWindowRange() float64 {
	return d.TimeWindowEnd - d.TimeWindowBegin
}

// HasWindow tells whether the detector defines a non-empty window of its own.
func (d DetectorSpec) HasWindow() bool {
	return d.TimeWindowBegin < d.TimeWindowEnd
}

// TriggerDisabled tells whether none of the trigger cuts is enabled.
func (d DetectorSpec) TriggerDisabled() bool {
	return d.TriggerMinCount == 0 && d.TriggerMaxCount == nil && d.TriggerMinLayers == 0
}

// GetHistMaxCount returns the histogram upper bound, defaulted.
func (d DetectorSpec) GetHistMaxCount() float64 {
	if d.HistMaxCount <= 0 {
		return DefaultHistMaxCount
	}
	return d.HistMaxCount
}
