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

	"go.uber.org/multierr"
)

// OverlapMode decides what happens to seeds that fall close to the previous event.
type OverlapMode string

const (
	// NoOverlap drops seeds that overlap the previous event.
	NoOverlap OverlapMode = "NoOverlap"
	// MergeOverlap adds the matches of overlapping seeds to the open event.
	MergeOverlap OverlapMode = "MergeOverlap"
	// AllowOverlap builds independent events which may share digis.
	AllowOverlap OverlapMode = "AllowOverlap"
)

// AdvancesCursors tells whether accepted events move the scan cursors past their matches.
func (m OverlapMode) AdvancesCursors() bool {
	return m == NoOverlap || m == MergeOverlap
}

// BatchSpec holds static batch parameters, used when batches carry no metadata.
type BatchSpec struct {
	// StartTime of the first batch, in ns.
	StartTime float64 `json:"startTime"`
	// Length of the core part of a batch, in ns.
	Length float64 `json:"length" validate:"gt=0"`
	// OverlapLength is the look-ahead shared with the next batch, in ns.
	OverlapLength float64 `json:"overlapLength" validate:"gte=0"`
}

// BuilderSpec is the static configuration of an event builder run.
type BuilderSpec struct {
	// Reference is the detector whose digis generate seeds. Mutually exclusive with
	// explicit seed times.
	// +optional
	Reference *DetectorSpec `json:"reference,omitempty"`
	// Detectors are the selection detectors, matched in order.
	// +optional
	Detectors []DetectorSpec `json:"detectors,omitempty" validate:"dive"`
	// SeedWindow is the window range of explicit seeds, only used without a reference.
	// +optional
	SeedWindow *TimeWindow `json:"seedWindow,omitempty"`
	// +optional
	// +kubebuilder:default="AllowOverlap"
	OverlapMode OverlapMode `json:"overlapMode,omitempty" validate:"omitempty,oneof=NoOverlap MergeOverlap AllowOverlap"`
	// IgnoreBatchOverlap restricts seeds to the core part of each batch.
	// +optional
	IgnoreBatchOverlap bool `json:"ignoreBatchOverlap,omitempty"`
	// Batch holds static batch parameters. When unset every batch must carry its own.
	// +optional
	Batch *BatchSpec `json:"batch,omitempty"`
}

// GetOverlapMode returns the overlap mode, defaulted.
func (b BuilderSpec) GetOverlapMode() OverlapMode {
	if b.OverlapMode == "" {
		return DefaultOverlapMode
	}
	return b.OverlapMode
}

// HasReference tells whether seeds come from a reference detector.
func (b BuilderSpec) HasReference() bool {
	return b.Reference != nil && b.Reference.Kind != DetectorKindNotExist
}

// GetSeedWindow returns the window used to size explicit seeds.
func (b BuilderSpec) GetSeedWindow() TimeWindow {
	if b.SeedWindow == nil {
		return TimeWindow{Begin: DefaultTimeWindowBegin, End: DefaultTimeWindowEnd}
	}
	return *b.SeedWindow
}

// AllDetectors returns the reference (if any) followed by the selection detectors.
func (b BuilderSpec) AllDetectors() []DetectorSpec {
	all := make([]DetectorSpec, 0, len(b.Detectors)+1)
	if b.HasReference() {
		all = append(all, *b.Reference)
	}
	return append(all, b.Detectors...)
}

// UsesBmon tells whether Bmon digis set the event start time.
func (b BuilderSpec) UsesBmon() bool {
	for _, d := range b.AllDetectors() {
		if d.Kind == DetectorKindBmon {
			return true
		}
	}
	return false
}

// SupportsMinLayers tells whether a fired-layer strategy exists for the kind.
func (k DetectorKind) SupportsMinLayers() bool {
	return k == DetectorKindSts || k == DetectorKindTof
}

// Validate returns every configuration error of the builder.
func (b BuilderSpec) Validate() error {
	var errs error
	switch b.GetOverlapMode() {
	case NoOverlap, MergeOverlap, AllowOverlap:
	default:
		errs = multierr.Append(errs, fmt.Errorf("unsupported overlap mode %q", b.OverlapMode))
	}
	if b.HasReference() {
		ref := b.Reference
		errs = multierr.Append(errs, validateDetector(*ref, true))
		for _, d := range b.Detectors {
			if d.Kind == ref.Kind {
				errs = multierr.Append(errs, fmt.Errorf("reference detector %s is also in the selection list", ref.Kind))
			}
		}
	} else if b.SeedWindow != nil && b.SeedWindow.End <= b.SeedWindow.Begin {
		errs = multierr.Append(errs, fmt.Errorf("invalid seed window [%v, %v]", b.SeedWindow.Begin, b.SeedWindow.End))
	}
	seen := make(map[DetectorKind]bool, len(b.Detectors))
	for _, d := range b.Detectors {
		if seen[d.Kind] {
			errs = multierr.Append(errs, fmt.Errorf("detector %s selected more than once", d.Kind))
		}
		seen[d.Kind] = true
		errs = multierr.Append(errs, validateDetector(d, false))
	}
	if b.Batch != nil && b.Batch.Length <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("invalid batch length %v", b.Batch.Length))
	}
	return errs
}

func validateDetector(d DetectorSpec, reference bool) error {
	var errs error
	if d.Kind.Order() < 0 {
		return fmt.Errorf("unsupported detector kind %q", string(d.Kind))
	}
	// A reference without a window of its own only contributes its seed digi.
	seedOnly := reference && d.TimeWindowBegin == 0 && d.TimeWindowEnd == 0
	if !seedOnly && d.TimeWindowEnd <= d.TimeWindowBegin {
		errs = multierr.Append(errs, fmt.Errorf("invalid time window [%v, %v] for %s", d.TimeWindowBegin, d.TimeWindowEnd, d.Kind))
	}
	if d.TriggerMinCount < 0 {
		errs = multierr.Append(errs, fmt.Errorf("negative trigger min count for %s", d.Kind))
	}
	if d.TriggerMaxCount != nil && *d.TriggerMaxCount < 0 {
		errs = multierr.Append(errs, fmt.Errorf("negative trigger max count for %s", d.Kind))
	}
	if d.TriggerMinLayers > 0 && !d.Kind.SupportsMinLayers() {
		errs = multierr.Append(errs, fmt.Errorf("fired layers check not implemented for %s", d.Kind))
	}
	if len(d.Stations) > 0 && d.Kind != DetectorKindBmon {
		errs = multierr.Append(errs, fmt.Errorf("station selection is only supported for %s, not %s", DetectorKindBmon, d.Kind))
	}
	return errs
}
