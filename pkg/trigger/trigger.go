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

package trigger

import (
	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
	"github.com/numaproj/eventbuilder/pkg/digi"
)

// Reason tells why a candidate event was rejected.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonMissingStream Reason = "missing_stream"
	ReasonMinCount      Reason = "min_count"
	ReasonMaxCount      Reason = "max_count"
	ReasonMinLayers     Reason = "min_layers"
)

// Evaluator decides whether the matches of one detector satisfy its trigger.
type Evaluator struct {
	layers map[dfv1.DetectorKind]LayerCounter
}

// NewEvaluator returns an evaluator using the built-in layer strategies.
func NewEvaluator() *Evaluator {
	e := &Evaluator{layers: make(map[dfv1.DetectorKind]LayerCounter)}
	for _, k := range dfv1.DetectorKinds {
		if lc, ok := LayerCounterFor(k); ok {
			e.layers[k] = lc
		}
	}
	return e
}

// WithLayerCounter overrides the layer strategy of a kind.
func (e *Evaluator) WithLayerCounter(kind dfv1.DetectorKind, lc LayerCounter) *Evaluator {
	e.layers[kind] = lc
	return e
}

// Check evaluates the trigger of spec. indices are the matched digis of the detector in
// stream and count is the number of them taken into account by the count cuts, which differs
// from len(indices) when a station selection is used.
func (e *Evaluator) Check(spec dfv1.DetectorSpec, stream digi.Stream, indices []int, count int) (bool, Reason) {
	if spec.TriggerDisabled() {
		return true, ReasonNone
	}
	if stream == nil {
		// Without digis only a pure veto can be satisfied.
		if spec.TriggerMinCount > 0 || spec.TriggerMinLayers > 0 {
			return false, ReasonMissingStream
		}
		return true, ReasonNone
	}
	if spec.TriggerMinCount > 0 && count < spec.TriggerMinCount {
		return false, ReasonMinCount
	}
	if spec.TriggerMaxCount != nil && *spec.TriggerMaxCount < count {
		return false, ReasonMaxCount
	}
	if spec.TriggerMinLayers > 0 {
		lc, ok := e.layers[spec.Kind]
		if !ok || lc.CountLayers(stream, indices) < spec.TriggerMinLayers {
			return false, ReasonMinLayers
		}
	}
	return true, ReasonNone
}
