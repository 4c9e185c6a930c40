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

// LayerCounter counts the distinct layers fired by a set of matched digis.
type LayerCounter interface {
	CountLayers(stream digi.Stream, indices []int) int
}

// LayerCounterFor returns the fired-layer strategy of a kind, if one exists.
func LayerCounterFor(kind dfv1.DetectorKind) (LayerCounter, bool) {
	switch kind {
	case dfv1.DetectorKindSts:
		return stsStations{}, true
	case dfv1.DetectorKindTof:
		return tofCounters{}, true
	default:
		return nil, false
	}
}

// twoSided counts the groups in which an element has been read out on both sides.
// element identifies the readout element, side is 0 or 1 and group is the layer the
// element belongs to.
type twoSided struct {
	firstSide map[uint32]int
	layers    map[uint32]struct{}
}

func newTwoSided() *twoSided {
	return &twoSided{
		firstSide: make(map[uint32]int),
		layers:    make(map[uint32]struct{}),
	}
}

func (ts *twoSided) add(element uint32, side int, group uint32) {
	first, ok := ts.firstSide[element]
	if !ok {
		ts.firstSide[element] = side
		return
	}
	if side == 1-first {
		ts.layers[group] = struct{}{}
	}
}

// stsStations counts the stations with at least one module fired on both strip sides.
type stsStations struct{}

func (stsStations) CountLayers(stream digi.Stream, indices []int) int {
	ts := newTwoSided()
	for _, i := range indices {
		d, ok := stream.At(i).(digi.Sts)
		if !ok {
			continue
		}
		ts.add(d.ModuleAddress(), d.Side(), uint32(d.Unit()))
	}
	return len(ts.layers)
}

// tofCounters counts the RPCs with at least one strip read out at both ends.
type tofCounters struct{}

func (tofCounters) CountLayers(stream digi.Stream, indices []int) int {
	ts := newTwoSided()
	for _, i := range indices {
		d, ok := stream.At(i).(digi.Tof)
		if !ok {
			continue
		}
		ts.add(d.StripID(), d.Side(), d.RpcID())
	}
	return len(ts.layers)
}
