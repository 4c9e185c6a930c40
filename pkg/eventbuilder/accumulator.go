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
	"github.com/numaproj/eventbuilder/pkg/window"
)

// transition is the outcome of the overlap check of a new seed.
type transition int

const (
	// openEvent closes the open event, if any, and opens a new one for the seed.
	openEvent transition = iota
	// dropSeed ignores the seed.
	dropSeed
	// mergeSeed adds the matches of the seed to the open event.
	mergeSeed
)

func (t transition) String() string {
	switch t {
	case openEvent:
		return "open"
	case dropSeed:
		return "drop"
	case mergeSeed:
		return "merge"
	default:
		return "unknown"
	}
}

// accumulator owns the open event of a batch and the list of emitted events.
type accumulator struct {
	mode dfv1.OverlapMode
	ext  window.Extrema
	// current is the open event, nil when idle.
	current *Event
	// prevTime is the seed time of the last accepted seed.
	prevTime float64
	nextID   uint64
	events   []*Event
	// finalize is applied to every event when it is emitted.
	finalize func(*Event)
}

func newAccumulator(mode dfv1.OverlapMode, ext window.Extrema, finalize func(*Event)) *accumulator {
	return &accumulator{
		mode:     mode,
		ext:      ext,
		finalize: finalize,
	}
}

// decide tells what a seed at t does to the open event. A seed overlaps the open event when
// it follows the last accepted seed by less than the widest window range. In AllowOverlap mode it
// must in addition follow it by less than the seed window range, which only drops the seeds of
// the cluster that opened the event.
func (a *accumulator) decide(t float64) transition {
	if a.current == nil {
		return openEvent
	}
	dt := t - a.prevTime
	if (a.mode != dfv1.AllowOverlap || dt < a.ext.SeedRange) && dt < a.ext.WidestRange {
		if a.mode == dfv1.MergeOverlap {
			return mergeSeed
		}
		return dropSeed
	}
	return openEvent
}

// open emits the open event, if any, and opens a new one for a seed at t.
func (a *accumulator) open(t float64) *Event {
	a.close()
	a.current = newEvent(a.nextID, t)
	return a.current
}

// accept records t as the last accepted seed. The open event stays open for merging.
func (a *accumulator) accept(t float64) {
	a.prevTime = t
}

// discard drops the open event, including the matches of seeds merged into it.
func (a *accumulator) discard() {
	a.current = nil
}

// close emits the open event, if any.
func (a *accumulator) close() {
	if a.current == nil {
		return
	}
	if a.finalize != nil {
		a.finalize(a.current)
	}
	a.events = append(a.events, a.current)
	a.current = nil
	a.nextID++
}
