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
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
	"github.com/numaproj/eventbuilder/pkg/metrics"
)

const (
	warningOverlapTooShort = "overlap_too_short"
	warningSeedBeyondData  = "seed_beyond_data"
	warningNoBmonTime      = "no_bmon_time"
)

// seedsCount is used to indicate the number of seeds in the seed window
var seedsCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "eventbuilder",
	Name:      "seeds_total",
	Help:      "Total number of seeds processed",
}, []string{metrics.LabelRun})

// seedsDroppedCount is used to indicate the number of seeds dropped because of an overlapping event
var seedsDroppedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "eventbuilder",
	Name:      "seeds_dropped_total",
	Help:      "Total number of seeds dropped by the overlap mode",
}, []string{metrics.LabelRun})

// eventsBuiltCount is used to indicate the number of emitted events
var eventsBuiltCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "eventbuilder",
	Name:      "events_total",
	Help:      "Total number of events built",
}, []string{metrics.LabelRun})

// eventsRejectedCount is used to indicate the number of candidate events failing a trigger
var eventsRejectedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "eventbuilder",
	Name:      "events_rejected_total",
	Help:      "Total number of candidate events rejected by a trigger",
}, []string{metrics.LabelRun, metrics.LabelDetector, metrics.LabelReason})

// warningsCount is used to indicate the number of soft configuration or data warnings
var warningsCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "eventbuilder",
	Name:      "warnings_total",
	Help:      "Total number of soft warnings",
}, []string{metrics.LabelRun, metrics.LabelReason})

var (
	digisPerEventLock sync.Mutex
	digisPerEvent     = make(map[dfv1.DetectorKind]*prometheus.HistogramVec)
)

// digisPerEventHistogram returns the digis-per-event histogram of a detector, registering it on
// first use. Its buckets span [0, histMaxCount] so the bound of the first registration wins.
func digisPerEventHistogram(kind dfv1.DetectorKind, histMaxCount float64) *prometheus.HistogramVec {
	digisPerEventLock.Lock()
	defer digisPerEventLock.Unlock()
	if h, ok := digisPerEvent[kind]; ok {
		return h
	}
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "eventbuilder",
		Name:      fmt.Sprintf("%s_digis_per_event", strings.ToLower(string(kind))),
		Help:      fmt.Sprintf("Number of %s digis per event", kind),
		Buckets:   prometheus.LinearBuckets(0, math.Max(1, histMaxCount/20), 21),
	}, []string{metrics.LabelRun})
	if err := prometheus.Register(h); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				h = existing
			}
		}
	}
	digisPerEvent[kind] = h
	return h
}
