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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LabelVersion   = "version"
	LabelPlatform  = "platform"
	LabelComponent = "component"
	LabelRun       = "run"
	LabelDetector  = "detector"
	LabelReason    = "reason"
	LabelSink      = "sink"
)

var (
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "build_info",
		Help: "A metric with a constant value '1', labeled by the event builder binary version, platform and component",
	}, []string{LabelComponent, LabelVersion, LabelPlatform})
)

// Batch scheduling metrics
var (
	// BatchesProcessed is used to indicate the number of batches built
	BatchesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "scheduler",
		Name:      "batches_total",
		Help:      "Total number of batches processed",
	}, []string{LabelRun})

	// BatchErrors is used to indicate the number of batches which could not be built
	BatchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "scheduler",
		Name:      "batch_error_total",
		Help:      "Total number of batch errors",
	}, []string{LabelRun})

	// BatchProcessingTime is a histogram of the time spent building one batch
	BatchProcessingTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "scheduler",
		Name:      "batch_processing_time",
		Help:      "Processing times of one batch (1 to 1200000 microseconds)",
		Buckets:   prometheus.ExponentialBucketsRange(1, 1200000, 5),
	}, []string{LabelRun})

	// InFlightBatches is the number of batches being built
	InFlightBatches = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Subsystem: "scheduler",
		Name:      "inflight_batches",
		Help:      "Number of batches currently being built",
	}, []string{LabelRun})
)
