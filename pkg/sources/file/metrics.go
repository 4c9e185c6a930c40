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

package file

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/numaproj/eventbuilder/pkg/metrics"
)

// batchesReadCount is used to indicate the number of batches read
var batchesReadCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "file_source",
	Name:      "read_total",
	Help:      "Total number of batches read",
}, []string{"source"})

// digisReadCount is used to indicate the number of digis read per detector
var digisReadCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "file_source",
	Name:      "digis_read_total",
	Help:      "Total number of digis read",
}, []string{"source", metrics.LabelDetector})

// readErrorCount is used to indicate the number of batches which could not be decoded
var readErrorCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "file_source",
	Name:      "read_error_total",
	Help:      "Total number of read errors",
}, []string{"source"})
