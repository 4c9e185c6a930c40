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

const (
	// ENV vars
	EnvDebug          = "EVBUILD_DEBUG"
	EnvPPROF          = "EVBUILD_PPROF"
	EnvConfigFile     = "EVBUILD_CONFIG"
	EnvMetricsPort    = "EVBUILD_METRICS_PORT"
	EnvParallelism    = "EVBUILD_PARALLELISM"
	EnvConfigPrefix   = "EVBUILD"
	DefaultConfigName = "eventbuilder"
	DefaultConfigPath = "/etc/eventbuilder"

	// Default acceptance window in ns, applied to detectors that do not set one.
	DefaultTimeWindowBegin = -100.0
	DefaultTimeWindowEnd   = 100.0
	// Default upper bound of the digis-per-event histograms.
	DefaultHistMaxCount = 1000.0

	DefaultOverlapMode = AllowOverlap

	DefaultMetricsPort = 2469
	DefaultParallelism = 1

	// SmTypeBmon is the super module type carried by the addresses of Bmon digis.
	SmTypeBmon = 5
)
