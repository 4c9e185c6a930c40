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

import "errors"

var (
	// ErrNoSeedSource is returned when neither a reference detector nor explicit seed times are given.
	ErrNoSeedSource = errors.New("no reference detector and no explicit seed times")
	// ErrAmbiguousSeedSource is returned when both a reference detector and explicit seed times are given.
	ErrAmbiguousSeedSource = errors.New("reference detector and explicit seed times are mutually exclusive")
	// ErrMissingStream is returned when a configured detector has no digi stream.
	ErrMissingStream = errors.New("missing digi stream")
	// ErrInvalidWindow is returned when a detector window does not end after it begins.
	ErrInvalidWindow = errors.New("invalid time window")
)
