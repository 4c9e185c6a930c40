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

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupEnvStringOr(t *testing.T) {
	assert.Equal(t, "fallback", LookupEnvStringOr("EVBUILD_TEST_STRING", "fallback"))
	t.Setenv("EVBUILD_TEST_STRING", "")
	assert.Equal(t, "fallback", LookupEnvStringOr("EVBUILD_TEST_STRING", "fallback"))
	t.Setenv("EVBUILD_TEST_STRING", "value")
	assert.Equal(t, "value", LookupEnvStringOr("EVBUILD_TEST_STRING", "fallback"))
}

func TestLookupEnvIntOr(t *testing.T) {
	assert.Equal(t, 3, LookupEnvIntOr("EVBUILD_TEST_INT", 3))
	t.Setenv("EVBUILD_TEST_INT", "8")
	assert.Equal(t, 8, LookupEnvIntOr("EVBUILD_TEST_INT", 3))
	t.Setenv("EVBUILD_TEST_INT", "eight")
	assert.Panics(t, func() { LookupEnvIntOr("EVBUILD_TEST_INT", 3) })
}

func TestLookupEnvBoolOr(t *testing.T) {
	assert.False(t, LookupEnvBoolOr("EVBUILD_TEST_BOOL", false))
	t.Setenv("EVBUILD_TEST_BOOL", "true")
	assert.True(t, LookupEnvBoolOr("EVBUILD_TEST_BOOL", false))
	t.Setenv("EVBUILD_TEST_BOOL", "yes please")
	assert.Panics(t, func() { LookupEnvBoolOr("EVBUILD_TEST_BOOL", false) })
}
