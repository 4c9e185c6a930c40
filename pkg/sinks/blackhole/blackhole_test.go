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

package blackhole

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/numaproj/eventbuilder/pkg/eventbuilder"
	"github.com/numaproj/eventbuilder/pkg/shared/logging"
	"github.com/numaproj/eventbuilder/pkg/sinks"
	"github.com/numaproj/eventbuilder/pkg/sources"
)

func TestBlackhole_Write(t *testing.T) {
	ctx := logging.WithLogger(context.Background(), zap.NewNop().Sugar())
	b := NewBlackhole(ctx, "sinks.blackhole")
	assert.Equal(t, "sinks.blackhole", b.GetName())

	for i := 0; i < 3; i++ {
		err := b.Write(ctx, &sinks.Result{
			Batch:  &sources.Batch{Index: i},
			Events: []*eventbuilder.Event{{ID: 0}, {ID: 1}},
		})
		assert.NoError(t, err)
	}
	assert.Equal(t, 6.0, testutil.ToFloat64(sinkWriteCount.WithLabelValues("sinks.blackhole")))
	assert.NoError(t, b.Close())
}
