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

package digi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
)

func TestSlice(t *testing.T) {
	s := Slice[Basic]{{T: 1}, {T: 2}, {T: 2}, {T: 5}}
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 5.0, s.At(3).Time())
	assert.True(t, IsSorted(s))
	assert.Equal(t, []float64{1, 2, 2, 5}, Times(s))

	unsorted := Slice[Basic]{{T: 3}, {T: 2}}
	assert.False(t, IsSorted(unsorted))
	assert.True(t, IsSorted(Slice[Basic]{}))
}

func TestTofAddress(t *testing.T) {
	a := TofAddress(3, 0, 2, 17, 1, 0)
	d := Tof{Addr: a}
	assert.Equal(t, 1, d.Side())
	assert.Equal(t, 17, d.Channel())
	assert.Equal(t, 0, d.SmType())

	other := Tof{Addr: TofAddress(3, 0, 2, 17, 0, 0)}
	assert.Equal(t, d.StripID(), other.StripID())
	assert.Equal(t, d.RpcID(), other.RpcID())

	neighbour := Tof{Addr: TofAddress(3, 0, 2, 18, 0, 0)}
	assert.NotEqual(t, d.StripID(), neighbour.StripID())
	assert.Equal(t, d.RpcID(), neighbour.RpcID())

	otherRpc := Tof{Addr: TofAddress(3, 0, 3, 17, 0, 0)}
	assert.NotEqual(t, d.RpcID(), otherRpc.RpcID())
}

func TestStsAddress(t *testing.T) {
	a := StsAddress(2, 1, 0, 3)
	front := Sts{Addr: a, Channel: 12}
	back := Sts{Addr: a | 1<<stsSensorOffset, Channel: 1030}
	assert.Equal(t, 0, front.Side())
	assert.Equal(t, 1, back.Side())
	assert.Equal(t, front.ModuleAddress(), back.ModuleAddress())
	assert.Equal(t, 2, front.Unit())
	assert.NotEqual(t, front.ModuleAddress(), Sts{Addr: StsAddress(2, 1, 0, 4)}.ModuleAddress())
}

func TestFilterFor(t *testing.T) {
	spadic := Trd{Asic: AsicSpadic}
	fasp := Trd{Asic: AsicFasp}

	trd := FilterFor(dfv1.DetectorKindTrd)
	assert.True(t, trd(spadic))
	assert.False(t, trd(fasp))

	trd2d := FilterFor(dfv1.DetectorKindTrd2d)
	assert.False(t, trd2d(spadic))
	assert.True(t, trd2d(fasp))

	assert.True(t, FilterFor(dfv1.DetectorKindSts)(Sts{}))
}

func TestStationSelector(t *testing.T) {
	var all StationSelector
	assert.False(t, all.Enabled())
	assert.True(t, all.Select(Basic{}))

	s := NewStationSelector([]bool{false, true})
	assert.True(t, s.Enabled())
	station0 := Bmon{Addr: TofAddress(0, dfv1.SmTypeBmon, 0, 0, 0, 0)}
	station1 := Bmon{Addr: TofAddress(0, dfv1.SmTypeBmon, 0, 0, 1, 0)}
	wrongType := Bmon{Addr: TofAddress(0, 2, 0, 0, 1, 0)}
	assert.False(t, s.Select(station0))
	assert.True(t, s.Select(station1))
	assert.False(t, s.Select(wrongType))
	assert.False(t, s.Select(Basic{}))

	stream := Slice[Bmon]{station0, station1, station1, wrongType}
	assert.Equal(t, 2, s.Count(stream, []int{0, 1, 2, 3}))
	assert.Equal(t, 3, all.Count(stream, []int{0, 1, 2}))
}
