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

// Sts address bit layout:
//
//	System ID   bits  0- 3
//	Unit        bits  4- 9
//	Ladder      bits 10-14
//	Half ladder bit  15
//	Module      bits 16-20
//	Sensor      bits 21-24
//	Side        bit  25
const (
	stsUnitOffset       = 4
	stsUnitBits         = 6
	stsLadderOffset     = 10
	stsLadderBits       = 5
	stsHalfLadderOffset = 15
	stsModuleOffset     = 16
	stsModuleBits       = 5
	stsSensorOffset     = 21

	stsSystemID = 2

	// stsChannelsPerSide is the number of strips read out on each side of a module.
	stsChannelsPerSide = 1024
)

// StsAddress builds an Sts module address.
func StsAddress(unit, ladder, halfLadder, module uint32) int32 {
	a := uint32(stsSystemID)
	a |= (unit & (1<<stsUnitBits - 1)) << stsUnitOffset
	a |= (ladder & (1<<stsLadderBits - 1)) << stsLadderOffset
	a |= (halfLadder & 1) << stsHalfLadderOffset
	a |= (module & (1<<stsModuleBits - 1)) << stsModuleOffset
	return int32(a)
}

// Sts is a digi of the silicon tracking system.
type Sts struct {
	T       float64
	Addr    int32
	Channel uint16
}

func (d Sts) Time() float64 {
	return d.T
}

func (d Sts) Address() int32 {
	return d.Addr
}

// ModuleAddress strips the sensor and side levels from the address.
func (d Sts) ModuleAddress() uint32 {
	return uint32(d.Addr) & (1<<stsSensorOffset - 1)
}

// Unit returns the unit (station) the module belongs to.
func (d Sts) Unit() int {
	return int((uint32(d.Addr) >> stsUnitOffset) & (1<<stsUnitBits - 1))
}

// Side returns 0 for the front (p) side and 1 for the back (n) side strips.
func (d Sts) Side() int {
	return int(d.Channel / stsChannelsPerSide)
}
