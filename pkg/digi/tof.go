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

// Tof address bit layout (v21a):
//
//	System ID     bits  0- 3
//	Super module  bits  4-10
//	SM type       bits 11-14
//	RPC ID        bits 15-20
//	Channel side  bits 21-21
//	Channel ID    bits 22-27
//	RPC type      bits 28-31
const (
	tofSystemBits  = 4
	tofSmIdBits    = 7
	tofSmTypeBits  = 4
	tofRpcIdBits   = 6
	tofSideBits    = 1
	tofChannelBits = 6
	tofRpcTypeBits = 4

	tofSmIdOffset    = tofSystemBits
	tofSmTypeOffset  = tofSmIdOffset + tofSmIdBits
	tofRpcIdOffset   = tofSmTypeOffset + tofSmTypeBits
	tofSideOffset    = tofRpcIdOffset + tofRpcIdBits
	tofChannelOffset = tofSideOffset + tofSideBits
	tofRpcTypeOffset = tofChannelOffset + tofChannelBits

	tofSideMask    = uint32((1<<tofSideBits)-1) << tofSideOffset
	tofChannelMask = uint32((1<<tofChannelBits)-1) << tofChannelOffset

	// tofSystemID is the system identifier of Tof and Bmon addresses.
	tofSystemID = 6
)

// TofAddress builds a Tof address from its fields.
func TofAddress(sm, smType, rpc, channel, side, rpcType uint32) int32 {
	a := uint32(tofSystemID)
	a |= (sm & (1<<tofSmIdBits - 1)) << tofSmIdOffset
	a |= (smType & (1<<tofSmTypeBits - 1)) << tofSmTypeOffset
	a |= (rpc & (1<<tofRpcIdBits - 1)) << tofRpcIdOffset
	a |= (side & (1<<tofSideBits - 1)) << tofSideOffset
	a |= (channel & (1<<tofChannelBits - 1)) << tofChannelOffset
	a |= (rpcType & (1<<tofRpcTypeBits - 1)) << tofRpcTypeOffset
	return int32(a)
}

func tofField(addr int32, offset, bits uint) int {
	return int((uint32(addr) >> offset) & (1<<bits - 1))
}

// Tof is a digi of the time-of-flight wall.
type Tof struct {
	T    float64
	Addr int32
}

func (d Tof) Time() float64 {
	return d.T
}

func (d Tof) Address() int32 {
	return d.Addr
}

// SmType returns the super module type.
func (d Tof) SmType() int {
	return tofField(d.Addr, tofSmTypeOffset, tofSmTypeBits)
}

// Side returns which end of the strip was read out, 0 or 1.
func (d Tof) Side() int {
	return tofField(d.Addr, tofSideOffset, tofSideBits)
}

// Channel returns the strip number within the RPC.
func (d Tof) Channel() int {
	return tofField(d.Addr, tofChannelOffset, tofChannelBits)
}

// StripID identifies the strip regardless of the side.
func (d Tof) StripID() uint32 {
	return uint32(d.Addr) &^ tofSideMask
}

// RpcID identifies the counter the strip belongs to.
func (d Tof) RpcID() uint32 {
	return uint32(d.Addr) &^ (tofSideMask | tofChannelMask)
}

// Bmon is a digi of the beam monitor. It shares the Tof addressing, the station
// is stored in the side field.
type Bmon struct {
	T    float64
	Addr int32
}

func (d Bmon) Time() float64 {
	return d.T
}

func (d Bmon) Address() int32 {
	return d.Addr
}

// SmType returns the super module type, SmTypeBmon for well formed addresses.
func (d Bmon) SmType() int {
	return tofField(d.Addr, tofSmTypeOffset, tofSmTypeBits)
}

// Station returns the Bmon station index.
func (d Bmon) Station() int {
	return tofField(d.Addr, tofSideOffset, tofSideBits)
}
