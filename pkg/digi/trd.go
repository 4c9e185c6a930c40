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

// AsicType is the front-end flavour of a TRD digi.
type AsicType string

const (
	// AsicSpadic equips the 1D (rectangular pad) TRD modules.
	AsicSpadic AsicType = "spadic"
	// AsicFasp equips the 2D (triangular pad) TRD modules.
	AsicFasp AsicType = "fasp"
)

// Trd is a digi of the transition radiation detector. 1D and 2D modules share
// one stream and are told apart by their ASIC type.
type Trd struct {
	T    float64
	Addr int32
	Asic AsicType
}

func (d Trd) Time() float64 {
	return d.T
}

func (d Trd) Address() int32 {
	return d.Addr
}
