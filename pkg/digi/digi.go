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

// Digi is a single time-tagged hit.
type Digi interface {
	// Time returns the hit time in ns.
	Time() float64
	// Address returns the detector specific channel address.
	Address() int32
}

// Stream is a time ordered, read-only sequence of digis of one detector.
type Stream interface {
	Len() int
	At(i int) Digi
}

// Slice adapts a slice of concrete digis to a Stream.
type Slice[D Digi] []D

var _ Stream = Slice[Basic](nil)

func (s Slice[D]) Len() int {
	return len(s)
}

func (s Slice[D]) At(i int) Digi {
	return s[i]
}

// IsSorted tells whether the stream is non-decreasing in time.
func IsSorted(s Stream) bool {
	for i := 1; i < s.Len(); i++ {
		if s.At(i).Time() < s.At(i-1).Time() {
			return false
		}
	}
	return true
}

// Times returns the times of all digis of the stream.
func Times(s Stream) []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = s.At(i).Time()
	}
	return out
}

// Basic is the digi of detectors without kind specific payload (Much, Rich, Psd, Fsd).
type Basic struct {
	T    float64
	Addr int32
}

func (b Basic) Time() float64 {
	return b.T
}

func (b Basic) Address() int32 {
	return b.Addr
}
