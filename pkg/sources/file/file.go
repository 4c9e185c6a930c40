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

// Package file reads batches of digis from a JSON file.
//
// The file is a sequence of JSON objects, one per batch:
//
//	{"startTime": 0, "length": 1000, "overlapLength": 100,
//	 "seedTimes": [10, 50],
//	 "digis": {"Sts": [{"time": 12.5, "address": 2, "channel": 1030}], "Trd": [{"time": 3, "asic": "fasp"}]}}
//
// startTime, length and overlapLength are optional and only used when present together. Trd and
// Trd2d digis share the Trd entry.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
	"github.com/numaproj/eventbuilder/pkg/digi"
	"github.com/numaproj/eventbuilder/pkg/eventbuilder"
	"github.com/numaproj/eventbuilder/pkg/shared/logging"
	"github.com/numaproj/eventbuilder/pkg/sources"
	"github.com/numaproj/eventbuilder/pkg/window"
)

type batchRecord struct {
	StartTime     *float64                `json:"startTime,omitempty"`
	Length        float64                 `json:"length,omitempty"`
	OverlapLength float64                 `json:"overlapLength,omitempty"`
	SeedTimes     []float64               `json:"seedTimes,omitempty"`
	Digis         map[string][]digiRecord `json:"digis"`
}

type digiRecord struct {
	Time    float64       `json:"time"`
	Address int32         `json:"address"`
	Channel uint16        `json:"channel,omitempty"`
	Asic    digi.AsicType `json:"asic,omitempty"`
}

type fileSource struct {
	name    string
	closer  io.Closer
	decoder *json.Decoder
	index   int
	logger  *zap.SugaredLogger
}

var _ sources.Sourcer = (*fileSource)(nil)

type Option func(*fileSource) error

// WithLogger is used to return logger information
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *fileSource) error {
		o.logger = l
		return nil
	}
}

// New opens the batch file at path.
func New(path string, opts ...Option) (*fileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	fs, err := NewFromReader(path, f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	fs.closer = f
	return fs, nil
}

// NewFromReader reads batches from r.
func NewFromReader(name string, r io.Reader, opts ...Option) (*fileSource, error) {
	fs := &fileSource{
		name:    name,
		decoder: json.NewDecoder(r),
	}
	for _, o := range opts {
		if err := o(fs); err != nil {
			return nil, err
		}
	}
	if fs.logger == nil {
		fs.logger = logging.NewLogger()
	}
	fs.logger = fs.logger.With("source", name)
	return fs, nil
}

func (fs *fileSource) GetName() string {
	return fs.name
}

// Next decodes the next batch, it returns io.EOF after the last one.
func (fs *fileSource) Next(ctx context.Context) (*sources.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rec batchRecord
	if err := fs.decoder.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		readErrorCount.WithLabelValues(fs.name).Inc()
		return nil, fmt.Errorf("failed to decode batch %d: %w", fs.index, err)
	}
	b, err := fs.toBatch(rec)
	if err != nil {
		readErrorCount.WithLabelValues(fs.name).Inc()
		return nil, fmt.Errorf("invalid batch %d: %w", fs.index, err)
	}
	batchesReadCount.WithLabelValues(fs.name).Inc()
	fs.logger.Debugw("Batch read", zap.Int("batch", b.Index), zap.Int("detectors", len(b.Input.Streams)))
	fs.index++
	return b, nil
}

func (fs *fileSource) toBatch(rec batchRecord) (*sources.Batch, error) {
	b := &sources.Batch{
		Index: fs.index,
		Input: eventbuilder.Input{
			Streams:   make(map[dfv1.DetectorKind]digi.Stream, len(rec.Digis)),
			SeedTimes: rec.SeedTimes,
		},
	}
	if rec.StartTime != nil {
		bc := window.NewBatchContext(*rec.StartTime, rec.Length, rec.OverlapLength)
		if rec.Length <= 0 {
			return nil, fmt.Errorf("invalid batch length %v", rec.Length)
		}
		if err := bc.Validate(); err != nil {
			return nil, err
		}
		b.Context = &bc
	}
	if !sort.Float64sAreSorted(rec.SeedTimes) {
		return nil, errors.New("seed times are not sorted")
	}
	for name, records := range rec.Digis {
		kind, err := dfv1.ParseDetectorKind(name)
		if err != nil {
			return nil, err
		}
		stream := toStream(kind, records)
		if !digi.IsSorted(stream) {
			return nil, fmt.Errorf("%s digis are not sorted in time", kind)
		}
		b.Input.Streams[kind] = stream
		digisReadCount.WithLabelValues(fs.name, string(kind)).Add(float64(len(records)))
	}
	return b, nil
}

func toStream(kind dfv1.DetectorKind, records []digiRecord) digi.Stream {
	switch kind {
	case dfv1.DetectorKindSts:
		s := make(digi.Slice[digi.Sts], len(records))
		for i, r := range records {
			s[i] = digi.Sts{T: r.Time, Addr: r.Address, Channel: r.Channel}
		}
		return s
	case dfv1.DetectorKindTof:
		s := make(digi.Slice[digi.Tof], len(records))
		for i, r := range records {
			s[i] = digi.Tof{T: r.Time, Addr: r.Address}
		}
		return s
	case dfv1.DetectorKindBmon:
		s := make(digi.Slice[digi.Bmon], len(records))
		for i, r := range records {
			s[i] = digi.Bmon{T: r.Time, Addr: r.Address}
		}
		return s
	case dfv1.DetectorKindTrd, dfv1.DetectorKindTrd2d:
		s := make(digi.Slice[digi.Trd], len(records))
		for i, r := range records {
			asic := r.Asic
			switch {
			case asic != "":
			case kind == dfv1.DetectorKindTrd2d:
				asic = digi.AsicFasp
			default:
				asic = digi.AsicSpadic
			}
			s[i] = digi.Trd{T: r.Time, Addr: r.Address, Asic: asic}
		}
		return s
	default:
		s := make(digi.Slice[digi.Basic], len(records))
		for i, r := range records {
			s[i] = digi.Basic{T: r.Time, Addr: r.Address}
		}
		return s
	}
}

func (fs *fileSource) Close() error {
	if fs.closer == nil {
		return nil
	}
	return fs.closer.Close()
}
