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

package jsonl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
	"github.com/numaproj/eventbuilder/pkg/shared/logging"
	"github.com/numaproj/eventbuilder/pkg/sinks"
)

// record is the line written for every event.
type record struct {
	Batch     int                         `json:"batch"`
	ID        uint64                      `json:"id"`
	SeedTime  float64                     `json:"seedTime"`
	StartTime float64                     `json:"startTime"`
	EndTime   float64                     `json:"endTime"`
	Matches   map[dfv1.DetectorKind][]int `json:"matches"`
}

// ToJSONL writes the built events as JSON lines.
type ToJSONL struct {
	name    string
	writer  *bufio.Writer
	encoder *json.Encoder
	closer  io.Closer
	logger  *zap.SugaredLogger
}

var _ sinks.Sinker = (*ToJSONL)(nil)

type Option func(*ToJSONL) error

func WithLogger(log *zap.SugaredLogger) Option {
	return func(t *ToJSONL) error {
		t.logger = log
		return nil
	}
}

// NewToJSONL writes to w. w is closed by Close when it is an io.Closer.
func NewToJSONL(name string, w io.Writer, opts ...Option) (*ToJSONL, error) {
	t := &ToJSONL{name: name, writer: bufio.NewWriter(w)}
	t.encoder = json.NewEncoder(t.writer)
	if c, ok := w.(io.Closer); ok {
		t.closer = c
	}
	for _, o := range opts {
		if err := o(t); err != nil {
			return nil, err
		}
	}
	if t.logger == nil {
		t.logger = logging.NewLogger()
	}
	return t, nil
}

// NewFile creates, or truncates, the file at path and writes to it.
func NewFile(name, path string, opts ...Option) (*ToJSONL, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return newOwned(name, f, opts...)
}

// newOwned writes to wc and closes it when the sink can not be created.
func newOwned(name string, wc io.WriteCloser, opts ...Option) (*ToJSONL, error) {
	t, err := NewToJSONL(name, wc, opts...)
	if err != nil {
		return nil, multierr.Append(err, wc.Close())
	}
	return t, nil
}

// GetName returns the name.
func (t *ToJSONL) GetName() string {
	return t.name
}

// Write encodes one line per event and flushes them.
func (t *ToJSONL) Write(_ context.Context, result *sinks.Result) error {
	for _, e := range result.Events {
		rec := record{
			Batch:     result.Batch.Index,
			ID:        e.ID,
			SeedTime:  e.SeedTime,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Matches:   e.Matches,
		}
		if err := t.encoder.Encode(rec); err != nil {
			jsonlSinkErrorCount.WithLabelValues(t.name).Inc()
			return fmt.Errorf("failed to encode event %d of batch %d: %w", e.ID, result.Batch.Index, err)
		}
		jsonlSinkWriteCount.WithLabelValues(t.name).Inc()
	}
	if err := t.writer.Flush(); err != nil {
		jsonlSinkErrorCount.WithLabelValues(t.name).Inc()
		return fmt.Errorf("failed to flush events of batch %d: %w", result.Batch.Index, err)
	}
	return nil
}

// Close flushes the buffered lines and closes the writer, even when the flush fails.
func (t *ToJSONL) Close() error {
	err := t.writer.Flush()
	if t.closer != nil {
		t.logger.Debugw("Closing JSON lines sink", zap.String("sink", t.name))
		err = multierr.Append(err, t.closer.Close())
	}
	return err
}
