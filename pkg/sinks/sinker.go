package sinks

import (
	"context"

	"github.com/numaproj/eventbuilder/pkg/eventbuilder"
	"github.com/numaproj/eventbuilder/pkg/sources"
	"github.com/numaproj/eventbuilder/pkg/window"
)

// Result holds the events built from one batch.
type Result struct {
	Batch   *sources.Batch
	Context window.BatchContext
	Events  []*eventbuilder.Event
}

// Sinker interface defines what a Sink should implement. Results are written in batch order.
type Sinker interface {
	GetName() string
	Write(ctx context.Context, result *Result) error
	Close() error
}
