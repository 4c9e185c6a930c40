package sources

import (
	"context"

	"github.com/numaproj/eventbuilder/pkg/eventbuilder"
	"github.com/numaproj/eventbuilder/pkg/window"
)

// Batch is one unit of input of the event builder.
type Batch struct {
	// Index is the position of the batch in the run.
	Index int
	// Context holds the batch boundaries carried by the batch, nil when it carries none.
	Context *window.BatchContext
	// Input holds the digi streams and explicit seeds of the batch.
	Input eventbuilder.Input
}

// Sourcer provides the batches of a run in order. Next returns io.EOF after the last batch.
type Sourcer interface {
	GetName() string
	Next(ctx context.Context) (*Batch, error)
	Close() error
}
