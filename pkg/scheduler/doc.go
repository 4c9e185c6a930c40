// Package scheduler builds the events of a run batch by batch.
//
// Batches are read in order from a source and built concurrently, each by its own event builder.
// Results are handed to the sink in batch order.
package scheduler
