/*
Package eventbuilder groups time-coincident digis of several detector streams into events.

A Builder owns the scan cursors of every configured detector for one batch. For each seed, taken
either from the reference detector stream or from an explicit list of seed times, it decides with
the overlap mode whether the seed opens a new event, is merged into the open one or is dropped,
collects the digis of every detector falling in their acceptance window and evaluates the trigger
cuts. Accepted events are emitted in seed order once closed by a following seed or by the end of
the batch.

Batches are independent, a Builder is not safe for concurrent use and one instance is expected per
batch when batches are built in parallel.
*/
package eventbuilder
