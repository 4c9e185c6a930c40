// Package window implements the time windows of the event builder. Each selection detector
// accepts the digis lying in an inclusive window around a seed time, [seed + Begin, seed + End].
//
// Two run-wide quantities are derived once from the configured windows (see Extrema):
//   * the earliest window begin and the latest window end, used to place the seed search
//     window inside a batch
//   * the widest window range, used by the overlap policy to decide whether two seeds are
//     close enough to belong to the same event
//
// Data is processed in batches. A batch has a core part, whose events are final, followed by an
// overlap part shared with the next batch. The overlap part only provides look-ahead so that
// windows of seeds close to the end of the core are not truncated (see SeedWindow).
package window
