// Package trace provides the shared data model of the sorting visualizer.
//
// A sorting run is recorded as an ordered, append-only log of [Step] values.
// Each Step carries a full snapshot of the array, a [Highlight] describing
// the indices the algorithm is working on, and the cumulative set of
// indices that are known to be in their final position:
//
//   - [Element]: one array value with a stable identity ([Element.Index])
//   - [State]: the visual role of an element within a Step
//   - [Step]: immutable snapshot produced by a step generator
//   - [Frame]: a Step together with its position in the sequence, as
//     delivered to consumers during playback
//
// # Immutability
//
// Producers never reuse the backing arrays of a Step once it has been
// appended to a sequence. Consumers may read Steps from any goroutine but
// must not modify them.
package trace
