// Package solution implements the bounded best-N solution store shared
// by the Monte Carlo and greedy optimizers.
//
// A Store maintains two structures over the candidates it is shown:
//
//   - a bounded best-N max-heap (keyed by score, worst-of-the-best at
//     the root) so a full candidate's score is a single O(log N)
//     comparison away from eviction;
//   - a hash table keyed by the assignment vector, coalescing
//     duplicates into a times-seen counter without displacing anything
//     already held in the heap.
//
// Complexity: O(log N) per Consider call, O(N log N) to drain Results
// in sorted order.
package solution
