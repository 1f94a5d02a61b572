// Package lava implements the glob simulation engine behind the lava lamp.
//
// A [World] owns a population of soft spherical globs drifting through a
// wrapping 3D volume. Every call to [World.Tick] runs one full pass:
//
//   - ambient background from the average inverted HSV of all globs
//   - depth sort (draw order handed to presentation layers)
//   - attraction of undersized globs toward the nearest adequate one
//   - move, wrap, sibling-group reassignment, collision transfer, split
//   - append offspring, cull depleted globs, recount population
//
// # Example
//
//	w, _ := lava.New(lava.DefaultParams(), 42)
//	w.Seed(50, 400, 300, 350)
//	for i := 0; i < 600; i++ {
//	    w.Tick()
//	}
//	snap := w.Snapshot()
//
// # Sibling Groups
//
// Globs born from the same split share a group id. A glob leaves its group
// once it is farther than twice its own radius from every remaining
// group-mate. Groups never merge.
//
// # Thread Safety
//
// World instances are NOT thread-safe. Snapshots are independent copies and
// may be handed to other goroutines.
package lava
