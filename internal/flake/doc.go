// Package flake generates the recursive branching figure drawn by flakesim.
//
// A flake is drawn by emitting [Segment] values onto a [Surface]:
//
//   - [Generate]: radiates branches from a centre, then recurses from every
//     endpoint at half size and half width until depth runs out
//   - [Recorder]: a Surface that keeps every stroke, used by exporters and tests
//   - [Count]: the number of segments a given branches/depth pair produces
//
// Every level reuses the same base angle, so branch orientation does not
// follow the parent branch. This is what gives the figure its flake look.
//
// # Example
//
//	rec := flake.NewRecorder()
//	_ = flake.Generate(rec, flake.Point{}, 3, 200, 10, 5, -90)
//	fmt.Println(len(rec.Segments)) // 363
package flake
