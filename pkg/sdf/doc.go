// Package sdf implements exact signed distance and raycast queries for
// sphere and capsule primitives, plus the boolean reducers used to
// compose signed distances from several shapes.
//
// Distances are negative inside a shape, zero on its surface and positive
// outside. Raycasts report every surface crossing along a ray, ordered by
// distance and classified as Enter, Exit or Tangent.
//
// Every shape in this package also satisfies sdf.SDF3 from
// github.com/deadsy/sdfx, so it can be meshed or combined with sdfx solids.
package sdf
