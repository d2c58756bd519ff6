package sdf

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func vec(x, y, z float64) v3.Vec {
	return v3.Vec{X: x, Y: y, Z: z}
}

func assertVecNear(t *testing.T, want, got v3.Vec, delta float64, what string) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "%s.X", what)
	assert.InDelta(t, want.Y, got.Y, delta, "%s.Y", what)
	assert.InDelta(t, want.Z, got.Z, delta, "%s.Z", what)
}

// assertHits compares hits field by field with a small tolerance.
func assertHits(t *testing.T, want, got []RayHit) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Kind, got[i].Kind, "hit %d kind", i)
		assert.InDelta(t, want[i].Distance, got[i].Distance, tol, "hit %d distance", i)
		assertVecNear(t, want[i].Ray.Origin, got[i].Ray.Origin, tol, "ray origin")
		assertVecNear(t, want[i].Ray.Direction, got[i].Ray.Direction, tol, "ray direction")
		assertVecNear(t, want[i].Point, got[i].Point, tol, "point")
		assertVecNear(t, want[i].Normal, got[i].Normal, tol, "normal")
	}
}

// checkHitInvariants verifies the properties every raycast result must
// have, independent of the particular ray.
func checkHitInvariants(t *testing.T, s interface {
	Shape
	Raycaster
}, r Ray) []RayHit {
	t.Helper()
	hits := s.Raycast(r)
	require.LessOrEqual(t, len(hits), 2)

	if len(hits) == 2 {
		assert.Equal(t, Enter, hits[0].Kind)
		assert.Equal(t, Exit, hits[1].Kind)
		assert.LessOrEqual(t, hits[0].Distance, hits[1].Distance)
	}

	dir := r.Direction.Normalize()
	for i, h := range hits {
		assert.GreaterOrEqual(t, h.Distance, 0.0, "hit %d distance", i)
		assertVecNear(t, r.Origin.Add(dir.MulScalar(h.Distance)), h.Point, 1e-6, "round trip")
		assert.InDelta(t, 0, s.Distance(h.Point), 1e-6, "hit %d not on surface", i)
		assert.InDelta(t, 1, h.Normal.Length(), 1e-9, "hit %d normal length", i)

		// The normal points from inside to outside.
		const eps = 1e-3
		assert.Greater(t, s.Distance(h.Point.Add(h.Normal.MulScalar(eps))), 0.0, "hit %d outward", i)
		assert.Less(t, s.Distance(h.Point.Sub(h.Normal.MulScalar(eps))), 0.0, "hit %d inward", i)
	}
	return hits
}
