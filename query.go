package main

import (
	"fmt"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/minsley/Matth/pkg/sdf"
)

// parseVec parses "x,y,z".
func parseVec(s string) (v3.Vec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v3.Vec{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var c [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return v3.Vec{}, fmt.Errorf("component %d of %q: %w", i+1, s, err)
		}
		c[i] = f
	}
	return v3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

// parseRay parses "ox,oy,oz:dx,dy,dz".
func parseRay(s string) (sdf.Ray, error) {
	origin, dir, ok := strings.Cut(s, ":")
	if !ok {
		return sdf.Ray{}, fmt.Errorf("expected origin:direction, got %q", s)
	}
	o, err := parseVec(origin)
	if err != nil {
		return sdf.Ray{}, fmt.Errorf("origin: %w", err)
	}
	d, err := parseVec(dir)
	if err != nil {
		return sdf.Ray{}, fmt.Errorf("direction: %w", err)
	}
	if d == (v3.Vec{}) {
		return sdf.Ray{}, fmt.Errorf("direction must not be zero")
	}
	return sdf.Ray{Origin: o, Direction: d}, nil
}
