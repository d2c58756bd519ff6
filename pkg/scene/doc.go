// Package scene holds a set of named shapes produced by evaluating a scene
// script. Root nodes are unioned for distance queries and traced
// individually for raycasts.
package scene
