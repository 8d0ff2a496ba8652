// Package gitops implements the version-control side of node lifecycle
// transitions: cloning, removing and pulling node repositories under the
// custom nodes directory, and running their install scripts.
package gitops
