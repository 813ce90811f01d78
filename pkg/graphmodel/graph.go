// Package graphmodel defines the read-only graph surface the search
// engines consume. It is the boundary between the core (pkg/search) and
// whatever produces a routable graph — OSM ingestion, a test fixture, or
// anything else. The core never imports an ingestion package; it only
// ever sees a Graph.
package graphmodel

import "errors"

// NodeID is an opaque node identifier. The core treats it as an opaque
// key: no arithmetic, no assumed density or ordering.
type NodeID int64

// ErrUnknownNode is returned when a node id is not present in the graph.
var ErrUnknownNode = errors.New("graphmodel: unknown node")

// Graph is the read-only multidigraph the search engines operate over.
// Parallel edges between the same ordered pair are permitted; callers
// that need a specific one always get the first one added (spec's
// first-parallel-edge rule — see MemGraph).
type Graph interface {
	// OutNeighbors returns the distinct nodes reachable by one hop from u,
	// in a stable, deterministic order. A node that appears as the target
	// of several parallel edges from u appears once.
	OutNeighbors(u NodeID) []NodeID

	// EdgeLength returns the length (meters) of the first edge u->v added
	// to the graph, and false if no such edge exists.
	EdgeLength(u, v NodeID) (length float64, ok bool)

	// Coordinate returns the (lat, lon) of a node, and false if the node
	// is unknown to the graph.
	Coordinate(n NodeID) (lat, lon float64, ok bool)
}
