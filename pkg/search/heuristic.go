package search

import (
	"multimodal_router/pkg/geo"
	"multimodal_router/pkg/graphmodel"
)

// heuristicCost returns an admissible lower bound (meters, scaled by
// costFactor) on the remaining cost from node to a destination at
// (destLat, destLon). A costFactor of 0 disables the heuristic entirely,
// turning A* into plain Dijkstra. hasDest false (the destination has no
// coordinate in the graph) has the same effect. Isochrones, which have
// no single destination, do not call this: they pass a heuristic that
// always returns 0.
func heuristicCost(g graphmodel.Graph, node NodeID, hasDest bool, destLat, destLon, costFactor, speed float64) float64 {
	if costFactor == 0 || !hasDest {
		return 0
	}
	lat, lon, ok := g.Coordinate(node)
	if !ok {
		return 0
	}
	return costFactor * geo.Distance(lat, lon, destLat, destLon)
}
