package osmgraph

import (
	"github.com/tidwall/rtree"

	"multimodal_router/pkg/geo"
	"multimodal_router/pkg/graphmodel"
)

// StationIndex answers nearest-bike-share-station queries over a fixed
// set of graph nodes, using an R-tree so lookups stay cheap regardless of
// how many stations are indexed. This is the first real use of the
// tidwall/rtree dependency: the teacher's go.mod declares it but no
// teacher file ever imports it.
type StationIndex struct {
	tree  rtree.RTreeG[graphmodel.NodeID]
	coord map[graphmodel.NodeID][2]float64
}

// NewStationIndex builds a StationIndex over the given bike-share nodes,
// looking their coordinates up in g.
func NewStationIndex(g graphmodel.Graph, stations []graphmodel.NodeID) *StationIndex {
	idx := &StationIndex{coord: make(map[graphmodel.NodeID][2]float64, len(stations))}
	for _, n := range stations {
		lat, lon, ok := g.Coordinate(n)
		if !ok {
			continue
		}
		idx.coord[n] = [2]float64{lat, lon}
		point := [2]float64{lat, lon}
		idx.tree.Insert(point, point, n)
	}
	return idx
}

// Nearest returns the indexed station closest to (lat, lon) by great-
// circle distance, searching an expanding bounding box around the query
// point until at least one candidate is found.
func (s *StationIndex) Nearest(lat, lon float64) (graphmodel.NodeID, bool) {
	if len(s.coord) == 0 {
		return 0, false
	}

	// degreesPerMeter is a coarse latitude-only approximation good enough
	// to size a search box; the exact haversine distance below is what
	// actually ranks candidates.
	const degreesPerMeter = 1.0 / 111_000.0
	for radiusM := 500.0; ; radiusM *= 4 {
		d := radiusM * degreesPerMeter
		min := [2]float64{lat - d, lon - d}
		max := [2]float64{lat + d, lon + d}

		var best graphmodel.NodeID
		bestDist := -1.0
		found := false
		s.tree.Search(min, max, func(_, _ [2]float64, data graphmodel.NodeID) bool {
			ll := s.coord[data]
			dist := geo.Distance(lat, lon, ll[0], ll[1])
			if !found || dist < bestDist {
				best, bestDist, found = data, dist, true
			}
			return true
		})
		if found {
			return best, true
		}
		if radiusM > 200_000 {
			return s.bruteNearest(lat, lon)
		}
	}
}

// bruteNearest is the fallback once the expanding search box would cover
// essentially the whole index anyway; with a realistic station count this
// path is never hit in practice.
func (s *StationIndex) bruteNearest(lat, lon float64) (graphmodel.NodeID, bool) {
	var best graphmodel.NodeID
	bestDist := -1.0
	found := false
	for n, ll := range s.coord {
		dist := geo.Distance(lat, lon, ll[0], ll[1])
		if !found || dist < bestDist {
			best, bestDist, found = n, dist, true
		}
	}
	return best, found
}
