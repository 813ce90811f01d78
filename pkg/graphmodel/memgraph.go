package graphmodel

// MemGraph is a small in-memory multidigraph implementing Graph. It backs
// every test fixture in this repository and is the output type of
// pkg/osmgraph's loaders.
//
// Edges are kept per source node as a slice in insertion order, so
// OutNeighbors and EdgeLength are both deterministic and cheap: the
// common case is a handful of parallel ways between two junctions, not
// thousands.
type MemGraph struct {
	lat, lon map[NodeID]float64
	adj      map[NodeID][]edge
	order    map[NodeID][]NodeID // first-seen order of distinct neighbors, per source
}

type edge struct {
	to     NodeID
	length float64
}

// NewMemGraph returns an empty graph.
func NewMemGraph() *MemGraph {
	return &MemGraph{
		lat:   make(map[NodeID]float64),
		lon:   make(map[NodeID]float64),
		adj:   make(map[NodeID][]edge),
		order: make(map[NodeID][]NodeID),
	}
}

// AddNode records a node's coordinate. Calling it more than once for the
// same id overwrites the coordinate.
func (g *MemGraph) AddNode(id NodeID, lat, lon float64) {
	g.lat[id] = lat
	g.lon[id] = lon
}

// AddEdge appends a directed edge u->v with the given length. If u or v
// have no recorded coordinate yet, they are registered at (0, 0) so
// Coordinate still succeeds; callers should normally call AddNode first.
func (g *MemGraph) AddEdge(u, v NodeID, length float64) {
	if _, ok := g.lat[u]; !ok {
		g.AddNode(u, 0, 0)
	}
	if _, ok := g.lat[v]; !ok {
		g.AddNode(v, 0, 0)
	}
	existing := g.adj[u]
	seen := false
	for _, n := range g.order[u] {
		if n == v {
			seen = true
			break
		}
	}
	if !seen {
		g.order[u] = append(g.order[u], v)
	}
	g.adj[u] = append(existing, edge{to: v, length: length})
}

// AddBidirectionalEdge is a convenience for the common case of a
// two-way street segment: it adds u->v and v->u with the same length.
func (g *MemGraph) AddBidirectionalEdge(u, v NodeID, length float64) {
	g.AddEdge(u, v, length)
	g.AddEdge(v, u, length)
}

func (g *MemGraph) OutNeighbors(u NodeID) []NodeID {
	return g.order[u]
}

func (g *MemGraph) EdgeLength(u, v NodeID) (float64, bool) {
	for _, e := range g.adj[u] {
		if e.to == v {
			return e.length, true
		}
	}
	return 0, false
}

func (g *MemGraph) Coordinate(n NodeID) (lat, lon float64, ok bool) {
	lat, ok = g.lat[n]
	if !ok {
		return 0, 0, false
	}
	return lat, g.lon[n], true
}

// NumNodes reports how many distinct nodes have a recorded coordinate.
func (g *MemGraph) NumNodes() int { return len(g.lat) }
