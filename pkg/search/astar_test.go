package search

import (
	"errors"
	"testing"

	"multimodal_router/pkg/graphmodel"
)

// buildTriangle returns a small directed triangle 1->2->3->1 with equal
// edge lengths, plus a shortcut 1->3 that should win over going the long
// way around.
func buildTriangle() *graphmodel.MemGraph {
	g := graphmodel.NewMemGraph()
	g.AddNode(1, 1.00, 103.00)
	g.AddNode(2, 1.01, 103.00)
	g.AddNode(3, 1.00, 103.01)
	g.AddEdge(1, 2, 100)
	g.AddEdge(2, 3, 100)
	g.AddEdge(3, 1, 100)
	g.AddEdge(1, 3, 50) // shortcut
	return g
}

func TestAStarFindsShortcut(t *testing.T) {
	a := NewAStar(WithSpeed(1.0))
	cost, path, err := a.Route(buildTriangle(), 1, 3)
	if err != nil {
		t.Fatalf("Route returned error: %v", err)
	}
	if cost.Cost != 50 {
		t.Errorf("cost = %f, want 50", cost.Cost)
	}
	want := []NodeID{1, 3}
	if len(path) != len(want) || path[0] != want[0] || path[1] != want[1] {
		t.Errorf("path = %v, want %v", path, want)
	}
}

func TestAStarNoPath(t *testing.T) {
	g := graphmodel.NewMemGraph()
	g.AddNode(1, 0, 0)
	g.AddNode(2, 0, 1)
	// no edges at all
	a := NewAStar()
	_, _, err := a.Route(g, 1, 2)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("err = %v, want ErrNoPath", err)
	}
}

func TestAStarCapacityExceeded(t *testing.T) {
	// A long chain with no edge to the destination forces full
	// exploration; set a tiny cap so it trips.
	g := graphmodel.NewMemGraph()
	for i := NodeID(0); i < 100; i++ {
		g.AddNode(i, float64(i)*0.001, 0)
		if i > 0 {
			g.AddEdge(i-1, i, 10)
		}
	}
	a := NewAStar(WithMaxLabels(5))
	_, _, err := a.Route(g, 0, 99)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}
}

func TestAStarAgreesWithPlainDijkstra(t *testing.T) {
	g := graphmodel.NewMemGraph()
	coords := map[NodeID][2]float64{
		1: {1.00, 103.00}, 2: {1.01, 103.00}, 3: {1.02, 103.01},
		4: {1.00, 103.02}, 5: {1.015, 103.015},
	}
	for id, c := range coords {
		g.AddNode(id, c[0], c[1])
	}
	edges := []struct {
		u, v   NodeID
		length float64
	}{
		{1, 2, 120}, {2, 3, 90}, {1, 4, 200}, {4, 3, 80},
		{2, 5, 60}, {5, 3, 60}, {1, 5, 140},
	}
	for _, e := range edges {
		g.AddEdge(e.u, e.v, e.length)
	}

	a := NewAStar(WithSpeed(1.0))
	for dest := range coords {
		if dest == 1 {
			continue
		}
		gotCost, _, err := a.Route(g, 1, dest)
		wantCost, wantOK := plainDijkstra(g, 1, dest)
		if !wantOK {
			if err == nil {
				t.Errorf("dest %d: A* found a path, plain Dijkstra did not", dest)
			}
			continue
		}
		if err != nil {
			t.Fatalf("dest %d: A* returned %v, plain Dijkstra found cost %f", dest, err, wantCost)
		}
		if gotCost.Cost != wantCost {
			t.Errorf("dest %d: A* cost = %f, plain Dijkstra cost = %f", dest, gotCost.Cost, wantCost)
		}
	}
}

// plainDijkstra is a minimal node-based reference implementation used
// only to cross-check AStar's edge-based search on small graphs.
func plainDijkstra(g graphmodel.Graph, orig, dest NodeID) (float64, bool) {
	dist := map[NodeID]float64{orig: 0}
	visited := map[NodeID]bool{}
	for {
		var u NodeID
		best := -1.0
		found := false
		for n, d := range dist {
			if visited[n] {
				continue
			}
			if !found || d < best {
				u, best, found = n, d, true
			}
		}
		if !found {
			return 0, false
		}
		if u == dest {
			return best, true
		}
		visited[u] = true
		for _, v := range g.OutNeighbors(u) {
			length, ok := g.EdgeLength(u, v)
			if !ok {
				continue
			}
			nd := dist[u] + length
			if d, seen := dist[v]; !seen || nd < d {
				dist[v] = nd
			}
		}
	}
}
