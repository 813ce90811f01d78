package graphmodel

import "testing"

func TestMemGraphFirstParallelEdgeWins(t *testing.T) {
	g := NewMemGraph()
	g.AddNode(1, 1.0, 103.0)
	g.AddNode(2, 1.1, 103.0)
	g.AddEdge(1, 2, 50)
	g.AddEdge(1, 2, 999) // parallel edge, shorter-weight callers must not see this

	length, ok := g.EdgeLength(1, 2)
	if !ok || length != 50 {
		t.Fatalf("EdgeLength(1,2) = %v,%v want 50,true", length, ok)
	}

	neighbors := g.OutNeighbors(1)
	if len(neighbors) != 1 || neighbors[0] != 2 {
		t.Fatalf("OutNeighbors(1) = %v, want [2] (deduped)", neighbors)
	}
}

func TestMemGraphUnknownNode(t *testing.T) {
	g := NewMemGraph()
	if _, ok := g.EdgeLength(1, 2); ok {
		t.Fatalf("EdgeLength on empty graph should be false")
	}
	if _, _, ok := g.Coordinate(1); ok {
		t.Fatalf("Coordinate on unknown node should be false")
	}
}

func TestMemGraphBidirectional(t *testing.T) {
	g := NewMemGraph()
	g.AddNode(1, 0, 0)
	g.AddNode(2, 0, 1)
	g.AddBidirectionalEdge(1, 2, 10)

	if l, ok := g.EdgeLength(1, 2); !ok || l != 10 {
		t.Fatalf("EdgeLength(1,2) = %v,%v want 10,true", l, ok)
	}
	if l, ok := g.EdgeLength(2, 1); !ok || l != 10 {
		t.Fatalf("EdgeLength(2,1) = %v,%v want 10,true", l, ok)
	}
}
