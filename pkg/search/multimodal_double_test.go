package search

import (
	"testing"

	"multimodal_router/pkg/graphmodel"
)

// buildWalkBikeGrid builds a small network where biking the middle
// stretch between two bike-share stations is much faster than walking
// the whole way, so a correct router should pick up a bike.
func buildWalkBikeGrid() (*graphmodel.MemGraph, NodeID, NodeID, []NodeID) {
	g := graphmodel.NewMemGraph()
	orig, dest := NodeID(1), NodeID(6)
	stationA, stationB := NodeID(2), NodeID(5)

	g.AddNode(orig, 1.000, 103.000)
	g.AddNode(stationA, 1.001, 103.000)
	g.AddNode(3, 1.002, 103.000)
	g.AddNode(4, 1.003, 103.000)
	g.AddNode(stationB, 1.004, 103.000)
	g.AddNode(dest, 1.005, 103.000)

	g.AddBidirectionalEdge(orig, stationA, 50)
	g.AddBidirectionalEdge(stationA, 3, 500)
	g.AddBidirectionalEdge(3, 4, 500)
	g.AddBidirectionalEdge(4, stationB, 500)
	g.AddBidirectionalEdge(stationB, dest, 50)

	return g, orig, dest, []NodeID{stationA, stationB}
}

func TestDoubleExpansionMultiModalRouterUsesBike(t *testing.T) {
	g, orig, dest, bss := buildWalkBikeGrid()
	r := NewDoubleExpansionMultiModalRouter(WithWalkingSpeed(1.4), WithBikeSpeed(3.3), WithWalkingLimit(900))

	route, err := r.Route(g, orig, dest, bss)
	if err != nil {
		t.Fatalf("Route returned error: %v", err)
	}
	if len(route.Bike) == 0 {
		t.Errorf("expected a bike leg for the long middle stretch, got none: %+v", route)
	}
	if route.Cost.Cost <= 0 {
		t.Errorf("expected a positive cost, got %f", route.Cost.Cost)
	}
}

func TestDoubleExpansionMultiModalRouterNoStations(t *testing.T) {
	g, orig, dest, _ := buildWalkBikeGrid()
	r := NewDoubleExpansionMultiModalRouter()
	route, err := r.Route(g, orig, dest, nil)
	if err != nil {
		t.Fatalf("Route returned error: %v", err)
	}
	if len(route.WalkToBike) == 0 || len(route.Bike) != 0 {
		t.Errorf("with no bike-share nodes, expected a pure walking route, got %+v", route)
	}
}

func TestDoubleExpansionMultiModalRouterNoPath(t *testing.T) {
	g := graphmodel.NewMemGraph()
	g.AddNode(1, 0, 0)
	g.AddNode(2, 0, 1)
	r := NewDoubleExpansionMultiModalRouter()
	_, err := r.Route(g, 1, 2, nil)
	if err != ErrNoMultimodalPath {
		t.Fatalf("err = %v, want ErrNoMultimodalPath", err)
	}
}
