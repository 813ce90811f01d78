package search

import "testing"

func TestSequencedMultiModalRouterUsesBike(t *testing.T) {
	g, orig, dest, bss := buildWalkBikeGrid()
	r := NewSequencedMultiModalRouter(WithWalkingSpeed(1.4), WithBikeSpeed(3.3), WithWalkingLimit(900))

	route, err := r.Route(g, orig, dest, bss)
	if err != nil {
		t.Fatalf("Route returned error: %v", err)
	}
	if len(route.Bike) == 0 {
		t.Errorf("expected a bike leg for the long middle stretch, got none: %+v", route)
	}
	if len(route.WalkToBike) == 0 || len(route.WalkFromBike) == 0 {
		t.Errorf("expected both walking legs to be populated, got %+v", route)
	}
	if route.Cost.Cost <= 0 {
		t.Errorf("expected a positive cost, got %f", route.Cost.Cost)
	}
}

func TestSequencedMultiModalRouterNoStationsReached(t *testing.T) {
	g, orig, dest, _ := buildWalkBikeGrid()
	r := NewSequencedMultiModalRouter(WithWalkingLimit(900))
	_, err := r.Route(g, orig, dest, []NodeID{NodeID(42)})
	if err != ErrNoMultimodalPath {
		t.Fatalf("err = %v, want ErrNoMultimodalPath", err)
	}
}

func TestSequencedMultiModalRouterNoPath(t *testing.T) {
	g, orig, _, bss := buildWalkBikeGrid()
	r := NewSequencedMultiModalRouter(WithWalkingLimit(900))
	_, err := r.Route(g, orig, NodeID(99), bss)
	if err != ErrNoMultimodalPath {
		t.Fatalf("err = %v, want ErrNoMultimodalPath", err)
	}
}
