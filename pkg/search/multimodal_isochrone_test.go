package search

import "testing"

func TestMultiModalIsochroneReachesBeyondWalkingBudget(t *testing.T) {
	g, orig, dest, bss := buildWalkBikeGrid()
	m := NewMultiModalIsochrone(WithWalkingSpeed(1.4), WithBikeSpeed(3.3))

	reach, err := m.Run(g, orig, bss, []NodeID{dest}, 900, 900)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	cost, ok := reach[dest]
	if !ok {
		t.Fatalf("expected dest to be reachable, got %+v", reach)
	}
	if cost.Cost <= 0 {
		t.Errorf("expected a positive cost, got %f", cost.Cost)
	}
}

func TestMultiModalIsochroneNoStationsReached(t *testing.T) {
	g, orig, dest, _ := buildWalkBikeGrid()
	m := NewMultiModalIsochrone()

	reach, err := m.Run(g, orig, []NodeID{NodeID(42)}, []NodeID{dest}, 900, 900)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, ok := reach[dest]; ok {
		t.Errorf("dest is too far to reach purely on foot, should not be in result: %+v", reach)
	}
}

func TestMultiModalIsochroneFallsBackToPureWalk(t *testing.T) {
	g, orig, dest, bss := buildWalkBikeGrid()
	m := NewMultiModalIsochrone(WithWalkingSpeed(1.4), WithBikeSpeed(3.3))

	// A generous walking-only budget should reach dest even without
	// needing the bike leg at all.
	reach, err := m.Run(g, orig, bss, []NodeID{dest}, 100000, 900)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, ok := reach[dest]; !ok {
		t.Errorf("expected dest reachable purely by foot with a generous budget, got %+v", reach)
	}
}

func TestDoubleExpansionMultiModalIsochroneReachesBeyondWalkingBudget(t *testing.T) {
	g, orig, dest, bss := buildWalkBikeGrid()
	d := NewDoubleExpansionMultiModalIsochrone(WithWalkingSpeed(1.4), WithBikeSpeed(3.3))

	reach, err := d.Run(g, orig, bss, []NodeID{dest}, 900, 900)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, ok := reach[dest]; !ok {
		t.Errorf("expected dest to be reachable using the bike shortcut, got %+v", reach)
	}
}

func TestDoubleExpansionMultiModalIsochroneNoStations(t *testing.T) {
	g, orig, dest, _ := buildWalkBikeGrid()
	d := NewDoubleExpansionMultiModalIsochrone(WithWalkingSpeed(1.4), WithBikeSpeed(3.3))

	reach, err := d.Run(g, orig, nil, []NodeID{dest}, 100000, 900)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, ok := reach[dest]; !ok {
		t.Errorf("expected dest reachable purely on foot with no stations, got %+v", reach)
	}
}
