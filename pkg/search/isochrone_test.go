package search

import "testing"

func TestIsochroneReachesWithinLimit(t *testing.T) {
	g := buildTriangle() // 1->2->3->1 at length 100 each, plus 1->3 shortcut at 50
	iso := NewIsochrone(WithIsochroneSpeed(1.0))

	res, err := iso.Run(g, 1, []NodeID{2, 3}, 1000)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res[3].Cost != 50 {
		t.Errorf("cost to 3 = %f, want 50 (via shortcut)", res[3].Cost)
	}
	if res[2].Cost != 100 {
		t.Errorf("cost to 2 = %f, want 100", res[2].Cost)
	}
}

func TestIsochroneDropsOverBudgetTargets(t *testing.T) {
	g := buildTriangle()
	iso := NewIsochrone(WithIsochroneSpeed(1.0))

	res, err := iso.Run(g, 1, []NodeID{2, 3}, 60) // 60s budget at 1 m/s = 60m
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if _, ok := res[2]; ok {
		t.Errorf("node 2 (cost 100) should be dropped under a 60s budget")
	}
	if res[3].Cost != 50 {
		t.Errorf("node 3 (cost 50) should still be reached")
	}
}

func TestIsochroneCapacityExceededReturnsEmpty(t *testing.T) {
	g := buildTriangle()
	iso := NewIsochrone(WithIsochroneSpeed(1.0), WithIsochroneMaxLabels(0))

	res, err := iso.Run(g, 1, []NodeID{2, 3}, 1000)
	if err != ErrCapacityExceeded {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}
	if len(res) != 0 {
		t.Errorf("result = %+v, want empty map even though labels were partially populated", res)
	}
}

func TestIsochroneChainedCarriesInit(t *testing.T) {
	g := buildTriangle()
	iso := NewIsochrone(WithIsochroneSpeed(1.0))

	res, err := iso.RunChained(g, 1, []NodeID{3}, 1000, 500, 500)
	if err != nil {
		t.Fatalf("RunChained returned error: %v", err)
	}
	got := res[3]
	if got.InitCost != 500 || got.InitSecs != 500 {
		t.Errorf("init fields not carried: got %+v", got)
	}
	if got.Cost != 50 {
		t.Errorf("cost = %f, want 50 (init fields carried, not summed)", got.Cost)
	}
}
