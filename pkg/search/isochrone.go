package search

import "multimodal_router/pkg/graphmodel"

// Isochrone computes, from a single origin, the cheapest cost to reach
// each of a set of target nodes within a time budget. It is plain
// Dijkstra over edges (no heuristic: there is no single destination to
// aim at) with an elapsed-time cutoff applied per label.
type Isochrone struct {
	cfg isochroneConfig
}

// NewIsochrone returns an Isochrone configured by opts.
func NewIsochrone(opts ...IsochroneOption) *Isochrone {
	cfg := defaultIsochroneConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Isochrone{cfg: cfg}
}

// Run computes reachable targets within limit seconds of orig.
func (iso *Isochrone) Run(g graphmodel.Graph, orig NodeID, targets []NodeID, limit float64) (map[NodeID]Cost, error) {
	return iso.RunChained(g, orig, targets, limit, 0, 0)
}

// RunChained is Run with a predecessor leg's (cost, seconds) seeded as
// InitCost/InitSecs. limit still bounds only the elapsed time of *this*
// leg (Secs, which never includes InitSecs), letting a caller chain
// isochrones end to end without each successive leg inheriting the
// previous one's budget.
func (iso *Isochrone) RunChained(g graphmodel.Graph, orig NodeID, targets []NodeID, limit, initCost, initSecs float64) (map[NodeID]Cost, error) {
	cfg := iso.cfg
	labels := NewLabelStore(256)
	status := NewStatusMap()
	pq := NewPriorityQueue[int]()
	result := make(map[NodeID]Cost)

	targetSet := make(map[NodeID]bool, len(targets))
	for _, t := range targets {
		targetSet[t] = true
	}

	noHeuristic := func(NodeID) float64 { return 0 }
	seedOrigin(g, labels, status, pq, orig, Walking, 1.0, initCost, initSecs, cfg.speed, noHeuristic)

	tick := 0
	for {
		if tick%200 == 0 {
			cfg.observer(Snapshot{Graph: g, Orig: orig, Status: status, Labels: labels, Tick: tick})
		}
		tick++

		if labels.Len() > cfg.maxLabels {
			return map[NodeID]Cost{}, ErrCapacityExceeded
		}
		_, idx, ok := pq.Pop()
		if !ok {
			return result, nil
		}
		lab := labels.Get(idx)
		if lab.Cost.Secs > limit {
			continue // over budget: dropped, never expanded
		}
		if targetSet[lab.Edge.End] {
			if existing, seen := result[lab.Edge.End]; !seen || lab.Cost.Less(existing) {
				result[lab.Edge.End] = lab.Cost
			}
		}
		if !lab.IsOrigin {
			status.SetPermanent(lab.Edge.statusKey())
		}
		expandWalking(g, labels, status, pq, lab.Edge.End, idx, lab.Cost, cfg.speed, noHeuristic)
	}
}
