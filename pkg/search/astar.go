package search

import "multimodal_router/pkg/graphmodel"

// AStar finds a single shortest walk between two nodes, label-setting
// over edges rather than nodes so that a multidigraph's parallel and
// opposite-direction edges are each tracked in their own right.
type AStar struct {
	cfg astarConfig
}

// NewAStar returns an AStar configured by opts. Defaults to a walking
// speed of 1.4 m/s with the heuristic fully enabled (cost_factor 1).
func NewAStar(opts ...AStarOption) *AStar {
	cfg := defaultAStarConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &AStar{cfg: cfg}
}

// Route finds the minimum-cost path from orig to dest.
func (a *AStar) Route(g graphmodel.Graph, orig, dest NodeID) (Cost, []NodeID, error) {
	return a.RouteChained(g, orig, dest, 0, 0)
}

// RouteChained is Route with a predecessor leg's (cost, seconds) seeded
// as InitCost/InitSecs. The returned Cost's Cost and Secs cover this leg
// only; its InitCost/InitSecs carry the seeded values, so whole-journey
// totals are Cost+InitCost and Secs+InitSecs.
func (a *AStar) RouteChained(g graphmodel.Graph, orig, dest NodeID, initCost, initSecs float64) (Cost, []NodeID, error) {
	cfg := a.cfg
	labels := NewLabelStore(256)
	status := NewStatusMap()
	pq := NewPriorityQueue[int]()

	destLat, destLon, hasDest := g.Coordinate(dest)
	heuristicFn := func(v NodeID) float64 {
		return heuristicCost(g, v, hasDest, destLat, destLon, cfg.costFactor, cfg.speed)
	}

	seedOrigin(g, labels, status, pq, orig, Walking, 1.0, initCost, initSecs, cfg.speed, heuristicFn)

	tick := 0
	for {
		if tick%200 == 0 {
			cfg.observer(Snapshot{Graph: g, Orig: orig, Dest: dest, Status: status, Labels: labels, Tick: tick})
		}
		tick++

		if labels.Len() > cfg.maxLabels {
			return Cost{}, nil, ErrCapacityExceeded
		}
		_, idx, ok := pq.Pop()
		if !ok {
			return Cost{}, nil, ErrNoPath
		}
		lab := labels.Get(idx)
		if lab.Edge.End == dest {
			return lab.Cost, reconstructPath(labels, idx), nil
		}
		if !lab.IsOrigin {
			status.SetPermanent(lab.Edge.statusKey())
		}
		expandWalking(g, labels, status, pq, lab.Edge.End, idx, lab.Cost, cfg.speed, heuristicFn)
	}
}

// expandWalking relaxes every out-edge of u, queuing any edge whose
// status changed.
func expandWalking(g graphmodel.Graph, labels *LabelStore, status *StatusMap, pq *PriorityQueue[int], u NodeID, predIdx int, predCost Cost, speed float64, heuristicFn func(NodeID) float64) {
	for _, v := range g.OutNeighbors(u) {
		length, ok := g.EdgeLength(u, v)
		if !ok {
			continue
		}
		idx, touched := relax(labels, status, u, v, length, Walking, 1.0, predCost, predIdx, speed, heuristicFn(v))
		if touched {
			lab := labels.Get(idx)
			pq.Insert(lab.SortCost, idx)
		}
	}
}
