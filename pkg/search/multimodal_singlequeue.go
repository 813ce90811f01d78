package search

import "multimodal_router/pkg/graphmodel"

// SingleQueueMultiModalRouter (C10) runs one label-setting search over a
// single queue whose labels are mode-tagged: reaching a bike-share node
// forks the current label into both a walking and a bike continuation
// (EdgeKey's Mode field keeps them from colliding), while a node that is
// not a station only continues in whatever mode it was reached in. This
// avoids DoubleExpansionMultiModalRouter's four separate frontiers at
// the cost of a single queue mixing units (seconds accumulate at
// different rates per mode; Cost.Cost is length scaled to its
// walking-speed equivalent, see normFactorOf, so it remains comparable
// across the fork).
type SingleQueueMultiModalRouter struct {
	cfg multiModalConfig
}

// NewSingleQueueMultiModalRouter returns a SingleQueueMultiModalRouter
// configured by opts.
func NewSingleQueueMultiModalRouter(opts ...MultiModalOption) *SingleQueueMultiModalRouter {
	cfg := defaultMultiModalConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SingleQueueMultiModalRouter{cfg: cfg}
}

func (r *SingleQueueMultiModalRouter) speedOf(mode TravelMode, cfg multiModalConfig) float64 {
	if mode == Bike {
		return cfg.bikeSpeed
	}
	return cfg.walkingSpeed
}

// normFactorOf scales length onto the shared cost axis: 1.0 for Walking,
// walking_speed/bike_speed for Bike, so a bike leg's Cost.Cost stays
// comparable to a walking leg's in the single mixed-mode queue.
func (r *SingleQueueMultiModalRouter) normFactorOf(mode TravelMode, cfg multiModalConfig) float64 {
	if mode == Bike {
		return cfg.walkingSpeed / cfg.bikeSpeed
	}
	return 1.0
}

// Route finds the cheapest walk/bike-share/walk (or pure-walk) journey
// from orig to dest over the given bike-share station nodes.
func (r *SingleQueueMultiModalRouter) Route(g graphmodel.Graph, orig, dest NodeID, bssNodes []NodeID) (MultiModalRoute, error) {
	cfg := r.cfg
	bssSet := make(map[NodeID]bool, len(bssNodes))
	for _, n := range bssNodes {
		bssSet[n] = true
	}

	destLat, destLon, hasDest := g.Coordinate(dest)
	heuristicFor := func(mode TravelMode) func(NodeID) float64 {
		speed := r.speedOf(mode, cfg)
		factor := r.normFactorOf(mode, cfg)
		return func(v NodeID) float64 { return heuristicCost(g, v, hasDest, destLat, destLon, factor, speed) }
	}
	walkHeuristic := heuristicFor(Walking)
	bikeHeuristic := heuristicFor(Bike)
	heuristicFn := func(v NodeID, mode TravelMode) float64 {
		if mode == Bike {
			return bikeHeuristic(v)
		}
		return walkHeuristic(v)
	}

	labels := NewLabelStore(256)
	status := NewStatusMap()
	pq := NewPriorityQueue[int]()

	seedOrigin(g, labels, status, pq, orig, Walking, 1.0, 0, 0, cfg.walkingSpeed, walkHeuristic)

	tick := 0
	for {
		if tick%50 == 0 {
			cfg.observer(MultiModalSnapshot{Graph: g, Orig: orig, Dest: dest, BSSNodes: bssNodes, WalkingForward: status, Tick: tick})
		}
		tick++

		if labels.Len() > cfg.maxLabels {
			return MultiModalRoute{}, ErrCapacityExceeded
		}
		_, idx, ok := pq.Pop()
		if !ok {
			return MultiModalRoute{}, ErrNoMultimodalPath
		}
		lab := labels.Get(idx)
		if lab.Edge.Mode == Walking && lab.Edge.End == dest {
			path, modes := reconstructModalPath(labels, idx)
			route := splitModalPath(path, modes)
			route.Cost = lab.Cost
			return route, nil
		}
		if !lab.IsOrigin {
			status.SetPermanent(lab.Edge.statusKey())
		}

		u := lab.Edge.End
		if !bssSet[u] {
			r.expand(g, labels, status, pq, u, idx, lab.Cost, lab.Edge.Mode, cfg, heuristicFn)
			continue
		}
		r.expand(g, labels, status, pq, u, idx, lab.Cost, Walking, cfg, heuristicFn)
		r.expand(g, labels, status, pq, u, idx, lab.Cost, Bike, cfg, heuristicFn)
	}
}

func (r *SingleQueueMultiModalRouter) expand(g graphmodel.Graph, labels *LabelStore, status *StatusMap, pq *PriorityQueue[int], u NodeID, predIdx int, predCost Cost, mode TravelMode, cfg multiModalConfig, heuristicFn func(NodeID, TravelMode) float64) {
	speed := r.speedOf(mode, cfg)
	normFactor := r.normFactorOf(mode, cfg)
	for _, v := range g.OutNeighbors(u) {
		length, ok := g.EdgeLength(u, v)
		if !ok {
			continue
		}
		idx, touched := relax(labels, status, u, v, length, mode, normFactor, predCost, predIdx, speed, heuristicFn(v, mode))
		if touched {
			lab := labels.Get(idx)
			pq.Insert(lab.SortCost, idx)
		}
	}
}

// reconstructModalPath is reconstructPath generalized to also report
// the mode each edge in the path was traversed in.
func reconstructModalPath(labels *LabelStore, idx int) ([]NodeID, []TravelMode) {
	var edges []DirectedEdge
	for {
		l := labels.Get(idx)
		edges = append(edges, l.Edge)
		if l.IsOrigin {
			break
		}
		idx = l.PredIdx
	}
	n := len(edges)
	path := make([]NodeID, 0, n+1)
	modes := make([]TravelMode, 0, n)
	path = append(path, edges[n-1].Start)
	for i := n - 1; i >= 0; i-- {
		path = append(path, edges[i].End)
		modes = append(modes, edges[i].Mode)
	}
	return path, modes
}

// splitModalPath groups a mode-tagged path into its walking/bike/walking
// legs. Consecutive legs share their boundary node.
func splitModalPath(path []NodeID, modes []TravelMode) MultiModalRoute {
	var route MultiModalRoute
	if len(modes) == 0 {
		return route
	}
	segStart := 0
	cur := modes[0]
	for i := 1; i <= len(modes); i++ {
		if i == len(modes) || modes[i] != cur {
			seg := path[segStart : i+1]
			if cur == Bike {
				route.Bike = append(route.Bike, seg...)
			} else if len(route.Bike) == 0 {
				route.WalkToBike = append(route.WalkToBike, seg...)
			} else {
				route.WalkFromBike = append(route.WalkFromBike, seg...)
			}
			segStart = i
			if i < len(modes) {
				cur = modes[i]
			}
		}
	}
	return route
}
