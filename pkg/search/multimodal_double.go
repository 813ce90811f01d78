package search

import "multimodal_router/pkg/graphmodel"

// DoubleExpansionMultiModalRouter (C9) keeps four frontiers alive at
// once — walking forward, walking backward, bike forward, bike backward
// — instead of sequencing three independent searches the way
// SequencedMultiModalRouter does. A walking frontier that reaches a
// bike-share node forks a bike frontier there (carrying the walking
// leg's elapsed time in as that seed's InitCost) while continuing to
// explore on foot past the station too, so a route that never needs a
// bike is found by the same search. The two bike frontiers meeting is a
// candidate connection exactly like the two walking frontiers meeting;
// the cheaper of the two kinds wins.
type DoubleExpansionMultiModalRouter struct {
	cfg multiModalConfig
}

// NewDoubleExpansionMultiModalRouter returns a
// DoubleExpansionMultiModalRouter configured by opts.
func NewDoubleExpansionMultiModalRouter(opts ...MultiModalOption) *DoubleExpansionMultiModalRouter {
	cfg := defaultMultiModalConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &DoubleExpansionMultiModalRouter{cfg: cfg}
}

type frontier struct {
	labels     *LabelStore
	status     *StatusMap
	pq         *PriorityQueue[int]
	speed      float64
	normFactor float64
	heur       func(NodeID) float64
}

func newFrontier(speed, normFactor float64, heur func(NodeID) float64) *frontier {
	return &frontier{
		labels:     NewLabelStore(256),
		status:     NewStatusMap(),
		pq:         NewPriorityQueue[int](),
		speed:      speed,
		normFactor: normFactor,
		heur:       heur,
	}
}

func (f *frontier) seed(g graphmodel.Graph, node NodeID, mode TravelMode, initCost, initSecs float64) {
	seedOrigin(g, f.labels, f.status, f.pq, node, mode, f.normFactor, initCost, initSecs, f.speed, f.heur)
}

func (f *frontier) pop() (Label, int, bool) {
	_, idx, ok := f.pq.Pop()
	if !ok {
		return Label{}, 0, false
	}
	return f.labels.Get(idx), idx, true
}

// peek reports the sort cost of the frontier's next label without
// popping it.
func (f *frontier) peek() (float64, bool) {
	k, _, ok := f.pq.Peek()
	return k, ok
}

func (f *frontier) expand(g graphmodel.Graph, mode TravelMode, u NodeID, predIdx int, predCost Cost) {
	for _, v := range g.OutNeighbors(u) {
		length, ok := g.EdgeLength(u, v)
		if !ok {
			continue
		}
		idx, touched := relax(f.labels, f.status, u, v, length, mode, f.normFactor, predCost, predIdx, f.speed, f.heur(v))
		if touched {
			f.pq.Insert(f.labels.Get(idx).SortCost, idx)
		}
	}
}

// chooseSide picks which of a side's two frontiers (walking, bike)
// should be considered next: bike is only even looked at once bothBSS
// says both the forward and backward searches have reached at least one
// bike-share node — before that a lone bike frontier is empty on one
// side anyway and comparing against it would be meaningless — and even
// then only if its peek actually undercuts the walking one.
func chooseSide(walk, bike *frontier, bothBSS bool) (cost float64, useBike, ok bool) {
	wk, wok := walk.peek()
	if bothBSS {
		if bk, bok := bike.peek(); bok && (!wok || bk < wk) {
			return bk, true, true
		}
	}
	if wok {
		return wk, false, true
	}
	return 0, false, false
}

// Route finds the cheapest walk/bike-share/walk (or pure-walk) journey
// from orig to dest over the given bike-share station nodes.
func (r *DoubleExpansionMultiModalRouter) Route(g graphmodel.Graph, orig, dest NodeID, bssNodes []NodeID) (MultiModalRoute, error) {
	cfg := r.cfg
	bssSet := make(map[NodeID]bool, len(bssNodes))
	for _, n := range bssNodes {
		bssSet[n] = true
	}

	bikeNorm := cfg.walkingSpeed / cfg.bikeSpeed

	destLat, destLon, hasDest := g.Coordinate(dest)
	origLat, origLon, hasOrig := g.Coordinate(orig)
	towardDest := func(v NodeID) float64 { return heuristicCost(g, v, hasDest, destLat, destLon, bikeNorm, cfg.bikeSpeed) }
	towardOrig := func(v NodeID) float64 { return heuristicCost(g, v, hasOrig, origLat, origLon, bikeNorm, cfg.bikeSpeed) }

	walkFwd := newFrontier(cfg.walkingSpeed, 1.0, func(v NodeID) float64 { return heuristicCost(g, v, hasDest, destLat, destLon, 1.0, cfg.walkingSpeed) })
	walkBwd := newFrontier(cfg.walkingSpeed, 1.0, func(v NodeID) float64 { return heuristicCost(g, v, hasOrig, origLat, origLon, 1.0, cfg.walkingSpeed) })
	bikeFwd := newFrontier(cfg.bikeSpeed, bikeNorm, towardDest)
	bikeBwd := newFrontier(cfg.bikeSpeed, bikeNorm, towardOrig)

	walkFwd.seed(g, orig, Walking, 0, 0)
	walkBwd.seed(g, dest, Walking, 0, 0)

	walkFwdArrival := map[NodeID]int{}
	walkBwdArrival := map[NodeID]int{}

	var bestWalk, bestBike bestConnection
	threshold := cfg.thresholdDelta
	haveAnyBest := false
	tick := 0

	// walkingDiff balances the two walking frontiers' cost scales at the
	// moment the search starts (their first sort keys needn't be level:
	// each includes the heuristic toward its own anchor); bikeDiff does the same for the bike
	// frontiers once both sides have forked one, computed once from their
	// first peeks and held fixed afterward.
	fk, _ := walkFwd.peek()
	bk, _ := walkBwd.peek()
	walkingDiff := fk - bk
	var bikeDiff float64
	bikeDiffSet := false

	bssReachedForward := false
	bssReachedBackward := false

	maybeSetBikeDiff := func() {
		if bikeDiffSet || !bssReachedForward || !bssReachedBackward {
			return
		}
		fk, fok := bikeFwd.peek()
		bk, bok := bikeBwd.peek()
		if fok && bok {
			bikeDiff = fk - bk
			bikeDiffSet = true
		}
	}

	updateThreshold := func(cost float64) {
		if !haveAnyBest || cost < threshold-cfg.thresholdDelta {
			threshold = cost + cfg.thresholdDelta
			haveAnyBest = true
		}
	}

	checkWalkMeet := func(lab Label, idx int, other *frontier, isFwd bool) {
		key := lab.Edge.statusKey()
		if st := other.status.Get(key); st.Kind != Unreached {
			otherLab := other.labels.Get(st.LabelIdx)
			var fwdLab, bwdLab Label
			var fwdIdx, bwdIdx int
			if isFwd {
				fwdLab, fwdIdx, bwdLab, bwdIdx = lab, idx, otherLab, st.LabelIdx
			} else {
				fwdLab, fwdIdx, bwdLab, bwdIdx = otherLab, st.LabelIdx, lab, idx
			}
			length, _ := g.EdgeLength(fwdLab.Edge.Start, fwdLab.Edge.End)
			connCost := Cost{Cost: fwdLab.Cost.Cost + bwdLab.Cost.Cost - length, Secs: fwdLab.Cost.Secs + bwdLab.Cost.Secs - length/cfg.walkingSpeed}
			if !bestWalk.found || connCost.Cost < bestWalk.cost.Cost {
				bestWalk = bestConnection{found: true, cost: connCost, fwdIdx: fwdIdx, bwdIdx: bwdIdx}
				updateThreshold(connCost.Cost)
			}
		}
	}

	checkBikeMeet := func(lab Label, idx int, other *frontier, isFwd bool) {
		key := lab.Edge.statusKey()
		if st := other.status.Get(key); st.Kind != Unreached {
			otherLab := other.labels.Get(st.LabelIdx)
			var fwdLab, bwdLab Label
			var fwdIdx, bwdIdx int
			if isFwd {
				fwdLab, fwdIdx, bwdLab, bwdIdx = lab, idx, otherLab, st.LabelIdx
			} else {
				fwdLab, fwdIdx, bwdLab, bwdIdx = otherLab, st.LabelIdx, lab, idx
			}
			length, _ := g.EdgeLength(fwdLab.Edge.Start, fwdLab.Edge.End)
			connCost := Cost{Cost: fwdLab.Cost.Cost + bwdLab.Cost.Cost - length*bikeNorm, Secs: fwdLab.Cost.Secs + bwdLab.Cost.Secs - length/cfg.bikeSpeed}
			if !bestBike.found || connCost.Cost < bestBike.cost.Cost {
				bestBike = bestConnection{found: true, cost: connCost, fwdIdx: fwdIdx, bwdIdx: bwdIdx}
				updateThreshold(connCost.Cost)
			}
		}
	}

	for {
		if tick%50 == 0 {
			cfg.observer(MultiModalSnapshot{
				Graph: g, Orig: orig, Dest: dest, BSSNodes: bssNodes,
				WalkingForward: walkFwd.status, WalkingBackward: walkBwd.status,
				BikeForward: bikeFwd.status, BikeBackward: bikeBwd.status,
				Tick: tick,
			})
		}
		tick++

		if walkFwd.labels.Len() > cfg.maxLabels || walkBwd.labels.Len() > cfg.maxLabels ||
			bikeFwd.labels.Len() > cfg.maxLabels || bikeBwd.labels.Len() > cfg.maxLabels {
			if haveAnyBest {
				break
			}
			return MultiModalRoute{}, ErrCapacityExceeded
		}

		bothBSS := bssReachedForward && bssReachedBackward
		fwdCost, fwdUseBike, fwdOK := chooseSide(walkFwd, bikeFwd, bothBSS)
		bwdCost, bwdUseBike, bwdOK := chooseSide(walkBwd, bikeBwd, bothBSS)
		if !fwdOK && !bwdOK {
			break
		}

		bwdAdjusted := bwdCost + walkingDiff
		if bwdUseBike {
			bwdAdjusted = bwdCost + bikeDiff
		}

		expandForward := fwdOK && (!bwdOK || fwdCost <= bwdAdjusted)
		pickKey := bwdAdjusted
		if expandForward {
			pickKey = fwdCost
		}
		if haveAnyBest && pickKey > threshold {
			break
		}

		if expandForward {
			if fwdUseBike {
				lab, idx, _ := bikeFwd.pop()
				key := lab.Edge.statusKey()
				if !lab.IsOrigin {
					bikeFwd.status.SetPermanent(key)
				}
				checkBikeMeet(lab, idx, bikeBwd, true)
				bikeFwd.expand(g, Bike, lab.Edge.End, idx, lab.Cost)
			} else {
				lab, idx, _ := walkFwd.pop()
				key := lab.Edge.statusKey()
				if !lab.IsOrigin {
					walkFwd.status.SetPermanent(key)
				}
				checkWalkMeet(lab, idx, walkBwd, true)
				if bssSet[lab.Edge.End] {
					bssReachedForward = true
					walkFwdArrival[lab.Edge.End] = idx
					bikeFwd.seed(g, lab.Edge.End, Bike, lab.Cost.Secs*cfg.bikeSpeed, 0)
					maybeSetBikeDiff()
				}
				walkFwd.expand(g, Walking, lab.Edge.End, idx, lab.Cost)
			}
		} else {
			if bwdUseBike {
				lab, idx, _ := bikeBwd.pop()
				key := lab.Edge.statusKey()
				if !lab.IsOrigin {
					bikeBwd.status.SetPermanent(key)
				}
				checkBikeMeet(lab, idx, bikeFwd, false)
				bikeBwd.expand(g, Bike, lab.Edge.End, idx, lab.Cost)
			} else {
				lab, idx, _ := walkBwd.pop()
				key := lab.Edge.statusKey()
				if !lab.IsOrigin {
					walkBwd.status.SetPermanent(key)
				}
				checkWalkMeet(lab, idx, walkFwd, false)
				if bssSet[lab.Edge.End] {
					bssReachedBackward = true
					walkBwdArrival[lab.Edge.End] = idx
					bikeBwd.seed(g, lab.Edge.End, Bike, lab.Cost.Secs*cfg.bikeSpeed, 0)
					maybeSetBikeDiff()
				}
				walkBwd.expand(g, Walking, lab.Edge.End, idx, lab.Cost)
			}
		}
	}

	if !bestWalk.found && !bestBike.found {
		return MultiModalRoute{}, ErrNoMultimodalPath
	}
	if bestWalk.found && (!bestBike.found || bestWalk.cost.Cost <= bestBike.cost.Cost) {
		path := buildBidirectionalPath(walkFwd.labels, walkBwd.labels, bestWalk.fwdIdx, bestWalk.bwdIdx)
		return MultiModalRoute{Cost: bestWalk.cost, WalkToBike: path}, nil
	}

	bikePath := buildBidirectionalPath(bikeFwd.labels, bikeBwd.labels, bestBike.fwdIdx, bestBike.bwdIdx)
	if len(bikePath) == 0 {
		return MultiModalRoute{}, ErrNoMultimodalPath
	}
	boardNode := bikePath[0]
	alightNode := bikePath[len(bikePath)-1]

	var walkToBike, walkFromBike []NodeID
	if idx, ok := walkFwdArrival[boardNode]; ok {
		walkToBike = reconstructPath(walkFwd.labels, idx)
	}
	if idx, ok := walkBwdArrival[alightNode]; ok {
		bwdPath := reconstructPath(walkBwd.labels, idx)
		walkFromBike = make([]NodeID, len(bwdPath))
		for i, n := range bwdPath {
			walkFromBike[len(bwdPath)-1-i] = n
		}
	}

	return MultiModalRoute{Cost: bestBike.cost, WalkToBike: walkToBike, Bike: bikePath, WalkFromBike: walkFromBike}, nil
}
