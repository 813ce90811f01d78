package search

import "multimodal_router/pkg/graphmodel"

// MultiModalIsochrone (C11) chains three independent isochrones: a
// walking isochrone from orig to every bike-share node, a bike isochrone
// from each BSS reached to every other BSS, and a walking isochrone from
// each BSS reached in the bike phase to every target in dest_nodes. Each
// leg's limit bounds only its own elapsed time; the result maps every
// target reachable through any combination of legs to its cheapest total
// (cost, seconds), carried end to end through InitCost/InitSecs the way
// RunChained expects.
type MultiModalIsochrone struct {
	cfg multiModalConfig
}

// NewMultiModalIsochrone returns a MultiModalIsochrone configured by opts.
func NewMultiModalIsochrone(opts ...MultiModalOption) *MultiModalIsochrone {
	cfg := defaultMultiModalConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &MultiModalIsochrone{cfg: cfg}
}

// Run computes, for every node in destNodes, the cheapest walk/bike/walk
// cost to reach it from orig within walkLimit seconds of walking on each
// walking leg and bikeLimit seconds of biking.
func (m *MultiModalIsochrone) Run(g graphmodel.Graph, orig NodeID, bssNodes, destNodes []NodeID, walkLimit, bikeLimit float64) (map[NodeID]Cost, error) {
	cfg := m.cfg
	walkIso := NewIsochrone(WithIsochroneSpeed(cfg.walkingSpeed), WithIsochroneMaxLabels(cfg.maxLabels))
	bikeIso := NewIsochrone(WithIsochroneSpeed(cfg.bikeSpeed), WithIsochroneMaxLabels(cfg.maxLabels))

	result := make(map[NodeID]Cost)

	firstLeg, err := walkIso.Run(g, orig, bssNodes, walkLimit)
	if err != nil {
		return nil, err
	}
	// A route that never touches a bike at all is still valid: a station
	// in destNodes or a node reachable purely by foot.
	if direct, err := walkIso.Run(g, orig, destNodes, walkLimit); err == nil {
		for node, cost := range direct {
			result[node] = cost
		}
	}
	if len(firstLeg) == 0 {
		return result, nil
	}

	for boardStation, walkCost := range firstLeg {
		remainingBSS := make([]NodeID, 0, len(bssNodes))
		for _, n := range bssNodes {
			if n != boardStation {
				remainingBSS = append(remainingBSS, n)
			}
		}
		bikeReach, err := bikeIso.RunChained(g, boardStation, remainingBSS, bikeLimit, walkCost.Cost, walkCost.Secs)
		if err != nil {
			return nil, err
		}
		for alightStation, bikeCost := range bikeReach {
			// bikeCost.Cost/Secs cover the bike leg alone; its init fields
			// hold the walking leg. The bike leg enters the cost axis as
			// its seconds times walking speed.
			finalInitCost := bikeCost.InitCost + bikeCost.Secs*cfg.walkingSpeed
			finalInitSecs := bikeCost.InitSecs + bikeCost.Secs
			finalReach, err := walkIso.RunChained(g, alightStation, destNodes, walkLimit, finalInitCost, finalInitSecs)
			if err != nil {
				return nil, err
			}
			for node, leg := range finalReach {
				cost := Cost{Cost: leg.InitCost + leg.Cost, Secs: leg.InitSecs + leg.Secs}
				if existing, seen := result[node]; !seen || cost.Less(existing) {
					result[node] = cost
				}
			}
		}
	}
	return result, nil
}

// DoubleExpansionMultiModalIsochrone (the supplemented sibling of
// MultiModalIsochrone) runs a single frontier that forks at every
// bike-share node it reaches — walking labels fork a bike continuation,
// bike labels fork a walking one back — instead of sequencing three
// independent runs.
type DoubleExpansionMultiModalIsochrone struct {
	cfg multiModalConfig
}

// NewDoubleExpansionMultiModalIsochrone returns a
// DoubleExpansionMultiModalIsochrone configured by opts.
func NewDoubleExpansionMultiModalIsochrone(opts ...MultiModalOption) *DoubleExpansionMultiModalIsochrone {
	cfg := defaultMultiModalConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &DoubleExpansionMultiModalIsochrone{cfg: cfg}
}

// Run computes, for every node in destNodes, the cheapest reachable cost
// from orig. A walking label is kept while its total elapsed seconds
// since orig stay within walkLimit, a bike label while they stay within
// bikeLimit, each plus a 50-second margin; seconds are not tracked
// separately per mode.
func (d *DoubleExpansionMultiModalIsochrone) Run(g graphmodel.Graph, orig NodeID, bssNodes, destNodes []NodeID, walkLimit, bikeLimit float64) (map[NodeID]Cost, error) {
	cfg := d.cfg
	bssSet := make(map[NodeID]bool, len(bssNodes))
	for _, n := range bssNodes {
		bssSet[n] = true
	}
	destSet := make(map[NodeID]bool, len(destNodes))
	for _, n := range destNodes {
		destSet[n] = true
	}

	labels := NewLabelStore(256)
	status := NewStatusMap()
	pq := NewPriorityQueue[int]()
	noHeuristic := func(NodeID) float64 { return 0 }

	seedOrigin(g, labels, status, pq, orig, Walking, 1.0, 0, 0, cfg.walkingSpeed, noHeuristic)

	result := make(map[NodeID]Cost)
	tick := 0
	const thresholdDelta = 50.0

	for {
		if tick%50 == 0 {
			cfg.observer(MultiModalSnapshot{Graph: g, Orig: orig, BSSNodes: bssNodes, WalkingForward: status, Tick: tick})
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

		withinBudget := true
		if lab.Edge.Mode == Walking {
			withinBudget = lab.Cost.Secs-lab.Cost.InitSecs <= walkLimit+thresholdDelta
		} else {
			withinBudget = lab.Cost.Secs-lab.Cost.InitSecs <= bikeLimit+thresholdDelta
		}
		if !withinBudget {
			continue
		}

		if destSet[lab.Edge.End] && lab.Edge.Mode == Walking {
			if existing, seen := result[lab.Edge.End]; !seen || lab.Cost.Less(existing) {
				result[lab.Edge.End] = lab.Cost
			}
		}
		if !lab.IsOrigin {
			status.SetPermanent(lab.Edge.statusKey())
		}

		speed, normFactor := cfg.walkingSpeed, 1.0
		if lab.Edge.Mode == Bike {
			speed, normFactor = cfg.bikeSpeed, cfg.walkingSpeed/cfg.bikeSpeed
		}
		for _, v := range g.OutNeighbors(lab.Edge.End) {
			length, ok := g.EdgeLength(lab.Edge.End, v)
			if !ok {
				continue
			}
			ridx, touched := relax(labels, status, lab.Edge.End, v, length, lab.Edge.Mode, normFactor, lab.Cost, idx, speed, 0)
			if touched {
				pq.Insert(labels.Get(ridx).SortCost, ridx)
			}
		}

		// On a BSS node both modes are generated as successors: a walking
		// label forks a bike continuation, and a bike label forks a
		// walking continuation back (dismounting). A label already in
		// its forked mode's own expand above covers staying in that
		// mode; this only adds the other one.
		if bssSet[lab.Edge.End] {
			forkMode, forkSpeed, forkNorm := Bike, cfg.bikeSpeed, cfg.walkingSpeed/cfg.bikeSpeed
			if lab.Edge.Mode == Bike {
				forkMode, forkSpeed, forkNorm = Walking, cfg.walkingSpeed, 1.0
			}
			for _, v := range g.OutNeighbors(lab.Edge.End) {
				length, ok := g.EdgeLength(lab.Edge.End, v)
				if !ok {
					continue
				}
				ridx, touched := relax(labels, status, lab.Edge.End, v, length, forkMode, forkNorm, lab.Cost, idx, forkSpeed, 0)
				if touched {
					pq.Insert(labels.Get(ridx).SortCost, ridx)
				}
			}
		}
	}
}
