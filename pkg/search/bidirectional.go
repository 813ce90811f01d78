package search

import (
	"math"

	"multimodal_router/pkg/graphmodel"
)

// BidirectionalAStar searches outward from both the origin and the
// destination at once, meeting in the middle. The backward frontier
// walks the same OutNeighbors adjacency as the forward one, starting
// from dest instead of orig — the reference implementation does not
// require (or the Graph interface expose) a true reverse-adjacency walk,
// which is a reasonable approximation on a walking/cycling network where
// most ways carry traffic both directions; see DESIGN.md.
type BidirectionalAStar struct {
	cfg bidirectionalConfig
}

// NewBidirectionalAStar returns a BidirectionalAStar configured by opts.
func NewBidirectionalAStar(opts ...BidirectionalOption) *BidirectionalAStar {
	cfg := defaultBidirectionalConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &BidirectionalAStar{cfg: cfg}
}

type bestConnection struct {
	found          bool
	cost           Cost
	fwdIdx, bwdIdx int
}

// Seed names a node a search starts from along with the (cost, seconds)
// of whatever leg preceded it, for chaining one search onto another.
type Seed struct {
	Node               NodeID
	InitCost, InitSecs float64
}

// Route finds the minimum-cost path from orig to dest.
func (b *BidirectionalAStar) Route(g graphmodel.Graph, orig, dest NodeID) (Cost, []NodeID, error) {
	return b.RouteFromSeeds(g, []Seed{{Node: orig}}, []Seed{{Node: dest}}, dest, orig)
}

// RouteFromSeeds runs a bidirectional search between two sets of seed
// nodes instead of a single origin and destination — used to chain a
// bike leg onto every bike-share node a prior walking leg reached, each
// carrying that leg's (cost, seconds) in as InitCost/InitSecs. The
// heuristic on each side is still anchored at a single real endpoint
// (heuristicAnchorFwd for the forward frontier, heuristicAnchorBwd for
// the backward one), since the seeds themselves are mid-journey nodes,
// not the trip's true endpoints.
func (b *BidirectionalAStar) RouteFromSeeds(g graphmodel.Graph, fwdSeeds, bwdSeeds []Seed, heuristicAnchorFwd, heuristicAnchorBwd NodeID) (Cost, []NodeID, error) {
	cfg := b.cfg
	fwdLabels := NewLabelStore(256)
	fwdStatus := NewStatusMap()
	fwdPQ := NewPriorityQueue[int]()
	bwdLabels := NewLabelStore(256)
	bwdStatus := NewStatusMap()
	bwdPQ := NewPriorityQueue[int]()

	fwdAnchorLat, fwdAnchorLon, hasFwdAnchor := g.Coordinate(heuristicAnchorFwd)
	bwdAnchorLat, bwdAnchorLon, hasBwdAnchor := g.Coordinate(heuristicAnchorBwd)
	fwdHeuristic := func(v NodeID) float64 {
		return heuristicCost(g, v, hasFwdAnchor, fwdAnchorLat, fwdAnchorLon, cfg.costFactor, cfg.speed)
	}
	bwdHeuristic := func(v NodeID) float64 {
		return heuristicCost(g, v, hasBwdAnchor, bwdAnchorLat, bwdAnchorLon, cfg.costFactor, cfg.speed)
	}

	for _, s := range fwdSeeds {
		seedOrigin(g, fwdLabels, fwdStatus, fwdPQ, s.Node, Walking, 1.0, s.InitCost, s.InitSecs, cfg.speed, fwdHeuristic)
	}
	for _, s := range bwdSeeds {
		seedOrigin(g, bwdLabels, bwdStatus, bwdPQ, s.Node, Walking, 1.0, s.InitCost, s.InitSecs, cfg.speed, bwdHeuristic)
	}

	var best bestConnection
	threshold := math.Inf(1)
	tick := 0

	for {
		if tick%15 == 0 {
			cfg.observer(BidirectionalSnapshot{
				Graph: g, Orig: heuristicAnchorBwd, Dest: heuristicAnchorFwd,
				ForwardStatus: fwdStatus, BackwardStatus: bwdStatus,
				ForwardLabels: fwdLabels, BackwardLabels: bwdLabels,
				Tick: tick,
			})
		}
		tick++

		if fwdLabels.Len() > cfg.maxLabels || bwdLabels.Len() > cfg.maxLabels {
			if best.found {
				break
			}
			return Cost{}, nil, ErrCapacityExceeded
		}

		fk, _, fok := fwdPQ.Peek()
		bk, _, bok := bwdPQ.Peek()
		if !fok && !bok {
			break
		}
		expandForward := fok && (!bok || fk <= bk)

		if best.found {
			nextKey := fk
			if !expandForward {
				nextKey = bk
			}
			if nextKey > threshold {
				break
			}
		}

		if expandForward {
			_, idx, _ := fwdPQ.Pop()
			lab := fwdLabels.Get(idx)
			key := lab.Edge.statusKey()
			if !lab.IsOrigin {
				fwdStatus.SetPermanent(key)
			}
			if bst := bwdStatus.Get(key); bst.Kind != Unreached {
				b.recordConnection(g, &best, &threshold, cfg.thresholdDelta, cfg.speed, lab, bwdLabels.Get(bst.LabelIdx), idx, bst.LabelIdx)
			}
			expandWalking(g, fwdLabels, fwdStatus, fwdPQ, lab.Edge.End, idx, lab.Cost, cfg.speed, fwdHeuristic)
		} else {
			_, idx, _ := bwdPQ.Pop()
			lab := bwdLabels.Get(idx)
			key := lab.Edge.statusKey()
			if !lab.IsOrigin {
				bwdStatus.SetPermanent(key)
			}
			if fst := fwdStatus.Get(key); fst.Kind != Unreached {
				fwdLab := fwdLabels.Get(fst.LabelIdx)
				b.recordConnection(g, &best, &threshold, cfg.thresholdDelta, cfg.speed, fwdLab, lab, fst.LabelIdx, idx)
			}
			expandWalking(g, bwdLabels, bwdStatus, bwdPQ, lab.Edge.End, idx, lab.Cost, cfg.speed, bwdHeuristic)
		}
	}

	if !best.found {
		return Cost{}, nil, ErrNoPath
	}
	return best.cost, buildBidirectionalPath(fwdLabels, bwdLabels, best.fwdIdx, best.bwdIdx), nil
}

// recordConnection updates best if the forward and backward labels
// meeting at a shared physical edge produce a cheaper whole-journey cost
// than anything found so far. Since the edge is shared, its length is
// subtracted once so it is not counted on both sides.
func (b *BidirectionalAStar) recordConnection(g graphmodel.Graph, best *bestConnection, threshold *float64, delta, speed float64, fwdLab, bwdLab Label, fwdIdx, bwdIdx int) {
	length, ok := g.EdgeLength(fwdLab.Edge.Start, fwdLab.Edge.End)
	if !ok {
		length, _ = g.EdgeLength(bwdLab.Edge.Start, bwdLab.Edge.End)
	}
	connCost := Cost{
		Cost: fwdLab.Cost.Cost + bwdLab.Cost.Cost - length,
		Secs: fwdLab.Cost.Secs + bwdLab.Cost.Secs - length/speed,
	}
	if !best.found || connCost.Cost < best.cost.Cost {
		best.found = true
		best.cost = connCost
		best.fwdIdx = fwdIdx
		best.bwdIdx = bwdIdx
		*threshold = connCost.Cost + delta
	}
}

// buildBidirectionalPath splices the forward path (orig..m) with the
// reverse of the backward path (n..dest). Both end on the edge the two
// frontiers met on; when they crossed it in opposite directions, the
// reversed backward path starts with the same two nodes the forward path
// ends with, and that shared edge is kept only once (matching the cost,
// which subtracts its length once). Otherwise only a repeated boundary
// node is dropped.
func buildBidirectionalPath(fwdLabels, bwdLabels *LabelStore, fwdIdx, bwdIdx int) []NodeID {
	fwdPath := reconstructPath(fwdLabels, fwdIdx)
	bwdPath := reconstructPath(bwdLabels, bwdIdx)

	rev := make([]NodeID, len(bwdPath))
	for i, n := range bwdPath {
		rev[len(bwdPath)-1-i] = n
	}
	n := len(fwdPath)
	if len(rev) >= 2 && n >= 2 && rev[0] == fwdPath[n-2] && rev[1] == fwdPath[n-1] {
		rev = rev[2:]
	} else if len(rev) > 0 && n > 0 && rev[0] == fwdPath[n-1] {
		rev = rev[1:]
	}
	return append(fwdPath, rev...)
}
