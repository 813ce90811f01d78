package search

import "multimodal_router/pkg/graphmodel"

// SequencedMultiModalRouter (C8) finds a walk -> bike-share -> walk
// route by running three kinds of search in sequence: a walking
// isochrone from the origin to every bike-share node, a walking
// isochrone from the destination to every bike-share node (run as a
// forward walk from dest, the same backward approximation
// BidirectionalAStar uses), a bidirectional bike search seeded from
// every station either isochrone reached, and finally two unimodal
// walking legs to the chosen boarding and alighting stations.
type SequencedMultiModalRouter struct {
	cfg multiModalConfig
}

// NewSequencedMultiModalRouter returns a SequencedMultiModalRouter
// configured by opts.
func NewSequencedMultiModalRouter(opts ...MultiModalOption) *SequencedMultiModalRouter {
	cfg := defaultMultiModalConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SequencedMultiModalRouter{cfg: cfg}
}

// MultiModalRoute describes a complete walk -> bike -> walk journey.
type MultiModalRoute struct {
	Cost         Cost
	WalkToBike   []NodeID
	Bike         []NodeID
	WalkFromBike []NodeID
}

// Route finds the cheapest walk/bike-share/walk journey from orig to
// dest over the given bike-share station nodes.
func (r *SequencedMultiModalRouter) Route(g graphmodel.Graph, orig, dest NodeID, bssNodes []NodeID) (MultiModalRoute, error) {
	cfg := r.cfg
	iso := NewIsochrone(WithIsochroneSpeed(cfg.walkingSpeed), WithIsochroneMaxLabels(cfg.maxLabels))

	forwardReach, err := iso.Run(g, orig, bssNodes, cfg.walkingLimit)
	if err != nil {
		return MultiModalRoute{}, err
	}
	backwardReach, err := iso.Run(g, dest, bssNodes, cfg.walkingLimit)
	if err != nil {
		return MultiModalRoute{}, err
	}
	if len(forwardReach) == 0 || len(backwardReach) == 0 {
		return MultiModalRoute{}, ErrNoMultimodalPath
	}

	fwdSeeds := make([]Seed, 0, len(forwardReach))
	for node, cost := range forwardReach {
		fwdSeeds = append(fwdSeeds, Seed{Node: node, InitCost: cost.Secs * cfg.bikeSpeed})
	}
	bwdSeeds := make([]Seed, 0, len(backwardReach))
	for node, cost := range backwardReach {
		bwdSeeds = append(bwdSeeds, Seed{Node: node, InitCost: cost.Secs * cfg.bikeSpeed})
	}

	bike := NewBidirectionalAStar(WithBidirectionalSpeed(cfg.bikeSpeed), WithBidirectionalMaxLabels(cfg.maxLabels), WithThresholdDelta(cfg.thresholdDelta))
	bikeCost, bikePath, err := bike.RouteFromSeeds(g, fwdSeeds, bwdSeeds, dest, orig)
	if err != nil {
		if err == ErrNoPath {
			return MultiModalRoute{}, ErrNoMultimodalPath
		}
		return MultiModalRoute{}, err
	}
	if len(bikePath) == 0 {
		return MultiModalRoute{}, ErrNoMultimodalPath
	}

	boardStation := bikePath[0]
	alightStation := bikePath[len(bikePath)-1]

	walk := NewAStar(WithSpeed(cfg.walkingSpeed), WithMaxLabels(cfg.maxLabels))
	walkToBikeCost, walkToBike, err := walk.Route(g, orig, boardStation)
	if err != nil {
		return MultiModalRoute{}, ErrNoMultimodalPath
	}
	walkFromBikeCost, walkFromBike, err := walk.Route(g, alightStation, dest)
	if err != nil {
		return MultiModalRoute{}, ErrNoMultimodalPath
	}

	total := Cost{
		Cost: walkToBikeCost.Cost + bikeCost.Cost + walkFromBikeCost.Cost,
		Secs: walkToBikeCost.Secs + bikeCost.Secs + walkFromBikeCost.Secs,
	}
	return MultiModalRoute{
		Cost:         total,
		WalkToBike:   walkToBike,
		Bike:         bikePath,
		WalkFromBike: walkFromBike,
	}, nil
}
