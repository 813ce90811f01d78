package search

// Per-call tunables are supplied through functional options, the way
// katalvlaran/lvlath's dijkstra package configures its Options/Option —
// the teacher's own CH engine has no comparable per-call configuration
// surface, so this shape is grounded on that sibling pack repo instead.

// AStarOption configures a unimodal AStar search.
type AStarOption func(*astarConfig)

type astarConfig struct {
	speed      float64
	costFactor float64
	maxLabels  int
	observer   Observer
}

func defaultAStarConfig() astarConfig {
	return astarConfig{
		speed:      1.4,
		costFactor: 1.0,
		maxLabels:  MaxLabels,
		observer:   noopObserver,
	}
}

// WithSpeed sets the traversal speed (m/s) used to convert edge length
// into elapsed seconds.
func WithSpeed(speed float64) AStarOption {
	return func(c *astarConfig) { c.speed = speed }
}

// WithCostFactor scales the heuristic; 0 disables it, turning the search
// into plain Dijkstra.
func WithCostFactor(factor float64) AStarOption {
	return func(c *astarConfig) { c.costFactor = factor }
}

// WithMaxLabels overrides the default label-store capacity.
func WithMaxLabels(n int) AStarOption {
	return func(c *astarConfig) { c.maxLabels = n }
}

// WithObserver installs a diagnostic callback invoked every 200
// iterations.
func WithObserver(obs Observer) AStarOption {
	return func(c *astarConfig) {
		if obs != nil {
			c.observer = obs
		}
	}
}

// IsochroneOption configures an Isochrone search.
type IsochroneOption func(*isochroneConfig)

type isochroneConfig struct {
	speed     float64
	maxLabels int
	observer  Observer
}

func defaultIsochroneConfig() isochroneConfig {
	return isochroneConfig{
		speed:     1.4,
		maxLabels: MaxLabels,
		observer:  noopObserver,
	}
}

func WithIsochroneSpeed(speed float64) IsochroneOption {
	return func(c *isochroneConfig) { c.speed = speed }
}

func WithIsochroneMaxLabels(n int) IsochroneOption {
	return func(c *isochroneConfig) { c.maxLabels = n }
}

func WithIsochroneObserver(obs Observer) IsochroneOption {
	return func(c *isochroneConfig) {
		if obs != nil {
			c.observer = obs
		}
	}
}

// BidirectionalOption configures a BidirectionalAStar search.
type BidirectionalOption func(*bidirectionalConfig)

type bidirectionalConfig struct {
	speed         float64
	costFactor    float64
	maxLabels     int
	thresholdDelta float64
	observer      BidirectionalObserver
}

func defaultBidirectionalConfig() bidirectionalConfig {
	return bidirectionalConfig{
		speed:          1.4,
		costFactor:     1.0,
		maxLabels:      MaxLabels,
		thresholdDelta: 20.0,
		observer:       noopBidirectionalObserver,
	}
}

func WithBidirectionalSpeed(speed float64) BidirectionalOption {
	return func(c *bidirectionalConfig) { c.speed = speed }
}

func WithBidirectionalCostFactor(factor float64) BidirectionalOption {
	return func(c *bidirectionalConfig) { c.costFactor = factor }
}

func WithBidirectionalMaxLabels(n int) BidirectionalOption {
	return func(c *bidirectionalConfig) { c.maxLabels = n }
}

// WithThresholdDelta overrides the margin added to the best connection
// found so far before the search stops looking for a cheaper meeting
// point. The reference implementation hardcodes 20.0 for the route
// search and 200.0 for the double-expansion multimodal search.
func WithThresholdDelta(delta float64) BidirectionalOption {
	return func(c *bidirectionalConfig) { c.thresholdDelta = delta }
}

func WithBidirectionalObserver(obs BidirectionalObserver) BidirectionalOption {
	return func(c *bidirectionalConfig) {
		if obs != nil {
			c.observer = obs
		}
	}
}

// MultiModalOption configures any of the three multimodal routers.
type MultiModalOption func(*multiModalConfig)

type multiModalConfig struct {
	walkingSpeed   float64
	bikeSpeed      float64
	walkingLimit   float64 // seconds; used by the sequenced router's isochrone legs
	maxLabels      int
	thresholdDelta float64
	observer       MultiModalObserver
}

func defaultMultiModalConfig() multiModalConfig {
	return multiModalConfig{
		walkingSpeed:   1.4,
		bikeSpeed:      3.3,
		walkingLimit:   900,
		maxLabels:      MaxLabels,
		thresholdDelta: 200.0,
		observer:       noopMultiModalObserver,
	}
}

func WithWalkingSpeed(speed float64) MultiModalOption {
	return func(c *multiModalConfig) { c.walkingSpeed = speed }
}

func WithBikeSpeed(speed float64) MultiModalOption {
	return func(c *multiModalConfig) { c.bikeSpeed = speed }
}

// WithWalkingLimit bounds how long (seconds) the sequenced router's
// walk-to-station isochrone legs are allowed to run.
func WithWalkingLimit(secs float64) MultiModalOption {
	return func(c *multiModalConfig) { c.walkingLimit = secs }
}

func WithMultiModalMaxLabels(n int) MultiModalOption {
	return func(c *multiModalConfig) { c.maxLabels = n }
}

func WithMultiModalThresholdDelta(delta float64) MultiModalOption {
	return func(c *multiModalConfig) { c.thresholdDelta = delta }
}

func WithMultiModalObserver(obs MultiModalObserver) MultiModalOption {
	return func(c *multiModalConfig) {
		if obs != nil {
			c.observer = obs
		}
	}
}
