package search

import "multimodal_router/pkg/graphmodel"

// Observer is invoked periodically during a unimodal or isochrone search
// with a read-only snapshot of its progress, for diagnostics only (e.g.
// rendering frontier frames). The core never calls into a plotting
// library itself; a no-op Observer is the default for every engine.
type Observer func(Snapshot)

// Snapshot describes a single-frontier search's state at one tick. Orig
// and Dest are the search's endpoints; Dest is the zero value for an
// isochrone (no single destination).
type Snapshot struct {
	Graph  graphmodel.Graph
	Orig   NodeID
	Dest   NodeID
	Status *StatusMap
	Labels *LabelStore
	Tick   int
}

// BidirectionalObserver is invoked periodically during a bidirectional
// search with both frontiers' state.
type BidirectionalObserver func(BidirectionalSnapshot)

type BidirectionalSnapshot struct {
	Graph               graphmodel.Graph
	Orig, Dest          NodeID
	ForwardStatus       *StatusMap
	BackwardStatus      *StatusMap
	ForwardLabels       *LabelStore
	BackwardLabels      *LabelStore
	Tick                int
}

// MultiModalObserver is invoked periodically during a double-expansion
// or single-queue multimodal search with every frontier's state.
type MultiModalObserver func(MultiModalSnapshot)

type MultiModalSnapshot struct {
	Graph          graphmodel.Graph
	Orig, Dest     NodeID
	BSSNodes       []NodeID
	WalkingForward *StatusMap
	WalkingBackward *StatusMap
	BikeForward    *StatusMap
	BikeBackward   *StatusMap
	Tick           int
}

func noopObserver(Snapshot)                       {}
func noopBidirectionalObserver(BidirectionalSnapshot) {}
func noopMultiModalObserver(MultiModalSnapshot)   {}
