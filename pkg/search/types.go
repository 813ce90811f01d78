// Package search implements the label-setting route and isochrone
// engines: unimodal A*, single-mode isochrone, bidirectional A*, and the
// three walk/bike-share multimodal routers plus their isochrone
// siblings. Every engine consumes a graphmodel.Graph and nothing else —
// no OSM parsing, no nearest-node snapping, no rendering.
package search

import "multimodal_router/pkg/graphmodel"

// NodeID re-exports the graph's node identifier so callers of this
// package never need to import graphmodel directly just to name a node.
type NodeID = graphmodel.NodeID

// TravelMode discriminates the two legs a multimodal route can take.
// Unimodal engines never set it; its zero value, Walking, is also the
// mode every multimodal search starts and ends in.
type TravelMode uint8

const (
	Walking TravelMode = iota
	Bike
)

func (m TravelMode) String() string {
	if m == Bike {
		return "bike"
	}
	return "walking"
}

// DirectedEdge names the physical edge a label terminates on, in the
// direction it was traversed. Reconstruction walks these; the edge's
// statusKey, below, does not preserve direction.
type DirectedEdge struct {
	Start, End NodeID
	Mode       TravelMode
}

// EdgeKey identifies a slot in a StatusMap. It is deliberately
// *unordered* on (Start, End): the reference implementation this engine
// family is ported from hashes an edge by its unordered node pair, so
// traversing u->v and v->u lands on the same status slot. That is what
// makes the "opposing-direction revisit" rule (see relax.go) meaningful
// on a multidigraph where the reverse of an edge can have a different
// length than the first parallel edge in the forward direction — without
// shared slots there would be nothing to revisit. Mode is ordered (and
// zero for unimodal searches) since walking and bike never share state.
type EdgeKey struct {
	A, B NodeID
	Mode TravelMode
}

func normalizedPair(u, v NodeID) (NodeID, NodeID) {
	if u <= v {
		return u, v
	}
	return v, u
}

func (d DirectedEdge) statusKey() EdgeKey {
	a, b := normalizedPair(d.Start, d.End)
	return EdgeKey{A: a, B: b, Mode: d.Mode}
}

// Cost pairs the search's sort key with the wall-clock time it
// corresponds to. Most engines sort purely on Cost. Cost and Secs cover
// only the current search's leg; chained searches carry the init fields
// through unmodified so a caller can still recover whole-journey totals
// (Cost+InitCost, Secs+InitSecs).
type Cost struct {
	Cost float64
	Secs float64
	// InitCost and InitSecs are seeded once when a search is chained onto
	// a prior one and are carried forward unchanged on every Add — they
	// are never summed, only read.
	InitCost float64
	InitSecs float64
}

// Add returns the cost of extending c by the length/time delta d,
// carrying c's init fields forward.
func (c Cost) Add(d Cost) Cost {
	return Cost{
		Cost:     c.Cost + d.Cost,
		Secs:     c.Secs + d.Secs,
		InitCost: c.InitCost,
		InitSecs: c.InitSecs,
	}
}

// Less reports whether c sorts before o. Comparison is on Cost only.
func (c Cost) Less(o Cost) bool { return c.Cost < o.Cost }

// Label is one entry in a LabelStore: an edge reached at some cost, with
// a back-pointer for path reconstruction.
type Label struct {
	Cost     Cost
	SortCost float64 // Cost.Cost plus any heuristic; what the priority queue sorts on
	Edge     DirectedEdge
	PredIdx  int // index into the same LabelStore, or -1 for a seed label
	IsOrigin bool
	IsDest   bool
}

// LabelStore is an append-only log of labels, indexed by position.
// Mutating an existing label in place (on finding a cheaper path to an
// already-temporary edge) is done via Update, never by holding a pointer
// across an Append: append can reallocate the backing array.
type LabelStore struct {
	labels []Label
}

// NewLabelStore returns an empty store with room for n labels.
func NewLabelStore(capacityHint int) *LabelStore {
	return &LabelStore{labels: make([]Label, 0, capacityHint)}
}

// Append adds a new label and returns its index.
func (s *LabelStore) Append(l Label) int {
	s.labels = append(s.labels, l)
	return len(s.labels) - 1
}

// Get returns a copy of the label at idx.
func (s *LabelStore) Get(idx int) Label { return s.labels[idx] }

// Update overwrites the label at idx in place.
func (s *LabelStore) Update(idx int, l Label) { s.labels[idx] = l }

// Len reports how many labels have been appended.
func (s *LabelStore) Len() int { return len(s.labels) }
