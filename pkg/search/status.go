package search

// StatusKind is the tri-state an edge can be in during a search.
type StatusKind uint8

const (
	// Unreached is the implicit state of every edge before a search
	// touches it; absent from the map rather than stored.
	Unreached StatusKind = iota
	// Temporary means a label exists but a cheaper one may still arrive.
	Temporary
	// Permanent means the label's cost is final; the edge will not be
	// relaxed again.
	Permanent
)

// EdgeStatus records an edge's state and, once touched, which label in
// the LabelStore holds its current best cost.
type EdgeStatus struct {
	Kind     StatusKind
	LabelIdx int
}

var unreachedStatus = EdgeStatus{Kind: Unreached, LabelIdx: -1}

// StatusMap is a per-search edge status table. See EdgeKey for why its
// key is the unordered node pair rather than the directed edge.
type StatusMap struct {
	m map[EdgeKey]EdgeStatus
}

// NewStatusMap returns an empty status map.
func NewStatusMap() *StatusMap {
	return &StatusMap{m: make(map[EdgeKey]EdgeStatus)}
}

// Get returns an edge's status, defaulting to Unreached with LabelIdx -1
// if the edge has never been touched.
func (s *StatusMap) Get(k EdgeKey) EdgeStatus {
	if st, ok := s.m[k]; ok {
		return st
	}
	return unreachedStatus
}

// SetTemporary records a new or updated temporary label for k.
func (s *StatusMap) SetTemporary(k EdgeKey, labelIdx int) {
	s.m[k] = EdgeStatus{Kind: Temporary, LabelIdx: labelIdx}
}

// SetPermanent marks k's current label as final.
func (s *StatusMap) SetPermanent(k EdgeKey) {
	st := s.Get(k)
	st.Kind = Permanent
	s.m[k] = st
}

// Len reports how many distinct edges have been touched.
func (s *StatusMap) Len() int { return len(s.m) }
