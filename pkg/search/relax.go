package search

import "multimodal_router/pkg/graphmodel"

// relax is the single relaxation step every engine in this package is
// built from: extend predecessor cost pred across edge u->v of length
// meters at the given mode, returning the label index to enqueue and
// whether anything changed.
//
// normFactor scales length onto the shared cost axis before it is added
// to Cost.Cost: 1.0 for Walking, walking_speed/bike_speed for Bike, so
// that Cost.Cost stays proportional to elapsed time (Secs * walking
// speed) regardless of which mode a label is in, and a walk-only
// connection is directly comparable to a bike-involving one. It never
// touches Secs, which is always length/speed.
//
// A Permanent edge is never revisited. A Temporary edge is updated only
// if the new arrival is cheaper — except when the new arrival comes from
// the opposite direction across the same physical edge (see EdgeKey):
// since both directions of an edge share one status slot on a
// multidigraph, arriving the other way is only accepted once it beats
// the existing cost by more than the edge's own normalized length,
// discounting the segment both directions share.
func relax(labels *LabelStore, status *StatusMap, u, v NodeID, length float64, mode TravelMode, normFactor float64, pred Cost, predIdx int, speed, heuristic float64) (idx int, touched bool) {
	edge := DirectedEdge{Start: u, End: v, Mode: mode}
	key := edge.statusKey()
	st := status.Get(key)
	if st.Kind == Permanent {
		return 0, false
	}

	scaledLength := length * normFactor
	delta := Cost{Cost: scaledLength, Secs: length / speed}
	newCost := pred.Add(delta)
	sortCost := newCost.Cost + heuristic

	if st.Kind == Temporary {
		existing := labels.Get(st.LabelIdx)
		threshold := existing.Cost.Cost
		if existing.Edge.End != v {
			threshold -= scaledLength
		}
		if newCost.Cost >= threshold {
			return 0, false
		}
		existing.Cost = newCost
		existing.SortCost = sortCost
		existing.Edge = edge
		existing.PredIdx = predIdx
		labels.Update(st.LabelIdx, existing)
		status.SetTemporary(key, st.LabelIdx)
		return st.LabelIdx, true
	}

	idx = labels.Append(Label{Cost: newCost, SortCost: sortCost, Edge: edge, PredIdx: predIdx})
	status.SetTemporary(key, idx)
	return idx, true
}

// seedOrigin relaxes every out-edge of orig as if reached directly from a
// virtual predecessor carrying (initCost, initSecs), the way a chained
// search picks up where a prior leg left off. Labels created this way
// are flagged IsOrigin so reconstruction knows where to stop walking
// predecessor pointers. normFactor is the same cost-axis scaling relax
// applies: 1.0 for Walking, walking_speed/bike_speed for Bike.
func seedOrigin(g graphmodel.Graph, labels *LabelStore, status *StatusMap, pq *PriorityQueue[int], orig NodeID, mode TravelMode, normFactor, initCost, initSecs, speed float64, heuristicFn func(NodeID) float64) {
	base := Cost{InitCost: initCost, InitSecs: initSecs}
	for _, v := range g.OutNeighbors(orig) {
		length, ok := g.EdgeLength(orig, v)
		if !ok {
			continue
		}
		edge := DirectedEdge{Start: orig, End: v, Mode: mode}
		key := edge.statusKey()
		st := status.Get(key)
		if st.Kind == Permanent {
			continue
		}
		cost := base.Add(Cost{Cost: length * normFactor, Secs: length / speed})
		sortCost := cost.Cost + heuristicFn(v)

		if st.Kind == Temporary {
			existing := labels.Get(st.LabelIdx)
			if !cost.Less(existing.Cost) {
				continue
			}
			existing.Cost = cost
			existing.SortCost = sortCost
			existing.Edge = edge
			existing.PredIdx = -1
			existing.IsOrigin = true
			labels.Update(st.LabelIdx, existing)
			pq.Insert(sortCost, st.LabelIdx)
			continue
		}

		idx := labels.Append(Label{Cost: cost, SortCost: sortCost, Edge: edge, PredIdx: -1, IsOrigin: true})
		status.SetTemporary(key, idx)
		pq.Insert(sortCost, idx)
	}
}

// reconstructPath walks predecessor pointers from idx back to an origin
// label and returns the node sequence from origin to idx's end node.
func reconstructPath(labels *LabelStore, idx int) []NodeID {
	var edges []DirectedEdge
	for {
		l := labels.Get(idx)
		edges = append(edges, l.Edge)
		if l.IsOrigin {
			break
		}
		idx = l.PredIdx
	}
	path := make([]NodeID, 0, len(edges)+1)
	path = append(path, edges[len(edges)-1].Start)
	for i := len(edges) - 1; i >= 0; i-- {
		path = append(path, edges[i].End)
	}
	return path
}
