package search

import "errors"

// MaxLabels is the hard cap on how many labels a single search may
// append before it gives up. It exists to bound memory and wall-clock
// time on a graph with no reachable destination rather than to model
// any real routing constraint.
const MaxLabels = 50_000

// NoRouteSeconds is the distinguished seconds value for a failed route.
// The engines do not return it: on ErrNoPath, ErrCapacityExceeded or
// ErrNoMultimodalPath they return a zero Cost (Secs 0) with the error,
// so the error, not the seconds value, marks the failure.
const NoRouteSeconds = -1.0

var (
	// ErrNoPath means the search exhausted its frontier without reaching
	// the destination.
	ErrNoPath = errors.New("search: no path found")
	// ErrCapacityExceeded means the label store hit MaxLabels before the
	// search converged.
	ErrCapacityExceeded = errors.New("search: label capacity exceeded")
	// ErrNoMultimodalPath means a multimodal search could not link a
	// walking leg to a bike leg through any bike-share node.
	ErrNoMultimodalPath = errors.New("search: no multimodal path found")
	// ErrMalformedGraph means the graph violated an invariant the search
	// relies on (e.g. a negative edge length).
	ErrMalformedGraph = errors.New("search: malformed graph")
)
