// Package osmgraph adapts raw OpenStreetMap extracts into the
// graphmodel.Graph the search package consumes. It is an external
// collaborator, not part of the core: OSM ingestion, tag-accessibility
// filtering and nearest-station lookup all live here so the label-setting
// engines never see an OSM type.
package osmgraph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"

	"multimodal_router/pkg/geo"
	"multimodal_router/pkg/graphmodel"
)

// ErrNoWays is returned when an extract contains no walkable or cyclable
// ways, which would otherwise silently produce an empty graph.
var ErrNoWays = errors.New("osmgraph: no walkable or cyclable ways found")

// footHighways lists highway tag values generally open to pedestrians.
// Motorways and their links are deliberately absent.
var footHighways = map[string]bool{
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
	"pedestrian":     true,
	"footway":        true,
	"path":           true,
	"steps":          true,
	"track":          true,
}

// cycleHighways lists highway tag values generally open to cyclists.
var cycleHighways = map[string]bool{
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
	"track":          true,
	"cycleway":       true,
	"path":           true,
}

// accessible reports whether a way is open to at least one of foot or bike
// traffic, and which.
func accessible(tags osm.Tags) (foot, bike bool) {
	hw := tags.Find("highway")
	foot = footHighways[hw]
	bike = cycleHighways[hw]

	if tags.Find("area") == "yes" {
		return false, false
	}
	access := tags.Find("access")
	if access == "no" || access == "private" {
		foot, bike = false, false
	}
	if tags.Find("foot") == "no" {
		foot = false
	}
	if tags.Find("foot") == "yes" || tags.Find("foot") == "designated" {
		foot = true
	}
	if tags.Find("bicycle") == "no" {
		bike = false
	}
	if tags.Find("bicycle") == "yes" || tags.Find("bicycle") == "designated" {
		bike = true
	}
	if hw == "steps" {
		bike = false // stairs are foot-only regardless of tagging above
	}
	return foot, bike
}

type wayInfo struct {
	nodeIDs    []osm.NodeID
	foot, bike bool
}

// LoadPBF parses an OSM PBF extract and builds a graphmodel.MemGraph of
// its walkable and cyclable ways. The reader is consumed twice (seeked
// back to the start for a second pass), so it must be an io.ReadSeeker.
func LoadPBF(ctx context.Context, rs io.ReadSeeker) (*graphmodel.MemGraph, error) {
	ways, referenced, err := scanPBFWays(ctx, rs)
	if err != nil {
		return nil, err
	}
	if len(ways) == 0 {
		return nil, ErrNoWays
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("osmgraph: seek for node pass: %w", err)
	}
	coords, err := scanPBFNodes(ctx, rs, referenced)
	if err != nil {
		return nil, err
	}
	return buildGraph(ways, coords), nil
}

// LoadXML parses an OSM XML extract (.osm) and builds a graphmodel.MemGraph.
// Unlike LoadPBF it only needs a single streaming pass: osmxml yields nodes
// before the ways that reference them in a well-formed extract.
func LoadXML(ctx context.Context, r io.Reader) (*graphmodel.MemGraph, error) {
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	coords := make(map[osm.NodeID][2]float64)
	var ways []wayInfo

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			coords[o.ID] = [2]float64{o.Lat, o.Lon}
		case *osm.Way:
			foot, bike := accessible(o.Tags)
			if !foot && !bike || len(o.Nodes) < 2 {
				continue
			}
			ids := make([]osm.NodeID, len(o.Nodes))
			for i, wn := range o.Nodes {
				ids[i] = wn.ID
			}
			ways = append(ways, wayInfo{nodeIDs: ids, foot: foot, bike: bike})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("osmgraph: scan xml: %w", err)
	}
	if len(ways) == 0 {
		return nil, ErrNoWays
	}
	llCoords := make(map[osm.NodeID][2]float64, len(coords))
	for id, ll := range coords {
		llCoords[id] = ll
	}
	return buildGraph(ways, llCoords), nil
}

func scanPBFWays(ctx context.Context, rs io.ReadSeeker) ([]wayInfo, map[osm.NodeID]struct{}, error) {
	referenced := make(map[osm.NodeID]struct{})
	var ways []wayInfo

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	defer scanner.Close()

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		foot, bike := accessible(w.Tags)
		if !foot && !bike || len(w.Nodes) < 2 {
			continue
		}
		ids := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			ids[i] = wn.ID
			referenced[wn.ID] = struct{}{}
		}
		ways = append(ways, wayInfo{nodeIDs: ids, foot: foot, bike: bike})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("osmgraph: scan ways: %w", err)
	}
	log.Printf("osmgraph: pass 1 complete: %d ways, %d referenced nodes", len(ways), len(referenced))
	return ways, referenced, nil
}

func scanPBFNodes(ctx context.Context, rs io.ReadSeeker, referenced map[osm.NodeID]struct{}) (map[osm.NodeID][2]float64, error) {
	coords := make(map[osm.NodeID][2]float64, len(referenced))

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true
	defer scanner.Close()

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referenced[n.ID]; !needed {
			continue
		}
		coords[n.ID] = [2]float64{n.Lat, n.Lon}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("osmgraph: scan nodes: %w", err)
	}
	log.Printf("osmgraph: pass 2 complete: %d node coordinates", len(coords))
	return coords, nil
}

// buildGraph turns parsed ways and node coordinates into a MemGraph.
// Every way that is open to foot or bike contributes one bidirectional
// edge per consecutive node pair. The graph keeps no per-mode
// restriction: which of the two modes a way is open to is not recorded
// on its edges.
func buildGraph(ways []wayInfo, coords map[osm.NodeID][2]float64) *graphmodel.MemGraph {
	g := graphmodel.NewMemGraph()
	added := make(map[osm.NodeID]bool)
	ensureNode := func(id osm.NodeID) (graphmodel.NodeID, bool) {
		ll, ok := coords[id]
		if !ok {
			return 0, false
		}
		nid := graphmodel.NodeID(id)
		if !added[id] {
			g.AddNode(nid, ll[0], ll[1])
			added[id] = true
		}
		return nid, true
	}

	var skipped int
	for _, w := range ways {
		for i := 0; i < len(w.nodeIDs)-1; i++ {
			from, ok1 := ensureNode(w.nodeIDs[i])
			to, ok2 := ensureNode(w.nodeIDs[i+1])
			if !ok1 || !ok2 {
				skipped++
				continue
			}
			fromLL, toLL := coords[w.nodeIDs[i]], coords[w.nodeIDs[i+1]]
			length := geo.Distance(fromLL[0], fromLL[1], toLL[0], toLL[1])
			if length == 0 {
				length = 0.1
			}
			g.AddBidirectionalEdge(from, to, length)
		}
	}
	if skipped > 0 {
		log.Printf("osmgraph: skipped %d edges with missing node coordinates", skipped)
	}
	return g
}
