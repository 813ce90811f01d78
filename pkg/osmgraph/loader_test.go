package osmgraph

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"multimodal_router/pkg/graphmodel"
)

const sampleOSMXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="1.3000" lon="103.8000"/>
  <node id="2" lat="1.3010" lon="103.8000"/>
  <node id="3" lat="1.3020" lon="103.8000"/>
  <node id="4" lat="1.3030" lon="103.8000"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="11">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="motorway"/>
    <tag k="foot" v="no"/>
  </way>
</osm>`

func TestLoadXMLBuildsWalkableGraph(t *testing.T) {
	g, err := LoadXML(context.Background(), strings.NewReader(sampleOSMXML))
	require.NoError(t, err)
	require.Equal(t, 3, g.NumNodes(), "the motorway way should be excluded, leaving nodes 1-3")

	neighbors := g.OutNeighbors(graphmodel.NodeID(1))
	require.Contains(t, neighbors, graphmodel.NodeID(2))

	_, _, ok := g.Coordinate(graphmodel.NodeID(4))
	require.False(t, ok, "node 4 is only referenced by the excluded motorway way")
}

func TestLoadXMLNoWays(t *testing.T) {
	const empty = `<?xml version="1.0" encoding="UTF-8"?><osm version="0.6"></osm>`
	_, err := LoadXML(context.Background(), strings.NewReader(empty))
	require.ErrorIs(t, err, ErrNoWays)
}
