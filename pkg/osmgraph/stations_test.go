package osmgraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"multimodal_router/pkg/graphmodel"
)

func TestStationIndexNearest(t *testing.T) {
	g := graphmodel.NewMemGraph()
	g.AddNode(1, 1.3000, 103.8000)
	g.AddNode(2, 1.3100, 103.8000)
	g.AddNode(3, 1.3200, 103.8000)

	idx := NewStationIndex(g, []graphmodel.NodeID{1, 2, 3})

	nearest, ok := idx.Nearest(1.3005, 103.8000)
	require.True(t, ok)
	require.Equal(t, graphmodel.NodeID(1), nearest)

	nearest, ok = idx.Nearest(1.3198, 103.8000)
	require.True(t, ok)
	require.Equal(t, graphmodel.NodeID(3), nearest)
}

func TestStationIndexEmpty(t *testing.T) {
	g := graphmodel.NewMemGraph()
	idx := NewStationIndex(g, nil)
	_, ok := idx.Nearest(1.3, 103.8)
	require.False(t, ok)
}
