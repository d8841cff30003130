package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dealscope/internal/catalog"
)

func TestBuildCollapsesParallelEdges(t *testing.T) {
	deals := []catalog.Deal{
		{Aggregator: "A", Receiver: "B"},
		{Aggregator: "A", Receiver: "B"},
		{Aggregator: "A", Receiver: "B"},
	}
	g := Build(deals)
	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)
	require.Equal(t, 3, g.Edges[0].Count)
	require.Equal(t, g.NodeIndex("A"), g.Edges[0].From)
	require.Equal(t, g.NodeIndex("B"), g.Edges[0].To)
}

func TestBuildCountsParticipation(t *testing.T) {
	deals := []catalog.Deal{
		{Aggregator: "Getty", Receiver: "OpenAI"},
		{Aggregator: "Reddit", Receiver: "OpenAI"},
		{Aggregator: "Reddit", Receiver: "Google"},
	}
	g := Build(deals)
	require.Equal(t, 2, g.Nodes[g.NodeIndex("OpenAI")].Count)
	require.Equal(t, 2, g.Nodes[g.NodeIndex("Reddit")].Count)
	require.Equal(t, 1, g.Nodes[g.NodeIndex("Getty")].Count)
	require.Equal(t, 1, g.Nodes[g.NodeIndex("Google")].Count)
	require.Len(t, g.Edges, 3)
}

func TestBuildDirectionIsAggregatorToReceiver(t *testing.T) {
	g := Build([]catalog.Deal{
		{Aggregator: "Reddit", Receiver: "Google"},
		{Aggregator: "Google", Receiver: "Reddit"},
	})
	// Opposite directions stay separate edges.
	require.Len(t, g.Edges, 2)
}

func TestBuildDropsUnresolvableEndpoints(t *testing.T) {
	deals := []catalog.Deal{
		{Aggregator: "", Receiver: "OpenAI"},
		{Aggregator: "Getty", Receiver: ""},
		{Aggregator: "Getty", Receiver: "OpenAI"},
	}
	g := Build(deals)
	require.Len(t, g.Edges, 1, "deals with missing endpoints contribute no edge")
	require.Equal(t, 2, g.Nodes[g.NodeIndex("OpenAI")].Count)
	require.Equal(t, 2, g.Nodes[g.NodeIndex("Getty")].Count)
}

func TestBuildSelfDealCountsOnce(t *testing.T) {
	g := Build([]catalog.Deal{{Aggregator: "X", Receiver: "X"}})
	require.Len(t, g.Nodes, 1)
	require.Equal(t, 1, g.Nodes[0].Count)
}

func TestBuildEmpty(t *testing.T) {
	g := Build(nil)
	require.Empty(t, g.Nodes)
	require.Empty(t, g.Edges)
	require.Nil(t, Layout(g, DefaultLayoutConfig()))
}

func TestBuildNodeOrderFollowsInput(t *testing.T) {
	deals := []catalog.Deal{
		{Aggregator: "First", Receiver: "Second"},
		{Aggregator: "Third", Receiver: "First"},
	}
	g := Build(deals)
	require.Equal(t, []string{"First", "Second", "Third"}, []string{g.Nodes[0].Name, g.Nodes[1].Name, g.Nodes[2].Name})
}
