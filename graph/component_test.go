package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponents(t *testing.T) {
	g := NewGraph(6)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(4, 3)
	g.AddEdge(3, 4)
	g.AddEdge(5, 5)

	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4}, {5}}, g.Components())
	assert.Equal(t, []int{0, 0, 0, 1, 1, 2}, g.ComponentOf())
	assert.Equal(t, 6, g.Len())
}

func TestEmptyGraph(t *testing.T) {
	g := NewGraph(0)
	assert.Empty(t, g.Components())
	assert.Empty(t, g.ComponentOf())
}
