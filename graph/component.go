// Package graph finds groups of operations that are tied together by shared
// identities.
package graph

import "slices"

// Graph is an undirected graph on the nodes 0..n-1.
type Graph struct {
	adj [][]int
}

func NewGraph(n int) *Graph {
	return &Graph{make([][]int, n)}
}

func (g *Graph) Len() int {
	return len(g.adj)
}

func (g *Graph) AddEdge(u, v int) {
	g.adj[u] = append(g.adj[u], v)
	if u != v {
		g.adj[v] = append(g.adj[v], u)
	}
}

// Components returns the connected components. Each component is sorted and
// components are ordered by their smallest node.
func (g *Graph) Components() [][]int {
	n := len(g.adj)
	visited := make([]bool, n)
	components := make([][]int, 0)

	var dfs func(int, int)
	dfs = func(v, component int) {
		visited[v] = true
		components[component] = append(components[component], v)
		for _, w := range g.adj[v] {
			if !visited[w] {
				dfs(w, component)
			}
		}
	}

	for i := 0; i < n; i++ {
		if !visited[i] {
			components = append(components, nil)
			dfs(i, len(components)-1)
		}
	}
	for _, c := range components {
		slices.Sort(c)
	}
	return components
}

// ComponentOf maps every node to the index of its component in Components.
func (g *Graph) ComponentOf() []int {
	of := make([]int, len(g.adj))
	for i, c := range g.Components() {
		for _, v := range c {
			of[v] = i
		}
	}
	return of
}
