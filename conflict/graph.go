package conflict

import (
	"errors"
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// Graph links coordinates that compete for a capability. Vertices are
// coordinate strings; each edge carries the capability as its data.
type Graph = graphlib.Graph[string, string]

// BuildGraph returns an undirected graph with one vertex per candidate module
// and an edge between every pair of modules in the same conflict.
func BuildGraph(conflicts []Conflict) (Graph, error) {
	g := graphlib.New(graphlib.StringHash)

	for _, c := range conflicts {
		var modules []string
		for _, cand := range c.Candidates {
			id := cand.Coordinate.String()
			if err := g.AddVertex(id, graphlib.VertexAttribute("capability", c.Capability)); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
				return nil, err
			}
			if len(modules) == 0 || modules[len(modules)-1] != id {
				modules = append(modules, id)
			}
		}

		for i := 0; i < len(modules); i++ {
			for j := i + 1; j < len(modules); j++ {
				err := g.AddEdge(modules[i], modules[j], graphlib.EdgeData(c.Capability), graphlib.EdgeAttribute("label", c.Capability))
				if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
					return nil, err
				}
			}
		}
	}

	return g, nil
}

// Edge is a conflict edge with endpoints in ascending order.
type Edge struct {
	From       string
	To         string
	Capability string
}

// SortedVertices returns the graph's vertices in ascending order.
func SortedVertices(g Graph) ([]string, error) {
	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	vertices := make([]string, 0, len(adjacency))
	for v := range adjacency {
		vertices = append(vertices, v)
	}
	sort.Strings(vertices)
	return vertices, nil
}

// SortedEdges returns each undirected edge once, ordered by endpoints.
func SortedEdges(g Graph) ([]Edge, error) {
	edges, err := g.Edges()
	if err != nil {
		return nil, err
	}

	seen := make(map[[2]string]bool, len(edges))
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		from, to := e.Source, e.Target
		if to < from {
			from, to = to, from
		}
		key := [2]string{from, to}
		if seen[key] {
			continue
		}
		seen[key] = true
		label, _ := e.Properties.Data.(string)
		out = append(out, Edge{From: from, To: to, Capability: label})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out, nil
}
