package catalog

import (
	"slices"

	"github.com/arturoeanton/roadmapai/internal/domain"
)

// Catalog is an immutable in-memory roadmap. It implements port.RoadmapCatalog.
type Catalog struct {
	nodes   []domain.RoadmapNode
	mindMap domain.MindMap
}

// New builds a catalog from nodes and a layout.
func New(nodes []domain.RoadmapNode, mindMap domain.MindMap) *Catalog {
	return &Catalog{nodes: nodes, mindMap: mindMap}
}

// WebDevelopment returns the built-in web development roadmap.
func WebDevelopment() *Catalog {
	return New(webDevelopmentNodes(), webDevelopmentMindMap())
}

// TotalNodes is the progress denominator.
func (c *Catalog) TotalNodes() int { return len(c.nodes) }

// Nodes returns copies of every node passing filter, in roadmap order.
func (c *Catalog) Nodes(filter domain.NodeFilter) []domain.RoadmapNode {
	out := make([]domain.RoadmapNode, 0, len(c.nodes))
	for _, n := range c.nodes {
		if filter.Match(n) {
			out = append(out, cloneNode(n))
		}
	}
	return out
}

func (c *Catalog) Node(id string) (domain.RoadmapNode, bool) {
	i := slices.IndexFunc(c.nodes, func(n domain.RoadmapNode) bool { return n.ID == id })
	if i < 0 {
		return domain.RoadmapNode{}, false
	}
	return cloneNode(c.nodes[i]), true
}

func (c *Catalog) MindMap() domain.MindMap {
	return domain.MindMap{
		Nodes: slices.Clone(c.mindMap.Nodes),
		Edges: slices.Clone(c.mindMap.Edges),
	}
}

func cloneNode(n domain.RoadmapNode) domain.RoadmapNode {
	n.Prerequisites = slices.Clone(n.Prerequisites)
	n.Children = slices.Clone(n.Children)
	n.Resources = slices.Clone(n.Resources)
	return n
}
