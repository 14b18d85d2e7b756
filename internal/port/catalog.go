package port

import "github.com/arturoeanton/roadmapai/internal/domain"

// NodeCounter supplies the progress denominator.
type NodeCounter interface {
	TotalNodes() int
}

// RoadmapCatalog is read-only access to roadmap content.
type RoadmapCatalog interface {
	NodeCounter
	Nodes(filter domain.NodeFilter) []domain.RoadmapNode
	Node(id string) (domain.RoadmapNode, bool)
	MindMap() domain.MindMap
}

// FixedCount is a NodeCounter with a constant total.
type FixedCount int

func (n FixedCount) TotalNodes() int { return int(n) }
