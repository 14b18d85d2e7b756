package service

import (
	"context"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/port"
)

// RoadmapService joins catalog content with a client's progress.
type RoadmapService struct {
	catalog  port.RoadmapCatalog
	progress *ProgressService
}

// NewRoadmapService creates a roadmap view service.
func NewRoadmapService(catalog port.RoadmapCatalog, progress *ProgressService) *RoadmapService {
	return &RoadmapService{catalog: catalog, progress: progress}
}

// Nodes lists catalog nodes matching filter. When clientID is non-empty the
// Completed flag reflects that client's progress.
func (s *RoadmapService) Nodes(ctx context.Context, clientID string, filter domain.NodeFilter) []domain.RoadmapNode {
	nodes := s.catalog.Nodes(filter)
	if clientID == "" {
		return nodes
	}
	p := s.progress.Get(ctx, clientID)
	for i := range nodes {
		nodes[i].Completed = p.IsComplete(nodes[i].ID)
	}
	return nodes
}

// Node returns one node, annotated like Nodes.
func (s *RoadmapService) Node(ctx context.Context, clientID, id string) (domain.RoadmapNode, error) {
	n, ok := s.catalog.Node(id)
	if !ok {
		return domain.RoadmapNode{}, port.ErrNotFound
	}
	if clientID != "" {
		n.Completed = s.progress.IsComplete(ctx, clientID, id)
	}
	return n, nil
}

// MindMap returns the graph layout, annotated like Nodes.
func (s *RoadmapService) MindMap(ctx context.Context, clientID string) domain.MindMap {
	m := s.catalog.MindMap()
	if clientID == "" {
		return m
	}
	p := s.progress.Get(ctx, clientID)
	for i := range m.Nodes {
		m.Nodes[i].Data.Completed = p.IsComplete(m.Nodes[i].ID)
	}
	return m
}

// Dashboard summarizes the client's progress against the catalog.
func (s *RoadmapService) Dashboard(ctx context.Context, clientID string) domain.Dashboard {
	p := s.progress.Get(ctx, clientID)
	nodes := s.catalog.Nodes(domain.NodeFilter{})

	d := domain.Dashboard{
		Progress:       p,
		CompletedCount: len(p.CompletedNodes),
		TotalNodes:     s.catalog.TotalNodes(),
		BadgeCount:     len(p.Badges),
		Categories:     []domain.CategoryProgress{},
		NextNodes:      []string{},
	}

	index := map[domain.NodeCategory]int{}
	for _, n := range nodes {
		i, ok := index[n.Category]
		if !ok {
			i = len(d.Categories)
			index[n.Category] = i
			d.Categories = append(d.Categories, domain.CategoryProgress{Category: n.Category})
		}
		d.Categories[i].Total++
		if p.IsComplete(n.ID) {
			d.Categories[i].Completed++
			continue
		}
		if prerequisitesMet(n, p) {
			d.NextNodes = append(d.NextNodes, n.ID)
		}
	}
	for i := range d.Categories {
		c := &d.Categories[i]
		c.Percent = domain.CalculateProgress(c.Completed, c.Total)
	}
	return d
}

func prerequisitesMet(n domain.RoadmapNode, p domain.UserProgress) bool {
	for _, pre := range n.Prerequisites {
		if !p.IsComplete(pre) {
			return false
		}
	}
	return true
}
