package domain

// NodeCategory is the technology area a roadmap node belongs to.
type NodeCategory string

const (
	CategoryFrontend NodeCategory = "frontend"
	CategoryBackend  NodeCategory = "backend"
	CategoryDatabase NodeCategory = "database"
	CategoryDevOps   NodeCategory = "devops"
	CategoryTools    NodeCategory = "tools"
)

// Difficulty of a roadmap node.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ResourceType classifies a learning resource link.
type ResourceType string

const (
	ResourceVideo         ResourceType = "video"
	ResourceArticle       ResourceType = "article"
	ResourceDocumentation ResourceType = "documentation"
	ResourceTutorial      ResourceType = "tutorial"
)

// Resource is an external learning link attached to a node.
type Resource struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	URL   string       `json:"url"`
	Type  ResourceType `json:"type"`
}

// RoadmapNode is one step of a learning roadmap.
type RoadmapNode struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	VideoID       string       `json:"videoId"`
	VideoTitle    string       `json:"videoTitle"`
	Completed     bool         `json:"completed"`
	Level         int          `json:"level"`
	Prerequisites []string     `json:"prerequisites"`
	Children      []string     `json:"children"`
	Category      NodeCategory `json:"category"`
	EstimatedTime string       `json:"estimatedTime"`
	Difficulty    Difficulty   `json:"difficulty"`
	Resources     []Resource   `json:"resources"`
}

// NodeFilter narrows a catalog listing. Zero fields match everything.
type NodeFilter struct {
	Category   NodeCategory
	Difficulty Difficulty
}

// Match reports whether n passes the filter.
func (f NodeFilter) Match(n RoadmapNode) bool {
	if f.Category != "" && n.Category != f.Category {
		return false
	}
	if f.Difficulty != "" && n.Difficulty != f.Difficulty {
		return false
	}
	return true
}

// MindMapPosition places a node on the mind-map canvas.
type MindMapPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MindMapData is the label payload rendered inside a mind-map node.
type MindMapData struct {
	Label       string       `json:"label"`
	Description string       `json:"description"`
	Completed   bool         `json:"completed"`
	Category    NodeCategory `json:"category"`
}

// MindMapNode is a positioned node of the mind-map view.
type MindMapNode struct {
	ID       string          `json:"id"`
	Position MindMapPosition `json:"position"`
	Data     MindMapData     `json:"data"`
	Type     string          `json:"type"`
}

// MindMapEdge connects two mind-map nodes.
type MindMapEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// MindMap is the full graph layout of a roadmap.
type MindMap struct {
	Nodes []MindMapNode `json:"nodes"`
	Edges []MindMapEdge `json:"edges"`
}
