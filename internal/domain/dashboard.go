package domain

// CategoryProgress is completion within one node category.
type CategoryProgress struct {
	Category  NodeCategory `json:"category"`
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
	Percent   int          `json:"percent"`
}

// Dashboard is a learner's progress record plus derived statistics.
type Dashboard struct {
	Progress       UserProgress       `json:"progress"`
	CompletedCount int                `json:"completedCount"`
	TotalNodes     int                `json:"totalNodes"`
	BadgeCount     int                `json:"badgeCount"`
	Categories     []CategoryProgress `json:"categories"`
	// NextNodes are incomplete nodes whose prerequisites are all complete.
	NextNodes []string `json:"nextNodes"`
}
