package domain

import (
	"math"
	"slices"
	"time"
)

// BadgeCategory groups badges on the dashboard.
type BadgeCategory string

const (
	BadgeCategoryCompletion BadgeCategory = "completion"
	BadgeCategoryStreak     BadgeCategory = "streak"
	BadgeCategoryMilestone  BadgeCategory = "milestone"
	BadgeCategoryCustom     BadgeCategory = "custom"
)

// Badge is a permanent achievement. Once awarded it is never changed.
type Badge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	EarnedAt    time.Time     `json:"earnedAt"`
	Category    BadgeCategory `json:"category"`
}

// CustomRoadmap is a user-authored roadmap variant. Nothing populates it yet.
type CustomRoadmap struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Nodes       []RoadmapNode `json:"nodes"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// UserProgress is the single progress record persisted per client.
type UserProgress struct {
	CompletedNodes []string        `json:"completedNodes"`
	CurrentLevel   int             `json:"currentLevel"`
	TotalProgress  int             `json:"totalProgress"`
	Badges         []Badge         `json:"badges"`
	CustomRoadmaps []CustomRoadmap `json:"customRoadmaps"`
}

// NewUserProgress returns the all-empty default record.
func NewUserProgress() UserProgress {
	return UserProgress{
		CompletedNodes: []string{},
		CurrentLevel:   1,
		TotalProgress:  0,
		Badges:         []Badge{},
		CustomRoadmaps: []CustomRoadmap{},
	}
}

// BadgeRule awards its badge when the completed count reaches Threshold.
type BadgeRule struct {
	Threshold int
	Badge     Badge
}

// BadgeRules are evaluated in order after every successful completion.
var BadgeRules = []BadgeRule{
	{Threshold: 1, Badge: Badge{
		ID:          "first-step",
		Name:        "First Steps",
		Description: "Completed your first learning node!",
		Icon:        "🎯",
		Category:    BadgeCategoryCompletion,
	}},
	{Threshold: 5, Badge: Badge{
		ID:          "halfway",
		Name:        "Halfway There",
		Description: "Completed 50% of the roadmap!",
		Icon:        "🏆",
		Category:    BadgeCategoryMilestone,
	}},
	{Threshold: 10, Badge: Badge{
		ID:          "completion",
		Name:        "Roadmap Master",
		Description: "Completed the entire roadmap!",
		Icon:        "👑",
		Category:    BadgeCategoryCompletion,
	}},
}

// CalculateProgress returns round(100 * completed / total). A non-positive
// total yields 0.
func CalculateProgress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// IsComplete reports whether nodeID is in the completed set.
func (p UserProgress) IsComplete(nodeID string) bool {
	return slices.Contains(p.CompletedNodes, nodeID)
}

// HasBadge reports whether a badge with the given id was already awarded.
func (p UserProgress) HasBadge(id string) bool {
	return slices.ContainsFunc(p.Badges, func(b Badge) bool { return b.ID == id })
}

// Clone returns a deep copy so callers can mutate freely.
func (p UserProgress) Clone() UserProgress {
	out := p
	out.CompletedNodes = append([]string{}, p.CompletedNodes...)
	out.Badges = append([]Badge{}, p.Badges...)
	out.CustomRoadmaps = append([]CustomRoadmap{}, p.CustomRoadmaps...)
	return out
}

// WithCompleted returns the record with nodeID marked complete and the badges
// newly awarded by that transition. If nodeID is already complete the record
// is returned unchanged and no rules are evaluated.
func (p UserProgress) WithCompleted(nodeID string, totalNodes int, now time.Time) (UserProgress, []Badge) {
	if p.IsComplete(nodeID) {
		return p, nil
	}

	next := p.Clone()
	next.CompletedNodes = append(next.CompletedNodes, nodeID)
	next.TotalProgress = CalculateProgress(len(next.CompletedNodes), totalNodes)

	var awarded []Badge
	count := len(next.CompletedNodes)
	for _, rule := range BadgeRules {
		if count != rule.Threshold || next.HasBadge(rule.Badge.ID) {
			continue
		}
		b := rule.Badge
		b.EarnedAt = now
		next.Badges = append(next.Badges, b)
		awarded = append(awarded, b)
	}
	return next, awarded
}

// WithIncomplete returns the record with nodeID removed. Badges are kept.
func (p UserProgress) WithIncomplete(nodeID string, totalNodes int) UserProgress {
	next := p.Clone()
	next.CompletedNodes = slices.DeleteFunc(next.CompletedNodes, func(id string) bool { return id == nodeID })
	next.TotalProgress = CalculateProgress(len(next.CompletedNodes), totalNodes)
	return next
}

// Normalize fills nil collections and a zero level left by older or partial
// persisted copies.
func (p UserProgress) Normalize() UserProgress {
	if p.CompletedNodes == nil {
		p.CompletedNodes = []string{}
	}
	if p.Badges == nil {
		p.Badges = []Badge{}
	}
	if p.CustomRoadmaps == nil {
		p.CustomRoadmaps = []CustomRoadmap{}
	}
	if p.CurrentLevel == 0 {
		p.CurrentLevel = 1
	}
	return p
}
