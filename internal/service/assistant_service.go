package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/logger"
	"github.com/arturoeanton/roadmapai/internal/port"
)

// AssistantService answers learner questions through a TextGenerator and
// falls back to canned guidance whenever the backend cannot answer.
// A nil generator means the assistant is offline and every reply is canned.
type AssistantService struct {
	gen     port.TextGenerator
	catalog port.RoadmapCatalog
	log     *logger.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewAssistantService creates the assistant. catalog resolves node ids to
// titles for Chat and may be nil.
func NewAssistantService(gen port.TextGenerator, catalog port.RoadmapCatalog, log *logger.Logger) *AssistantService {
	return &AssistantService{
		gen:     gen,
		catalog: catalog,
		log:     log.With("service", "assistant"),
		now:     time.Now,
	}
}

// WithTimeout bounds every backend call. Zero means no bound.
func (s *AssistantService) WithTimeout(d time.Duration) *AssistantService {
	s.timeout = d
	return s
}

// Model returns the backend model name, or "" when offline.
func (s *AssistantService) Model() string {
	if s.gen == nil {
		return ""
	}
	return s.gen.ModelName()
}

// Reply answers prompt, optionally about topic. It never fails.
func (s *AssistantService) Reply(ctx context.Context, prompt, topic string) string {
	if s.gen == nil {
		return fallbackReply(prompt, topic)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	out, err := s.gen.Generate(ctx, tutorPrompt(prompt, topic))
	if err == nil && strings.TrimSpace(out) != "" {
		return out
	}
	if err == nil {
		err = port.RemoteUnavailable("empty reply", nil)
	}
	s.log.Warn("assistant fallback", "model", s.gen.ModelName(), "error", err)
	return fallbackReply(prompt, topic)
}

// Explain asks for a level-appropriate explanation of topic.
func (s *AssistantService) Explain(ctx context.Context, topic string, level domain.Difficulty) string {
	if level == "" {
		level = domain.DifficultyBeginner
	}
	prompt := fmt.Sprintf(`Explain "%s" in a simple, educational way for a %s level developer. Include practical examples and next steps for learning.`, topic, level)
	return s.Reply(ctx, prompt, "")
}

// Resources asks for learning resources about topic.
func (s *AssistantService) Resources(ctx context.Context, topic string) string {
	prompt := fmt.Sprintf(`Provide a list of helpful learning resources for "%s" including official documentation, tutorials, practice projects, and community resources. Format as a clear, organized list.`, topic)
	return s.Reply(ctx, prompt, "")
}

// Troubleshoot asks for step-by-step help with problem in topic.
func (s *AssistantService) Troubleshoot(ctx context.Context, topic, problem string) string {
	prompt := fmt.Sprintf(`Help troubleshoot this problem with "%s": "%s". Provide step-by-step solutions and common causes.`, topic, problem)
	return s.Reply(ctx, prompt, "")
}

// Chat routes a free-form message by intent. nodeID, when known to the
// catalog, supplies the topic.
func (s *AssistantService) Chat(ctx context.Context, message, nodeID string) domain.ChatMessage {
	title := s.nodeTitle(nodeID)
	topic := title
	if topic == "" {
		topic = "programming"
	}

	var reply string
	switch input := strings.ToLower(message); {
	case strings.Contains(input, "explain") && title != "":
		reply = s.Explain(ctx, title, domain.DifficultyBeginner)
	case containsAny(input, "resources", "help"):
		reply = s.Resources(ctx, topic)
	case containsAny(input, "problem", "error", "stuck"):
		reply = s.Troubleshoot(ctx, topic, message)
	default:
		reply = s.Reply(ctx, message, title)
	}

	return domain.ChatMessage{
		ID:        uuid.NewString(),
		Role:      domain.ChatRoleAssistant,
		Content:   reply,
		Timestamp: s.now(),
		NodeID:    nodeID,
	}
}

// ProbeResult reports whether the backend answered a test prompt.
type ProbeResult struct {
	Success bool   `json:"success"`
	Model   string `json:"model,omitempty"`
	Message string `json:"message"`
}

// Probe sends a test prompt straight to the backend, bypassing fallbacks.
func (s *AssistantService) Probe(ctx context.Context) ProbeResult {
	if s.gen == nil {
		return ProbeResult{Success: false, Message: "Assistant backend is not configured"}
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res := ProbeResult{Model: s.gen.ModelName()}
	out, err := s.gen.Generate(ctx, tutorPrompt("Hello, can you help me learn programming?", ""))
	switch {
	case err != nil:
		res.Message = "Assistant test failed: " + err.Error()
	case strings.TrimSpace(out) == "":
		res.Message = "Assistant returned empty response"
	default:
		res.Success = true
		res.Message = "Assistant is working correctly!"
	}
	return res
}

func (s *AssistantService) nodeTitle(nodeID string) string {
	if nodeID == "" || s.catalog == nil {
		return ""
	}
	n, ok := s.catalog.Node(nodeID)
	if !ok {
		return ""
	}
	return n.Title
}

func tutorPrompt(prompt, topic string) string {
	if topic != "" {
		return fmt.Sprintf("You are a helpful coding tutor. Context: %s\n\nUser Question: %s\n\nPlease provide a helpful, educational response about this programming topic. Keep it concise but informative.", topic, prompt)
	}
	return fmt.Sprintf("You are a helpful coding tutor. User Question: %s\n\nPlease provide a helpful, educational response about programming. Keep it concise but informative.", prompt)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
