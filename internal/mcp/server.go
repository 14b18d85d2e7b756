package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/logger"
	"github.com/arturoeanton/roadmapai/internal/middleware"
	"github.com/arturoeanton/roadmapai/internal/service"
)

// Server implements the Model Context Protocol (MCP) server.
// It exposes the roadmap and the assistant to external AI agents.
type Server struct {
	roadmap   *service.RoadmapService
	assistant *service.AssistantService
	audit     middleware.AuditWriter
	log       *logger.Logger
	port      string
}

// NewServer creates a new MCP server. audit may be nil.
func NewServer(roadmap *service.RoadmapService, assistant *service.AssistantService, audit middleware.AuditWriter, log *logger.Logger, port string) *Server {
	return &Server{
		roadmap:   roadmap,
		assistant: assistant,
		audit:     audit,
		log:       log.With("component", "mcp"),
		port:      port,
	}
}

// Tool represents an MCP tool definition.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *RPCError `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC error.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Handler returns the MCP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", s.handleRPC)
	mux.HandleFunc("/mcp/sse", s.handleSSE)
	return mux
}

// Start serves on the configured port until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("MCP server starting", "port", s.port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, nil, -32700, "parse error")
		return
	}

	var result any
	var err error

	switch req.Method {
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, err = s.callTool(r.Context(), req.Params)
	case "initialize":
		result = map[string]any{
			"protocolVersion": "2024-11-05",
			"serverInfo": map[string]string{
				"name":    "roadmapai",
				"version": "1.0.0",
			},
			"capabilities": map[string]any{
				"tools": map[string]bool{"listChanged": false},
			},
		}
	default:
		writeError(w, req.ID, -32601, "method not found")
		return
	}

	if err != nil {
		s.log.Warn("tool call failed", "error", err)
		writeError(w, req.ID, -32603, err.Error())
		return
	}

	writeResult(w, req.ID, result)
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: endpoint\ndata: /mcp\n\n")
	flusher.Flush()

	<-r.Context().Done()
}

func (s *Server) listTools() map[string]any {
	tools := []Tool{
		{
			Name:        "roadmap_nodes",
			Description: "List learning roadmap nodes, optionally filtered by category or difficulty",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"category": {"type": "string", "description": "frontend, backend, database, devops or tools"},
					"difficulty": {"type": "string", "description": "beginner, intermediate or advanced"}
				}
			}`),
		},
		{
			Name:        "roadmap_node",
			Description: "Get one roadmap node with its resources",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"id": {"type": "string", "description": "Node ID, e.g. html"}
				},
				"required": ["id"]
			}`),
		},
		{
			Name:        "assistant_ask",
			Description: "Ask the learning assistant a question, optionally about a roadmap node",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"message": {"type": "string", "description": "Question for the assistant"},
					"node_id": {"type": "string", "description": "Roadmap node the question is about"}
				},
				"required": ["message"]
			}`),
		},
	}
	return map[string]any{"tools": tools}
}

func (s *Server) callTool(ctx context.Context, params json.RawMessage) (any, error) {
	var req struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	s.record(req.Name)

	switch req.Name {
	case "roadmap_nodes":
		var args struct {
			Category   string `json:"category"`
			Difficulty string `json:"difficulty"`
		}
		if err := decodeArgs(req.Arguments, &args); err != nil {
			return nil, err
		}

		nodes := s.roadmap.Nodes(ctx, "", domain.NodeFilter{
			Category:   domain.NodeCategory(args.Category),
			Difficulty: domain.Difficulty(args.Difficulty),
		})
		lines := make([]string, 0, len(nodes))
		for _, n := range nodes {
			lines = append(lines, fmt.Sprintf("%s: %s (%s, %s, %s)", n.ID, n.Title, n.Category, n.Difficulty, n.EstimatedTime))
		}
		return map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": strings.Join(lines, "\n")},
			},
			"nodes": nodes,
		}, nil

	case "roadmap_node":
		var args struct {
			ID string `json:"id"`
		}
		if err := decodeArgs(req.Arguments, &args); err != nil {
			return nil, err
		}

		node, err := s.roadmap.Node(ctx, "", args.ID)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", args.ID, err)
		}
		return map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": node.Title + "\n\n" + node.Description},
			},
			"node": node,
		}, nil

	case "assistant_ask":
		var args struct {
			Message string `json:"message"`
			NodeID  string `json:"node_id"`
		}
		if err := decodeArgs(req.Arguments, &args); err != nil {
			return nil, err
		}
		if strings.TrimSpace(args.Message) == "" {
			return nil, errors.New("message is required")
		}

		reply := s.assistant.Chat(ctx, args.Message, args.NodeID)
		return map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": reply.Content},
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", req.Name)
	}
}

func (s *Server) record(tool string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.WriteAudit(context.Background(), domain.AuditEvent{
		Action:    domain.AuditActionMCPCall,
		UserID:    "mcp",
		Resource:  tool,
		CreatedAt: time.Now(),
	})
}

func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func writeResult(w http.ResponseWriter, id any, result any) {
	resp := JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, id any, code int, message string) {
	resp := JSONRPCResponse{JSONRPC: "2.0", ID: id, Error: &RPCError{Code: code, Message: message}}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
