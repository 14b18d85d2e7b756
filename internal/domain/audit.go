package domain

import "time"

// AuditEvent records one significant state transition or request.
type AuditEvent struct {
	Action    string         `json:"action"`
	UserID    string         `json:"user_id,omitempty"`
	Resource  string         `json:"resource,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	IP        string         `json:"ip,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Audit action constants.
const (
	AuditActionHTTPRequest   = "http_request"
	AuditActionLogin         = "login"
	AuditActionSignup        = "signup"
	AuditActionLogout        = "logout"
	AuditActionRehydrate     = "session_rehydrate"
	AuditActionBadgeAwarded  = "badge_awarded"
	AuditActionProgressReset = "progress_reset"
	AuditActionMCPCall       = "mcp_call"
)
