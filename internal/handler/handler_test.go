package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/roadmapai/internal/adapter/auth"
	"github.com/arturoeanton/roadmapai/internal/adapter/catalog"
	"github.com/arturoeanton/roadmapai/internal/adapter/store"
	"github.com/arturoeanton/roadmapai/internal/logger"
	"github.com/arturoeanton/roadmapai/internal/middleware"
	"github.com/arturoeanton/roadmapai/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testAPI struct {
	t     *testing.T
	app    *fiber.App
	audit  *store.AuditLog
	events *EventHub
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := logger.NewNop()

	issuer, err := auth.NewJWTIssuer(auth.JWTConfig{Secret: "test-secret", Issuer: "roadmapai", ExpiresIn: time.Hour})
	require.NoError(t, err)

	cat := catalog.WebDevelopment()
	authSvc := service.NewAuthService(store.NewIdentityList(store.SeedUsers()...), issuer, log)
	progress := service.NewProgressService(store.NewMemoryStore(), cat, log)
	auditLog := store.NewAuditLog(100, log)
	events := NewEventHub().WithStreamTimeout(50 * time.Millisecond)

	app := fiber.New()
	app.Use(middleware.AuditMiddleware(auditLog, log))
	Mount(app, Deps{
		AppName:   "RoadmapAI",
		Auth:      authSvc,
		Progress:  progress,
		Roadmap:   service.NewRoadmapService(cat, progress),
		Assistant: service.NewAssistantService(nil, cat, log),
		Catalog:   cat,
		Audit:     auditLog,
		Events:    events,
	})
	return &testAPI{t: t, app: app, audit: auditLog, events: events}
}

func (a *testAPI) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	if len(raw) > 0 {
		require.NoError(a.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (a *testAPI) login(email string) string {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": "x"})
	require.Equal(a.t, http.StatusOK, status, env.Error)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp, err := api.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth_LoginAndMe(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("test@example.com")

	status, env := api.do(http.MethodGet, "/api/v1/auth/me", token, nil)

	require.Equal(t, http.StatusOK, status)
	user := decode[map[string]any](t, env.Data)
	assert.Equal(t, "1", user["id"])
	assert.Equal(t, "Test User", user["name"])
}

func TestAuth_LoginErrors(t *testing.T) {
	api := newTestAPI(t)

	cases := []struct {
		body   map[string]string
		status int
		msg    string
	}{
		{map[string]string{"email": "", "password": ""}, http.StatusBadRequest, "Email and password are required"},
		{map[string]string{"email": "bad", "password": "x"}, http.StatusBadRequest, "Please enter a valid email address"},
		{map[string]string{"email": "nobody@example.com", "password": "x"}, http.StatusUnauthorized, "Invalid email or password"},
	}
	for _, tc := range cases {
		status, env := api.do(http.MethodPost, "/api/v1/auth/login", "", tc.body)
		assert.Equal(t, tc.status, status)
		assert.False(t, env.Success)
		assert.Equal(t, tc.msg, env.Error)
	}
}

func TestAuth_SignupAndDuplicate(t *testing.T) {
	api := newTestAPI(t)
	body := map[string]string{"email": "new@example.com", "password": "secret1", "name": "New"}

	status, env := api.do(http.MethodPost, "/api/v1/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)

	status, env = api.do(http.MethodPost, "/api/v1/auth/signup", "", body)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User already exists", env.Error)
}

func TestAuth_ProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/api/v1/auth/me", "/api/v1/progress", "/api/v1/dashboard"} {
		status, env := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.False(t, env.Success)
	}

	status, _ := api.do(http.MethodGet, "/api/v1/progress", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProgress_CompleteAwardsBadge(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("test@example.com")

	status, env := api.do(http.MethodPost, "/api/v1/progress/html/complete", token, nil)

	require.Equal(t, http.StatusOK, status)
	data := decode[struct {
		Progress struct {
			CompletedNodes []string `json:"completedNodes"`
			TotalProgress  int      `json:"totalProgress"`
		} `json:"progress"`
		Awarded []struct {
			ID string `json:"id"`
		} `json:"awarded"`
	}](t, env.Data)
	assert.Equal(t, []string{"html"}, data.Progress.CompletedNodes)
	assert.Equal(t, 10, data.Progress.TotalProgress)
	require.Len(t, data.Awarded, 1)
	assert.Equal(t, "first-step", data.Awarded[0].ID)

	badges := api.audit.List(t.Context(), 0, "badge_awarded")
	require.Len(t, badges, 1)
	assert.Equal(t, "1", badges[0].UserID)
}

func TestProgress_IsPerUser(t *testing.T) {
	api := newTestAPI(t)
	alice := api.login("test@example.com")
	bob := api.login("demo@roadmapai.com")

	api.do(http.MethodPost, "/api/v1/progress/css/complete", alice, nil)

	_, env := api.do(http.MethodGet, "/api/v1/progress", bob, nil)
	p := decode[struct {
		CompletedNodes []string `json:"completedNodes"`
	}](t, env.Data)
	assert.Empty(t, p.CompletedNodes)
}

func TestProgress_UnknownNode(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("test@example.com")

	status, env := api.do(http.MethodPost, "/api/v1/progress/cobol/complete", token, nil)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "node not found", env.Error)
}

func TestProgress_IncompleteAndReset(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("test@example.com")
	api.do(http.MethodPost, "/api/v1/progress/html/complete", token, nil)
	api.do(http.MethodPost, "/api/v1/progress/css/complete", token, nil)

	_, env := api.do(http.MethodDelete, "/api/v1/progress/html/complete", token, nil)
	p := decode[struct {
		CompletedNodes []string `json:"completedNodes"`
		Badges         []any    `json:"badges"`
	}](t, env.Data)
	assert.Equal(t, []string{"css"}, p.CompletedNodes)
	assert.Len(t, p.Badges, 1)

	status, env := api.do(http.MethodPost, "/api/v1/progress/reset", token, nil)
	require.Equal(t, http.StatusOK, status)
	p = decode[struct {
		CompletedNodes []string `json:"completedNodes"`
		Badges         []any    `json:"badges"`
	}](t, env.Data)
	assert.Empty(t, p.CompletedNodes)
	assert.Empty(t, p.Badges)
}

func TestDashboard(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("test@example.com")
	api.do(http.MethodPost, "/api/v1/progress/html/complete", token, nil)

	status, env := api.do(http.MethodGet, "/api/v1/dashboard", token, nil)

	require.Equal(t, http.StatusOK, status)
	d := decode[struct {
		CompletedCount int      `json:"completedCount"`
		TotalNodes     int      `json:"totalNodes"`
		NextNodes      []string `json:"nextNodes"`
	}](t, env.Data)
	assert.Equal(t, 1, d.CompletedCount)
	assert.Equal(t, 10, d.TotalNodes)
	assert.Equal(t, []string{"css"}, d.NextNodes)
}

func TestRoadmap_ListFilterAndAnnotate(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("test@example.com")
	api.do(http.MethodPost, "/api/v1/progress/nodejs/complete", token, nil)

	status, env := api.do(http.MethodGet, "/api/v1/roadmap?category=backend", token, nil)

	require.Equal(t, http.StatusOK, status)
	data := decode[struct {
		Nodes []struct {
			ID        string `json:"id"`
			Completed bool   `json:"completed"`
		} `json:"nodes"`
		Count int `json:"count"`
	}](t, env.Data)
	assert.Equal(t, 3, data.Count)
	assert.Equal(t, "nodejs", data.Nodes[0].ID)
	assert.True(t, data.Nodes[0].Completed)
	assert.False(t, data.Nodes[1].Completed)
}

func TestRoadmap_GetAndMindMap(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.do(http.MethodGet, "/api/v1/roadmap/react", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "React Framework", decode[map[string]any](t, env.Data)["title"])

	status, _ = api.do(http.MethodGet, "/api/v1/roadmap/cobol", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = api.do(http.MethodGet, "/api/v1/roadmap/mindmap", "", nil)
	require.Equal(t, http.StatusOK, status)
	m := decode[struct {
		Nodes []any `json:"nodes"`
		Edges []any `json:"edges"`
	}](t, env.Data)
	assert.NotEmpty(t, m.Nodes)
	assert.NotEmpty(t, m.Edges)
}

func TestChat_FallsBackWhenOffline(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("test@example.com")

	status, env := api.do(http.MethodPost, "/api/v1/chat", token, map[string]string{"message": "explain this", "nodeId": "html"})

	require.Equal(t, http.StatusOK, status)
	data := decode[struct {
		Reply struct {
			Role    string `json:"role"`
			Content string `json:"content"`
			NodeID  string `json:"nodeId"`
		} `json:"reply"`
	}](t, env.Data)
	assert.Equal(t, "assistant", data.Reply.Role)
	assert.Equal(t, "html", data.Reply.NodeID)
	assert.NotEmpty(t, data.Reply.Content)

	status, env = api.do(http.MethodPost, "/api/v1/chat", token, map[string]string{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "message is required", env.Error)
}

func TestAudit_RecordsRequests(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("test@example.com")

	status, env := api.do(http.MethodGet, "/api/v1/audit/logs?action=login", token, nil)

	require.Equal(t, http.StatusOK, status)
	data := decode[struct {
		Count int `json:"count"`
	}](t, env.Data)
	assert.Equal(t, 1, data.Count)
	assert.NotEmpty(t, api.audit.List(t.Context(), 0, "http_request"))
}

func TestProgress_PublishesEvents(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("test@example.com")
	ch := api.events.Subscribe("1")
	other := api.events.Subscribe("2")

	api.do(http.MethodPost, "/api/v1/progress/html/complete", token, nil)
	api.do(http.MethodDelete, "/api/v1/progress/html/complete", token, nil)
	api.do(http.MethodPost, "/api/v1/progress/reset", token, nil)

	ev := <-ch
	assert.Equal(t, EventCompleted, ev.Type)
	assert.Equal(t, "html", ev.NodeID)
	assert.Equal(t, 10, ev.TotalProgress)
	assert.Equal(t, []string{"first-step"}, ev.Awarded)
	assert.False(t, ev.At.IsZero())

	ev = <-ch
	assert.Equal(t, EventIncomplete, ev.Type)
	assert.Equal(t, 0, ev.TotalProgress)

	assert.Equal(t, EventReset, (<-ch).Type)
	assert.Empty(t, other)
}

func TestProgress_EventStream(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("test@example.com")

	resp, err := api.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/progress/events", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = api.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/progress/events?token="+token, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "event: ready")
	assert.Eventually(t, func() bool { return api.events.Subscribers("1") == 0 }, time.Second, 10*time.Millisecond)
}

func TestEventHub_UnsubscribeAndNilPublish(t *testing.T) {
	var nilHub *EventHub
	assert.NotPanics(t, func() { nilHub.Publish("1", ProgressEvent{Type: EventReset}) })

	hub := NewEventHub()
	ch := hub.Subscribe("1")
	require.Equal(t, 1, hub.Subscribers("1"))

	hub.Unsubscribe("1", ch)
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers("1"))

	hub.Publish("1", ProgressEvent{Type: EventReset})
}

func TestEventHub_DropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewEventHub()
	ch := hub.Subscribe("1")
	for i := 0; i < 25; i++ {
		hub.Publish("1", ProgressEvent{Type: EventCompleted, TotalProgress: i})
	}
	assert.Len(t, ch, cap(ch))
	assert.Equal(t, 0, (<-ch).TotalProgress)
}

func TestProgress_EventStreamReleasesSubscriptionWithoutBody(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("test@example.com")

	resp, err := api.app.Test(httptest.NewRequest(http.MethodHead, "/api/v1/progress/events?token="+token, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Eventually(t, func() bool { return api.events.Subscribers("1") == 0 }, time.Second, 10*time.Millisecond)
}

func TestProgress_NodeIDsSurviveAcrossRequests(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("test@example.com")
	ch := api.events.Subscribe("1")
	defer api.events.Unsubscribe("1", ch)

	nodes := []string{"html", "css", "javascript", "react", "nodejs"}
	for _, id := range nodes {
		status, env := api.do(http.MethodPost, "/api/v1/progress/"+id+"/complete", token, nil)
		require.Equal(t, http.StatusOK, status, env.Error)
	}

	status, env := api.do(http.MethodGet, "/api/v1/progress", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := decode[struct {
		CompletedNodes []string `json:"completedNodes"`
	}](t, env.Data)
	assert.Equal(t, nodes, data.CompletedNodes)

	for _, id := range nodes {
		assert.Equal(t, id, (<-ch).NodeID)
	}

	badges := api.audit.List(t.Context(), 0, "badge_awarded")
	require.Len(t, badges, 2)
	got := []any{badges[0].Details["node_id"], badges[1].Details["node_id"]}
	assert.ElementsMatch(t, []any{"html", "nodejs"}, got)
}
