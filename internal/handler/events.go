package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
)

// Progress event types.
const (
	EventCompleted  = "completed"
	EventIncomplete = "incomplete"
	EventReset      = "reset"
)

const (
	defaultStreamTimeout = 30 * time.Minute
	heartbeatInterval    = 15 * time.Second
)

// ProgressEvent tells a user's open streams that their record changed.
// Clients refetch the record; the event carries no merge semantics.
type ProgressEvent struct {
	Type          string    `json:"type"`
	NodeID        string    `json:"nodeId,omitempty"`
	TotalProgress int       `json:"totalProgress"`
	Awarded       []string  `json:"awarded,omitempty"`
	At            time.Time `json:"at"`
}

// EventHub fans progress events out to per-user subscribers.
type EventHub struct {
	mu      sync.RWMutex
	subs    map[string][]chan ProgressEvent
	timeout time.Duration
}

// NewEventHub creates an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{
		subs:    make(map[string][]chan ProgressEvent),
		timeout: defaultStreamTimeout,
	}
}

// WithStreamTimeout bounds how long a single stream stays open.
func (h *EventHub) WithStreamTimeout(d time.Duration) *EventHub {
	h.timeout = d
	return h
}

// Publish delivers ev to every subscriber of userID. Slow subscribers drop
// events rather than block the publisher. Safe on a nil hub.
func (h *EventHub) Publish(userID string, ev ProgressEvent) {
	if h == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[userID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe returns a channel that receives userID's events.
func (h *EventHub) Subscribe(userID string) chan ProgressEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan ProgressEvent, 10)
	h.subs[userID] = append(h.subs[userID], ch)
	return ch
}

// Unsubscribe removes and closes ch.
func (h *EventHub) Unsubscribe(userID string, ch chan ProgressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subs[userID]
	for i, s := range subs {
		if s == ch {
			h.subs[userID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
	if len(h.subs[userID]) == 0 {
		delete(h.subs, userID)
	}
}

// Subscribers reports how many streams userID has open.
func (h *EventHub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}

// EventsHandler serves the progress event stream.
type EventsHandler struct {
	hub *EventHub
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(hub *EventHub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Register mounts the stream on an already-authenticated progress group.
// EventSource cannot send headers, so the credential usually arrives as
// ?token=.
func (h *EventsHandler) Register(progress fiber.Router) {
	progress.Get("/events", h.Stream)
}

// Stream sends a "ready" event, then one event per progress change until
// the client goes away or the stream times out.
func (h *EventsHandler) Stream(c fiber.Ctx) error {
	user := strings.Clone(clientID(c))
	timeout := h.hub.timeout

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	// Subscribe inside the writer so the subscription lives exactly as
	// long as the stream that drains it.
	return c.SendStreamWriter(func(w *bufio.Writer) {
		ch := h.hub.Subscribe(user)
		defer h.hub.Unsubscribe(user, ch)

		fmt.Fprint(w, "event: ready\ndata: {}\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()
		deadline := time.NewTimer(timeout)
		defer deadline.Stop()

		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return
				}
				data, _ := json.Marshal(ev)
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
			case <-deadline.C:
				return
			}
			// A failed flush means the client disconnected.
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
}
