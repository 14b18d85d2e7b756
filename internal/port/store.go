package port

import "context"

// Slot keys shared by every client.
const (
	SlotProgress   = "roadmap-progress"
	SlotCredential = "auth_token"
)

// SlotStore is durable key/value storage. Get returns ErrNotFound for a
// missing key.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SlotKey namespaces a slot by client.
func SlotKey(clientID, slot string) string {
	if clientID == "" {
		return slot
	}
	return clientID + ":" + slot
}
