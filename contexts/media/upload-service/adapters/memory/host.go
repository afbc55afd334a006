package memory

import (
	"context"
	"io"
	"sync"
)

// Host keeps uploaded bytes in memory and hands back stable local URLs.
// Stands in for the real image host during local runs and tests.
type Host struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewHost() *Host {
	return &Host{objects: make(map[string][]byte)}
}

func (h *Host) Upload(_ context.Context, filename string, file io.Reader) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	h.mu.Lock()
	h.objects[filename] = data
	h.mu.Unlock()
	return "https://images.local/" + filename, nil
}

func (h *Host) Object(filename string) ([]byte, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data, ok := h.objects[filename]
	return data, ok
}
