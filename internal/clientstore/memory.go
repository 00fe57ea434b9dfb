package clientstore

import (
	"context"
	"sync"
)

// Memory keeps every storage area in process memory. Quota, when positive,
// caps the summed key and value bytes of a single area.
type Memory struct {
	mu       sync.Mutex
	areas    map[string]map[string]string
	quota    int
	disabled bool
}

func NewMemory(quota int) *Memory {
	return &Memory{
		areas: make(map[string]map[string]string),
		quota: quota,
	}
}

func (m *Memory) Storage(contextID string) Storage {
	return &memoryArea{m: m, id: contextID}
}

// SetDisabled makes every write fail with ErrDisabled, the way a browser
// behaves with storage turned off. Reads keep working.
func (m *Memory) SetDisabled(disabled bool) {
	m.mu.Lock()
	m.disabled = disabled
	m.mu.Unlock()
}

type memoryArea struct {
	m  *Memory
	id string
}

func (a *memoryArea) GetItem(_ context.Context, key string) (string, bool, error) {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()

	v, ok := a.m.areas[a.id][key]
	return v, ok, nil
}

func (a *memoryArea) SetItem(_ context.Context, key, value string) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()

	if a.m.disabled {
		return ErrDisabled
	}

	area := a.m.areas[a.id]
	if area == nil {
		area = make(map[string]string)
		a.m.areas[a.id] = area
	}

	if a.m.quota > 0 {
		used := len(key) + len(value)
		for k, v := range area {
			if k != key {
				used += len(k) + len(v)
			}
		}
		if used > a.m.quota {
			return ErrQuotaExceeded
		}
	}

	area[key] = value
	return nil
}

func (a *memoryArea) RemoveItem(_ context.Context, key string) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()

	if a.m.disabled {
		return ErrDisabled
	}
	delete(a.m.areas[a.id], key)
	return nil
}

func (a *memoryArea) Clear(_ context.Context) error {
	a.m.mu.Lock()
	defer a.m.mu.Unlock()

	if a.m.disabled {
		return ErrDisabled
	}
	delete(a.m.areas, a.id)
	return nil
}
