package memory

import (
	"context"
	"sync"
)

// Persister keeps carts in process memory. Useful for development and tests;
// carts are lost on restart.
type Persister struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewPersister() *Persister {
	return &Persister{data: make(map[string][]byte)}
}

func (p *Persister) Load(_ context.Context, key string) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), b...), nil
}

func (p *Persister) Save(_ context.Context, key string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[key] = append([]byte(nil), payload...)
	return nil
}

// Put stores a raw payload, bypassing encoding. Tests use it to plant corrupt data.
func (p *Persister) Put(key string, payload []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[key] = payload
}
