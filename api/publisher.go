package api

import (
	"sync"

	"github.com/lixenwraith/orrery/engine"
)

// Publisher holds the latest snapshot for concurrent readers
// The loop goroutine publishes once per frame; handlers only ever read copies
type Publisher struct {
	mu      sync.RWMutex
	snap    engine.Snapshot
	version uint64
}

// NewPublisher creates an empty publisher
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish replaces the current snapshot
func (p *Publisher) Publish(s engine.Snapshot) {
	p.mu.Lock()
	p.snap = s
	p.version++
	p.mu.Unlock()
}

// Latest returns the current snapshot and its version, version 0 means nothing was published yet
func (p *Publisher) Latest() (engine.Snapshot, uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap, p.version
}
