package logger

import (
	"sync"
	"time"
)

// Collector keeps a bounded in-memory ring of recent warn/error entries so
// operators can inspect provider failures and fallback activations without
// scraping the log stream.
type Collector struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
}

type Entry struct {
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
	At      time.Time              `json:"at"`
}

// NewCollector creates a collector holding up to size entries.
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = 100
	}
	return &Collector{entries: make([]Entry, size)}
}

func (c *Collector) Add(level, message string, fields map[string]interface{}) {
	c.mu.Lock()
	c.entries[c.next] = Entry{
		Level:   level,
		Message: message,
		Fields:  fields,
		At:      time.Now(),
	}
	c.next++
	if c.next == len(c.entries) {
		c.next = 0
		c.full = true
	}
	c.mu.Unlock()
}

// Recent returns collected entries, oldest first.
func (c *Collector) Recent() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.full {
		out := make([]Entry, c.next)
		copy(out, c.entries[:c.next])
		return out
	}
	out := make([]Entry, 0, len(c.entries))
	out = append(out, c.entries[c.next:]...)
	out = append(out, c.entries[:c.next]...)
	return out
}
