package goseed

import "sync"

// SlotActiveCycle holds the id of the cycle subsequent operations default to.
const SlotActiveCycle = "active_cycle"

// Cache remembers resource ids per named slot for the lifetime of a client.
// Values are only as fresh as the last write; nothing checks them against
// the service.
type Cache struct {
	mu    sync.RWMutex
	slots map[string]int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{slots: make(map[string]int)}
}

// Get returns the id stored in slot.
func (c *Cache) Get(slot string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.slots[slot]
	return id, ok
}

// Set stores id in slot, replacing any previous value.
func (c *Cache) Set(slot string, id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[slot] = id
}

// Clear empties slot.
func (c *Cache) Clear(slot string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.slots, slot)
}

// Reset empties every slot.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.slots)
}

// ActiveCycle exposes the active cycle id kept by the client.
type ActiveCycle interface {
	CycleID() (int, bool)
	SetCycleID(id int)
	ClearCycleID()
}

// CycleID returns the active cycle id, if one was set.
func (c *client) CycleID() (int, bool) {
	return c.cache.Get(SlotActiveCycle)
}

// SetCycleID makes id the active cycle.
func (c *client) SetCycleID(id int) {
	c.cache.Set(SlotActiveCycle, id)
}

// ClearCycleID forgets the active cycle.
func (c *client) ClearCycleID() {
	c.cache.Clear(SlotActiveCycle)
}
