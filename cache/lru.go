package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/globalord/model"
	"github.com/hupe1980/globalord/ordinals"
)

// LRU is a byte-capacity LRU view cache. Capacity counts the views'
// reported MemorySize; a single view larger than the whole capacity is
// still admitted, since refusing it would force a rebuild on every
// access.
type LRU struct {
	mu        sync.Mutex
	capacity  int64
	size      int64
	items     map[model.SnapshotID]*list.Element
	evictList *list.List
	onEvict   EvictFunc

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	id   model.SnapshotID
	view *ordinals.View
}

// Ensure LRU implements Cache
var _ Cache = (*LRU)(nil)

// NewLRU creates an LRU cache with the given byte capacity. If capacity
// is <= 0 the cache never evicts on size. onEvict may be nil.
func NewLRU(capacity int64, onEvict EvictFunc) *LRU {
	return &LRU{
		capacity:  capacity,
		items:     make(map[model.SnapshotID]*list.Element),
		evictList: list.New(),
		onEvict:   onEvict,
	}
}

// Get returns the cached view for the snapshot, if any.
func (c *LRU) Get(id model.SnapshotID) (*ordinals.View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[id]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(ent)
		return ent.Value.(*entry).view, true
	}
	c.misses.Add(1)
	return nil, false
}

// Put stores the view, replacing any previous view for the snapshot, then
// evicts least-recently-used entries until within capacity.
func (c *LRU) Put(id model.SnapshotID, v *ordinals.View) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[id]; ok {
		old := ent.Value.(*entry)
		c.size += v.MemorySize() - old.view.MemorySize()
		if c.onEvict != nil {
			c.onEvict(id, old.view)
		}
		old.view = v
		c.evictList.MoveToFront(ent)
		c.evict()
		return
	}

	ent := c.evictList.PushFront(&entry{id: id, view: v})
	c.items[id] = ent
	c.size += v.MemorySize()
	c.evict()
}

// Invalidate drops the snapshot's view, if cached.
func (c *LRU) Invalidate(id model.SnapshotID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[id]; ok {
		c.removeElement(ent)
	}
}

// Clear drops every cached view.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.evictList.Len() > 0 {
		c.removeElement(c.evictList.Back())
	}
}

// Size returns the summed MemorySize of all cached views.
func (c *LRU) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Len returns the number of cached views.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns hit and miss counters.
func (c *LRU) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// evict removes LRU entries until within capacity. Caller holds mu. The
// most recent entry is never evicted.
func (c *LRU) evict() {
	if c.capacity <= 0 {
		return
	}
	for c.size > c.capacity && c.evictList.Len() > 1 {
		c.removeElement(c.evictList.Back())
	}
}

// removeElement removes an entry. Caller holds mu.
func (c *LRU) removeElement(ent *list.Element) {
	c.evictList.Remove(ent)
	e := ent.Value.(*entry)
	delete(c.items, e.id)
	c.size -= e.view.MemorySize()
	if c.onEvict != nil {
		c.onEvict(e.id, e.view)
	}
}
