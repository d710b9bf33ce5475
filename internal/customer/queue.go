package customer

import (
	"sync"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
)

// DefaultCapacity is the number of customers the stall can hold.
const DefaultCapacity = 5

// Queue is a bounded FIFO of customers. Only the head is ever served.
// It is safe for concurrent use.
type Queue struct {
	mu       sync.RWMutex
	items    []domain.Customer
	capacity int
}

// NewQueue creates a queue. A non-positive capacity uses DefaultCapacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{capacity: capacity}
}

// Push appends c at the tail. It returns false and does nothing when the
// queue is full.
func (q *Queue) Push(c domain.Customer) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) >= q.capacity {
		return false
	}
	q.items = append(q.items, c.Clone())
	return true
}

// Head returns a copy of the first customer.
func (q *Queue) Head() (domain.Customer, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if len(q.items) == 0 {
		return domain.Customer{}, false
	}
	return q.items[0].Clone(), true
}

// PopHead removes and returns the first customer.
func (q *Queue) PopHead() (domain.Customer, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return domain.Customer{}, false
	}
	c := q.items[0]
	q.items = q.items[1:]
	return c, true
}

// UpdateHead applies fn to the head in place. Returns false on an empty
// queue.
func (q *Queue) UpdateHead(fn func(*domain.Customer)) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return false
	}
	fn(&q.items[0])
	return true
}

// Len returns the number of waiting customers.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items)
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int { return q.capacity }

// Full reports whether Push would be refused.
func (q *Queue) Full() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items) >= q.capacity
}

// Clear drops every customer.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}

// Snapshot returns deep copies of the waiting customers, head first.
func (q *Queue) Snapshot() []domain.Customer {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]domain.Customer, len(q.items))
	for i, c := range q.items {
		out[i] = c.Clone()
	}
	return out
}

// ItemIDs returns the first dish id of each queued order.
func (q *Queue) ItemIDs() []string {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]string, 0, len(q.items))
	for i := range q.items {
		if id := q.items[i].Order.FirstItemID(); id != "" {
			out = append(out, id)
		}
	}
	return out
}
