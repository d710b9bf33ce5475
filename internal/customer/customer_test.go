package customer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
)

func TestNewCustomerBounds(t *testing.T) {
	seen := map[domain.Archetype]bool{}
	for s := int64(0); s < 500; s++ {
		seed := s
		c := New(&seed)

		assert.GreaterOrEqual(t, c.Patience, 80)
		assert.LessOrEqual(t, c.Patience, 100)
		assert.GreaterOrEqual(t, c.Position.X, 10)
		assert.LessOrEqual(t, c.Position.X, 90)
		assert.GreaterOrEqual(t, c.Position.Y, 10)
		assert.LessOrEqual(t, c.Position.Y, 90)
		assert.Equal(t, domain.MoodNeutral, c.Mood)
		assert.Empty(t, c.Order.Items)
		assert.Contains(t, c.ID, "customer_")
		seen[c.Archetype] = true
	}
	assert.Len(t, seen, 4, "every archetype should appear")
}

func TestNewCustomerSeeded(t *testing.T) {
	seed := int64(7)
	a, b := New(&seed), New(&seed)
	assert.Equal(t, a.Archetype, b.Archetype)
	assert.Equal(t, a.Patience, b.Patience)
	assert.Equal(t, a.Position, b.Position)
	assert.NotEqual(t, a.ID, b.ID)
}

func withOrder(id, dish string) domain.Customer {
	return domain.Customer{
		ID:    id,
		Order: domain.Order{ID: "o-" + id, Items: []domain.OrderItem{{ID: dish}}},
	}
}

func TestQueueFIFOAndCapacity(t *testing.T) {
	q := NewQueue(0)
	require.Equal(t, DefaultCapacity, q.Cap())

	for i := 0; i < DefaultCapacity; i++ {
		require.True(t, q.Push(withOrder(fmt.Sprint(i), "che")))
	}
	assert.True(t, q.Full())
	assert.False(t, q.Push(withOrder("late", "che")), "push beyond capacity is refused")
	assert.Equal(t, DefaultCapacity, q.Len())

	head, ok := q.Head()
	require.True(t, ok)
	assert.Equal(t, "0", head.ID)

	popped, ok := q.PopHead()
	require.True(t, ok)
	assert.Equal(t, "0", popped.ID)

	head, _ = q.Head()
	assert.Equal(t, "1", head.ID)
	assert.False(t, q.Full())
}

func TestQueueEmpty(t *testing.T) {
	q := NewQueue(3)
	_, ok := q.Head()
	assert.False(t, ok)
	_, ok = q.PopHead()
	assert.False(t, ok)
	assert.False(t, q.UpdateHead(func(*domain.Customer) { t.Fatal("called on empty queue") }))
}

func TestQueueUpdateHeadAndSnapshotIsolation(t *testing.T) {
	q := NewQueue(3)
	q.Push(withOrder("a", "che"))
	q.Push(withOrder("b", "soda_chai"))

	q.UpdateHead(func(c *domain.Customer) { c.Patience = 42 })
	head, _ := q.Head()
	assert.Equal(t, 42, head.Patience)

	snap := q.Snapshot()
	snap[0].Order.Items[0].ID = "mutated"
	assert.Equal(t, []string{"che", "soda_chai"}, q.ItemIDs())

	q.Clear()
	assert.Zero(t, q.Len())
}
