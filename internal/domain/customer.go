package domain

// Archetype is one of the four fixed customer categories.
type Archetype string

const (
	ArchStudent Archetype = "student"
	ArchWorker  Archetype = "worker"
	ArchElderly Archetype = "elderly"
	ArchTourist Archetype = "tourist"
)

// Archetypes lists every archetype in a fixed order.
var Archetypes = []Archetype{ArchStudent, ArchWorker, ArchElderly, ArchTourist}

// Mood is the visible temper of a customer.
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodImpatient Mood = "impatient"
	MoodAngry     Mood = "angry"
)

// Position is a spawn location on the stall scene, in percent.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Customer waits in the queue with one order.
type Customer struct {
	ID        string    `json:"id"`
	Archetype Archetype `json:"type"`
	Order     Order     `json:"order"`
	Patience  int       `json:"patience"` // 0-100
	Position  Position  `json:"position"`
	Mood      Mood      `json:"mood"`
}

// Clone returns a deep copy of the customer.
func (c Customer) Clone() Customer {
	out := c
	out.Order = c.Order.Clone()
	return out
}
