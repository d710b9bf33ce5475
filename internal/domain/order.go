package domain

// Difficulty scales order size, prices and round time.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// RoundSeconds is the base round timer for the difficulty.
func (d Difficulty) RoundSeconds() int {
	switch d {
	case DifficultyEasy:
		return 90
	case DifficultyHard:
		return 45
	default:
		return 60
	}
}

// Requirement is a modifier attached to an order item ("extra ice").
type Requirement int

const (
	ReqUnknown Requirement = iota
	ReqLessIce
	ReqNoIce
	ReqExtraIce
	ReqHot
	ReqCold
	ReqChilled
	ReqNotSpicy
	ReqSpicy
	ReqExtraLime
	ReqLessSalt
	ReqNoSalt
	ReqLessSeasoning
	ReqLessPepper
	ReqExtraChili
	ReqLessChili
	ReqNoGreens
	ReqExtraCucumber
	ReqExtraPickles
	ReqLessSweet
)

var requirementKeys = map[Requirement]string{
	ReqLessIce:       "less_ice",
	ReqNoIce:         "no_ice",
	ReqExtraIce:      "extra_ice",
	ReqHot:           "hot",
	ReqCold:          "cold",
	ReqChilled:       "chilled",
	ReqNotSpicy:      "not_spicy",
	ReqSpicy:         "spicy",
	ReqExtraLime:     "extra_lime",
	ReqLessSalt:      "less_salt",
	ReqNoSalt:        "no_salt",
	ReqLessSeasoning: "less_seasoning",
	ReqLessPepper:    "less_pepper",
	ReqExtraChili:    "extra_chili",
	ReqLessChili:     "less_chili",
	ReqNoGreens:      "no_greens",
	ReqExtraCucumber: "extra_cucumber",
	ReqExtraPickles:  "extra_pickles",
	ReqLessSweet:     "less_sweet",
}

// String returns the stable key of the requirement. Front-ends localize
// this key; game logic never branches on display text.
func (r Requirement) String() string {
	if k, ok := requirementKeys[r]; ok {
		return k
	}
	return "unknown"
}

// RequirementFromString converts a key back to a Requirement.
// Returns ReqUnknown for unrecognized keys.
func RequirementFromString(key string) Requirement {
	for r, k := range requirementKeys {
		if k == key {
			return r
		}
	}
	return ReqUnknown
}

// MarshalText implements encoding.TextMarshaler.
func (r Requirement) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Requirement) UnmarshalText(b []byte) error {
	*r = RequirementFromString(string(b))
	return nil
}

// ConflictGroup is a set of mutually exclusive requirements.
type ConflictGroup struct {
	Name    string
	Members []Requirement // declaration order is the tie-break order
}

// ConflictGroups lists every exclusive group. At most one member of a
// group may apply to a single order item.
var ConflictGroups = []ConflictGroup{
	{Name: "spice", Members: []Requirement{ReqNotSpicy, ReqSpicy}},
	{Name: "temperature", Members: []Requirement{ReqHot, ReqCold, ReqChilled}},
	{Name: "ice", Members: []Requirement{ReqNoIce, ReqLessIce, ReqExtraIce}},
	{Name: "salt", Members: []Requirement{ReqNoSalt, ReqLessSalt}},
}

// Group returns the conflict group of r and the member's declaration index.
// ok is false when r belongs to no group.
func (r Requirement) Group() (group string, index int, ok bool) {
	for _, g := range ConflictGroups {
		for i, m := range g.Members {
			if m == r {
				return g.Name, i, true
			}
		}
	}
	return "", 0, false
}

// OrderItem is one dish of an order, derived from a recipe.
type OrderItem struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Ingredients     []Ingredient  `json:"ingredients"`
	Price           int           `json:"price"`
	PreparationTime int           `json:"preparationTime"`
	Requirements    []Requirement `json:"requirements,omitempty"`
}

// Order is immutable once generated and belongs to exactly one customer.
type Order struct {
	ID         string      `json:"id"`
	Items      []OrderItem `json:"items"`
	TotalPrice int         `json:"totalPrice"`
	TimeLimit  int         `json:"timeLimit"`
	Complexity int         `json:"complexity"`
}

// FirstItemID returns the id of the first item, or "" for an empty order.
func (o *Order) FirstItemID() string {
	if len(o.Items) == 0 {
		return ""
	}
	return o.Items[0].ID
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	out := o
	out.Items = make([]OrderItem, len(o.Items))
	for i, it := range o.Items {
		c := it
		c.Ingredients = append([]Ingredient(nil), it.Ingredients...)
		c.Requirements = append([]Requirement(nil), it.Requirements...)
		out.Items[i] = c
	}
	return out
}
