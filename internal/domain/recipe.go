// Package domain defines the core types and interfaces for the stall game.
// All other packages depend on domain; domain depends on nothing.
package domain

// Temperature tags how a dish is normally served.
type Temperature int

const (
	TemperatureHot Temperature = iota
	TemperatureCold
)

// String returns the tag as used in the recipe table.
func (t Temperature) String() string {
	switch t {
	case TemperatureHot:
		return "Hot"
	case TemperatureCold:
		return "Cold"
	default:
		return "unknown"
	}
}

// IngredientKind is the physical category tag of an ingredient.
type IngredientKind string

const (
	KindLiquid  IngredientKind = "liquid"
	KindSolid   IngredientKind = "solid"
	KindPowder  IngredientKind = "powder"
	KindGarnish IngredientKind = "garnish"
)

// Unit is the measuring unit of an ingredient quantity.
type Unit string

const (
	UnitML    Unit = "ml"
	UnitGram  Unit = "g"
	UnitPiece Unit = "piece"
)

// Ingredient is a value object. Copies are independent.
type Ingredient struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Kind     IngredientKind `json:"type"`
	Quantity float64        `json:"quantity"`
	Unit     Unit           `json:"unit"`
}

// RecipeDefinition is an immutable catalog entry.
type RecipeDefinition struct {
	ID              string
	Name            string
	Ingredients     []Ingredient
	BasePrice       int
	PreparationTime int // seconds
	Temperature     Temperature
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID          string
	Name        string
	BasePrice   int
	Temperature Temperature
}

// IngredientIDs returns the ids of the recipe's ingredients in order.
func (r *RecipeDefinition) IngredientIDs() []string {
	ids := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ids[i] = ing.ID
	}
	return ids
}
