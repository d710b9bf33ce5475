// Package recipe provides the built-in dish catalog, the ingredient
// registry, shelf categories and per-dish requirement capabilities.
package recipe

import (
	"context"
	"strings"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*Catalog)(nil)

// UnknownDishID is the id of the placeholder item returned for misses.
const UnknownDishID = "unknown"

// Catalog holds the recipe table in declaration order. It is immutable
// after construction and safe for concurrent reads.
type Catalog struct {
	recipes []*domain.RecipeDefinition
	byID    map[string]*domain.RecipeDefinition
	log     *logger.Logger
}

// NewCatalog creates a catalog preloaded with the built-in recipes.
func NewCatalog(log *logger.Logger) *Catalog {
	return NewCatalogFrom(log, builtinRecipes())
}

// NewCatalogFrom creates a catalog over an explicit recipe list. Used by
// tests that need an empty or reduced menu.
func NewCatalogFrom(log *logger.Logger, recipes []*domain.RecipeDefinition) *Catalog {
	c := &Catalog{
		recipes: recipes,
		byID:    make(map[string]*domain.RecipeDefinition, len(recipes)),
		log:     log,
	}
	for _, r := range recipes {
		c.byID[r.ID] = r
	}
	log.Debug("catalog loaded with %d recipes", len(recipes))
	return c
}

// Len returns the number of recipes.
func (c *Catalog) Len() int { return len(c.recipes) }

// At returns the i-th recipe in declaration order, or nil when out of range.
func (c *Catalog) At(i int) *domain.RecipeDefinition {
	if i < 0 || i >= len(c.recipes) {
		return nil
	}
	return c.recipes[i]
}

// All returns the recipes in declaration order. The definitions are shared
// and must not be mutated.
func (c *Catalog) All() []*domain.RecipeDefinition {
	return append([]*domain.RecipeDefinition(nil), c.recipes...)
}

// IDs returns every recipe id in declaration order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = r.ID
	}
	return out
}

// Lookup returns the recipe with the given id.
func (c *Catalog) Lookup(id string) (*domain.RecipeDefinition, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// List returns summaries of all recipes in declaration order.
func (c *Catalog) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	c.log.Debug("listing all recipes, count=%d", len(c.recipes))

	out := make([]domain.RecipeSummary, 0, len(c.recipes))
	for _, r := range c.recipes {
		out = append(out, summarize(r))
	}
	return out, nil
}

// Get returns a recipe by ID.
func (c *Catalog) Get(ctx context.Context, id string) (*domain.RecipeDefinition, error) {
	r, ok := c.byID[id]
	if !ok {
		c.log.Debug("recipe not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// Search returns recipes whose id or name contains the query string.
func (c *Catalog) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	q := strings.ToLower(query)
	c.log.Debug("searching recipes for: %s", q)

	var out []domain.RecipeSummary
	for _, r := range c.recipes {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(r.ID, q) {
			out = append(out, summarize(r))
		}
	}
	return out, nil
}

// ToOrderItem converts a recipe into a fresh order item at base price.
// Unknown ids yield the placeholder dish with no ingredients.
func (c *Catalog) ToOrderItem(id string) domain.OrderItem {
	r, ok := c.byID[id]
	if !ok {
		return domain.OrderItem{ID: UnknownDishID, Name: "Món không xác định"}
	}
	return domain.OrderItem{
		ID:              r.ID,
		Name:            r.Name,
		Ingredients:     append([]domain.Ingredient(nil), r.Ingredients...),
		Price:           r.BasePrice,
		PreparationTime: r.PreparationTime,
	}
}

func summarize(r *domain.RecipeDefinition) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		BasePrice:   r.BasePrice,
		Temperature: r.Temperature,
	}
}

// ing copies a registry ingredient with a recipe-specific quantity.
func ing(id string, qty float64) domain.Ingredient {
	i := ResolveIngredient(id)
	i.Quantity = qty
	return i
}

// builtinRecipes returns the stall's menu. Order matters: it seeds the
// rotation queue and is the fallback for empty selections.
func builtinRecipes() []*domain.RecipeDefinition {
	return []*domain.RecipeDefinition{
		{
			ID:   "cafe_vot",
			Name: "Cà phê vợt",
			Ingredients: []domain.Ingredient{
				ing("bot_ca_phe", 15), ing("nuoc_soi", 150), ing("duong", 10),
			},
			BasePrice:       12000,
			PreparationTime: 18,
			Temperature:     domain.TemperatureHot,
		},
		{
			ID:   "sua_dau_nanh",
			Name: "Sữa đậu nành",
			Ingredients: []domain.Ingredient{
				ing("dau_nanh", 50), ing("nuoc", 200), ing("duong", 10),
			},
			BasePrice:       8000,
			PreparationTime: 12,
			Temperature:     domain.TemperatureHot,
		},
		{
			ID:   "banh_mi_thit",
			Name: "Bánh mì thịt",
			Ingredients: []domain.Ingredient{
				ing("banh_mi", 1), ing("thit_nguoi", 50), ing("do_chua", 30), ing("tuong_ot", 10),
			},
			BasePrice:       18000,
			PreparationTime: 15,
			Temperature:     domain.TemperatureHot,
		},
		{
			ID:   "che",
			Name: "Chè",
			Ingredients: []domain.Ingredient{
				ing("hat_che", 50), ing("nuoc_duong", 150), ing("da_vien", 6),
			},
			BasePrice:       10000,
			PreparationTime: 10,
			Temperature:     domain.TemperatureCold,
		},
		{
			ID:   "xien_que",
			Name: "Xiên que",
			Ingredients: []domain.Ingredient{
				ing("thit_xien", 60), ing("gia_vi", 5),
			},
			BasePrice:       15000,
			PreparationTime: 8,
			Temperature:     domain.TemperatureHot,
		},
		{
			ID:   "banh_bo",
			Name: "Bánh bò",
			Ingredients: []domain.Ingredient{
				ing("banh_bo_nguyen_lieu", 1), ing("nuoc_cot_dua", 20),
			},
			BasePrice:       7000,
			PreparationTime: 6,
			Temperature:     domain.TemperatureCold,
		},
		{
			ID:   "soda_da_chanh",
			Name: "Soda đá chanh",
			Ingredients: []domain.Ingredient{
				ing("soda", 200), ing("chanh", 1), ing("da_vien", 6),
			},
			BasePrice:       12000,
			PreparationTime: 9,
			Temperature:     domain.TemperatureCold,
		},
		{
			ID:   "soda_chai",
			Name: "Soda chai",
			Ingredients: []domain.Ingredient{
				ing("soda", 330),
			},
			BasePrice:       10000,
			PreparationTime: 3,
			Temperature:     domain.TemperatureCold,
		},
		{
			ID:   "xien_que_tuong_ot",
			Name: "Xiên que tương ớt",
			Ingredients: []domain.Ingredient{
				ing("thit_xien", 60), ing("tuong_ot", 10), ing("tieu", 2),
			},
			BasePrice:       17000,
			PreparationTime: 9,
			Temperature:     domain.TemperatureHot,
		},
		{
			ID:   "ca_vien_chien",
			Name: "Cá viên chiên",
			Ingredients: []domain.Ingredient{
				ing("ca_vien", 80), ing("dua_leo", 20), ing("rau_que", 5),
			},
			BasePrice:       16000,
			PreparationTime: 8,
			Temperature:     domain.TemperatureHot,
		},
		{
			ID:   "soda_chanh_muoi",
			Name: "Soda chanh muối",
			Ingredients: []domain.Ingredient{
				ing("soda", 200), ing("chanh", 1), ing("muoi", 2),
			},
			BasePrice:       13000,
			PreparationTime: 9,
			Temperature:     domain.TemperatureCold,
		},
	}
}
