// Package order generates customer orders: recipe selection with
// anti-repetition, difficulty pricing, constrained requirement selection
// and requirement-driven ingredient adjustment.
package order

import (
	"math"

	"github.com/google/uuid"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
	"github.com/hammamikhairi/vintagevendor/internal/recipe"
	"github.com/hammamikhairi/vintagevendor/internal/rng"
)

// Options controls a single generation call. The zero value generates a
// medium, unseeded order with no exclusions.
type Options struct {
	Difficulty domain.Difficulty
	// Seed makes generation reproducible. Nil seeds from the wall clock.
	Seed *int64
	// Exclude lists recipe ids to avoid. Ignored if it would empty the menu.
	Exclude []string
	// Archetype biases requirements. Empty means no bias.
	Archetype domain.Archetype
	// ForceRecipeID wins over Exclude when present in the catalog.
	ForceRecipeID string
}

// Multiplier returns the price and time multiplier for a difficulty.
func Multiplier(d domain.Difficulty) float64 {
	switch d {
	case domain.DifficultyEasy:
		return 0.9
	case domain.DifficultyHard:
		return 1.15
	default:
		return 1.0
	}
}

// ItemCount returns how many dishes an order holds at a difficulty.
func ItemCount(d domain.Difficulty) int {
	if d == domain.DifficultyHard {
		return 2
	}
	return 1
}

const (
	minTimeLimit   = 25
	timeLimitSlack = 10
)

// Generator builds orders from a catalog.
type Generator struct {
	catalog *recipe.Catalog
	log     *logger.Logger
	newID   func() string
}

// NewGenerator creates a generator over the given catalog.
func NewGenerator(catalog *recipe.Catalog, log *logger.Logger) *Generator {
	return &Generator{
		catalog: catalog,
		log:     log,
		newID:   func() string { return "order_" + uuid.NewString() },
	}
}

// GenerateItem produces one order item. It never fails; an empty catalog
// yields the placeholder dish.
func (g *Generator) GenerateItem(opts Options) domain.OrderItem {
	return g.generateItem(rng.New(opts.Seed), opts)
}

// Generate produces a full order. Items in one order never repeat a dish
// while the menu has enough recipes left.
func (g *Generator) Generate(opts Options) domain.Order {
	count := ItemCount(opts.Difficulty)
	exclude := append([]string(nil), opts.Exclude...)

	var shared *rng.Source
	if opts.Seed == nil {
		shared = rng.New(nil)
	}

	items := make([]domain.OrderItem, 0, count)
	for i := 0; i < count; i++ {
		src := shared
		if src == nil {
			src = rng.Seeded(*opts.Seed + int64(i))
		}
		itemOpts := opts
		itemOpts.Exclude = exclude
		if i > 0 {
			// Rotation only applies to the first dish.
			itemOpts.ForceRecipeID = ""
		}
		item := g.generateItem(src, itemOpts)
		items = append(items, item)
		exclude = append(exclude, item.ID)
	}

	o := domain.Order{ID: g.newID(), Items: items}
	prep := 0
	for _, it := range items {
		o.TotalPrice += it.Price
		o.Complexity += len(it.Ingredients)
		prep += it.PreparationTime
	}
	o.TimeLimit = max(minTimeLimit, prep+timeLimitSlack)

	g.log.Debug("generated order %s: %d items, total=%d, limit=%ds", o.ID, len(items), o.TotalPrice, o.TimeLimit)
	return o
}

func (g *Generator) generateItem(src *rng.Source, opts Options) domain.OrderItem {
	def := g.pick(src, opts)
	if def == nil {
		g.log.Warn("catalog is empty, serving placeholder dish")
		return g.catalog.ToOrderItem(recipe.UnknownDishID)
	}

	mult := Multiplier(opts.Difficulty)
	capab := recipe.CapabilityOf(def.ID)
	drawn := drawRequirements(src, capab.Pool)
	reqs := Resolve(drawn, forcedFor(opts.Archetype, capab, def.Temperature))

	return domain.OrderItem{
		ID:              def.ID,
		Name:            def.Name,
		Ingredients:     adjustIngredients(def.Ingredients, reqs, capab),
		Price:           int(math.Round(float64(def.BasePrice) * mult)),
		PreparationTime: int(math.Round(float64(def.PreparationTime) * mult)),
		Requirements:    reqs,
	}
}

// pick selects the recipe for one item.
func (g *Generator) pick(src *rng.Source, opts Options) *domain.RecipeDefinition {
	if opts.ForceRecipeID != "" {
		if def, ok := g.catalog.Lookup(opts.ForceRecipeID); ok {
			return def
		}
		g.log.Debug("forced recipe %q not in catalog, picking randomly", opts.ForceRecipeID)
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, id := range opts.Exclude {
		excluded[id] = true
	}

	all := g.catalog.All()
	pool := make([]*domain.RecipeDefinition, 0, len(all))
	for _, def := range all {
		if !excluded[def.ID] {
			pool = append(pool, def)
		}
	}
	if len(pool) == 0 {
		pool = all
	}
	if len(pool) == 0 {
		return g.catalog.At(0)
	}
	return pool[src.Intn(0, len(pool)-1)]
}
