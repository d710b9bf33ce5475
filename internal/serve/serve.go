// Package serve checks what the player hands over against an order item
// and scores the result. Everything here is a pure function.
package serve

import (
	"math"
	"slices"
	"strings"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/recipe"
)

// Score constants.
const (
	baseScore          = 100
	perIngredientScore = 20
	timeBonusRate      = 0.5
	comboStep          = 0.1
	penaltyRate        = 0.1
)

// Result is the outcome of a serve check. Missing and Extra hold
// lower-cased ingredient names.
type Result struct {
	OK      bool
	Missing []string
	Extra   []string
}

// Validate compares ingredient names case-insensitively. The serve is OK
// only on an exact set match: a superset fails just like a subset.
func Validate(expected domain.OrderItem, provided []domain.Ingredient) Result {
	want := nameSet(expected.Ingredients)
	got := nameSet(provided)

	var res Result
	for _, n := range sortedKeys(want) {
		if !got[n] {
			res.Missing = append(res.Missing, n)
		}
	}
	for _, n := range sortedKeys(got) {
		if !want[n] {
			res.Extra = append(res.Extra, n)
		}
	}
	res.OK = len(res.Missing) == 0 && len(res.Extra) == 0
	return res
}

// Score returns the points for a correct serve:
// round((100 + 20*ingredients + round(time*0.5)) * comboMultiplier).
func Score(item domain.OrderItem, timeRemaining, combo int) int {
	base := baseScore + perIngredientScore*len(item.Ingredients)
	bonus := int(math.Round(float64(max(0, timeRemaining)) * timeBonusRate))
	mult := 1.0
	if combo > 0 {
		mult = 1 + float64(combo)*comboStep
	}
	return int(math.Round(float64(base+bonus) * mult))
}

// Penalty is the coin deduction for a wrong serve on an order worth total.
func Penalty(total int) int {
	return max(0, int(math.Round(float64(total)*penaltyRate)))
}

// ProvidedFromSelection resolves every selected id through the ingredient
// registry, aliases included. Ids the registry does not know are dropped.
func ProvidedFromSelection(selected []string) []domain.Ingredient {
	out := make([]domain.Ingredient, 0, len(selected))
	for _, id := range selected {
		ing := recipe.ResolveIngredient(strings.ToLower(strings.TrimSpace(id)))
		if ing.ID == recipe.UnknownIngredient.ID {
			continue
		}
		out = append(out, ing)
	}
	return out
}

// Combined folds every item of o into one item holding the union of their
// ingredients, so a multi-dish order is checked against a single tray.
func Combined(o domain.Order) domain.OrderItem {
	if len(o.Items) == 1 {
		return o.Items[0]
	}
	var all domain.OrderItem
	for _, item := range o.Items {
		all.Ingredients = append(all.Ingredients, item.Ingredients...)
	}
	return all
}

// CompileDish finds the recipe whose ingredient id set equals the
// selection. Order and duplicates in the selection do not matter.
func CompileDish(catalog *recipe.Catalog, selected []string) (*domain.RecipeDefinition, bool) {
	if len(selected) == 0 {
		return nil, false
	}
	sel := dedupSorted(selected)
	for _, def := range catalog.All() {
		if slices.Equal(dedupSorted(def.IngredientIDs()), sel) {
			return def, true
		}
	}
	return nil, false
}

func nameSet(list []domain.Ingredient) map[string]bool {
	m := make(map[string]bool, len(list))
	for _, ing := range list {
		m[strings.ToLower(ing.Name)] = true
	}
	return m
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func dedupSorted(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
