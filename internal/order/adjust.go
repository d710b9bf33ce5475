package order

import (
	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/recipe"
)

const (
	scaleMore = 1.5
	scaleLess = 0.5
)

// adjustIngredients returns a copy of base modified to satisfy reqs.
// Ingredients that do not resolve in the registry are dropped.
func adjustIngredients(base []domain.Ingredient, reqs []domain.Requirement, capab recipe.Capability) []domain.Ingredient {
	out := make([]domain.Ingredient, 0, len(base)+2)
	for _, ing := range base {
		if _, ok := recipe.LookupIngredient(ing.ID); ok {
			out = append(out, ing)
		}
	}

	// Additions and scaling first so removals always have the last word.
	for _, r := range reqs {
		switch r {
		case domain.ReqExtraIce:
			out = ensure(out, "ice")
			out = scale(out, "ice", scaleMore)
		case domain.ReqLessIce:
			out = scale(out, "ice", scaleLess)
		case domain.ReqCold:
			if capab.Iced {
				out = ensure(out, "ice")
			}
		case domain.ReqExtraLime:
			out = ensure(out, "lime")
			out = scale(out, "lime", scaleMore)
		case domain.ReqLessSalt:
			out = scale(out, "salt", scaleLess)
		case domain.ReqLessSeasoning:
			out = scale(out, "gia_vi", scaleLess)
		case domain.ReqLessPepper:
			out = scale(out, "pepper", scaleLess)
		case domain.ReqExtraChili:
			out = ensure(out, "chili")
			out = scale(out, "chili", scaleMore)
		case domain.ReqLessChili:
			out = scale(out, "chili", scaleLess)
		case domain.ReqSpicy:
			out = ensure(out, "chili")
		case domain.ReqExtraCucumber:
			out = ensure(out, "dua_leo")
			out = scale(out, "dua_leo", scaleMore)
		case domain.ReqExtraPickles:
			out = ensure(out, "pickle")
			out = scale(out, "pickle", scaleMore)
		case domain.ReqLessSweet:
			out = scale(out, "sugar", scaleLess)
			out = scale(out, "syrup", scaleLess)
		}
	}
	for _, r := range reqs {
		switch r {
		case domain.ReqNoIce, domain.ReqHot:
			out = remove(out, "ice")
		case domain.ReqNoSalt:
			out = remove(out, "salt")
		case domain.ReqNotSpicy:
			out = remove(out, "chili", "pepper")
		case domain.ReqNoGreens:
			out = remove(out, "basil")
		}
	}
	return out
}

func resolvedID(id string) string {
	if ing, ok := recipe.LookupIngredient(id); ok {
		return ing.ID
	}
	return ""
}

// ensure appends the registry entry for id unless an equivalent ingredient
// is already present. Unknown ids are ignored.
func ensure(list []domain.Ingredient, id string) []domain.Ingredient {
	ing, ok := recipe.LookupIngredient(id)
	if !ok {
		return list
	}
	for _, have := range list {
		if have.ID == ing.ID {
			return list
		}
	}
	return append(list, ing)
}

func scale(list []domain.Ingredient, id string, factor float64) []domain.Ingredient {
	target := resolvedID(id)
	for i := range list {
		if list[i].ID == target {
			list[i].Quantity *= factor
		}
	}
	return list
}

func remove(list []domain.Ingredient, ids ...string) []domain.Ingredient {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if t := resolvedID(id); t != "" {
			drop[t] = true
		}
	}
	out := list[:0]
	for _, ing := range list {
		if !drop[ing.ID] {
			out = append(out, ing)
		}
	}
	return out
}
