package recipe

import "github.com/hammamikhairi/vintagevendor/internal/domain"

// UnknownIngredient is returned by Resolve for ids that are neither in
// the registry nor in the alias table.
var UnknownIngredient = domain.Ingredient{ID: "unknown", Name: "unknown"}

// ingredientTable is the single registry of every ingredient the stall
// stocks, in shelf order.
var ingredientTable = []domain.Ingredient{
	{ID: "bot_ca_phe", Name: "Bột cà phê", Kind: domain.KindPowder, Quantity: 15, Unit: domain.UnitGram},
	{ID: "nuoc_soi", Name: "Nước sôi", Kind: domain.KindLiquid, Quantity: 150, Unit: domain.UnitML},
	{ID: "duong", Name: "Đường", Kind: domain.KindPowder, Quantity: 10, Unit: domain.UnitGram},
	{ID: "dau_nanh", Name: "Đậu nành", Kind: domain.KindSolid, Quantity: 50, Unit: domain.UnitGram},
	{ID: "nuoc", Name: "Nước", Kind: domain.KindLiquid, Quantity: 200, Unit: domain.UnitML},
	{ID: "banh_mi", Name: "Bánh mì", Kind: domain.KindSolid, Quantity: 1, Unit: domain.UnitPiece},
	{ID: "thit_nguoi", Name: "Thịt nguội", Kind: domain.KindSolid, Quantity: 50, Unit: domain.UnitGram},
	{ID: "do_chua", Name: "Đồ chua", Kind: domain.KindSolid, Quantity: 30, Unit: domain.UnitGram},
	{ID: "tuong_ot", Name: "Tương ớt", Kind: domain.KindLiquid, Quantity: 10, Unit: domain.UnitML},
	{ID: "hat_che", Name: "Hạt chè", Kind: domain.KindSolid, Quantity: 50, Unit: domain.UnitGram},
	{ID: "nuoc_duong", Name: "Nước đường", Kind: domain.KindLiquid, Quantity: 150, Unit: domain.UnitML},
	{ID: "da_vien", Name: "Đá viên", Kind: domain.KindSolid, Quantity: 6, Unit: domain.UnitPiece},
	{ID: "thit_xien", Name: "Thịt xiên", Kind: domain.KindSolid, Quantity: 60, Unit: domain.UnitGram},
	{ID: "gia_vi", Name: "Gia vị", Kind: domain.KindPowder, Quantity: 5, Unit: domain.UnitGram},
	{ID: "banh_bo_nguyen_lieu", Name: "Bánh bò", Kind: domain.KindSolid, Quantity: 1, Unit: domain.UnitPiece},
	{ID: "nuoc_cot_dua", Name: "Nước cốt dừa", Kind: domain.KindLiquid, Quantity: 20, Unit: domain.UnitML},
	{ID: "soda", Name: "Soda", Kind: domain.KindLiquid, Quantity: 200, Unit: domain.UnitML},
	{ID: "chanh", Name: "Chanh", Kind: domain.KindSolid, Quantity: 1, Unit: domain.UnitPiece},
	{ID: "ca_vien", Name: "Cá viên", Kind: domain.KindSolid, Quantity: 60, Unit: domain.UnitGram},
	{ID: "dua_leo", Name: "Dưa leo", Kind: domain.KindSolid, Quantity: 20, Unit: domain.UnitGram},
	{ID: "rau_que", Name: "Rau quế", Kind: domain.KindGarnish, Quantity: 5, Unit: domain.UnitGram},
	{ID: "muoi", Name: "Muối", Kind: domain.KindPowder, Quantity: 2, Unit: domain.UnitGram},
	{ID: "tieu", Name: "Tiêu", Kind: domain.KindPowder, Quantity: 2, Unit: domain.UnitGram},
}

// aliases maps generic ids used by requirement rules to stocked ids.
var aliases = map[string]string{
	"ice":    "da_vien",
	"salt":   "muoi",
	"lime":   "chanh",
	"chili":  "tuong_ot",
	"pepper": "tieu",
	"sugar":  "duong",
	"syrup":  "nuoc_duong",
	"basil":  "rau_que",
	"pickle": "do_chua",
}

var ingredientIndex = func() map[string]int {
	m := make(map[string]int, len(ingredientTable))
	for i, ing := range ingredientTable {
		m[ing.ID] = i
	}
	return m
}()

// Ingredients returns a copy of the whole registry in shelf order.
func Ingredients() []domain.Ingredient {
	return append([]domain.Ingredient(nil), ingredientTable...)
}

// LookupIngredient returns the registry entry for id, following the
// alias table when id is a generic name.
func LookupIngredient(id string) (domain.Ingredient, bool) {
	if i, ok := ingredientIndex[id]; ok {
		return ingredientTable[i], true
	}
	if real, ok := aliases[id]; ok {
		if i, ok := ingredientIndex[real]; ok {
			return ingredientTable[i], true
		}
	}
	return domain.Ingredient{}, false
}

// ResolveIngredient is LookupIngredient with the UnknownIngredient sentinel
// in place of the boolean.
func ResolveIngredient(id string) domain.Ingredient {
	if ing, ok := LookupIngredient(id); ok {
		return ing
	}
	return UnknownIngredient
}
