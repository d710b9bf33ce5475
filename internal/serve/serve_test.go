package serve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
	"github.com/hammamikhairi/vintagevendor/internal/recipe"
)

func ings(names ...string) []domain.Ingredient {
	out := make([]domain.Ingredient, len(names))
	for i, n := range names {
		out[i] = domain.Ingredient{ID: n, Name: n}
	}
	return out
}

func TestValidate(t *testing.T) {
	item := domain.OrderItem{ID: "cafe_vot", Ingredients: ings("nuoc_soi", "bot_ca_phe")}

	tests := []struct {
		name        string
		provided    []domain.Ingredient
		wantOK      bool
		wantMissing []string
		wantExtra   []string
	}{
		{"exact any order", ings("bot_ca_phe", "nuoc_soi"), true, nil, nil},
		{"case insensitive", ings("BOT_CA_PHE", "Nuoc_Soi"), true, nil, nil},
		{"subset", ings("bot_ca_phe"), false, []string{"nuoc_soi"}, nil},
		{"superset", ings("bot_ca_phe", "nuoc_soi", "duong"), false, nil, []string{"duong"}},
		{"disjoint", ings("soda"), false, []string{"bot_ca_phe", "nuoc_soi"}, []string{"soda"}},
		{"nothing", nil, false, []string{"bot_ca_phe", "nuoc_soi"}, nil},
		{"duplicates collapse", ings("nuoc_soi", "bot_ca_phe", "nuoc_soi"), true, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(item, tt.provided)
			assert.Equal(t, tt.wantOK, res.OK)
			assert.Equal(t, tt.wantMissing, res.Missing)
			assert.Equal(t, tt.wantExtra, res.Extra)
		})
	}
}

func TestScore(t *testing.T) {
	three := domain.OrderItem{Ingredients: ings("a", "b", "c")}

	tests := []struct {
		name  string
		time  int
		combo int
		want  int
	}{
		{"worked example", 20, 2, 204},
		{"no combo", 20, 0, 170},
		{"no time", 0, 0, 160},
		{"negative time clamps", -10, 0, 160},
		{"odd time rounds half up", 3, 0, 162},
		{"combo one", 0, 1, 176},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(three, tt.time, tt.combo))
		})
	}
}

func TestPenalty(t *testing.T) {
	assert.Equal(t, 1200, Penalty(12000))
	assert.Equal(t, 1380, Penalty(13800))
	assert.Equal(t, 1, Penalty(5))
	assert.Equal(t, 0, Penalty(0))
	assert.Equal(t, 0, Penalty(-100))
}

func TestProvidedFromSelection(t *testing.T) {
	got := ProvidedFromSelection([]string{"da_vien", " Soda ", "lime", "phở"})
	require.Len(t, got, 3, "unknown ids are dropped")
	assert.Equal(t, "da_vien", got[0].ID)
	assert.Equal(t, "soda", got[1].ID)
	assert.Equal(t, "chanh", got[2].ID, "aliases resolve")
}

func TestSelectionMustMatchExactly(t *testing.T) {
	catalog := recipe.NewCatalog(logger.New(logger.LevelOff, nil))
	item := catalog.ToOrderItem("soda_da_chanh")
	exact := []string{"soda", "chanh", "da_vien"}

	assert.True(t, Validate(item, ProvidedFromSelection(exact)).OK)

	res := Validate(item, ProvidedFromSelection(append(exact, "muoi")))
	assert.False(t, res.OK, "superset")
	assert.Equal(t, []string{"muối"}, res.Extra)

	var everything []string
	for _, ing := range recipe.Ingredients() {
		everything = append(everything, ing.ID)
	}
	assert.False(t, Validate(item, ProvidedFromSelection(everything)).OK, "whole shelf")
}

func TestCombined(t *testing.T) {
	single := domain.OrderItem{ID: "che", Ingredients: ings("hat_che")}
	assert.Equal(t, single, Combined(domain.Order{Items: []domain.OrderItem{single}}))

	pair := Combined(domain.Order{Items: []domain.OrderItem{
		{ID: "banh_bo", Ingredients: ings("banh_bo_nguyen_lieu")},
		{ID: "soda_chai", Ingredients: ings("soda")},
	}})
	assert.True(t, Validate(pair, ings("soda", "banh_bo_nguyen_lieu")).OK)
	assert.Equal(t, []string{"soda"}, Validate(pair, ings("banh_bo_nguyen_lieu")).Missing)
}

func TestCompileDish(t *testing.T) {
	catalog := recipe.NewCatalog(logger.New(logger.LevelOff, nil))

	def, ok := CompileDish(catalog, []string{"duong", "bot_ca_phe", "nuoc_soi"})
	require.True(t, ok)
	assert.Equal(t, "cafe_vot", def.ID)

	def, ok = CompileDish(catalog, []string{"soda", "soda"})
	require.True(t, ok)
	assert.Equal(t, "soda_chai", def.ID)

	_, ok = CompileDish(catalog, []string{"soda", "muoi"})
	assert.False(t, ok)

	_, ok = CompileDish(catalog, nil)
	assert.False(t, ok)
}
