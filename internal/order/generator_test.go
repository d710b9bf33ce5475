package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
	"github.com/hammamikhairi/vintagevendor/internal/recipe"
)

func newTestGenerator() *Generator {
	log := logger.New(logger.LevelOff, nil)
	return NewGenerator(recipe.NewCatalog(log), log)
}

func seed(n int64) *int64 { return &n }

func TestGenerateShapeByDifficulty(t *testing.T) {
	g := newTestGenerator()

	tests := []struct {
		difficulty domain.Difficulty
		wantItems  int
	}{
		{domain.DifficultyEasy, 1},
		{domain.DifficultyMedium, 1},
		{domain.DifficultyHard, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			for s := int64(0); s < 200; s++ {
				o := g.Generate(Options{Difficulty: tt.difficulty, Seed: seed(s)})
				require.Len(t, o.Items, tt.wantItems)
				assert.GreaterOrEqual(t, o.TimeLimit, 25)

				seen := map[string]bool{}
				total, complexity, prep := 0, 0, 0
				for _, it := range o.Items {
					assert.False(t, seen[it.ID], "dish %s repeated in one order", it.ID)
					seen[it.ID] = true
					total += it.Price
					complexity += len(it.Ingredients)
					prep += it.PreparationTime
				}
				assert.Equal(t, total, o.TotalPrice)
				assert.Equal(t, complexity, o.Complexity)
				assert.Equal(t, max(25, prep+10), o.TimeLimit)
			}
		})
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	g := newTestGenerator()
	a := g.Generate(Options{Difficulty: domain.DifficultyHard, Seed: seed(42), Archetype: domain.ArchStudent})
	b := g.Generate(Options{Difficulty: domain.DifficultyHard, Seed: seed(42), Archetype: domain.ArchStudent})

	assert.Equal(t, a.Items, b.Items)
	assert.Equal(t, a.TotalPrice, b.TotalPrice)
	assert.NotEqual(t, a.ID, b.ID, "order ids are unique even for equal seeds")
}

func TestDifficultyMultiplier(t *testing.T) {
	g := newTestGenerator()

	tests := []struct {
		difficulty domain.Difficulty
		wantPrice  int
		wantPrep   int
	}{
		{domain.DifficultyEasy, 10800, 16},   // 12000*0.9, 18*0.9=16.2
		{domain.DifficultyMedium, 12000, 18}, // unchanged
		{domain.DifficultyHard, 13800, 21},   // 12000*1.15, 18*1.15=20.7
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			it := g.GenerateItem(Options{Difficulty: tt.difficulty, Seed: seed(1), ForceRecipeID: "cafe_vot"})
			assert.Equal(t, "cafe_vot", it.ID)
			assert.Equal(t, tt.wantPrice, it.Price)
			assert.Equal(t, tt.wantPrep, it.PreparationTime)
		})
	}
}

func TestForcedRecipeBeatsExclusion(t *testing.T) {
	g := newTestGenerator()
	it := g.GenerateItem(Options{
		Seed:          seed(3),
		Exclude:       []string{"che"},
		ForceRecipeID: "che",
	})
	assert.Equal(t, "che", it.ID)
}

func TestUnknownForcedRecipeFallsBack(t *testing.T) {
	g := newTestGenerator()
	it := g.GenerateItem(Options{Seed: seed(3), ForceRecipeID: "pho_bo"})
	_, ok := g.catalog.Lookup(it.ID)
	assert.True(t, ok)
}

func TestExclusionRespected(t *testing.T) {
	g := newTestGenerator()
	all := g.catalog.IDs()
	keep := "banh_bo"

	var exclude []string
	for _, id := range all {
		if id != keep {
			exclude = append(exclude, id)
		}
	}
	for s := int64(0); s < 20; s++ {
		it := g.GenerateItem(Options{Seed: seed(s), Exclude: exclude})
		assert.Equal(t, keep, it.ID)
	}

	// Excluding everything falls back to the full menu.
	it := g.GenerateItem(Options{Seed: seed(9), Exclude: all})
	assert.Contains(t, all, it.ID)
}

func TestEmptyCatalogYieldsPlaceholder(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	g := NewGenerator(recipe.NewCatalogFrom(log, nil), log)

	o := g.Generate(Options{Difficulty: domain.DifficultyHard, Seed: seed(1)})
	require.Len(t, o.Items, 2)
	assert.Equal(t, recipe.UnknownDishID, o.Items[0].ID)
	assert.Equal(t, 25, o.TimeLimit)
}

func TestRequirementsStayInPoolAndGroups(t *testing.T) {
	g := newTestGenerator()
	archetypes := append([]domain.Archetype{""}, domain.Archetypes...)

	for _, arch := range archetypes {
		for s := int64(0); s < 300; s++ {
			o := g.Generate(Options{Difficulty: domain.DifficultyHard, Seed: seed(s), Archetype: arch})
			for _, it := range o.Items {
				groups := map[string]int{}
				for _, r := range it.Requirements {
					if name, _, ok := r.Group(); ok {
						groups[name]++
					}
				}
				for name, n := range groups {
					assert.LessOrEqual(t, n, 1, "group %s on %s (%v)", name, it.ID, it.Requirements)
				}
				hot := contains(it.Requirements, domain.ReqHot)
				iceQty := contains(it.Requirements, domain.ReqExtraIce) || contains(it.Requirements, domain.ReqLessIce)
				assert.False(t, hot && iceQty, "hot with ice on %s", it.ID)
			}
		}
	}
}

func TestElderlyForcing(t *testing.T) {
	g := newTestGenerator()
	for s := int64(0); s < 50; s++ {
		it := g.GenerateItem(Options{Seed: seed(s), Archetype: domain.ArchElderly, ForceRecipeID: "xien_que_tuong_ot"})
		assert.Contains(t, it.Requirements, domain.ReqNotSpicy)
		assert.NotContains(t, it.Requirements, domain.ReqSpicy)
		for _, ing := range it.Ingredients {
			assert.NotEqual(t, "tuong_ot", ing.ID)
			assert.NotEqual(t, "tieu", ing.ID)
		}

		it = g.GenerateItem(Options{Seed: seed(s), Archetype: domain.ArchElderly, ForceRecipeID: "che"})
		assert.Contains(t, it.Requirements, domain.ReqHot)
		for _, ing := range it.Ingredients {
			assert.NotEqual(t, "da_vien", ing.ID, "hot chè keeps no ice")
		}
	}
}

func TestStudentForcing(t *testing.T) {
	g := newTestGenerator()
	for s := int64(0); s < 50; s++ {
		it := g.GenerateItem(Options{Seed: seed(s), Archetype: domain.ArchStudent, ForceRecipeID: "soda_da_chanh"})
		assert.Contains(t, it.Requirements, domain.ReqExtraIce)
		ice := findIngredient(it.Ingredients, "da_vien")
		require.NotNil(t, ice)
		assert.InDelta(t, 9.0, ice.Quantity, 1e-9)

		it = g.GenerateItem(Options{Seed: seed(s), Archetype: domain.ArchStudent, ForceRecipeID: "banh_mi_thit"})
		assert.Contains(t, it.Requirements, domain.ReqSpicy)
		assert.NotContains(t, it.Requirements, domain.ReqNotSpicy)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		drawn  []domain.Requirement
		forced []domain.Requirement
		want   []domain.Requirement
	}{
		{
			name:  "first declared wins among drawn",
			drawn: []domain.Requirement{domain.ReqSpicy, domain.ReqNotSpicy},
			want:  []domain.Requirement{domain.ReqNotSpicy},
		},
		{
			name:   "forced beats drawn",
			drawn:  []domain.Requirement{domain.ReqNotSpicy, domain.ReqLessPepper},
			forced: []domain.Requirement{domain.ReqSpicy},
			want:   []domain.Requirement{domain.ReqLessPepper, domain.ReqSpicy},
		},
		{
			name:   "forced already drawn is not duplicated",
			drawn:  []domain.Requirement{domain.ReqHot, domain.ReqCold},
			forced: []domain.Requirement{domain.ReqCold},
			want:   []domain.Requirement{domain.ReqCold},
		},
		{
			name:   "hot drops drawn extra ice",
			drawn:  []domain.Requirement{domain.ReqExtraIce},
			forced: []domain.Requirement{domain.ReqHot},
			want:   []domain.Requirement{domain.ReqHot},
		},
		{
			name:   "forced less ice drops drawn hot",
			drawn:  []domain.Requirement{domain.ReqHot},
			forced: []domain.Requirement{domain.ReqLessIce},
			want:   []domain.Requirement{domain.ReqLessIce},
		},
		{
			name:   "not spicy drops extra chili",
			drawn:  []domain.Requirement{domain.ReqExtraChili, domain.ReqLessPepper},
			forced: []domain.Requirement{domain.ReqNotSpicy},
			want:   []domain.Requirement{domain.ReqLessPepper, domain.ReqNotSpicy},
		},
		{
			name:  "no ice and hot coexist",
			drawn: []domain.Requirement{domain.ReqNoIce, domain.ReqHot},
			want:  []domain.Requirement{domain.ReqNoIce, domain.ReqHot},
		},
		{
			name:  "ungrouped kept in order",
			drawn: []domain.Requirement{domain.ReqExtraLime, domain.ReqNoSalt, domain.ReqLessSalt},
			want:  []domain.Requirement{domain.ReqExtraLime, domain.ReqNoSalt},
		},
		{
			name: "empty",
			want: []domain.Requirement{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.drawn, tt.forced))
		})
	}
}

func TestAdjustIngredients(t *testing.T) {
	base := []domain.Ingredient{
		recipe.ResolveIngredient("soda"),
		recipe.ResolveIngredient("chanh"),
		recipe.ResolveIngredient("muoi"),
		{ID: "mystery", Name: "???", Quantity: 1},
	}

	got := adjustIngredients(base, []domain.Requirement{domain.ReqNoSalt, domain.ReqExtraLime, domain.ReqExtraIce}, recipe.CapabilityOf("soda_chanh_muoi"))

	ids := make([]string, len(got))
	for i, ing := range got {
		ids[i] = ing.ID
	}
	assert.Equal(t, []string{"soda", "chanh", "da_vien"}, ids)
	assert.InDelta(t, 1.5, got[1].Quantity, 1e-9)
	assert.InDelta(t, 9.0, got[2].Quantity, 1e-9)

	// The base list is untouched.
	assert.Equal(t, "muoi", base[2].ID)
	assert.InDelta(t, 1.0, base[1].Quantity, 1e-9)
}

func contains(reqs []domain.Requirement, r domain.Requirement) bool {
	for _, x := range reqs {
		if x == r {
			return true
		}
	}
	return false
}

func findIngredient(list []domain.Ingredient, id string) *domain.Ingredient {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}
