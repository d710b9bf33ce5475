package recipe

import "github.com/hammamikhairi/vintagevendor/internal/domain"

// Capability describes which requirements a dish can take.
type Capability struct {
	// Pool is the set of requirements a customer may randomly ask for.
	Pool []domain.Requirement
	// Spicy dishes can be ordered spicy or not spicy.
	Spicy bool
	// Temperature dishes can be served either hot or cold.
	Temperature bool
	// Iced dishes can hold ice.
	Iced bool
}

var capabilities = map[string]Capability{
	"cafe_vot": {
		Pool:        []domain.Requirement{domain.ReqLessSweet, domain.ReqHot, domain.ReqCold},
		Temperature: true,
		Iced:        true,
	},
	"sua_dau_nanh": {
		Pool:        []domain.Requirement{domain.ReqLessSweet, domain.ReqHot, domain.ReqCold},
		Temperature: true,
		Iced:        true,
	},
	"banh_mi_thit": {
		Pool:  []domain.Requirement{domain.ReqLessChili, domain.ReqExtraPickles, domain.ReqNotSpicy},
		Spicy: true,
	},
	"che": {
		Pool:        []domain.Requirement{domain.ReqLessSweet, domain.ReqExtraIce, domain.ReqNoIce},
		Temperature: true,
		Iced:        true,
	},
	"xien_que": {
		Pool:  []domain.Requirement{domain.ReqLessSeasoning},
		Spicy: true,
	},
	"banh_bo": {},
	"soda_da_chanh": {
		Pool: []domain.Requirement{domain.ReqLessIce, domain.ReqExtraLime, domain.ReqNoIce, domain.ReqExtraIce},
		Iced: true,
	},
	"soda_chai": {
		Pool: []domain.Requirement{domain.ReqChilled, domain.ReqNoIce},
	},
	"xien_que_tuong_ot": {
		Pool:  []domain.Requirement{domain.ReqLessPepper, domain.ReqExtraChili, domain.ReqSpicy, domain.ReqNotSpicy},
		Spicy: true,
	},
	"ca_vien_chien": {
		Pool:  []domain.Requirement{domain.ReqNoGreens, domain.ReqExtraCucumber},
		Spicy: true,
	},
	"soda_chanh_muoi": {
		Pool: []domain.Requirement{domain.ReqLessIce, domain.ReqLessSalt, domain.ReqExtraLime, domain.ReqNoSalt},
		Iced: true,
	},
}

// CapabilityOf returns the capability entry for a recipe id. Unknown ids
// get the zero Capability (empty pool, no flags).
func CapabilityOf(id string) Capability {
	c := capabilities[id]
	c.Pool = append([]domain.Requirement(nil), c.Pool...)
	return c
}
