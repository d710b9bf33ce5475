package recipe

// Category groups ingredients on the stall's shelves.
type Category string

const (
	CategoryBase    Category = "base"
	CategoryProtein Category = "protein"
	CategoryLiquid  Category = "liquid"
	CategoryTopping Category = "topping"
	CategorySpices  Category = "spices"
)

// Categories lists the shelf categories in display order.
var Categories = []Category{CategoryBase, CategoryProtein, CategoryLiquid, CategoryTopping, CategorySpices}

var categoryMembers = map[Category][]string{
	CategoryBase:    {"banh_mi", "banh_bo_nguyen_lieu", "dau_nanh"},
	CategoryProtein: {"thit_nguoi", "thit_xien", "ca_vien"},
	CategoryLiquid:  {"nuoc", "nuoc_soi", "nuoc_duong", "nuoc_cot_dua", "soda", "tuong_ot"},
	CategoryTopping: {"do_chua", "hat_che", "da_vien", "chanh", "dua_leo", "rau_que"},
	CategorySpices:  {"duong", "gia_vi", "bot_ca_phe", "muoi", "tieu"},
}

// Members returns the ingredient ids shelved under c.
func Members(c Category) []string {
	return append([]string(nil), categoryMembers[c]...)
}

// CategoryOf returns the shelf category of an ingredient id.
func CategoryOf(id string) (Category, bool) {
	for _, c := range Categories {
		for _, m := range categoryMembers[c] {
			if m == id {
				return c, true
			}
		}
	}
	return "", false
}
