package outfit

import "strings"

// 目录库与规划器共用的规范品类集合
const (
	CategoryTop         = "top"
	CategoryBottom      = "bottom"
	CategoryDresses     = "dresses"
	CategoryOuterwear   = "outerwear"
	CategorySwimwear    = "swimwear"
	CategoryShoes       = "shoes"
	CategoryAccessories = "accessories"
)

// Categories 规范品类的固定枚举顺序
var Categories = []string{
	CategoryTop,
	CategoryBottom,
	CategoryDresses,
	CategoryOuterwear,
	CategorySwimwear,
	CategoryShoes,
	CategoryAccessories,
}

// 常见别名与单复数变体, 统一落到规范品类上
var categoryAliases = map[string]string{
	"top":         CategoryTop,
	"tops":        CategoryTop,
	"bottom":      CategoryBottom,
	"bottoms":     CategoryBottom,
	"pants":       CategoryBottom,
	"trousers":    CategoryBottom,
	"jeans":       CategoryBottom,
	"skirt":       CategoryBottom,
	"skirts":      CategoryBottom,
	"dress":       CategoryDresses,
	"dresses":     CategoryDresses,
	"outerwear":   CategoryOuterwear,
	"coat":        CategoryOuterwear,
	"coats":       CategoryOuterwear,
	"jacket":      CategoryOuterwear,
	"jackets":     CategoryOuterwear,
	"swimwear":    CategorySwimwear,
	"swimsuit":    CategorySwimwear,
	"swimsuits":   CategorySwimwear,
	"shoe":        CategoryShoes,
	"shoes":       CategoryShoes,
	"footwear":    CategoryShoes,
	"accessory":   CategoryAccessories,
	"accessories": CategoryAccessories,
}

// NormalizeCategory 将自由文本的品类标签归一化到规范集合
func NormalizeCategory(label string) (string, bool) {
	canonical, ok := categoryAliases[strings.ToLower(strings.TrimSpace(label))]
	return canonical, ok
}

// IsCanonicalCategory 判断标签是否已经是规范品类
func IsCanonicalCategory(label string) bool {
	for _, c := range Categories {
		if c == label {
			return true
		}
	}
	return false
}
