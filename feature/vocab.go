package feature

// 清洗后目录允许出现的规范取值。
// 编码词表由 Fit 从数据观测得到，这里的列表服务于清洗校验与示例数据。
const (
	// Unknown 是清洗侧对缺失类别的统一填充值。
	Unknown = "Unknown"
	// LanguageBoth 表示服务同时支持两种语言，可覆盖任意单语言偏好。
	LanguageBoth = "Both"
	// LocationRemote 表示线上/远程服务，不绑定具体城市。
	LocationRemote = "Remote"
)

// BusinessTypes 返回规范的业务类型词表。
func BusinessTypes() []string {
	return []string{
		"Retail", "Restaurant", "Healthcare", "Education", "Technology",
		"Manufacturing", "Real Estate", "Hospitality", "Finance", "Consulting",
	}
}

// PriceCategories 返回价格档位词表，顺序即档位次序（Low < Medium < High）。
func PriceCategories() []string {
	return []string{"Low", "Medium", "High"}
}

// Languages 返回语言支持词表。
func Languages() []string {
	return []string{"Hindi", "English", LanguageBoth}
}

// LocationAreas 返回示例数据使用的服务区域词表。
// 真实目录的区域词表以 Fit 观测为准，不受此列表限制。
func LocationAreas() []string {
	return []string{
		"Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata",
		"Hyderabad", "Pune", "Ahmedabad", LocationRemote,
	}
}

// PriceRank 返回价格档位的序（Low=0, Medium=1, High=2），未知档位返回 -1。
// 加权打分用它判断相邻档位（|rank 差|==1）给部分分。
func PriceRank(category string) int {
	switch category {
	case "Low":
		return 0
	case "Medium":
		return 1
	case "High":
		return 2
	default:
		return -1
	}
}

// PriceAdjacent 判断两个价格档位是否相邻（Low↔Medium、Medium↔High）。
func PriceAdjacent(a, b string) bool {
	ra, rb := PriceRank(a), PriceRank(b)
	if ra < 0 || rb < 0 {
		return false
	}
	diff := ra - rb
	return diff == 1 || diff == -1
}

// LanguageCovers 判断服务语言是否能覆盖偏好语言。
// 服务为 Both 时覆盖任意偏好；方向相反（偏好 Both、服务单语言）不算覆盖。
func LanguageCovers(serviceLang, prefLang string) bool {
	if serviceLang == prefLang {
		return true
	}
	return serviceLang == LanguageBoth && prefLang != "" && prefLang != Unknown
}
