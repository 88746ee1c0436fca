package feature

import (
	"strings"
	"unicode"

	"github.com/rushteam/matchkit/core"
)

// 各字段的同义词映射（小写键）。清洗侧与请求入口共用同一套规则，
// 保证 "low cost"、"online" 这类口语输入在编码前被折叠到规范词表。
var (
	priceSynonyms = map[string]string{
		"low": "Low", "cheap": "Low", "affordable": "Low", "budget": "Low",
		"medium": "Medium", "med": "Medium", "moderate": "Medium",
		"high": "High", "expensive": "High", "premium": "High",
	}
	languageSynonyms = map[string]string{
		"hindi": "Hindi", "english": "English",
		"both": LanguageBoth, "bilingual": LanguageBoth,
		"hindi-english": LanguageBoth, "hindi/english": LanguageBoth, "english/hindi": LanguageBoth,
	}
	locationSynonyms = map[string]string{
		"online": LocationRemote, "virtual": LocationRemote, "anywhere": LocationRemote,
		"remote": LocationRemote,
	}
)

// CollapseSpaces 去除首尾空白并把连续空白折叠为单个空格。
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TitleCase 将空格分隔的每个词首字母大写，其余小写。
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// NormalizeField 把单个字段的原始输入折叠到规范形态：
// 折叠空白 → 同义词映射 → 标题化。空输入原样返回。
func NormalizeField(field, raw string) string {
	v := CollapseSpaces(raw)
	if v == "" {
		return ""
	}
	lower := strings.ToLower(v)
	switch field {
	case core.FieldPriceCategory:
		if mapped, ok := priceSynonyms[lower]; ok {
			return mapped
		}
	case core.FieldLanguageSupport:
		if mapped, ok := languageSynonyms[lower]; ok {
			return mapped
		}
	case core.FieldLocationArea:
		if mapped, ok := locationSynonyms[lower]; ok {
			return mapped
		}
	}
	return TitleCase(v)
}

// NormalizePreference 返回字段全部规范化后的偏好副本。
func NormalizePreference(p *core.Preference) core.Preference {
	return core.Preference{
		BusinessType:    NormalizeField(core.FieldBusinessType, p.BusinessType),
		PriceCategory:   NormalizeField(core.FieldPriceCategory, p.PriceCategory),
		LanguageSupport: NormalizeField(core.FieldLanguageSupport, p.LanguageSupport),
		LocationArea:    NormalizeField(core.FieldLocationArea, p.LocationArea),
	}
}

// NormalizeService 返回类别字段规范化后的服务副本（名称与描述只折叠空白）。
func NormalizeService(s *core.Service) core.Service {
	out := *s
	out.Name = CollapseSpaces(s.Name)
	out.Description = CollapseSpaces(s.Description)
	out.BusinessType = NormalizeField(core.FieldBusinessType, s.BusinessType)
	out.PriceCategory = NormalizeField(core.FieldPriceCategory, s.PriceCategory)
	out.LanguageSupport = NormalizeField(core.FieldLanguageSupport, s.LanguageSupport)
	out.LocationArea = NormalizeField(core.FieldLocationArea, s.LocationArea)
	return out
}
