// Package explain 生成推荐结果的自然语言解释。
//
// 解释基于未编码的原始记录逐字段对比（精确命中、相邻价位、语言覆盖、
// 远程兜底），再拼接描述摘要与服务亮点。措辞模板按质量档分组，
// 低档模板保守、高档模板肯定；同一输入永远产出同一句话：
// 模板轮换只取决于输入的哈希，不存在随机源。
package explain

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/feature"
)

// DefaultPerfectScore 是"完美匹配"开场白的分数门槛（High 档内的细分）。
const DefaultPerfectScore = 0.9

// 按质量档分组的开场白模板。
var (
	perfectTemplates = []string{
		"Perfect match! This service aligns perfectly with all your requirements.",
		"Excellent choice! Matches all your specified preferences.",
		"Outstanding fit! This service meets every criterion you specified.",
	}
	highTemplates = []string{
		"Great match! This service strongly aligns with your needs.",
		"Highly recommended! Closely matches your business requirements.",
		"Excellent fit! This service is well-suited for your preferences.",
	}
	mediumTemplates = []string{
		"Good option! This service meets most of your requirements.",
		"Solid choice! Aligns well with your key preferences.",
		"Recommended! A good fit for your business needs.",
	}
	lowTemplates = []string{
		"Alternative option that might work for your needs.",
		"Consider this service as a potential alternative.",
		"May be worth exploring based on partial matches.",
	}
)

// fieldPhrases 是字段在解释文案中的称呼。
var fieldPhrases = map[string]string{
	core.FieldBusinessType:    "business type",
	core.FieldPriceCategory:   "budget range",
	core.FieldLanguageSupport: "language preference",
	core.FieldLocationArea:    "location requirement",
}

// Generator 生成单条推荐的解释文本。
// 方法无共享可变状态，可被并发调用。
type Generator struct {
	// PerfectScore 是 High 档内启用完美匹配措辞的分数下界，<=0 时取默认值。
	PerfectScore float64
}

func NewGenerator() *Generator {
	return &Generator{PerfectScore: DefaultPerfectScore}
}

// Explain 为一条推荐生成解释。
// pref/svc 必须是未编码的原始记录：解释要引用原值与描述文本，而不是编码向量。
func (g *Generator) Explain(pref *core.Preference, svc *core.Service, score float64, tier core.Tier) string {
	if svc == nil {
		return ""
	}

	parts := make([]string, 0, 4)

	group := g.templateGroup(tier, score)
	parts = append(parts, group[templateIndex(pref, svc, len(group))])

	exact, partial := fieldVerdicts(pref, svc)
	if text := matchText(exact); text != "" {
		parts = append(parts, text)
	}
	parts = append(parts, partial...)

	if insight := descriptionInsight(svc.Description); insight != "" {
		parts = append(parts, insight)
	}

	if hl := highlights(pref, svc); hl != "" {
		parts = append(parts, hl)
	}

	return strings.Join(parts, " ")
}

// templateGroup 按档位选模板组；High 档内分数达到 PerfectScore 用完美匹配组。
func (g *Generator) templateGroup(tier core.Tier, score float64) []string {
	perfect := g.PerfectScore
	if perfect <= 0 {
		perfect = DefaultPerfectScore
	}
	switch tier {
	case core.TierHigh:
		if score >= perfect {
			return perfectTemplates
		}
		return highTemplates
	case core.TierMedium:
		return mediumTemplates
	default:
		return lowTemplates
	}
}

// templateIndex 由输入哈希出模板下标：同一 (偏好, 服务) 永远选中同一条模板。
func templateIndex(pref *core.Preference, svc *core.Service, n int) int {
	if n <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(svc.ID))
	if pref != nil {
		for _, v := range []string{pref.BusinessType, pref.PriceCategory, pref.LanguageSupport, pref.LocationArea} {
			h.Write([]byte{'|'})
			h.Write([]byte(v))
		}
	}
	return int(h.Sum32() % uint32(n))
}

type exactMatch struct {
	phrase string
	value  string
}

// fieldVerdicts 逐字段对比偏好与服务记录。
// 返回精确命中列表与部分命中的描述句（相邻价位、语言覆盖、远程兜底）。
// 偏好侧为空或 Unknown 的字段不参与对比。
func fieldVerdicts(pref *core.Preference, svc *core.Service) ([]exactMatch, []string) {
	if pref == nil {
		return nil, nil
	}

	var exact []exactMatch
	var partial []string

	for _, field := range core.FieldOrder() {
		pv := feature.NormalizeField(field, pref.Field(field))
		if pv == "" || pv == feature.Unknown {
			continue
		}
		sv := feature.NormalizeField(field, svc.Field(field))

		if sv == pv {
			exact = append(exact, exactMatch{phrase: fieldPhrases[field], value: svc.Field(field)})
			continue
		}

		switch field {
		case core.FieldPriceCategory:
			if feature.PriceAdjacent(sv, pv) {
				partial = append(partial, "Different price tier, but still relevant.")
			}
		case core.FieldLanguageSupport:
			if feature.LanguageCovers(sv, pv) {
				partial = append(partial, "Supports both languages, covering your language preference.")
			}
		case core.FieldLocationArea:
			if sv == feature.LocationRemote {
				partial = append(partial, "Remote service, available regardless of your location.")
			}
		}
	}
	return exact, partial
}

// matchText 把精确命中聚合成一句话。
func matchText(exact []exactMatch) string {
	switch len(exact) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Matches your %s requirement (%s).", exact[0].phrase, exact[0].value)
	case 2:
		return fmt.Sprintf("Matches your %s and %s requirements.", exact[0].phrase, exact[1].phrase)
	default:
		phrases := make([]string, 0, len(exact)-1)
		for _, m := range exact[:len(exact)-1] {
			phrases = append(phrases, m.phrase)
		}
		return fmt.Sprintf("Matches your %s, and %s requirements.",
			strings.Join(phrases, ", "), exact[len(exact)-1].phrase)
	}
}

// descriptionInsight 从服务描述提炼摘要：
// 超过 100 字符截取前 80 字符；20~100 字符原样引用；太短不引用。
func descriptionInsight(desc string) string {
	d := strings.TrimSpace(desc)
	runes := []rune(d)
	switch {
	case len(runes) > 100:
		return "Specializes in " + string(runes[:80]) + "..."
	case len(runes) > 20:
		return d
	default:
		return ""
	}
}

// highlights 生成服务亮点：价位、双语、远程/本地。
func highlights(pref *core.Preference, svc *core.Service) string {
	var hl []string

	switch feature.NormalizeField(core.FieldPriceCategory, svc.PriceCategory) {
	case "Low":
		hl = append(hl, "cost-effective solution")
	case "High":
		hl = append(hl, "premium quality service")
	}

	if feature.NormalizeField(core.FieldLanguageSupport, svc.LanguageSupport) == feature.LanguageBoth {
		hl = append(hl, "bilingual support available")
	}

	loc := feature.NormalizeField(core.FieldLocationArea, svc.LocationArea)
	if loc == feature.LocationRemote {
		hl = append(hl, "remote service available")
	} else if pref != nil && loc != "" && loc == feature.NormalizeField(core.FieldLocationArea, pref.LocationArea) {
		hl = append(hl, "local service in "+svc.LocationArea)
	}

	if len(hl) == 0 {
		return ""
	}
	return "Features: " + strings.Join(hl, ", ") + "."
}

// Summary 汇总一批推荐的整体观感（平均分、优质数量、业务类型聚焦）。
func (g *Generator) Summary(recs []core.Recommendation, pref *core.Preference) string {
	if len(recs) == 0 {
		return "No services matched your preferences."
	}

	var sum float64
	high := 0
	for _, r := range recs {
		sum += r.Score
		if r.Quality == core.TierHigh {
			high++
		}
	}
	avg := sum / float64(len(recs))

	parts := make([]string, 0, 3)
	switch {
	case avg >= 0.8:
		parts = append(parts, "Excellent! We found highly relevant services for you.")
	case avg >= 0.6:
		parts = append(parts, "Good results! Several services match your needs well.")
	default:
		parts = append(parts, "Here are some services that may interest you.")
	}

	if high > 0 {
		parts = append(parts, fmt.Sprintf("%d out of %d are high-quality matches.", high, len(recs)))
	}

	if pref != nil {
		bt := feature.NormalizeField(core.FieldBusinessType, pref.BusinessType)
		if bt != "" && bt != feature.Unknown {
			parts = append(parts, fmt.Sprintf("All recommendations are tailored for %s businesses.", pref.BusinessType))
		}
	}

	return strings.Join(parts, " ")
}
