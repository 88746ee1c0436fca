package model

import (
	"fmt"
	"math"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/feature"
)

// WeightedModel 实现加权类别匹配打分。
//
// 打分原理：
//  1. 逐字段比较（比较前做同一套规范化）：完全相同记 weight[field] 分
//  2. 有序字段给部分分：价格相邻档位记 PriceCredit * weight
//  3. 语言覆盖给部分分：服务为 Both 且能覆盖偏好时记 LanguageCredit * weight
//  4. 四个字段全部精确命中时额外加 ExactBonus，最终夹到 [0,1]
//
// 权重之和必须为 1.0，这样基础分天然落在 [0,1] 内。
// Unknown/空值按中性处理：不参与比较，也不贡献分数。
type WeightedModel struct {
	Weights        map[string]float64 // 字段权重，sum == 1.0
	ExactBonus     float64            // 全字段精确命中的奖励分
	PriceCredit    float64            // 价格相邻档位的部分分系数
	LanguageCredit float64            // 语言覆盖的部分分系数
}

// 默认系数。ExactBonus 只在基础分已是 1.0 时生效，夹紧后仍是 1.0，
// 用于抵消浮点累加误差，保证"全精确命中必得 1.0"。
const (
	DefaultExactBonus     = 0.2
	DefaultPriceCredit    = 0.5
	DefaultLanguageCredit = 0.5
)

// DefaultWeights 返回默认字段权重（业务类型 0.35、价格 0.25、语言 0.20、区域 0.20）。
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		core.FieldBusinessType:    0.35,
		core.FieldPriceCategory:   0.25,
		core.FieldLanguageSupport: 0.20,
		core.FieldLocationArea:    0.20,
	}
}

// NewWeightedModel 用默认系数构造加权模型。
func NewWeightedModel(weights map[string]float64) *WeightedModel {
	if weights == nil {
		weights = DefaultWeights()
	}
	return &WeightedModel{
		Weights:        weights,
		ExactBonus:     DefaultExactBonus,
		PriceCredit:    DefaultPriceCredit,
		LanguageCredit: DefaultLanguageCredit,
	}
}

// Validate 校验权重配置：字段齐全、非负、总和为 1.0（容差 1e-9）。
func (m *WeightedModel) Validate() error {
	sum := 0.0
	for _, field := range core.FieldOrder() {
		w, ok := m.Weights[field]
		if !ok {
			return core.NewInvalidConfigError(core.ModuleModel, fmt.Sprintf("weighted: missing weight for field %q", field))
		}
		if w < 0 {
			return core.NewInvalidConfigError(core.ModuleModel, fmt.Sprintf("weighted: negative weight for field %q", field))
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return core.NewInvalidConfigError(core.ModuleModel, fmt.Sprintf("weighted: weights must sum to 1.0, got %v", sum))
	}
	if m.ExactBonus < 0 || m.PriceCredit < 0 || m.PriceCredit > 1 || m.LanguageCredit < 0 || m.LanguageCredit > 1 {
		return core.NewInvalidConfigError(core.ModuleModel, "weighted: bonus/credit out of range")
	}
	return nil
}

func (m *WeightedModel) Name() string { return StrategyWeighted }

func (m *WeightedModel) Score(mctx *core.MatchContext, cand *core.Candidate) (float64, error) {
	if mctx == nil || mctx.Pref == nil || cand == nil || cand.Service == nil {
		return 0, core.NewInvalidInputError(core.ModuleModel, "weighted: preference and candidate are required")
	}

	total := 0.0
	exact := 0
	for _, field := range core.FieldOrder() {
		w := m.Weights[field]
		pv := feature.NormalizeField(field, mctx.Pref.Field(field))
		sv := feature.NormalizeField(field, cand.Service.Field(field))
		if pv == "" || sv == "" || pv == feature.Unknown || sv == feature.Unknown {
			continue
		}
		switch {
		case pv == sv:
			total += w
			exact++
		case field == core.FieldPriceCategory && feature.PriceAdjacent(pv, sv):
			total += m.PriceCredit * w
		case field == core.FieldLanguageSupport && feature.LanguageCovers(sv, pv):
			total += m.LanguageCredit * w
		}
	}
	if exact == core.NumFields {
		total += m.ExactBonus
	}
	return clamp01(total), nil
}
