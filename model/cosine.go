package model

import "github.com/rushteam/matchkit/core"

// CosineModel 实现余弦相似度打分。
//
// 只允许使用 one-hot 形态的向量：标签码是无序编号，不具备度量意义，
// 直接进距离计算会把"码相近"误读为"类别相近"。
// 非负 one-hot 向量的余弦相似度天然落在 [0,1]，出口处仍做夹紧。
type CosineModel struct{}

func NewCosineModel() *CosineModel { return &CosineModel{} }

func (m *CosineModel) Name() string { return StrategyCosine }

func (m *CosineModel) Score(mctx *core.MatchContext, cand *core.Candidate) (float64, error) {
	if mctx == nil || cand == nil {
		return 0, core.NewInvalidInputError(core.ModuleModel, "cosine: context and candidate are required")
	}
	a, b := mctx.PrefOneHot, cand.OneHot
	if len(a) == 0 || len(b) == 0 {
		return 0, core.NewInvalidInputError(core.ModuleModel, "cosine: one-hot vectors are required")
	}
	if len(a) != len(b) {
		return 0, core.NewInvalidInputError(core.ModuleModel, "cosine: vector dimensions differ")
	}

	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		// 全未知的一侧没有任何类别信号，相似度按 0 处理
		return 0, nil
	}
	return clamp01(dot(a, b) / (na * nb)), nil
}
