package model

import (
	"math"

	"github.com/rushteam/matchkit/core"
)

// KNNModel 实现最近邻式打分：one-hot 向量间的欧氏距离线性映射为匹配分。
//
// score = 1 - distance / MaxDistance，夹到 [0,1]：
// 零距离（完全一致）得 1.0，达到最大有效距离得 0.0。
// 策略对外仍是"每次打一对"的纯函数，和其余策略在 Pipeline 里完全同构；
// 调用方可以一次请求内对整个目录逐对调用，无需预建索引。
type KNNModel struct {
	// MaxDistance 是归一化用的最大有效距离。
	// <= 0 时采用 DefaultMaxDistance(core.NumFields)。
	MaxDistance float64
}

func NewKNNModel(maxDistance float64) *KNNModel {
	return &KNNModel{MaxDistance: maxDistance}
}

// DefaultMaxDistance 返回 n 个 one-hot 字段的最大可能欧氏距离：
// 每个字段两侧各占一个互斥的 one-hot 位，距离平方和最大为 2n。
func DefaultMaxDistance(numFields int) float64 {
	if numFields <= 0 {
		return 0
	}
	return math.Sqrt(2 * float64(numFields))
}

func (m *KNNModel) Name() string { return StrategyKNN }

func (m *KNNModel) Score(mctx *core.MatchContext, cand *core.Candidate) (float64, error) {
	if mctx == nil || cand == nil {
		return 0, core.NewInvalidInputError(core.ModuleModel, "knn: context and candidate are required")
	}
	a, b := mctx.PrefOneHot, cand.OneHot
	if len(a) == 0 || len(b) == 0 {
		return 0, core.NewInvalidInputError(core.ModuleModel, "knn: one-hot vectors are required")
	}
	if len(a) != len(b) {
		return 0, core.NewInvalidInputError(core.ModuleModel, "knn: vector dimensions differ")
	}

	maxDist := m.MaxDistance
	if maxDist <= 0 {
		maxDist = DefaultMaxDistance(core.NumFields)
	}
	return clamp01(1 - euclidean(a, b)/maxDist), nil
}
