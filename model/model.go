package model

import "github.com/rushteam/matchkit/core"

// 内置打分策略名。注册与配置选择都使用这些常量。
const (
	StrategyWeighted = "weighted"
	StrategyCosine   = "cosine"
	StrategyKNN      = "knn"
)

// MatchModel 是打分策略的最小抽象：输入一对 (偏好, 候选)，输出 [0,1] 匹配分。
// 实现必须是纯函数：相同输入永远得到相同分数，不携带跨请求状态。
// 未知/缺失字段按中性处理（不报错、不加分）。
type MatchModel interface {
	Name() string
	Score(mctx *core.MatchContext, cand *core.Candidate) (float64, error)
}
