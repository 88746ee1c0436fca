package core

import "github.com/rushteam/matchkit/pkg/utils"

// MatchContext 承载一次匹配请求的偏好/编码/参数，贯穿整个 Pipeline 透传。
type MatchContext struct {
	// RequestID 由服务层注入，用于日志串联；库内不生成。
	RequestID string

	// Pref 是本次请求的原始偏好记录（解释环节需要未编码的原值）。
	Pref *Preference

	// PrefVector / PrefOneHot 是偏好的两种编码形式，由引擎在进入 Pipeline 前填好。
	PrefVector []float64
	PrefOneHot []float64

	// Strategy 是本次请求选用的打分策略名；TopN 是截断长度。
	Strategy string
	TopN     int

	// Labels 是请求级标签，可驱动整个 Pipeline 行为。
	// 例如：filter_bypassed、strategy 来源等。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（透传给规则过滤等扩展点）。
	Params map[string]any
}

// PutLabel 写入请求级 Label。
func (mctx *MatchContext) PutLabel(key string, lbl utils.Label) {
	if mctx.Labels == nil {
		mctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := mctx.Labels[key]; ok {
		mctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	mctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (mctx *MatchContext) GetLabel(key string) (utils.Label, bool) {
	if mctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := mctx.Labels[key]
	return lbl, ok
}
