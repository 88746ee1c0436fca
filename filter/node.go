package filter

import (
	"context"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/pipeline"
	"github.com/rushteam/matchkit/pkg/utils"
)

// 请求级标签 key：过滤被整体绕过时写入 MatchContext。
const LabelFilterBypassed = "filter_bypassed"

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该候选就会被过滤掉。
//
// BypassWhenEmpty 控制"滤空回退"：过滤会清空整个候选集时，
// 放弃本节点的过滤、原样放行全部候选（硬过滤缺精确命中时交给排序兜底，
// 而不是返回空结果）。绕过时在 MatchContext 打 filter_bypassed 标签，
// 候选不再携带 filtered 标签。
type FilterNode struct {
	Filters         []Filter
	BypassWhenEmpty bool
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	mctx *core.MatchContext,
	cands []*core.Candidate,
) ([]*core.Candidate, error) {
	if len(n.Filters) == 0 || len(cands) == 0 {
		return cands, nil
	}

	out := make([]*core.Candidate, 0, len(cands))
	type removal struct {
		cand   *core.Candidate
		reason string
	}
	removed := make([]removal, 0)

	for _, cand := range cands {
		if cand == nil {
			continue
		}

		shouldFilter := false
		filterReason := ""

		// 依次检查每个过滤器
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, mctx, cand)
			if err != nil {
				// 过滤器错误时记录但不中断流程
				continue
			}
			if ok {
				shouldFilter = true
				filterReason = f.Name()
				break
			}
		}

		if shouldFilter {
			removed = append(removed, removal{cand: cand, reason: filterReason})
			continue
		}

		out = append(out, cand)
	}

	if len(out) == 0 && n.BypassWhenEmpty {
		if mctx != nil {
			mctx.PutLabel(LabelFilterBypassed, utils.Label{Value: n.Name(), Source: "filter"})
		}
		return cands, nil
	}

	// 记录过滤原因（可选，用于调试/观测）
	for _, r := range removed {
		r.cand.PutLabel("filtered", utils.Label{
			Value:  "true",
			Source: r.reason,
		})
	}

	return out, nil
}
