package filter

import (
	"context"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/feature"
)

// BusinessTypeFilter 是业务类型硬过滤器：剔除与偏好业务类型不一致的候选。
// 比较前两侧都做规范化，大小写/空白差异不会造成误杀。
// 偏好业务类型为空或 Unknown 时过滤器不生效。
//
// 通常放进 BypassWhenEmpty 的 FilterNode：目录里完全没有该业务类型时
// 放行全量候选，由排序给出"最接近"的结果。
type BusinessTypeFilter struct{}

func NewBusinessTypeFilter() *BusinessTypeFilter {
	return &BusinessTypeFilter{}
}

func (f *BusinessTypeFilter) Name() string {
	return "filter.business"
}

func (f *BusinessTypeFilter) ShouldFilter(
	_ context.Context,
	mctx *core.MatchContext,
	cand *core.Candidate,
) (bool, error) {
	if cand == nil || cand.Service == nil {
		return true, nil
	}
	if mctx == nil || mctx.Pref == nil {
		return false, nil
	}

	want := feature.NormalizeField(core.FieldBusinessType, mctx.Pref.BusinessType)
	if want == "" || want == feature.Unknown {
		return false, nil
	}
	got := feature.NormalizeField(core.FieldBusinessType, cand.Service.BusinessType)
	return got != want, nil
}
