package filter

import (
	"context"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/pkg/dsl"
)

// RuleFilter 是 CEL 规则过滤器：表达式描述"应该保留"的候选，
// 求值为 false 的候选被过滤。表达式在构造时编译一次。
//
// 示例：
//   - `service.price_category != "High"` → 剔除高价服务
//   - `service.location_area == pref.location_area || service.location_area == "Remote"`
//     → 只保留同城或远程服务
type RuleFilter struct {
	program *dsl.Program
}

// NewRuleFilter 编译规则表达式。表达式非法时立刻报错（配置期失败）。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	program, err := dsl.NewProgram(expr)
	if err != nil {
		return nil, core.NewInvalidConfigError(core.ModuleFilter, "rule filter: "+err.Error())
	}
	return &RuleFilter{program: program}, nil
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

// Expr 返回编译时的规则表达式。
func (f *RuleFilter) Expr() string {
	return f.program.Expr()
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	mctx *core.MatchContext,
	cand *core.Candidate,
) (bool, error) {
	if cand == nil {
		return true, nil
	}
	var pref *core.Preference
	if mctx != nil {
		pref = mctx.Pref
	}
	keep, err := f.program.Evaluate(pref, cand)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
