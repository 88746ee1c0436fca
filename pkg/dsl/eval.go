package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/matchkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量和函数
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// 定义变量类型
		cel.Variable("service", cel.DynType),
		cel.Variable("pref", cel.DynType),
		cel.Variable("label", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Program 是候选规则的 CEL (Common Expression Language) 解释器。
// 表达式在构造时编译一次，之后可以对任意候选反复求值，线程安全。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：service.business_type == "Technology" / service.price_category != "High"
//   - 偏好：pref.location_area == "Remote"
//   - 逻辑：service.language_support == "Both" && pref.business_type == service.business_type
//   - 存在性：label.filtered != null
//   - 包含：service.description.contains("online")
//
// 注意：has(label.key) 可以用 label.key != null 替代
type Program struct {
	expr string
	prg  cel.Program
}

// NewProgram 编译 expr 并返回可复用的 Program。
// 空表达式返回的 Program 对任何输入恒为 true。
func NewProgram(expr string) (*Program, error) {
	p := &Program{expr: expr}
	if expr == "" {
		return p, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %v", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}
	p.prg = prg
	return p, nil
}

// Expr 返回编译时的原始表达式。
func (p *Program) Expr() string { return p.expr }

// Evaluate 对一个 (偏好, 候选) 输入执行已编译的表达式，返回布尔结果。
func (p *Program) Evaluate(pref *core.Preference, cand *core.Candidate) (bool, error) {
	if p.prg == nil {
		return true, nil
	}

	out, _, err := p.prg.Eval(buildInput(pref, cand))
	if err != nil {
		// 对于不存在的 key，CEL 会返回错误
		// 应使用 label.key != null 检查存在性，而不是直接访问
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(pref *core.Preference, cand *core.Candidate) map[string]interface{} {
	labels := make(map[string]interface{})
	for k, v := range cand.Labels {
		labels[k] = v.Value
	}

	service := map[string]interface{}{
		"id":               cand.Service.ID,
		"name":             cand.Service.Name,
		"business_type":    cand.Service.BusinessType,
		"price_category":   cand.Service.PriceCategory,
		"language_support": cand.Service.LanguageSupport,
		"location_area":    cand.Service.LocationArea,
		"description":      cand.Service.Description,
		"score":            cand.Score,
	}

	prefInput := map[string]interface{}{}
	if pref != nil {
		prefInput = map[string]interface{}{
			"business_type":    pref.BusinessType,
			"price_category":   pref.PriceCategory,
			"language_support": pref.LanguageSupport,
			"location_area":    pref.LocationArea,
		}
	}

	return map[string]interface{}{
		"service": service,
		"pref":    prefInput,
		"label":   labels,
	}
}
