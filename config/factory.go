package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/model"
)

// ModelBuilder 根据配置构建一个打分策略（MatchModel）。
type ModelBuilder func(config map[string]interface{}) (model.MatchModel, error)

var (
	modelBuilders   = make(map[string]ModelBuilder)
	modelBuildersMu sync.RWMutex
)

// RegisterModel 注册一种打分策略的构建逻辑，key 是策略名（weighted/cosine/knn）。
// 内置策略在 config/builders 的 init 中注册，扩展策略可在业务侧追加。
func RegisterModel(name string, builder ModelBuilder) {
	if name == "" || builder == nil {
		return
	}
	modelBuildersMu.Lock()
	defer modelBuildersMu.Unlock()
	modelBuilders[name] = builder
}

// SupportedStrategies 返回当前已注册的策略名列表（排序），用于错误提示与校验。
func SupportedStrategies() []string {
	modelBuildersMu.RLock()
	defer modelBuildersMu.RUnlock()
	names := make([]string, 0, len(modelBuilders))
	for n := range modelBuilders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// BuildModel 按策略名构建打分模型。
// 未注册的策略名属于配置错误，错误信息附带已支持的策略列表。
func BuildModel(name string, config map[string]interface{}) (model.MatchModel, error) {
	modelBuildersMu.RLock()
	builder, ok := modelBuilders[name]
	modelBuildersMu.RUnlock()
	if !ok {
		return nil, core.NewInvalidConfigError(core.ModuleConfig,
			fmt.Sprintf("unsupported strategy %q (supported: %v)", name, SupportedStrategies()))
	}
	return builder(config)
}
