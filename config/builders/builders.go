// Package builders 注册内置 Node 与打分策略的配置构建器。
// 使用配置驱动时在入口处匿名导入本包以触发 init 注册：
//
//	import _ "github.com/rushteam/matchkit/config/builders"
package builders

import (
	"fmt"

	"github.com/rushteam/matchkit/config"
	"github.com/rushteam/matchkit/filter"
	"github.com/rushteam/matchkit/model"
	"github.com/rushteam/matchkit/pipeline"
	"github.com/rushteam/matchkit/pkg/conv"
	"github.com/rushteam/matchkit/quality"
	"github.com/rushteam/matchkit/rank"
	"github.com/rushteam/matchkit/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("rank.score", BuildScoreNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("postprocess.quality_label", BuildQualityLabelNode)

	config.RegisterModel(model.StrategyWeighted, BuildWeightedModel)
	config.RegisterModel(model.StrategyCosine, BuildCosineModel)
	config.RegisterModel(model.StrategyKNN, BuildKNNModel)
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "business":
			filters = append(filters, filter.NewBusinessTypeFilter())
		case "rule":
			expr := conv.ConfigGet(filterMap, "expr", "")
			f, err := filter.NewRuleFilter(expr)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		case "exclude":
			ids := conv.SliceAnyToString(filterMap["service_ids"])
			if ids == nil {
				ids = []string{}
			}
			key := conv.ConfigGet(filterMap, "key", "")
			filters = append(filters, filter.NewExcludeFilter(ids, nil, key))
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{
		Filters:         filters,
		BypassWhenEmpty: conv.ConfigGet(cfg, "bypass_when_empty", false),
	}, nil
}

func BuildScoreNode(cfg map[string]interface{}) (pipeline.Node, error) {
	strategy := conv.ConfigGet(cfg, "strategy", model.StrategyWeighted)
	m, err := config.BuildModel(strategy, cfg)
	if err != nil {
		return nil, err
	}
	return &rank.ScoreNode{Model: m}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}

func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.DiversityNode{
		MaxPerType: int(conv.ConfigGetInt64(cfg, "max_per_type", 0)),
		Field:      conv.ConfigGet(cfg, "field", ""),
	}, nil
}

func BuildQualityLabelNode(cfg map[string]interface{}) (pipeline.Node, error) {
	cls := quality.NewClassifier()
	cls.High = conv.ConfigGetFloat64(cfg, "high", cls.High)
	cls.Medium = conv.ConfigGetFloat64(cfg, "medium", cls.Medium)
	if err := cls.Validate(); err != nil {
		return nil, err
	}
	return &quality.LabelNode{Classifier: cls}, nil
}

func BuildWeightedModel(cfg map[string]interface{}) (model.MatchModel, error) {
	m := model.NewWeightedModel(nil)
	if wm, ok := cfg["weights"].(map[string]interface{}); ok {
		m.Weights = conv.MapToFloat64(wm)
	}
	m.ExactBonus = conv.ConfigGetFloat64(cfg, "exact_bonus", m.ExactBonus)
	m.PriceCredit = conv.ConfigGetFloat64(cfg, "price_credit", m.PriceCredit)
	m.LanguageCredit = conv.ConfigGetFloat64(cfg, "language_credit", m.LanguageCredit)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func BuildCosineModel(cfg map[string]interface{}) (model.MatchModel, error) {
	return model.NewCosineModel(), nil
}

func BuildKNNModel(cfg map[string]interface{}) (model.MatchModel, error) {
	return model.NewKNNModel(conv.ConfigGetFloat64(cfg, "max_distance", 0)), nil
}
