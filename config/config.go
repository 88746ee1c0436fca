// Package config 提供应用配置的加载与校验，以及 Node/策略的注册表。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/model"
	"github.com/rushteam/matchkit/quality"
)

// Config 是应用级配置，YAML 结构：
//
//	engine:
//	  strategy: weighted
//	  top_n: 5
//	  weights:
//	    business_type: 0.35
//	    price_category: 0.25
//	    language_support: 0.20
//	    location_area: 0.20
//	  quality:
//	    high: 0.75
//	    medium: 0.50
//	  require_business_match: true
//	  rule: 'service.price_category != "High"'
//	dataset:
//	  source: csv
//	  csv_path: ./services.csv
//	server:
//	  addr: :8080
//	  log_level: info
type Config struct {
	Engine  EngineConfig  `yaml:"engine" json:"engine"`
	Dataset DatasetConfig `yaml:"dataset" json:"dataset"`
	Redis   RedisConfig   `yaml:"redis" json:"redis"`
	Feast   FeastConfig   `yaml:"feast" json:"feast"`
	Server  ServerConfig  `yaml:"server" json:"server"`
}

// EngineConfig 是匹配引擎配置。
type EngineConfig struct {
	// Strategy 是默认打分策略（weighted/cosine/knn），请求可逐次覆盖。
	Strategy string `yaml:"strategy" json:"strategy"`

	// TopN 是默认返回条数，请求可逐次覆盖。
	TopN int `yaml:"top_n" json:"top_n"`

	// Weights 是 weighted 策略的字段权重，总和必须为 1.0。
	Weights map[string]float64 `yaml:"weights" json:"weights"`

	// ExactBonus/PriceCredit/LanguageCredit 是 weighted 策略的加分系数。
	ExactBonus     float64 `yaml:"exact_bonus" json:"exact_bonus"`
	PriceCredit    float64 `yaml:"price_credit" json:"price_credit"`
	LanguageCredit float64 `yaml:"language_credit" json:"language_credit"`

	// MaxDistance 是 knn 策略的归一化距离，<= 0 时取默认值。
	MaxDistance float64 `yaml:"max_distance" json:"max_distance"`

	// Quality 是质量档阈值。
	Quality quality.Classifier `yaml:"quality" json:"quality"`

	// RequireBusinessMatch 开启业务类型硬过滤（带滤空回退）。
	RequireBusinessMatch bool `yaml:"require_business_match" json:"require_business_match"`

	// MaxPerBusinessType 限制同一业务类型在结果头部的条数，超出的候选降级到尾部。
	// 0 表示不做多样性调整。
	MaxPerBusinessType int `yaml:"max_per_business_type" json:"max_per_business_type"`

	// Rule 是可选的 CEL 候选规则，描述"应该保留"的候选；严格过滤，无回退。
	Rule string `yaml:"rule" json:"rule"`

	// Exclude 是静态排除名单（服务 ID）；动态名单走存储。
	Exclude []string `yaml:"exclude" json:"exclude"`
}

// DatasetConfig 是目录数据来源配置。
type DatasetConfig struct {
	// Source 指定目录来源：csv / sample / store。
	Source string `yaml:"source" json:"source"`

	// CSVPath 是 source=csv 时的文件路径。
	CSVPath string `yaml:"csv_path" json:"csv_path"`
}

// RedisConfig 是 Redis 存储配置，目录与排除名单可落在这里。
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
}

// FeastConfig 是 Feast 在线特征平台配置，用于目录属性补全。
type FeastConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
	Project string `yaml:"project" json:"project"`
}

// ServerConfig 是 HTTP 服务配置。
type ServerConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	LogLevel string `yaml:"log_level" json:"log_level"`
	Mode     string `yaml:"mode" json:"mode"` // gin 运行模式：debug / release / test
}

// Default 返回带默认值的配置；YAML 中出现的字段覆盖默认值。
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Strategy:             model.StrategyWeighted,
			TopN:                 5,
			Weights:              model.DefaultWeights(),
			ExactBonus:           model.DefaultExactBonus,
			PriceCredit:          model.DefaultPriceCredit,
			LanguageCredit:       model.DefaultLanguageCredit,
			Quality:              *quality.NewClassifier(),
			RequireBusinessMatch: true,
		},
		Dataset: DatasetConfig{Source: "sample"},
		Server:  ServerConfig{Addr: ":8080", LogLevel: "info", Mode: "release"},
	}
}

// LoadFromYAML 加载 YAML 配置文件并叠加在默认值之上。
func LoadFromYAML(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Validate 做结构性校验，配置期 fail-fast。
// 权重合法性由 WeightedModel.Validate 在引擎装配时校验。
func (c *Config) Validate() error {
	if c.Engine.Strategy == "" {
		return core.NewInvalidConfigError(core.ModuleConfig, "engine.strategy is required")
	}
	if c.Engine.TopN <= 0 {
		return core.NewInvalidConfigError(core.ModuleConfig, fmt.Sprintf("engine.top_n must be positive, got %d", c.Engine.TopN))
	}
	if err := c.Engine.Quality.Validate(); err != nil {
		return err
	}
	switch c.Dataset.Source {
	case "csv":
		if c.Dataset.CSVPath == "" {
			return core.NewInvalidConfigError(core.ModuleConfig, "dataset.csv_path is required when source is csv")
		}
	case "sample", "store":
	case "":
		return core.NewInvalidConfigError(core.ModuleConfig, "dataset.source is required")
	default:
		return core.NewInvalidConfigError(core.ModuleConfig, fmt.Sprintf("unknown dataset source %q (supported: [csv sample store])", c.Dataset.Source))
	}
	if c.Dataset.Source == "store" && c.Redis.Addr == "" {
		return core.NewInvalidConfigError(core.ModuleConfig, "redis.addr is required when dataset source is store")
	}
	if c.Feast.Enabled && c.Feast.Addr == "" {
		return core.NewInvalidConfigError(core.ModuleConfig, "feast.addr is required when feast is enabled")
	}
	return nil
}
