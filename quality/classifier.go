// Package quality 将匹配分离散化为质量档位（High/Medium/Low）。
package quality

import (
	"fmt"

	"github.com/rushteam/matchkit/core"
)

// 默认档位阈值。
const (
	DefaultHighThreshold   = 0.75
	DefaultMediumThreshold = 0.50
)

// Classifier 按有序阈值划分质量档：
// score >= High → High；score >= Medium → Medium；其余 → Low。
// 阈值是档位的含下界：分数恰好等于阈值归入更高档。
// 纯函数，分数单调则档位单调。
type Classifier struct {
	High   float64 `json:"high" yaml:"high"`
	Medium float64 `json:"medium" yaml:"medium"`
}

// NewClassifier 用默认阈值构造分类器。
func NewClassifier() *Classifier {
	return &Classifier{High: DefaultHighThreshold, Medium: DefaultMediumThreshold}
}

// Validate 校验阈值次序：1 >= High >= Medium >= 0。
func (c *Classifier) Validate() error {
	if c.High < 0 || c.High > 1 || c.Medium < 0 || c.Medium > 1 {
		return core.NewInvalidConfigError(core.ModuleConfig, fmt.Sprintf("quality thresholds out of [0,1]: high=%v medium=%v", c.High, c.Medium))
	}
	if c.High < c.Medium {
		return core.NewInvalidConfigError(core.ModuleConfig, fmt.Sprintf("quality thresholds out of order: high=%v < medium=%v", c.High, c.Medium))
	}
	return nil
}

// Classify 返回分数对应的质量档。
func (c *Classifier) Classify(score float64) core.Tier {
	switch {
	case score >= c.High:
		return core.TierHigh
	case score >= c.Medium:
		return core.TierMedium
	default:
		return core.TierLow
	}
}
