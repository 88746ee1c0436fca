package core

import "github.com/rushteam/matchkit/pkg/utils"

// Candidate 是匹配链路中的统一承载结构：服务记录、编码向量、分数、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策；Position 是目录内原始位序，
// 同分时按它稳定排序，保证输出可复现。
type Candidate struct {
	Service  *Service
	Position int

	// Vector 是标签编码向量（每字段一个整数码，未知值为保留码）。
	// OneHot 是度量友好的 one-hot 展开（余弦/KNN 只允许用它，不允许用 Vector）。
	Vector []float64
	OneHot []float64

	Score  float64
	Labels map[string]utils.Label
}

func NewCandidate(svc *Service, position int) *Candidate {
	return &Candidate{
		Service:  svc,
		Position: position,
		Score:    0,
		Labels:   make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (c *Candidate) PutLabel(key string, lbl utils.Label) {
	if c.Labels == nil {
		c.Labels = make(map[string]utils.Label)
	}
	if old, ok := c.Labels[key]; ok {
		c.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	c.Labels[key] = lbl
}
