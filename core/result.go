package core

import "math"

// Tier 是匹配质量档位，由分数经阈值离散化得到。
type Tier string

const (
	TierHigh   Tier = "High"
	TierMedium Tier = "Medium"
	TierLow    Tier = "Low"
)

// Recommendation 是单条匹配结果：服务、分数、质量档、解释文案。
// 每次请求临时生成，按分数降序、同分按目录位序排列。
type Recommendation struct {
	Service     *Service `json:"service"`
	Score       float64  `json:"score"`
	Quality     Tier     `json:"quality"`
	Explanation string   `json:"explanation"`
}

// Record 是对外的稳定交换格式，页面渲染与 CSV 导出共用。
// Score 展示时保留两位小数；内部计算始终使用未舍入的原始分数。
type Record struct {
	ServiceID   string  `json:"service_id"`
	ServiceName string  `json:"service_name"`
	Score       float64 `json:"score"`
	Quality     Tier    `json:"quality"`
	Explanation string  `json:"explanation"`
	Description string  `json:"description"`
}

// Record 导出交换格式，分数按两位小数舍入。
func (r *Recommendation) Record() Record {
	rec := Record{
		Score:       math.Round(r.Score*100) / 100,
		Quality:     r.Quality,
		Explanation: r.Explanation,
	}
	if r.Service != nil {
		rec.ServiceID = r.Service.ID
		rec.ServiceName = r.Service.Name
		rec.Description = r.Service.Description
	}
	return rec
}
