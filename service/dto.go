package service

import (
	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/engine"
)

// RecommendRequest 是 POST /api/v1/recommend 的请求体。
// TopN 省略时用引擎配置的默认条数；显式传 0 或负数按调用方错误拒绝。
type RecommendRequest struct {
	Preference core.Preference `json:"preference"`
	TopN       *int            `json:"top_n"`
	Strategy   string          `json:"strategy"`
}

// RecommendResponse 是推荐接口的响应体。
// Recommendations 用对外交换格式（分数两位小数）。
type RecommendResponse struct {
	RequestID       string         `json:"request_id"`
	Strategy        string         `json:"strategy"`
	Total           int            `json:"total"`
	Recommendations []core.Record  `json:"recommendations"`
	Summary         engine.Summary `json:"summary"`
}

// ExplainRequest 是 POST /api/v1/explain 的请求体。
type ExplainRequest struct {
	ServiceID  string          `json:"service_id"`
	Preference core.Preference `json:"preference"`
	Strategy   string          `json:"strategy"`
}

// ExplainResponse 是单对解释接口的响应体。
type ExplainResponse struct {
	RequestID   string      `json:"request_id"`
	Strategy    string      `json:"strategy"`
	Explanation core.Record `json:"explanation"`
}

// CompareRequest 是 POST /api/v1/compare 的请求体。
type CompareRequest struct {
	Preference core.Preference `json:"preference"`
	TopN       *int            `json:"top_n"`
}

// CompareResponse 按策略名分组返回同一请求的结果。
type CompareResponse struct {
	RequestID string                   `json:"request_id"`
	Results   map[string][]core.Record `json:"results"`
}

// ExclusionEntry 是排除名单的一条记录。
type ExclusionEntry struct {
	ServiceID string `json:"service_id"`
	Reason    string `json:"reason"`
}

// ExclusionRequest 是 PUT /api/v1/exclusions/:id 的请求体（原因可省略）。
type ExclusionRequest struct {
	Reason string `json:"reason"`
}

func toRecords(recs []core.Recommendation) []core.Record {
	out := make([]core.Record, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].Record())
	}
	return out
}
