package filter

import (
	"context"

	"github.com/rushteam/matchkit/core"
)

// ExcludeFilter 是排除名单过滤器，剔除名单中的服务（如运营下线、投诉处理中）。
type ExcludeFilter struct {
	// ServiceIDs 是内存中的排除名单
	ServiceIDs []string

	// Store 用于从存储中读取排除名单（可选），名单每次实时读取
	Store core.KeyValueStore

	// Key 是 Store 中的名单 Hash key（field=服务 ID，value=排除原因）
	Key string
}

// NewExcludeFilter 创建一个排除名单过滤器。
func NewExcludeFilter(serviceIDs []string, store core.KeyValueStore, key string) *ExcludeFilter {
	return &ExcludeFilter{
		ServiceIDs: serviceIDs,
		Store:      store,
		Key:        key,
	}
}

func (f *ExcludeFilter) Name() string {
	return "filter.exclude"
}

func (f *ExcludeFilter) ShouldFilter(
	ctx context.Context,
	_ *core.MatchContext,
	cand *core.Candidate,
) (bool, error) {
	if cand == nil || cand.Service == nil {
		return true, nil
	}

	// 从内存名单检查
	for _, id := range f.ServiceIDs {
		if cand.Service.ID == id {
			return true, nil
		}
	}

	// 从 Store 检查
	if f.Store != nil && f.Key != "" {
		excluded, err := f.Store.HGetAll(ctx, f.Key)
		if err == nil {
			if _, ok := excluded[cand.Service.ID]; ok {
				return true, nil
			}
		}
	}

	return false, nil
}
