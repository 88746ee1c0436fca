package store

import (
	"context"

	"github.com/rushteam/matchkit/core"
)

// Source 是存储后端实现的 core.CatalogSource：
// 从 Store 读回此前 SaveCatalog 写入的整份目录。
// 典型用法是多实例部署时，一个实例清洗入库、其余实例从存储装载。
type Source struct {
	store core.Store
}

func NewSource(s core.Store) *Source {
	return &Source{store: s}
}

func (s *Source) Name() string { return "store:" + s.store.Name() }

func (s *Source) Load(ctx context.Context) ([]core.Service, error) {
	return LoadCatalog(ctx, s.store)
}

var _ core.CatalogSource = (*Source)(nil)
