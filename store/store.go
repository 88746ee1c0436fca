// Package store 提供 core.Store / core.KeyValueStore 的具体实现，
// 以及目录与编码模型的持久化辅助。
//
// 注意：此包只包含实现，接口定义在 core 包。
//
// 示例：
//
//	var s core.Store = store.NewMemoryStore()
//	var kv core.KeyValueStore = store.NewMemoryStore()
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/feature"
)

// 约定的存储 key。
const (
	// KeyCatalog 存整份清洗后目录（JSON 数组，保序：目录位序是排序的平手判据）。
	KeyCatalog = "matchkit:catalog"
	// KeyEncoderModel 存 Fit 得到的编码模型（JSON 映射）。
	KeyEncoderModel = "matchkit:encoder_model"
	// KeyExcluded 是排除名单 Hash（field=服务 ID，value=排除原因）。
	KeyExcluded = "matchkit:excluded"
)

// SaveCatalog 把目录整体写入存储。整份 JSON 数组存单 key，保住目录位序。
func SaveCatalog(ctx context.Context, s core.Store, services []core.Service) error {
	data, err := json.Marshal(services)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return s.Set(ctx, KeyCatalog, data)
}

// LoadCatalog 从存储读回整份目录。
func LoadCatalog(ctx context.Context, s core.Store) ([]core.Service, error) {
	data, err := s.Get(ctx, KeyCatalog)
	if err != nil {
		return nil, err
	}
	var services []core.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return services, nil
}

// SaveEncodingModel 持久化编码模型。
func SaveEncodingModel(ctx context.Context, s core.Store, m *feature.EncodingModel) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal encoding model: %w", err)
	}
	return s.Set(ctx, KeyEncoderModel, data)
}

// LoadEncodingModel 读回编码模型（反序列化后索引已重建，可直接使用）。
func LoadEncodingModel(ctx context.Context, s core.Store) (*feature.EncodingModel, error) {
	data, err := s.Get(ctx, KeyEncoderModel)
	if err != nil {
		return nil, err
	}
	var m feature.EncodingModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal encoding model: %w", err)
	}
	return &m, nil
}
