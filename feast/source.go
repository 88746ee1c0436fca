package feast

import (
	"context"
	"fmt"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/feature"
)

// DefaultFeatureView 是目录属性在 Feast 中的默认特征视图名。
const DefaultFeatureView = "service_attributes"

// DefaultEntityKey 是目录实体键的默认名称。
const DefaultEntityKey = "service_id"

// defaultBatchSize 是单次在线特征请求携带的实体行数上限。
const defaultBatchSize = 64

// Source 用 Feast 在线特征覆盖基础目录的类别字段，实现 core.CatalogSource。
//
// 主目录（CSV / 内置样例）给出完整记录；Feast 中 "<FeatureView>:<字段名>"
// 形式的四个类别特征若存在且能归入词表，就覆盖对应记录的字段值。
// 取不到或无法归一的值一律保留基础值：富集层只会让目录更新，不会让它变差。
type Source struct {
	// Base 基础目录来源，必填。
	Base core.CatalogSource

	// Client Feast 客户端，必填。
	Client Client

	// Project Feast 项目名，随请求透传。
	Project string

	// FeatureView 特征视图名，为空时用 DefaultFeatureView。
	FeatureView string

	// EntityKey 实体键名，为空时用 DefaultEntityKey。
	EntityKey string

	// BatchSize 单次请求的实体行数，<=0 时用 defaultBatchSize。
	BatchSize int
}

// Name 实现 core.CatalogSource。
func (s *Source) Name() string {
	base := "?"
	if s.Base != nil {
		base = s.Base.Name()
	}
	return base + "+feast:" + s.view()
}

// Unwrap 返回基础目录来源，调用方可借此访问底层能力（如清洗报告）。
func (s *Source) Unwrap() core.CatalogSource { return s.Base }

// Load 装载基础目录并用在线特征覆盖类别字段。
// 任何一批特征取不回来都会让整次装载失败，由调用方决定降级策略
// （引擎的重载流程在失败时保留旧快照）。
func (s *Source) Load(ctx context.Context) ([]core.Service, error) {
	if s.Base == nil {
		return nil, fmt.Errorf("feast source: base catalog is required")
	}
	if s.Client == nil {
		return nil, fmt.Errorf("feast source: client is required")
	}

	svcs, err := s.Base.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(svcs) == 0 {
		return svcs, nil
	}

	features := make([]string, 0, core.NumFields)
	for _, field := range core.FieldOrder() {
		features = append(features, s.view()+":"+field)
	}

	batch := s.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	for start := 0; start < len(svcs); start += batch {
		end := start + batch
		if end > len(svcs) {
			end = len(svcs)
		}
		if err := s.enrich(ctx, svcs[start:end], features); err != nil {
			return nil, err
		}
	}
	return svcs, nil
}

// enrich 对一批服务执行一次在线特征请求并就地覆盖类别字段。
func (s *Source) enrich(ctx context.Context, svcs []core.Service, features []string) error {
	rows := make([]map[string]interface{}, len(svcs))
	for i := range svcs {
		rows[i] = map[string]interface{}{s.entityKey(): svcs[i].ID}
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   features,
		EntityRows: rows,
		Project:    s.Project,
	})
	if err != nil {
		return fmt.Errorf("fetch feast attributes: %w", err)
	}
	if len(resp.FeatureVectors) != len(svcs) {
		return fmt.Errorf("feast attribute count mismatch: expected %d, got %d", len(svcs), len(resp.FeatureVectors))
	}

	for i := range svcs {
		values := resp.FeatureVectors[i].Values
		for _, field := range core.FieldOrder() {
			raw, ok := stringValue(values, s.view()+":"+field, field)
			if !ok {
				continue
			}
			norm := feature.NormalizeField(field, raw)
			if !acceptValue(field, norm) {
				continue
			}
			setField(&svcs[i], field, norm)
		}
	}
	return nil
}

// stringValue 取出字符串型特征值；键可以是全引用名或字段短名。
func stringValue(values map[string]interface{}, ref, field string) (string, bool) {
	v, ok := values[ref]
	if !ok {
		v, ok = values[field]
	}
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// acceptValue 判断归一化后的值能否写回目录。
// 价格与语言是闭词表，词表外的值不覆盖；业务类型与区域允许出现新值
// （编码侧对未见过的取值有未知码兜底）。
func acceptValue(field, norm string) bool {
	if norm == "" || norm == feature.Unknown {
		return false
	}
	switch field {
	case core.FieldPriceCategory:
		return feature.PriceRank(norm) >= 0
	case core.FieldLanguageSupport:
		for _, lang := range feature.Languages() {
			if norm == lang {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// setField 按字段名写回类别属性。
func setField(svc *core.Service, field, value string) {
	switch field {
	case core.FieldBusinessType:
		svc.BusinessType = value
	case core.FieldPriceCategory:
		svc.PriceCategory = value
	case core.FieldLanguageSupport:
		svc.LanguageSupport = value
	case core.FieldLocationArea:
		svc.LocationArea = value
	}
}

func (s *Source) view() string {
	if s.FeatureView == "" {
		return DefaultFeatureView
	}
	return s.FeatureView
}

func (s *Source) entityKey() string {
	if s.EntityKey == "" {
		return DefaultEntityKey
	}
	return s.EntityKey
}

var _ core.CatalogSource = (*Source)(nil)
