package feature

import (
	"encoding/json"
	"sort"

	"github.com/rushteam/matchkit/core"
)

// EncodingModel 是 Fit 产出的类别编码模型：每个字段一张"取值 → 整数码"的词表。
//
// 约定：
//   - 码由取值的字典序决定（0..k-1），同一份目录任何时候 Fit 出的码都一致
//   - 每个字段保留 k 作为未知码：encode 对词表外取值永不报错，回落到未知码
//   - one-hot 形态每字段宽 k，未知取值展开为全零块（中性：既不匹配也不加分）
//
// 模型可通过 JSON 持久化为纯映射；持久化与否由调用方决定。
type EncodingModel struct {
	Fields  []string            `json:"fields"`
	Classes map[string][]string `json:"classes"`

	index map[string]map[string]int
}

// Fit 扫描清洗后的目录，为每个类别字段建立稳定词表。
// 取值在建表前先做规范化，保证与 encode 时的查找形态一致。
func Fit(catalog []core.Service) *EncodingModel {
	fields := core.FieldOrder()
	seen := make(map[string]map[string]struct{}, len(fields))
	for _, f := range fields {
		seen[f] = make(map[string]struct{})
	}
	for i := range catalog {
		svc := NormalizeService(&catalog[i])
		for _, f := range fields {
			if v := svc.Field(f); v != "" {
				seen[f][v] = struct{}{}
			}
		}
	}

	classes := make(map[string][]string, len(fields))
	for _, f := range fields {
		vals := make([]string, 0, len(seen[f]))
		for v := range seen[f] {
			vals = append(vals, v)
		}
		sort.Strings(vals)
		classes[f] = vals
	}
	return NewEncodingModel(fields, classes)
}

// NewEncodingModel 由既有词表构造模型（词表顺序即码序，调用方负责其稳定性）。
func NewEncodingModel(fields []string, classes map[string][]string) *EncodingModel {
	m := &EncodingModel{Fields: fields, Classes: classes}
	m.buildIndex()
	return m
}

func (m *EncodingModel) buildIndex() {
	m.index = make(map[string]map[string]int, len(m.Fields))
	for _, f := range m.Fields {
		idx := make(map[string]int, len(m.Classes[f]))
		for i, v := range m.Classes[f] {
			idx[v] = i
		}
		m.index[f] = idx
	}
}

// UnmarshalJSON 反序列化后重建查找索引，保证持久化往返后的模型可直接使用。
func (m *EncodingModel) UnmarshalJSON(data []byte) error {
	type plain EncodingModel
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	m.Fields = p.Fields
	m.Classes = p.Classes
	m.buildIndex()
	return nil
}

// UnknownCode 返回字段的保留未知码（= 词表大小）。
func (m *EncodingModel) UnknownCode(field string) int {
	return len(m.Classes[field])
}

// Cardinality 返回字段的码数量（词表大小 + 未知码）。
func (m *EncodingModel) Cardinality(field string) int {
	return len(m.Classes[field]) + 1
}

// VectorDim 返回标签向量维度（每字段一维）。
func (m *EncodingModel) VectorDim() int {
	return len(m.Fields)
}

// OneHotDim 返回 one-hot 向量维度（各字段词表宽度之和，未知无专属列）。
func (m *EncodingModel) OneHotDim() int {
	dim := 0
	for _, f := range m.Fields {
		dim += len(m.Classes[f])
	}
	return dim
}

// Code 返回字段取值的整数码；词表外取值回落到未知码，永不报错。
// 取值在查找前先做规范化，口语同义词与大小写差异不会落入未知码。
func (m *EncodingModel) Code(field, value string) int {
	v := NormalizeField(field, value)
	if idx, ok := m.index[field]; ok {
		if code, ok := idx[v]; ok {
			return code
		}
	}
	return m.UnknownCode(field)
}

// encode 按 FieldOrder 把一条记录的各字段编码为标签向量。
func (m *EncodingModel) encode(get func(string) string) []float64 {
	vec := make([]float64, 0, len(m.Fields))
	for _, f := range m.Fields {
		vec = append(vec, float64(m.Code(f, get(f))))
	}
	return vec
}

// oneHot 按 FieldOrder 把一条记录展开为 one-hot 向量，未知取值为全零块。
func (m *EncodingModel) oneHot(get func(string) string) []float64 {
	vec := make([]float64, m.OneHotDim())
	offset := 0
	for _, f := range m.Fields {
		width := len(m.Classes[f])
		if code := m.Code(f, get(f)); code < width {
			vec[offset+code] = 1.0
		}
		offset += width
	}
	return vec
}

// EncodeService 编码服务记录为标签向量。
func (m *EncodingModel) EncodeService(s *core.Service) []float64 {
	return m.encode(s.Field)
}

// EncodePreference 编码偏好记录为标签向量。
func (m *EncodingModel) EncodePreference(p *core.Preference) []float64 {
	return m.encode(p.Field)
}

// OneHotService 编码服务记录为 one-hot 向量（余弦/KNN 的度量形态）。
func (m *EncodingModel) OneHotService(s *core.Service) []float64 {
	return m.oneHot(s.Field)
}

// OneHotPreference 编码偏好记录为 one-hot 向量。
func (m *EncodingModel) OneHotPreference(p *core.Preference) []float64 {
	return m.oneHot(p.Field)
}
