package core

// 类别字段名称常量。
// 编码、打分、解释全链路共享同一套字段命名，顺序由 FieldOrder 固定。
const (
	FieldBusinessType    = "business_type"
	FieldPriceCategory   = "price_category"
	FieldLanguageSupport = "language_support"
	FieldLocationArea    = "location_area"
)

// FieldOrder 返回类别字段的固定顺序。
// 编码向量的分量顺序、权重遍历顺序都以此为准，保证全链路一致。
func FieldOrder() []string {
	return []string{FieldBusinessType, FieldPriceCategory, FieldLanguageSupport, FieldLocationArea}
}

// NumFields 是类别字段数量。
const NumFields = 4

// Service 是目录中的一条服务记录。
// 由数据清洗侧一次性装载，引擎生命周期内只读。
//
// 目录不变式：
//   - ID 在目录内唯一（去重由清洗侧完成，引擎不再去重）
//   - 类别字段取值来自清洗后的有限词表
type Service struct {
	ID              string         `json:"service_id" yaml:"service_id"`
	Name            string         `json:"service_name" yaml:"service_name"`
	BusinessType    string         `json:"business_type" yaml:"business_type"`
	PriceCategory   string         `json:"price_category" yaml:"price_category"` // Low < Medium < High
	LanguageSupport string         `json:"language_support" yaml:"language_support"`
	LocationArea    string         `json:"location_area" yaml:"location_area"`
	Description     string         `json:"description" yaml:"description"`
	Meta            map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Field 按字段名取类别属性值，未知字段返回 ""。
func (s *Service) Field(name string) string {
	switch name {
	case FieldBusinessType:
		return s.BusinessType
	case FieldPriceCategory:
		return s.PriceCategory
	case FieldLanguageSupport:
		return s.LanguageSupport
	case FieldLocationArea:
		return s.LocationArea
	default:
		return ""
	}
}

// Preference 是一次匹配请求的用户偏好，与 Service 共享类别字段。
// 每次请求构造一个，不做持久化。
type Preference struct {
	BusinessType    string `json:"business_type" yaml:"business_type"`
	PriceCategory   string `json:"price_category" yaml:"price_category"`
	LanguageSupport string `json:"language_support" yaml:"language_support"`
	LocationArea    string `json:"location_area" yaml:"location_area"`
}

// Field 按字段名取偏好值，未知字段返回 ""。
func (p *Preference) Field(name string) string {
	switch name {
	case FieldBusinessType:
		return p.BusinessType
	case FieldPriceCategory:
		return p.PriceCategory
	case FieldLanguageSupport:
		return p.LanguageSupport
	case FieldLocationArea:
		return p.LocationArea
	default:
		return ""
	}
}

// Validate 校验偏好各字段均已填写。
// 字段缺失属于调用方错误，这里防御性拦截，避免编码出静默错误的向量。
func (p *Preference) Validate() error {
	if p == nil {
		return NewInvalidInputError(ModuleEngine, "preference is nil")
	}
	for _, field := range FieldOrder() {
		if p.Field(field) == "" {
			return NewInvalidInputError(ModuleEngine, "preference missing required field: "+field)
		}
	}
	return nil
}
