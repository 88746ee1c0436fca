// Package feast 封装 Feast Feature Store 的在线特征访问，并基于它实现
// 目录属性的在线富集（core.CatalogSource）。
//
// 目录主数据（CSV / 内置样例）提供 ID、名称与描述等静态字段；四个类别
// 字段（business_type / price_category / language_support / location_area）
// 可由 Feast 在线库中的运营修正值覆盖，见 Source。
//
// 参考：https://github.com/feast-dev/feast
package feast

import (
	"context"
	"time"
)

// Client 是 Feast 在线特征访问的客户端接口。
//
// 领域侧只依赖此接口：GrpcClient（官方 SDK）是默认实现，
// 测试可以换成内存假实现。
type Client interface {
	// GetOnlineFeatures 按实体行批量获取在线特征。
	// 返回的特征向量与 EntityRows 一一对应，顺序一致。
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接。
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征引用列表，形如 "service_attributes:price_category"。
	Features []string

	// EntityRows 实体行，例如 [{"service_id": "SRV_0001"}]。
	EntityRows []map[string]interface{}

	// Project 项目名称，为空时用客户端的缺省项目。
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应。
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，与请求的实体行一一对应。
	FeatureVectors []FeatureVector
}

// FeatureVector 是单个实体行的特征取值。
type FeatureVector struct {
	// Values 特征值，键为请求中的特征引用名。
	// 在线库中不存在的特征不会出现在 map 里。
	Values map[string]interface{}

	// EntityRow 对应的实体行。
	EntityRow map[string]interface{}
}

// ClientOption Feast 客户端配置选项。
type ClientOption func(*ClientConfig)

// ClientConfig Feast 客户端配置。
type ClientConfig struct {
	// Endpoint 服务端点。
	Endpoint string

	// Project 缺省项目名称。
	Project string

	// Timeout 单次请求超时时间。
	Timeout time.Duration

	// Auth 认证信息，nil 表示不启用认证。
	Auth *AuthConfig
}

// AuthConfig 认证配置。gRPC 通道目前支持静态 Token 认证。
type AuthConfig struct {
	// Type 认证类型，当前支持 "static"。
	Type string

	// Token 静态 Token。
	Token string
}

// WithTimeout 配置选项：设置单次请求超时时间。
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithAuth 配置选项：设置认证信息。
func WithAuth(auth *AuthConfig) ClientOption {
	return func(c *ClientConfig) {
		c.Auth = auth
	}
}
