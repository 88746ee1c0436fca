package core

import "context"

// CatalogSource 是服务目录的来源接口。
//
// 设计原则同 Store：领域层定义接口，数据侧（dataset/feast/store）实现。
// 引擎只关心"拿到一份清洗后的目录"，不关心它来自 CSV、在线特征库还是缓存。
type CatalogSource interface {
	// Name 返回来源名称（用于日志与装载报告）
	Name() string

	// Load 装载整份目录。返回的切片归调用方所有，来源不得再持有引用。
	Load(ctx context.Context) ([]Service, error)
}
