package dataset

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/rushteam/matchkit/core"
)

// CSVSource 从 CSV 文件装载原始目录。
type CSVSource struct {
	Path string
}

func (s *CSVSource) Name() string {
	return "csv:" + filepath.Base(s.Path)
}

func (s *CSVSource) Load(_ context.Context) ([]core.Service, error) {
	return LoadCSV(s.Path)
}

// SampleSource 返回内置示例目录。
type SampleSource struct{}

func (SampleSource) Name() string { return "sample" }

func (SampleSource) Load(_ context.Context) ([]core.Service, error) {
	return SampleServices(), nil
}

// FallbackSource 先读主来源，出错或为空时退回兜底来源。
// 典型用法：CSV 文件缺失时退回内置示例目录。
type FallbackSource struct {
	Primary  core.CatalogSource
	Fallback core.CatalogSource
}

func (s *FallbackSource) Name() string {
	return s.Primary.Name() + "|" + s.Fallback.Name()
}

func (s *FallbackSource) Load(ctx context.Context) ([]core.Service, error) {
	svcs, err := s.Primary.Load(ctx)
	if err == nil && len(svcs) > 0 {
		return svcs, nil
	}
	return s.Fallback.Load(ctx)
}

// CleanSource 包装任意目录来源：装载后执行清洗，并记录最近一次清洗报告。
// 引擎挂接 CleanSource 后，Reload 时的数据同样走清洗。
type CleanSource struct {
	Source  core.CatalogSource
	Cleaner *Cleaner

	mu   sync.Mutex
	last Report
}

func NewCleanSource(src core.CatalogSource) *CleanSource {
	return &CleanSource{Source: src, Cleaner: NewCleaner()}
}

func (s *CleanSource) Name() string {
	return s.Source.Name() + ":cleaned"
}

func (s *CleanSource) Load(ctx context.Context) ([]core.Service, error) {
	raw, err := s.Source.Load(ctx)
	if err != nil {
		return nil, err
	}
	cleaner := s.Cleaner
	if cleaner == nil {
		cleaner = NewCleaner()
	}
	svcs, report := cleaner.Clean(raw)

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()
	return svcs, nil
}

// LastReport 返回最近一次装载的清洗报告。
func (s *CleanSource) LastReport() Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

var (
	_ core.CatalogSource = (*CSVSource)(nil)
	_ core.CatalogSource = (*SampleSource)(nil)
	_ core.CatalogSource = (*FallbackSource)(nil)
	_ core.CatalogSource = (*CleanSource)(nil)
)
