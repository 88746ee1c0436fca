// Package engine 把编码、过滤、打分、质量档与解释装配成完整的匹配引擎。
//
// 引擎持有一份不可变的目录快照（Snapshot），所有请求共享读；
// 换目录通过 Reload 旁路重建新快照后原子替换，请求期间永远看到
// 一致的 (目录, 编码模型, 预编码向量) 三元组。
package engine

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/feature"
)

// Snapshot 是一次装载得到的不可变匹配快照：
// 目录记录、在其上拟合的编码模型、以及预编码好的标签/one-hot 向量。
// 构建完成后只读；Candidates 每次产出新的候选对象，向量按引用共享。
type Snapshot struct {
	services []core.Service
	model    *feature.EncodingModel
	vectors  [][]float64
	oneHots  [][]float64
	byID     map[string]int
	source   string
	loadedAt time.Time
}

// BuildSnapshot 在目录上拟合编码模型并预编码全部记录。
// 预编码按分片并发执行，分片间写入区间不相交，无需加锁。
func BuildSnapshot(ctx context.Context, services []core.Service, source string) (*Snapshot, error) {
	snap := &Snapshot{
		services: services,
		model:    feature.Fit(services),
		vectors:  make([][]float64, len(services)),
		oneHots:  make([][]float64, len(services)),
		byID:     make(map[string]int, len(services)),
		source:   source,
		loadedAt: time.Now(),
	}
	for i := range services {
		snap.byID[services[i].ID] = i
	}
	if len(services) == 0 {
		return snap, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(services) {
		workers = len(services)
	}
	chunk := (len(services) + workers - 1) / workers

	eg, egCtx := errgroup.WithContext(ctx)
	for start := 0; start < len(services); start += chunk {
		start, end := start, start+chunk
		if end > len(services) {
			end = len(services)
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				snap.vectors[i] = snap.model.EncodeService(&snap.services[i])
				snap.oneHots[i] = snap.model.OneHotService(&snap.services[i])
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Len 返回目录条数。
func (s *Snapshot) Len() int { return len(s.services) }

// Model 返回快照的编码模型。
func (s *Snapshot) Model() *feature.EncodingModel { return s.model }

// SourceName 返回装载来源名。
func (s *Snapshot) SourceName() string { return s.source }

// LoadedAt 返回快照构建时间。
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Services 返回目录记录的副本（对外列表展示用，快照本体保持只读）。
func (s *Snapshot) Services() []core.Service {
	out := make([]core.Service, len(s.services))
	copy(out, s.services)
	return out
}

// Candidates 把整份目录物化为候选集。
// 候选对象每次新建（Score/Labels 是请求态），Service 与向量按引用共享，
// Pipeline 各节点不得修改它们。
func (s *Snapshot) Candidates() []*core.Candidate {
	out := make([]*core.Candidate, len(s.services))
	for i := range s.services {
		c := core.NewCandidate(&s.services[i], i)
		c.Vector = s.vectors[i]
		c.OneHot = s.oneHots[i]
		out[i] = c
	}
	return out
}

// CandidateByID 按服务 ID 物化单个候选，用于单对解释。
func (s *Snapshot) CandidateByID(id string) (*core.Candidate, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	c := core.NewCandidate(&s.services[i], i)
	c.Vector = s.vectors[i]
	c.OneHot = s.oneHots[i]
	return c, true
}

// ServiceByID 按服务 ID 查找目录记录。
func (s *Snapshot) ServiceByID(id string) (*core.Service, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.services[i], true
}

// EncodePreference 用快照的编码模型编码偏好，返回 (标签向量, one-hot 向量)。
func (s *Snapshot) EncodePreference(p *core.Preference) ([]float64, []float64) {
	return s.model.EncodePreference(p), s.model.OneHotPreference(p)
}

// FieldDistribution 统计字段取值分布（规范化后计数）。
func (s *Snapshot) FieldDistribution(field string) map[string]int {
	out := make(map[string]int)
	for i := range s.services {
		v := feature.NormalizeField(field, s.services[i].Field(field))
		if v == "" {
			continue
		}
		out[v]++
	}
	return out
}

// DistinctCount 统计字段的不同取值数。
func (s *Snapshot) DistinctCount(field string) int {
	return len(s.FieldDistribution(field))
}
