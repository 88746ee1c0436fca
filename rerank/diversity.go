package rerank

import (
	"context"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/pipeline"
)

// DiversityNode 是业务类型多样性节点：限制同一业务类型在结果头部的出现次数，
// 超出上限的候选按原始顺序降级到尾部，不丢弃任何候选。
// 放在打分之后、Top-N 截断之前，截断后的头部可以覆盖更多业务类型；
// 多样化候选不足时仍会用降级候选回填到 N 条。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.ScoreNode{...},
//	        &rerank.DiversityNode{MaxPerType: 2},
//	        &rerank.TopNNode{N: 5},
//	    },
//	}
type DiversityNode struct {
	// MaxPerType 是每种业务类型在头部保留的最大条数。
	// <= 0 时不做任何调整。
	MaxPerType int

	// Field 是参与多样性统计的类别字段，默认 business_type。
	Field string
}

func (n *DiversityNode) Name() string {
	return "rerank.diversity"
}

func (n *DiversityNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *DiversityNode) Process(
	_ context.Context,
	_ *core.MatchContext,
	cands []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.MaxPerType <= 0 || len(cands) == 0 {
		return cands, nil
	}

	field := n.Field
	if field == "" {
		field = core.FieldBusinessType
	}

	seen := make(map[string]int, 8)
	head := make([]*core.Candidate, 0, len(cands))
	var overflow []*core.Candidate

	for _, cand := range cands {
		if cand == nil {
			continue
		}
		value := ""
		if cand.Service != nil {
			value = cand.Service.Field(field)
		}
		// 类别缺失的候选不参与配额统计
		if value == "" {
			head = append(head, cand)
			continue
		}
		if seen[value] >= n.MaxPerType {
			overflow = append(overflow, cand)
			continue
		}
		seen[value]++
		head = append(head, cand)
	}

	return append(head, overflow...), nil
}
