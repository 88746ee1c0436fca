package quality

import (
	"context"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/pipeline"
	"github.com/rushteam/matchkit/pkg/utils"
)

// LabelQuality 是质量档写入候选 Labels 时使用的 key。
const LabelQuality = "quality"

// LabelNode 是质量分层后处理节点：按分数把每个候选标成 High/Medium/Low。
// - 写入 labels：quality
// 通常放在 Pipeline 末尾，排序与截断之后。
type LabelNode struct {
	Classifier *Classifier
}

func (n *LabelNode) Name() string        { return "postprocess.quality_label" }
func (n *LabelNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *LabelNode) Process(
	_ context.Context,
	_ *core.MatchContext,
	cands []*core.Candidate,
) ([]*core.Candidate, error) {
	cls := n.Classifier
	if cls == nil {
		cls = NewClassifier()
	}
	for _, cand := range cands {
		if cand == nil {
			continue
		}
		tier := cls.Classify(cand.Score)
		cand.PutLabel(LabelQuality, utils.Label{Value: string(tier), Source: "quality"})
	}
	return cands, nil
}
