package rank

import (
	"context"
	"sort"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/model"
	"github.com/rushteam/matchkit/pipeline"
	"github.com/rushteam/matchkit/pkg/utils"
)

// ScoreNode 是打分排序 Node：用 MatchModel 给每个候选打分并按分数降序排序。
// - 写入 labels：match_model
// - 同分时按候选的目录位序（Position）升序，保证输出稳定可复现
type ScoreNode struct {
	Model model.MatchModel
}

func (n *ScoreNode) Name() string        { return "rank.score" }
func (n *ScoreNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ScoreNode) Process(
	_ context.Context,
	mctx *core.MatchContext,
	cands []*core.Candidate,
) ([]*core.Candidate, error) {
	if n.Model == nil || len(cands) == 0 {
		return cands, nil
	}

	for _, cand := range cands {
		if cand == nil {
			continue
		}
		score, err := n.Model.Score(mctx, cand)
		if err != nil {
			return nil, err
		}
		cand.Score = score
		cand.PutLabel("match_model", utils.Label{Value: n.Model.Name(), Source: "rank"})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i] == nil {
			return false
		}
		if cands[j] == nil {
			return true
		}
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].Position < cands[j].Position
	})
	return cands, nil
}
