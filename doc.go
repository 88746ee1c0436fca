// Package matchkit 是一个服务匹配与推荐工具包（Match Kit）：
// 给定用户的业务偏好，在服务目录上完成编码、过滤、打分、质量分档与解释生成。
//
// 设计要点：
// - Pipeline-first: 匹配逻辑通过 Node 串联（Filter → Rank → ReRank → PostProcess）
// - 确定性优先: 同一目录与偏好永远产出同一排序与同一解释文案
// - Node 可扩展: 自定义过滤/打分/重排节点即可插拔扩展
package matchkit

import "github.com/rushteam/matchkit/pipeline"

// 轻量 facade：便于用户直接 import "matchkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
