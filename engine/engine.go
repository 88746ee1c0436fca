package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/matchkit/config"
	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/dataset"
	"github.com/rushteam/matchkit/explain"
	"github.com/rushteam/matchkit/filter"
	"github.com/rushteam/matchkit/model"
	"github.com/rushteam/matchkit/pipeline"
	"github.com/rushteam/matchkit/quality"
	"github.com/rushteam/matchkit/rank"
	"github.com/rushteam/matchkit/rerank"
	"github.com/rushteam/matchkit/store"
)

// DefaultTopN 是配置未指定时的默认返回条数。
const DefaultTopN = 5

// Request 是一次匹配请求。
type Request struct {
	// Preference 是用户偏好，四个字段必填（Validate 拦截缺失）。
	Preference *core.Preference

	// TopN 必须为正；显式传 0 或负数是调用方错误，不做默认兜底。
	// 服务层负责在请求省略时用配置默认值补齐。
	TopN int

	// Strategy 为空时用引擎默认策略。
	Strategy string

	// RequestID 可选，由服务层注入用于日志串联。
	RequestID string

	// Params 请求级参数，透传给规则过滤。
	Params map[string]any
}

// Engine 是匹配引擎：持有目录快照、策略集与过滤器，
// 把一次请求装配成 Pipeline（过滤 → 打分 → 截断 → 质量档）执行。
//
// 并发约定：快照只读共享，Recommend 可被任意并发调用；
// Reload/SetCatalog 旁路重建后在写锁内换指针，不阻塞在途请求。
type Engine struct {
	cfg        config.EngineConfig
	models     map[string]model.MatchModel
	classifier *quality.Classifier
	explainer  *explain.Generator
	source     core.CatalogSource
	store      core.KeyValueStore

	// strictFilters 严格过滤（规则、排除名单），滤空即空。
	// bypassFilters 业务类型过滤，滤空回退放行。
	strictFilters []filter.Filter
	bypassFilters []filter.Filter

	mu   sync.RWMutex
	snap *Snapshot
}

// Option 配置 Engine 的可选依赖。
type Option func(*Engine)

// WithSource 指定目录来源，Reload 从这里装载。
func WithSource(src core.CatalogSource) Option {
	return func(e *Engine) { e.source = src }
}

// WithStore 指定存储后端：动态排除名单实时读取，Persist 落盘目录与编码模型。
func WithStore(st core.KeyValueStore) Option {
	return func(e *Engine) { e.store = st }
}

// New 按配置装配引擎。策略、权重、规则表达式在这里 fail-fast，
// 请求路径上不再出现配置类错误（请求级策略名除外）。
//
// 零值便利：Strategy 空 → weighted；TopN <= 0 → DefaultTopN；
// Weights nil → 默认权重；Quality 双零 → 默认阈值。
// 加分系数取字面值（显式 0 生效），要默认系数请从 config.Default() 出发。
func New(cfg config.EngineConfig, opts ...Option) (*Engine, error) {
	if cfg.Strategy == "" {
		cfg.Strategy = model.StrategyWeighted
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}
	if cfg.Weights == nil {
		cfg.Weights = model.DefaultWeights()
	}
	if cfg.Quality.High == 0 && cfg.Quality.Medium == 0 {
		cfg.Quality = *quality.NewClassifier()
	}

	e := &Engine{
		cfg:       cfg,
		explainer: explain.NewGenerator(),
	}
	for _, opt := range opts {
		opt(e)
	}

	cls := cfg.Quality
	if err := cls.Validate(); err != nil {
		return nil, err
	}
	e.classifier = &cls

	weighted := &model.WeightedModel{
		Weights:        cfg.Weights,
		ExactBonus:     cfg.ExactBonus,
		PriceCredit:    cfg.PriceCredit,
		LanguageCredit: cfg.LanguageCredit,
	}
	if err := weighted.Validate(); err != nil {
		return nil, err
	}
	e.models = map[string]model.MatchModel{
		model.StrategyWeighted: weighted,
		model.StrategyCosine:   model.NewCosineModel(),
		model.StrategyKNN:      model.NewKNNModel(cfg.MaxDistance),
	}
	if _, ok := e.models[cfg.Strategy]; !ok {
		return nil, core.NewInvalidConfigError(core.ModuleEngine,
			fmt.Sprintf("unsupported strategy %q (supported: %v)", cfg.Strategy, e.Strategies()))
	}

	if cfg.Rule != "" {
		rf, err := filter.NewRuleFilter(cfg.Rule)
		if err != nil {
			return nil, err
		}
		e.strictFilters = append(e.strictFilters, rf)
	}
	if len(cfg.Exclude) > 0 || e.store != nil {
		e.strictFilters = append(e.strictFilters, filter.NewExcludeFilter(cfg.Exclude, e.store, store.KeyExcluded))
	}
	if cfg.RequireBusinessMatch {
		e.bypassFilters = append(e.bypassFilters, filter.NewBusinessTypeFilter())
	}

	return e, nil
}

// DefaultTopN 返回配置的默认返回条数（服务层补齐省略的 top_n 用）。
func (e *Engine) DefaultTopN() int { return e.cfg.TopN }

// DefaultStrategy 返回配置的默认策略名。
func (e *Engine) DefaultStrategy() string { return e.cfg.Strategy }

// Strategies 返回已装配的策略名（有序）。
func (e *Engine) Strategies() []string {
	names := make([]string, 0, len(e.models))
	for name := range e.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recommend 执行一次匹配：过滤（严格 + 业务类型滤空回退）、按策略打分、
// 稳定降序排序（同分按目录位序）、截断 TopN、附质量档与解释。
// 空目录或过滤后为空返回空切片而不是错误。
func (e *Engine) Recommend(ctx context.Context, req *Request) ([]core.Recommendation, error) {
	if req == nil {
		return nil, core.NewInvalidInputError(core.ModuleEngine, "request is nil")
	}
	if req.TopN <= 0 {
		return nil, core.NewInvalidInputError(core.ModuleEngine,
			fmt.Sprintf("top_n must be positive, got %d", req.TopN))
	}
	if err := req.Preference.Validate(); err != nil {
		return nil, err
	}
	m, strategy, err := e.modelFor(req.Strategy)
	if err != nil {
		return nil, err
	}

	snap := e.snapshot()
	if snap == nil || snap.Len() == 0 {
		return []core.Recommendation{}, nil
	}

	mctx := newMatchContext(snap, req, strategy)
	out, err := e.buildPipeline(m, req.TopN).Run(ctx, mctx, snap.Candidates())
	if err != nil {
		return nil, err
	}

	recs := make([]core.Recommendation, 0, len(out))
	for _, cand := range out {
		if cand == nil || cand.Service == nil {
			continue
		}
		recs = append(recs, core.Recommendation{
			Service:     cand.Service,
			Score:       cand.Score,
			Quality:     e.tierOf(cand),
			Explanation: e.explainer.Explain(mctx.Pref, cand.Service, cand.Score, e.tierOf(cand)),
		})
	}
	return recs, nil
}

// Explain 对指定服务做单对打分并生成解释（服务不存在返回 NOT_FOUND）。
func (e *Engine) Explain(ctx context.Context, serviceID string, pref *core.Preference, strategy string) (*core.Recommendation, error) {
	if err := pref.Validate(); err != nil {
		return nil, err
	}
	m, name, err := e.modelFor(strategy)
	if err != nil {
		return nil, err
	}

	snap := e.snapshot()
	if snap == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeNotFound,
			fmt.Sprintf("service %s not found", serviceID))
	}
	cand, ok := snap.CandidateByID(serviceID)
	if !ok {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeNotFound,
			fmt.Sprintf("service %s not found", serviceID))
	}

	mctx := newMatchContext(snap, &Request{Preference: pref, TopN: 1}, name)
	score, err := m.Score(mctx, cand)
	if err != nil {
		return nil, err
	}
	tier := e.classifier.Classify(score)
	return &core.Recommendation{
		Service:     cand.Service,
		Score:       score,
		Quality:     tier,
		Explanation: e.explainer.Explain(pref, cand.Service, score, tier),
	}, nil
}

// CompareStrategies 用全部已装配策略各跑一遍同一请求，返回策略名 → 结果。
// 各策略并发执行，任一失败整体失败。
func (e *Engine) CompareStrategies(ctx context.Context, req *Request) (map[string][]core.Recommendation, error) {
	if req == nil {
		return nil, core.NewInvalidInputError(core.ModuleEngine, "request is nil")
	}

	var mu sync.Mutex
	out := make(map[string][]core.Recommendation, len(e.models))
	eg, egCtx := errgroup.WithContext(ctx)
	for name := range e.models {
		name := name
		eg.Go(func() error {
			r := *req
			r.Strategy = name
			recs, err := e.Recommend(egCtx, &r)
			if err != nil {
				return err
			}
			mu.Lock()
			out[name] = recs
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary 是一次推荐结果的汇总视图。
type Summary struct {
	TotalRecommendations int            `json:"total_recommendations"`
	AverageScore         float64        `json:"average_score"`
	QualityDistribution  map[string]int `json:"quality_distribution"`
	TopRecommendation    string         `json:"top_recommendation,omitempty"`
	Insight              string         `json:"insight"`
}

// Summarize 汇总一组推荐结果：条数、均分、质量分布、榜首与总体洞察。
func (e *Engine) Summarize(recs []core.Recommendation, pref *core.Preference) Summary {
	sum := Summary{
		TotalRecommendations: len(recs),
		QualityDistribution:  make(map[string]int, 3),
		Insight:              e.explainer.Summary(recs, pref),
	}
	if len(recs) == 0 {
		return sum
	}
	total := 0.0
	for _, rec := range recs {
		total += rec.Score
		sum.QualityDistribution[string(rec.Quality)]++
	}
	sum.AverageScore = total / float64(len(recs))
	if recs[0].Service != nil {
		sum.TopRecommendation = recs[0].Service.Name
	}
	return sum
}

// Stats 是目录与引擎的统计视图。
type Stats struct {
	TotalServices   int             `json:"total_services"`
	BusinessTypes   int             `json:"business_types"`
	Locations       int             `json:"locations"`
	PriceCategories map[string]int  `json:"price_categories"`
	LanguageSupport map[string]int  `json:"language_support"`
	Strategies      []string        `json:"strategies"`
	Source          string          `json:"source,omitempty"`
	LoadedAt        time.Time       `json:"loaded_at"`
	CleaningReport  *dataset.Report `json:"cleaning_report,omitempty"`
}

// Stats 返回当前快照的统计：目录规模、业务类型/区域的取值数、
// 价格与语言分布；目录来源带清洗报告时一并带出。
func (e *Engine) Stats() Stats {
	st := Stats{Strategies: e.Strategies()}
	snap := e.snapshot()
	if snap == nil {
		return st
	}
	st.TotalServices = snap.Len()
	st.BusinessTypes = snap.DistinctCount(core.FieldBusinessType)
	st.Locations = snap.DistinctCount(core.FieldLocationArea)
	st.PriceCategories = snap.FieldDistribution(core.FieldPriceCategory)
	st.LanguageSupport = snap.FieldDistribution(core.FieldLanguageSupport)
	st.Source = snap.SourceName()
	st.LoadedAt = snap.LoadedAt()

	// 目录来源可能被包了多层（如 Feast 富集包清洗），沿 Unwrap 链找清洗报告。
	for src := e.source; src != nil; {
		if rs, ok := src.(interface{ LastReport() dataset.Report }); ok {
			rep := rs.LastReport()
			st.CleaningReport = &rep
			break
		}
		u, ok := src.(interface{ Unwrap() core.CatalogSource })
		if !ok {
			break
		}
		src = u.Unwrap()
	}
	return st
}

// Services 返回当前目录记录（副本），未装载时为空。
func (e *Engine) Services() []core.Service {
	snap := e.snapshot()
	if snap == nil {
		return nil
	}
	return snap.Services()
}

// Reload 从目录来源旁路重建快照并原子替换；装载失败保留旧快照。
func (e *Engine) Reload(ctx context.Context) error {
	if e.source == nil {
		return core.NewInvalidConfigError(core.ModuleEngine, "no catalog source configured")
	}
	svcs, err := e.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog from %s: %w", e.source.Name(), err)
	}
	return e.rebuild(ctx, svcs, e.source.Name())
}

// SetCatalog 用给定目录直接重建快照（绕过来源的注入口，测试与嵌入场景用）。
func (e *Engine) SetCatalog(ctx context.Context, services []core.Service) error {
	return e.rebuild(ctx, services, "direct")
}

// Persist 把当前快照的目录与编码模型写入存储，
// 供多实例部署时其他实例经 store.NewSource 装载同一份目录。
func (e *Engine) Persist(ctx context.Context) error {
	if e.store == nil {
		return core.NewInvalidConfigError(core.ModuleEngine, "no store configured")
	}
	snap := e.snapshot()
	if snap == nil {
		return core.NewInvalidInputError(core.ModuleEngine, "no catalog loaded")
	}
	if err := store.SaveCatalog(ctx, e.store, snap.Services()); err != nil {
		return err
	}
	return store.SaveEncodingModel(ctx, e.store, snap.Model())
}

// Snapshot 返回当前快照（可能为 nil），供只读检视。
func (e *Engine) Snapshot() *Snapshot { return e.snapshot() }

func (e *Engine) rebuild(ctx context.Context, services []core.Service, source string) error {
	snap, err := BuildSnapshot(ctx, services, source)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.snap = snap
	e.mu.Unlock()
	return nil
}

func (e *Engine) snapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}

func (e *Engine) modelFor(name string) (model.MatchModel, string, error) {
	if name == "" {
		name = e.cfg.Strategy
	}
	m, ok := e.models[name]
	if !ok {
		return nil, "", core.NewInvalidConfigError(core.ModuleEngine,
			fmt.Sprintf("unsupported strategy %q (supported: %v)", name, e.Strategies()))
	}
	return m, name, nil
}

// buildPipeline 装配一次请求的节点链。
// 严格过滤在前，业务类型滤空回退在后：回退只放行严格过滤后的集合，
// 不会复活被规则/名单剔除的候选。
func (e *Engine) buildPipeline(m model.MatchModel, topN int) *pipeline.Pipeline {
	nodes := make([]pipeline.Node, 0, 6)
	if len(e.strictFilters) > 0 {
		nodes = append(nodes, &filter.FilterNode{Filters: e.strictFilters})
	}
	if len(e.bypassFilters) > 0 {
		nodes = append(nodes, &filter.FilterNode{Filters: e.bypassFilters, BypassWhenEmpty: true})
	}
	nodes = append(nodes, &rank.ScoreNode{Model: m})
	if e.cfg.MaxPerBusinessType > 0 {
		nodes = append(nodes, &rerank.DiversityNode{MaxPerType: e.cfg.MaxPerBusinessType})
	}
	nodes = append(nodes,
		&rerank.TopNNode{N: topN},
		&quality.LabelNode{Classifier: e.classifier},
	)
	return &pipeline.Pipeline{Nodes: nodes}
}

// tierOf 读取质量档标签，缺失时直接分类兜底。
func (e *Engine) tierOf(cand *core.Candidate) core.Tier {
	if lbl, ok := cand.Labels[quality.LabelQuality]; ok && lbl.Value != "" {
		return core.Tier(lbl.Value)
	}
	return e.classifier.Classify(cand.Score)
}

func newMatchContext(snap *Snapshot, req *Request, strategy string) *core.MatchContext {
	vec, oneHot := snap.EncodePreference(req.Preference)
	return &core.MatchContext{
		RequestID:  req.RequestID,
		Pref:       req.Preference,
		PrefVector: vec,
		PrefOneHot: oneHot,
		Strategy:   strategy,
		TopN:       req.TopN,
		Params:     req.Params,
	}
}
