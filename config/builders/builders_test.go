package builders

import (
	"strings"
	"testing"

	"github.com/rushteam/matchkit/config"
	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/pipeline"
)

func TestDefaultFactory_BuildsConfiguredPipeline(t *testing.T) {
	var cfg pipeline.Config
	cfg.Pipeline.Name = "match"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "filter", Config: map[string]interface{}{
			"bypass_when_empty": true,
			"filters": []interface{}{
				map[string]interface{}{"type": "business"},
			},
		}},
		{Type: "rank.score", Config: map[string]interface{}{"strategy": "weighted"}},
		{Type: "rerank.diversity", Config: map[string]interface{}{"max_per_type": 2}},
		{Type: "rerank.topn", Config: map[string]interface{}{"n": 5}},
		{Type: "postprocess.quality_label", Config: map[string]interface{}{"high": 0.8, "medium": 0.4}},
	}

	if err := config.ValidatePipelineConfig(&cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig() error = %v", err)
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Nodes) != 5 {
		t.Fatalf("built %d nodes, want 5", len(p.Nodes))
	}

	wantKinds := []pipeline.Kind{pipeline.KindFilter, pipeline.KindRank, pipeline.KindReRank, pipeline.KindReRank, pipeline.KindPostProcess}
	for i, k := range wantKinds {
		if p.Nodes[i].Kind() != k {
			t.Errorf("node[%d].Kind() = %v, want %v", i, p.Nodes[i].Kind(), k)
		}
	}
}

func TestValidatePipelineConfig_UnknownType(t *testing.T) {
	var cfg pipeline.Config
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "recall.hot"}}

	err := config.ValidatePipelineConfig(&cfg)
	if err == nil || !strings.Contains(err.Error(), "unsupported node type") {
		t.Errorf("ValidatePipelineConfig() error = %v, want unsupported node type", err)
	}
}

func TestBuildModel(t *testing.T) {
	for _, name := range []string{"weighted", "cosine", "knn"} {
		m, err := config.BuildModel(name, map[string]interface{}{})
		if err != nil {
			t.Fatalf("BuildModel(%s) error = %v", name, err)
		}
		if m.Name() != name {
			t.Errorf("BuildModel(%s).Name() = %s", name, m.Name())
		}
	}

	_, err := config.BuildModel("bogus", nil)
	if !core.IsInvalidConfig(err) {
		t.Errorf("BuildModel(bogus) error = %v, want INVALID_CONFIG", err)
	}
	if !strings.Contains(err.Error(), "supported:") {
		t.Errorf("error should list supported strategies, got %v", err)
	}
}

func TestBuildWeightedModel_InvalidWeights(t *testing.T) {
	_, err := BuildWeightedModel(map[string]interface{}{
		"weights": map[string]interface{}{"business_type": 1.0},
	})
	if !core.IsInvalidConfig(err) {
		t.Errorf("partial weights should fail validation, got %v", err)
	}
}

func TestBuildFilterNode_RuleCompileError(t *testing.T) {
	_, err := BuildFilterNode(map[string]interface{}{
		"filters": []interface{}{
			map[string]interface{}{"type": "rule", "expr": "service.price_category =="},
		},
	})
	if !core.IsInvalidConfig(err) {
		t.Errorf("invalid rule expression should fail at build time, got %v", err)
	}
}
