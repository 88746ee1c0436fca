package model

import (
	"math"
	"testing"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/feature"
)

func newTestContext(pref core.Preference, m *feature.EncodingModel) *core.MatchContext {
	mctx := &core.MatchContext{Pref: &pref}
	if m != nil {
		mctx.PrefVector = m.EncodePreference(&pref)
		mctx.PrefOneHot = m.OneHotPreference(&pref)
	}
	return mctx
}

func newTestCandidate(svc core.Service, position int, m *feature.EncodingModel) *core.Candidate {
	cand := core.NewCandidate(&svc, position)
	if m != nil {
		cand.Vector = m.EncodeService(&svc)
		cand.OneHot = m.OneHotService(&svc)
	}
	return cand
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWeightedModel_Score(t *testing.T) {
	weighted := NewWeightedModel(nil)
	pref := core.Preference{BusinessType: "Technology", PriceCategory: "Low", LanguageSupport: "Both", LocationArea: "Mumbai"}

	tests := []struct {
		name string
		svc  core.Service
		want float64
	}{
		{
			name: "all fields exact hits the ceiling",
			svc:  core.Service{ID: "A", BusinessType: "Technology", PriceCategory: "Low", LanguageSupport: "Both", LocationArea: "Mumbai"},
			want: 1.0,
		},
		{
			name: "business and price only",
			svc:  core.Service{ID: "B", BusinessType: "Technology", PriceCategory: "Low", LanguageSupport: "English", LocationArea: "Remote"},
			want: 0.35 + 0.25,
		},
		{
			name: "no field matches",
			svc:  core.Service{ID: "C", BusinessType: "Retail", PriceCategory: "High", LanguageSupport: "Hindi", LocationArea: "Delhi"},
			want: 0.0,
		},
		{
			name: "adjacent price tier earns partial credit",
			svc:  core.Service{ID: "D", BusinessType: "Technology", PriceCategory: "Medium", LanguageSupport: "Both", LocationArea: "Mumbai"},
			want: 0.35 + 0.5*0.25 + 0.20 + 0.20,
		},
		{
			name: "non-adjacent price tier earns nothing",
			svc:  core.Service{ID: "E", BusinessType: "Technology", PriceCategory: "High", LanguageSupport: "Both", LocationArea: "Mumbai"},
			want: 0.35 + 0.20 + 0.20,
		},
		{
			name: "normalization applies before comparison",
			svc:  core.Service{ID: "F", BusinessType: "technology", PriceCategory: "cheap", LanguageSupport: "bilingual", LocationArea: "MUMBAI"},
			want: 1.0,
		},
		{
			name: "unknown field is neutral",
			svc:  core.Service{ID: "G", BusinessType: "Unknown", PriceCategory: "Low", LanguageSupport: "Both", LocationArea: "Mumbai"},
			want: 0.25 + 0.20 + 0.20,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := weighted.Score(newTestContext(pref, nil), newTestCandidate(tt.svc, 0, nil))
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if !approxEqual(got, tt.want) {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("Score() = %v out of [0,1]", got)
			}
		})
	}
}

func TestWeightedModel_LanguageCoverCredit(t *testing.T) {
	weighted := NewWeightedModel(nil)

	// 服务 Both 覆盖单语言偏好 → 部分分
	pref := core.Preference{BusinessType: "Retail", PriceCategory: "High", LanguageSupport: "English", LocationArea: "Delhi"}
	svc := core.Service{ID: "S", BusinessType: "Consulting", PriceCategory: "Low", LanguageSupport: "Both", LocationArea: "Pune"}
	got, err := weighted.Score(newTestContext(pref, nil), newTestCandidate(svc, 0, nil))
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if want := 0.5 * 0.20; !approxEqual(got, want) {
		t.Errorf("Score() = %v, want %v", got, want)
	}

	// 方向相反：偏好 Both、服务单语言 → 无分
	prefBoth := core.Preference{BusinessType: "Retail", PriceCategory: "High", LanguageSupport: "Both", LocationArea: "Delhi"}
	svcEnglish := core.Service{ID: "S2", BusinessType: "Consulting", PriceCategory: "Low", LanguageSupport: "English", LocationArea: "Pune"}
	got, err = weighted.Score(newTestContext(prefBoth, nil), newTestCandidate(svcEnglish, 0, nil))
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if !approxEqual(got, 0) {
		t.Errorf("Score() = %v, want 0", got)
	}
}

func TestWeightedModel_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WeightedModel)
		wantErr bool
	}{
		{"default weights are valid", func(m *WeightedModel) {}, false},
		{
			"weights not summing to one",
			func(m *WeightedModel) { m.Weights[core.FieldBusinessType] = 0.9 },
			true,
		},
		{
			"missing field weight",
			func(m *WeightedModel) { delete(m.Weights, core.FieldLocationArea) },
			true,
		},
		{
			"negative weight",
			func(m *WeightedModel) {
				m.Weights[core.FieldBusinessType] = -0.1
				m.Weights[core.FieldPriceCategory] = 0.7
			},
			true,
		},
		{
			"credit out of range",
			func(m *WeightedModel) { m.PriceCredit = 1.5 },
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewWeightedModel(nil)
			tt.mutate(m)
			err := m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !core.IsInvalidConfig(err) {
				t.Errorf("Validate() error code = %v, want INVALID_CONFIG", err)
			}
		})
	}
}
