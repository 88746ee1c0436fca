package model

import (
	"math"
	"testing"

	"github.com/rushteam/matchkit/core"
)

func TestDefaultMaxDistance(t *testing.T) {
	if got, want := DefaultMaxDistance(4), math.Sqrt(8); !approxEqual(got, want) {
		t.Errorf("DefaultMaxDistance(4) = %v, want %v", got, want)
	}
	if got := DefaultMaxDistance(0); got != 0 {
		t.Errorf("DefaultMaxDistance(0) = %v, want 0", got)
	}
}

func TestKNNModel_Score(t *testing.T) {
	enc := metricTestModel()
	knn := NewKNNModel(0) // 采用默认最大距离 sqrt(8)
	pref := core.Preference{BusinessType: "Technology", PriceCategory: "Low", LanguageSupport: "Both", LocationArea: "Mumbai"}
	mctx := newTestContext(pref, enc)

	tests := []struct {
		name string
		svc  core.Service
		want float64
	}{
		{
			name: "zero distance gives full score",
			svc:  core.Service{ID: "A", BusinessType: "Technology", PriceCategory: "Low", LanguageSupport: "Both", LocationArea: "Mumbai"},
			want: 1.0,
		},
		{
			name: "maximum distance gives zero",
			svc:  core.Service{ID: "C", BusinessType: "Retail", PriceCategory: "High", LanguageSupport: "Hindi", LocationArea: "Delhi"},
			want: 0.0, // 四个字段全不同，距离恰为 sqrt(8)
		},
		{
			name: "two differing fields",
			svc:  core.Service{ID: "B", BusinessType: "Technology", PriceCategory: "Low", LanguageSupport: "English", LocationArea: "Remote"},
			want: 1 - 2/math.Sqrt(8),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := knn.Score(mctx, newTestCandidate(tt.svc, 0, enc))
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

func TestKNNModel_TightMaxDistanceClamps(t *testing.T) {
	enc := metricTestModel()
	knn := NewKNNModel(1.0) // 比实际距离小，分数应夹在 0 而不是变负
	pref := core.Preference{BusinessType: "Technology", PriceCategory: "Low", LanguageSupport: "Both", LocationArea: "Mumbai"}
	svc := core.Service{ID: "C", BusinessType: "Retail", PriceCategory: "High", LanguageSupport: "Hindi", LocationArea: "Delhi"}

	got, err := knn.Score(newTestContext(pref, enc), newTestCandidate(svc, 0, enc))
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if got != 0 {
		t.Errorf("Score() = %v, want 0", got)
	}
}
