package rerank

import (
	"context"
	"fmt"
	"testing"

	"github.com/rushteam/matchkit/core"
)

func makeCandidates(n int) []*core.Candidate {
	out := make([]*core.Candidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, core.NewCandidate(&core.Service{ID: fmt.Sprintf("S%d", i)}, i))
	}
	return out
}

func TestTopNNode(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		total int
		want  int
	}{
		{"truncates to n", 3, 10, 3},
		{"fewer candidates than n", 10, 4, 4},
		{"zero keeps all", 0, 5, 5},
		{"negative keeps all", -1, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), nil, makeCandidates(tt.total))
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("Process() kept %d, want %d", len(out), tt.want)
			}
		})
	}
}

func TestTopNNode_KeepsHead(t *testing.T) {
	node := &TopNNode{N: 2}
	out, err := node.Process(context.Background(), nil, makeCandidates(5))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out[0].Service.ID != "S0" || out[1].Service.ID != "S1" {
		t.Errorf("Process() kept [%s %s], want [S0 S1]", out[0].Service.ID, out[1].Service.ID)
	}
}
