package common

import (
	"encoding/json"
	"testing"
)

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "simple title",
			title: "Albert Einstein",
			want:  "Albert_Einstein",
		},
		{
			name:  "surrounding whitespace",
			title: "  Quantum mechanics ",
			want:  "Quantum_mechanics",
		},
		{
			name:  "collapsed inner whitespace",
			title: "Theory  of   relativity",
			want:  "Theory_of_relativity",
		},
		{
			name:  "lowercase first rune",
			title: "photon",
			want:  "Photon",
		},
		{
			name:  "empty",
			title: "   ",
			want:  "",
		},
		{
			name:  "unicode first rune",
			title: "ångström",
			want:  "Ångström",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalID(tt.title)
			if got != tt.want {
				t.Errorf("CanonicalID(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestRecordEdge(t *testing.T) {
	g := NewGraph("A", 10)
	g.AddNode(&Node{ID: "A", Depth: 0})
	g.AddNode(&Node{ID: "B", Depth: 1})

	e := g.RecordEdge("A", "B", EdgeKindLink)
	if e.Weight != 1 {
		t.Errorf("first discovery weight = %d, want 1", e.Weight)
	}

	again := g.RecordEdge("A", "B", EdgeKindLink)
	if again.Weight != 2 {
		t.Errorf("second discovery weight = %d, want 2", again.Weight)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("edge count = %d, want 1 (no duplicate edge records)", g.EdgeCount())
	}

	reverse := g.RecordEdge("B", "A", EdgeKindLink)
	if reverse.Weight != 1 {
		t.Errorf("reverse pair weight = %d, want 1 (ordered pairs are distinct)", reverse.Weight)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("edge count = %d, want 2", g.EdgeCount())
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid graph", func(t *testing.T) {
		g := NewGraph("A", 10)
		g.AddNode(&Node{ID: "A", Depth: 0})
		g.AddNode(&Node{ID: "B", Depth: 1})
		g.RecordEdge("A", "B", EdgeKindLink)
		if err := g.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("dangling edge", func(t *testing.T) {
		g := NewGraph("A", 10)
		g.AddNode(&Node{ID: "A", Depth: 0})
		g.Edges[EdgeKey{From: "A", To: "ghost"}] = &Edge{From: "A", To: "ghost", Weight: 1}
		if err := g.Validate(); err == nil {
			t.Error("Validate() = nil, want error for dangling edge")
		}
	})

	t.Run("missing root", func(t *testing.T) {
		g := NewGraph("A", 10)
		g.AddNode(&Node{ID: "B", Depth: 0})
		if err := g.Validate(); err == nil {
			t.Error("Validate() = nil, want error for missing root")
		}
	})

	t.Run("root not at depth zero", func(t *testing.T) {
		g := NewGraph("A", 10)
		g.AddNode(&Node{ID: "A", Depth: 1})
		if err := g.Validate(); err == nil {
			t.Error("Validate() = nil, want error for root depth")
		}
	})
}

func TestGraphJSONRoundTrip(t *testing.T) {
	g := NewGraph("A", 30)
	g.AddNode(&Node{ID: "A", Title: "A", Depth: 0})
	g.AddNode(&Node{ID: "B", Title: "B", Depth: 1})
	g.AddNode(&Node{ID: "C", Title: "C", Depth: 1})
	g.RecordEdge("A", "B", EdgeKindLink)
	g.RecordEdge("A", "C", EdgeKindLink)
	g.RecordEdge("A", "B", EdgeKindLink)

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	restored := &Graph{}
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if restored.Root != "A" || restored.NodeLimit != 30 {
		t.Errorf("restored root/limit = %q/%d, want A/30", restored.Root, restored.NodeLimit)
	}
	if restored.NodeCount() != 3 || restored.EdgeCount() != 2 {
		t.Errorf("restored counts = %d nodes/%d edges, want 3/2", restored.NodeCount(), restored.EdgeCount())
	}
	if e := restored.Edge("A", "B"); e == nil || e.Weight != 2 {
		t.Errorf("restored edge A->B = %+v, want weight 2", e)
	}

	// Sequence counters must continue past the restored maximum.
	added := restored.AddNode(&Node{ID: "D", Depth: 2})
	if added.Seq != 3 {
		t.Errorf("next node seq after restore = %d, want 3", added.Seq)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGraph("A", 10)
	g.AddNode(&Node{ID: "A", Depth: 0})
	g.AddNode(&Node{ID: "B", Depth: 1})
	g.RecordEdge("A", "B", EdgeKindLink)

	clone := g.Clone()
	clone.AddNode(&Node{ID: "C", Depth: 1})
	clone.RecordEdge("A", "B", EdgeKindLink)
	clone.Node("B").Importance = 0.9

	if g.HasNode("C") {
		t.Error("mutating clone added node to original")
	}
	if g.Edge("A", "B").Weight != 1 {
		t.Errorf("original edge weight = %d, want 1", g.Edge("A", "B").Weight)
	}
	if g.Node("B").Importance != 0 {
		t.Errorf("original node importance = %f, want 0", g.Node("B").Importance)
	}
}
