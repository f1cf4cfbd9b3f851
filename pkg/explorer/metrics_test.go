package explorer

import (
	"reflect"
	"testing"

	"wikigraph/pkg/common"
)

func TestMetrics(t *testing.T) {
	g := common.NewGraph("A", 10)
	g.AddNode(&common.Node{ID: "A", Title: "A", Depth: 0})
	g.AddNode(&common.Node{ID: "B", Title: "B", Depth: 1})
	g.AddNode(&common.Node{ID: "C", Title: "C", Depth: 1})
	g.AddNode(&common.Node{ID: "D", Title: "D", Depth: 2})
	g.RecordEdge("A", "B", common.EdgeKindLink)
	g.RecordEdge("A", "C", common.EdgeKindLink)
	g.RecordEdge("B", "D", common.EdgeKindLink)

	for id, s := range Score(g) {
		g.Node(id).Importance = s
	}

	m := Metrics(g)

	if m.NodeCount != 4 || m.EdgeCount != 3 {
		t.Errorf("counts = %d nodes/%d edges, want 4/3", m.NodeCount, m.EdgeCount)
	}
	if m.MaxDepth != 2 {
		t.Errorf("max depth = %d, want 2", m.MaxDepth)
	}
	if want := 3.0 / 12.0; m.Density != want {
		t.Errorf("density = %f, want %f", m.Density, want)
	}
	// Degrees: A=2, B=2, C=1, D=1 over 4 nodes.
	if want := 6.0 / 4.0; m.AvgDegree != want {
		t.Errorf("avg degree = %f, want %f", m.AvgDegree, want)
	}
	if m.MaxDegree != 2 {
		t.Errorf("max degree = %d, want 2", m.MaxDegree)
	}
	wantDist := map[int]int{0: 1, 1: 2, 2: 1}
	if !reflect.DeepEqual(m.DepthDistribution, wantDist) {
		t.Errorf("depth distribution = %v, want %v", m.DepthDistribution, wantDist)
	}
	if len(m.TopNodes) != 4 {
		t.Fatalf("top nodes = %d entries, want 4", len(m.TopNodes))
	}
	if m.TopNodes[0].ID != "A" {
		t.Errorf("top node = %q, want A (root pinned to 1.0)", m.TopNodes[0].ID)
	}
}

func TestMetricsEmptyAndSingleNode(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		m := Metrics(common.NewGraph("A", 10))
		if m.NodeCount != 0 || m.Density != 0 || m.AvgDegree != 0 {
			t.Errorf("empty graph metrics = %+v, want zeros", m)
		}
	})

	t.Run("single node", func(t *testing.T) {
		g := common.NewGraph("A", 10)
		g.AddNode(&common.Node{ID: "A", Depth: 0})
		m := Metrics(g)
		if m.Density != 0 {
			t.Errorf("single-node density = %f, want 0", m.Density)
		}
		if len(m.TopNodes) != 1 {
			t.Errorf("top nodes = %d entries, want 1", len(m.TopNodes))
		}
	})
}

func TestMetricsCapsTopNodes(t *testing.T) {
	g := common.NewGraph("N0", 50)
	g.AddNode(&common.Node{ID: "N0", Depth: 0})
	for i := 1; i < 15; i++ {
		id := common.CanonicalID("N" + string(rune('A'+i)))
		g.AddNode(&common.Node{ID: id, Depth: 1})
		g.RecordEdge("N0", id, common.EdgeKindLink)
	}

	m := Metrics(g)
	if len(m.TopNodes) != topNodeCount {
		t.Errorf("top nodes = %d entries, want %d", len(m.TopNodes), topNodeCount)
	}
}
