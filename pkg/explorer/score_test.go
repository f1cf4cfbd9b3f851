package explorer

import (
	"testing"

	"wikigraph/pkg/common"
)

func TestScoreNormalizesByMaxDegree(t *testing.T) {
	g := common.NewGraph("A", 10)
	g.AddNode(&common.Node{ID: "A", Depth: 0})
	g.AddNode(&common.Node{ID: "B", Depth: 1})
	g.AddNode(&common.Node{ID: "C", Depth: 1})
	g.AddNode(&common.Node{ID: "D", Depth: 1})
	g.RecordEdge("A", "B", common.EdgeKindLink)
	g.RecordEdge("A", "C", common.EdgeKindLink)
	g.RecordEdge("A", "D", common.EdgeKindLink)
	g.RecordEdge("B", "C", common.EdgeKindLink)

	scores := Score(g)

	// Degrees: A=3, B=2, C=2, D=1.
	if scores["A"] != 1.0 {
		t.Errorf("score A = %f, want 1.0", scores["A"])
	}
	if want := 2.0 / 3.0; scores["B"] != want {
		t.Errorf("score B = %f, want %f", scores["B"], want)
	}
	if want := 2.0 / 3.0; scores["C"] != want {
		t.Errorf("score C = %f, want %f", scores["C"], want)
	}
	if want := 1.0 / 3.0; scores["D"] != want {
		t.Errorf("score D = %f, want %f", scores["D"], want)
	}
}

func TestScorePinsRootToMaximum(t *testing.T) {
	g := common.NewGraph("R", 10)
	g.AddNode(&common.Node{ID: "R", Depth: 0})
	g.AddNode(&common.Node{ID: "X", Depth: 1})
	g.AddNode(&common.Node{ID: "Y", Depth: 2})
	g.AddNode(&common.Node{ID: "Z", Depth: 2})
	g.RecordEdge("R", "X", common.EdgeKindLink)
	g.RecordEdge("X", "Y", common.EdgeKindLink)
	g.RecordEdge("X", "Z", common.EdgeKindLink)
	g.RecordEdge("Y", "Z", common.EdgeKindLink)

	scores := Score(g)

	// R has degree 1, X the maximum 3. The root still scores 1.0.
	if scores["R"] != 1.0 {
		t.Errorf("root score = %f, want 1.0", scores["R"])
	}
	if scores["X"] != 1.0 {
		t.Errorf("score X = %f, want 1.0", scores["X"])
	}
	for id, s := range scores {
		if s < 0 || s > 1 {
			t.Errorf("score %s = %f, want within [0,1]", id, s)
		}
	}
}

func TestScoreSingleNodeGraph(t *testing.T) {
	g := common.NewGraph("A", 10)
	g.AddNode(&common.Node{ID: "A", Depth: 0, Unresolved: true})

	scores := Score(g)
	if scores["A"] != 1.0 {
		t.Errorf("lone root score = %f, want 1.0", scores["A"])
	}
}
