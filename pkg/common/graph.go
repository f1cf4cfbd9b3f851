package common

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Node is a single article placed in an exploration graph. Depth is the
// distance from the root at first discovery and is never changed afterwards,
// no matter how many later paths reach the same article. Seq is the discovery
// order and drives deterministic serialization.
type Node struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Summary    string  `json:"summary,omitempty"`
	URL        string  `json:"url"`
	PageID     *int64  `json:"page_id,omitempty"`
	ImageURL   string  `json:"image_url,omitempty"`
	Depth      int     `json:"depth"`
	Seq        int     `json:"seq"`
	Importance float64 `json:"importance"`
	Unresolved bool    `json:"unresolved,omitempty"`
}

// Edge is a directed link between two nodes. There is at most one edge per
// ordered (From, To) pair; rediscovering the pair bumps Weight instead of
// duplicating the edge.
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
	Kind   string `json:"kind"`
	Seq    int    `json:"seq"`
}

// EdgeKey identifies an edge by its ordered endpoint pair.
type EdgeKey struct {
	From string
	To   string
}

// EdgeKindLink is the default relation between two articles.
const EdgeKindLink = "link"

// Graph owns the node and edge sets of one exploration. Nodes are keyed by
// canonical id and edges by ordered pair, so all cross-references go through
// id lookup rather than pointers.
type Graph struct {
	Nodes map[string]*Node
	Edges map[EdgeKey]*Edge

	Root      string
	NodeLimit int

	nodeSeq int
	edgeSeq int
}

// NewGraph creates an empty graph rooted at rootID. nodeLimit caps how many
// nodes the graph may ever hold, including across later expansions.
func NewGraph(rootID string, nodeLimit int) *Graph {
	return &Graph{
		Nodes:     make(map[string]*Node),
		Edges:     make(map[EdgeKey]*Edge),
		Root:      rootID,
		NodeLimit: nodeLimit,
	}
}

// AddNode places n in the graph, assigning its discovery sequence. The caller
// must have checked that no node with the same id exists.
func (g *Graph) AddNode(n *Node) *Node {
	n.Seq = g.nodeSeq
	g.nodeSeq++
	g.Nodes[n.ID] = n
	return n
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.Nodes[id]
}

// HasNode reports whether id is present in the node set.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

// Edge returns the edge for the ordered pair, or nil.
func (g *Graph) Edge(from, to string) *Edge {
	return g.Edges[EdgeKey{From: from, To: to}]
}

// RecordEdge adds the directed edge (from, to) with weight 1, or bumps the
// weight when the pair was already recorded. Both endpoints must exist.
func (g *Graph) RecordEdge(from, to, kind string) *Edge {
	key := EdgeKey{From: from, To: to}
	if e, ok := g.Edges[key]; ok {
		e.Weight++
		return e
	}
	e := &Edge{
		From:   from,
		To:     to,
		Weight: 1,
		Kind:   kind,
		Seq:    g.edgeSeq,
	}
	g.edgeSeq++
	g.Edges[key] = e
	return e
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of distinct directed edges.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// AtNodeLimit reports whether no more nodes may be added.
func (g *Graph) AtNodeLimit() bool {
	return g.NodeLimit > 0 && len(g.Nodes) >= g.NodeLimit
}

// MaxDepth returns the deepest depth observed across all nodes.
func (g *Graph) MaxDepth() int {
	maxDepth := 0
	for _, n := range g.Nodes {
		if n.Depth > maxDepth {
			maxDepth = n.Depth
		}
	}
	return maxDepth
}

// NodesInOrder returns all nodes sorted by discovery sequence.
func (g *Graph) NodesInOrder() []*Node {
	nodes := make([]*Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Seq < nodes[j].Seq })
	return nodes
}

// EdgesInOrder returns all edges sorted by creation sequence.
func (g *Graph) EdgesInOrder() []*Edge {
	edges := make([]*Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Seq < edges[j].Seq })
	return edges
}

// Clone returns a deep copy. The copy can be mutated freely while readers
// keep using the original snapshot.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		Nodes:     make(map[string]*Node, len(g.Nodes)),
		Edges:     make(map[EdgeKey]*Edge, len(g.Edges)),
		Root:      g.Root,
		NodeLimit: g.NodeLimit,
		nodeSeq:   g.nodeSeq,
		edgeSeq:   g.edgeSeq,
	}
	for id, n := range g.Nodes {
		copied := *n
		clone.Nodes[id] = &copied
	}
	for key, e := range g.Edges {
		copied := *e
		clone.Edges[key] = &copied
	}
	return clone
}

// Validate checks the structural invariants: every edge endpoint resolves to
// a node, the root exists (unless the graph is empty) and sits at depth 0.
func (g *Graph) Validate() error {
	if len(g.Nodes) == 0 {
		return nil
	}
	root, ok := g.Nodes[g.Root]
	if !ok {
		return fmt.Errorf("root node %q missing from node set", g.Root)
	}
	if root.Depth != 0 {
		return fmt.Errorf("root node %q has depth %d, want 0", g.Root, root.Depth)
	}
	for key := range g.Edges {
		if _, ok := g.Nodes[key.From]; !ok {
			return fmt.Errorf("edge (%s -> %s) references missing source node", key.From, key.To)
		}
		if _, ok := g.Nodes[key.To]; !ok {
			return fmt.Errorf("edge (%s -> %s) references missing target node", key.From, key.To)
		}
	}
	return nil
}

type graphJSON struct {
	Root      string  `json:"root"`
	NodeLimit int     `json:"node_limit"`
	NodeCount int     `json:"node_count"`
	EdgeCount int     `json:"edge_count"`
	MaxDepth  int     `json:"max_depth"`
	Nodes     []*Node `json:"nodes"`
	Edges     []*Edge `json:"edges"`
}

// MarshalJSON serializes nodes and edges in discovery order, so two
// explorations of identical content produce identical documents.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(graphJSON{
		Root:      g.Root,
		NodeLimit: g.NodeLimit,
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
		MaxDepth:  g.MaxDepth(),
		Nodes:     g.NodesInOrder(),
		Edges:     g.EdgesInOrder(),
	})
}

// UnmarshalJSON restores the keyed node/edge sets and the internal sequence
// counters, so later expansions keep appending after the highest sequence.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc graphJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	g.Root = doc.Root
	g.NodeLimit = doc.NodeLimit
	g.Nodes = make(map[string]*Node, len(doc.Nodes))
	g.Edges = make(map[EdgeKey]*Edge, len(doc.Edges))
	g.nodeSeq = 0
	g.edgeSeq = 0
	for _, n := range doc.Nodes {
		g.Nodes[n.ID] = n
		if n.Seq >= g.nodeSeq {
			g.nodeSeq = n.Seq + 1
		}
	}
	for _, e := range doc.Edges {
		if e.Weight < 1 {
			e.Weight = 1
		}
		g.Edges[EdgeKey{From: e.From, To: e.To}] = e
		if e.Seq >= g.edgeSeq {
			g.edgeSeq = e.Seq + 1
		}
	}
	return nil
}

// CanonicalID derives the stable node id for an article title: surrounding
// whitespace trimmed, inner whitespace collapsed, spaces replaced with
// underscores and the first rune uppercased (the MediaWiki canonical form).
func CanonicalID(title string) string {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return ""
	}
	joined := strings.Join(fields, "_")
	runes := []rune(joined)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// TitleFromID is the inverse of CanonicalID for display purposes.
func TitleFromID(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}
