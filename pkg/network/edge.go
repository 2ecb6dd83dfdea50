package network

// Edge is an ordered (source, target) pair of dense node indices.
// Whether it is directed is decided by the Interpretation, not the edge.
type Edge struct {
	Source int `json:"source" yaml:"source"`
	Target int `json:"target" yaml:"target"`
}

// SelfLoop reports whether the edge connects a node to itself.
func (e Edge) SelfLoop() bool {
	return e.Source == e.Target
}

// Reversed returns the edge with its endpoints swapped.
func (e Edge) Reversed() Edge {
	return Edge{Source: e.Target, Target: e.Source}
}

// View is the minimal network the engine consumes from its host: a node
// count (nodes are 0..NodeCount()-1) and an enumerable edge list.
type View interface {
	NodeCount() int
	Edges() []Edge
}

// EdgeList is a plain in-memory View.
type EdgeList struct {
	Nodes int
	List  []Edge
}

// NewEdgeList creates a view over n nodes with the given edges.
func NewEdgeList(n int, edges ...Edge) *EdgeList {
	return &EdgeList{Nodes: n, List: edges}
}

// NodeCount implements View.
func (l *EdgeList) NodeCount() int { return l.Nodes }

// Edges implements View.
func (l *EdgeList) Edges() []Edge { return l.List }

// Add appends an edge and returns the list for chaining.
func (l *EdgeList) Add(source, target int) *EdgeList {
	l.List = append(l.List, Edge{Source: source, Target: target})
	return l
}
