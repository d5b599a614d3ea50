package domain

// NodeKind distinguishes file nodes from function nodes.
type NodeKind string

// Dependency graph node kinds.
const (
	NodeFile     NodeKind = "file"
	NodeFunction NodeKind = "function"
)

// EdgeCalls labels a textual call relationship.
const EdgeCalls = "calls"

// DependencyNode is a file or function in the dependency graph.
type DependencyNode struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Kind  NodeKind `json:"type"`
	File  string   `json:"file,omitempty"`
}

// DependencyEdge links a file to a function it appears to call.
// Edges come from name co-occurrence only; there is no scope resolution.
type DependencyEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// DependencyGraph is the node and edge set built from a group of files.
type DependencyGraph struct {
	Nodes []DependencyNode `json:"nodes"`
	Edges []DependencyEdge `json:"edges"`
}
