package semantics

import "github.com/loomui/loom/pkg/graphics"

// Configuration is the accessibility description a render object
// contributes: a label, the states it exposes, and the actions it
// handles.
type Configuration struct {
	Label   string
	Value   string
	Hint    string
	Flags   SemanticsFlag
	Role    SemanticsRole
	Actions *SemanticsActions
}

// Node is one entry of the semantics tree handed to the platform's
// assistive technology bridge.
type Node struct {
	ID       int64
	Rect     graphics.Rect
	Config   Configuration
	children []*Node
}

// Append adds child under this node.
func (n *Node) Append(child *Node) {
	n.children = append(n.children, child)
}

// Children returns the node's children in paint order.
func (n *Node) Children() []*Node { return n.children }

// Visit walks the subtree depth-first, stopping when visitor returns
// false.
func (n *Node) Visit(visitor func(*Node) bool) bool {
	if !visitor(n) {
		return false
	}
	for _, child := range n.children {
		if !child.Visit(visitor) {
			return false
		}
	}
	return true
}

// Tree is the semantics tree produced by a frame's semantics phase.
type Tree struct {
	root   *Node
	nextID int64
}

// NewTree creates a tree with an empty root node.
func NewTree() *Tree {
	return &Tree{root: &Node{}}
}

// Root returns the anchor node; it carries no configuration of its own.
func (t *Tree) Root() *Node { return t.root }

// NewNode allocates a node with a fresh identifier.
func (t *Tree) NewNode(config *Configuration, rect graphics.Rect) *Node {
	t.nextID++
	node := &Node{ID: t.nextID, Rect: rect}
	if config != nil {
		node.Config = *config
	}
	return node
}

// NodeCount returns the number of allocated nodes, excluding the root.
func (t *Tree) NodeCount() int64 { return t.nextID }
