package tree

import "encoding/json"

// RootKey is the registry key reserved for the synthetic root.
const RootKey = ""

// NodeID indexes a node in its Tree's arena.
type NodeID int

// Node is one file or directory of the preview tree.
type Node struct {
	OriginName  string
	Key         string
	ParentKey   string
	IsDirectory bool
	Children    []NodeID

	placeholder bool
}

// Placeholder reports whether the node was synthesized because a child
// referenced it before (or without) an explicit directory entry.
func (n Node) Placeholder() bool { return n.placeholder }

// Tree is the result of one build. It is not safe for concurrent mutation;
// once built it is read-only.
type Tree struct {
	nodes    []Node
	index    map[string]NodeID
	root     NodeID
	rootName string
}

func newTree(rootName string) *Tree {
	return &Tree{
		index:    make(map[string]NodeID),
		root:     -1,
		rootName: rootName,
	}
}

func (t *Tree) add(n Node) NodeID {
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) appendChild(parent, child NodeID) {
	t.nodes[parent].Children = append(t.nodes[parent].Children, child)
}

// Root returns the synthetic root. ok is false for a tree built from no
// entries.
func (t *Tree) Root() (id NodeID, ok bool) {
	id, ok = t.index[RootKey]
	return id, ok
}

// Lookup returns the node registered under key.
func (t *Tree) Lookup(key string) (NodeID, bool) {
	id, ok := t.index[key]
	return id, ok
}

// Node returns the node at id. The returned Children slice must not be
// modified.
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Len returns the number of nodes in the arena, including placeholders.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Walk visits every node reachable from the root, depth first, parents
// before children.
func (t *Tree) Walk(yield func(NodeID, Node) bool) {
	root, ok := t.Root()
	if !ok {
		return
	}
	stack := []NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[id]
		if !yield(id, n) {
			return
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// Files returns the number of file nodes reachable from the root.
func (t *Tree) Files() int {
	count := 0
	for _, n := range t.Walk {
		if !n.IsDirectory {
			count++
		}
	}
	return count
}

type jsonNode struct {
	OriginName     string     `json:"originName"`
	FileName       string     `json:"fileName"`
	ParentFileName string     `json:"parentFileName"`
	Directory      bool       `json:"directory"`
	ChildList      []jsonNode `json:"childList"`
}

func (t *Tree) jsonNode(id NodeID) jsonNode {
	n := t.nodes[id]
	jn := jsonNode{
		OriginName:     n.OriginName,
		FileName:       n.Key,
		ParentFileName: n.ParentKey,
		Directory:      n.IsDirectory,
		ChildList:      make([]jsonNode, 0, len(n.Children)),
	}
	for _, c := range n.Children {
		jn.ChildList = append(jn.ChildList, t.jsonNode(c))
	}
	return jn
}

// MarshalJSON serializes the tree from its root. The root carries the
// archive base name as its origin name. A tree without entries serializes as
// an empty root directory.
func (t *Tree) MarshalJSON() ([]byte, error) {
	root, ok := t.Root()
	if !ok {
		return json.Marshal(jsonNode{
			OriginName: t.rootName,
			Directory:  true,
			ChildList:  []jsonNode{},
		})
	}
	jn := t.jsonNode(root)
	jn.OriginName = t.rootName
	return json.Marshal(jn)
}
