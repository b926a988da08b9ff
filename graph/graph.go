// Package graph builds fragment shader text from a small DAG of typed GLSL
// expression blocks.
//
// Nodes live in an arena and refer to their children by NodeID. A child must have
// been added before its parent, so every graph is acyclic by construction.
package graph

import (
	"fmt"
	"strings"
)

// NodeID addresses a node within its Graph.
type NodeID int

// Dim is the component count of a GLSL value. DimAny matches every slot.
type Dim int

const (
	DimAny Dim = 0
	Dim1   Dim = 1
	Dim2   Dim = 2
	Dim3   Dim = 3
	Dim4   Dim = 4
	// dimNone marks terminal nodes that produce a statement, not a value.
	dimNone Dim = -1
)

func (d Dim) String() string {
	switch d {
	case DimAny:
		return "any"
	case dimNone:
		return "none"
	case Dim1:
		return "float"
	}
	return fmt.Sprintf("vec%d", int(d))
}

// accepts reports whether a value of dimension got may feed a slot of want.
// A scalar fits any slot; EmitFragment widens it with a constructor.
func (want Dim) accepts(got Dim) bool {
	return got == want || got == DimAny || got == Dim1
}

// promote widens a scalar expression to want. GLSL only converts scalars inside
// constructors, never on assignment. A widened vec4 keeps alpha at 1.
func promote(want, got Dim, expr string) string {
	if got != Dim1 || want == Dim1 || want == DimAny {
		return expr
	}
	if want == Dim4 {
		return "vec4(vec3(" + expr + "), 1.0)"
	}
	return fmt.Sprintf("vec%d(%s)", int(want), expr)
}

// Kind is a node type.
type Kind int

const (
	KindInput Kind = iota
	KindBaseSphere
	KindOutput
)

type kindInfo struct {
	name      string
	inputDims []Dim
	outputDim Dim
	// template receives the child emissions in input order.
	template func(n *Node, children []string) string
}

var kinds = map[Kind]kindInfo{
	KindInput: {
		name:      "input",
		outputDim: DimAny,
		template:  func(n *Node, _ []string) string { return n.Name },
	},
	KindBaseSphere: {
		name:      "sphere",
		inputDims: []Dim{Dim3},
		outputDim: Dim1,
		template:  func(_ *Node, c []string) string { return "length(" + c[0] + ") - 2.0" },
	},
	KindOutput: {
		name:      "output",
		inputDims: []Dim{Dim4},
		outputDim: dimNone,
		template:  func(_ *Node, c []string) string { return "fragColor = " + c[0] + ";" },
	},
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, error) {
	for k, info := range kinds {
		if info.name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown node kind %q", name)
}

// InputDims returns the dimensions k expects from its children.
func (k Kind) InputDims() []Dim {
	return kinds[k].inputDims
}

// OutputDim returns the dimension of the value k produces.
func (k Kind) OutputDim() Dim {
	return kinds[k].outputDim
}

// Node is one expression block.
type Node struct {
	Kind Kind
	// Name is the identifier of an Input node.
	Name   string
	Inputs []NodeID
}

// Graph is an arena of nodes. The zero value is an empty graph.
type Graph struct {
	nodes []Node
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Add appends n and returns its id. Every input must already be in the graph.
func (g *Graph) Add(n Node) (NodeID, error) {
	id := NodeID(len(g.nodes))
	if err := g.check(id, n); err != nil {
		return 0, err
	}
	n.Inputs = append([]NodeID(nil), n.Inputs...)
	g.nodes = append(g.nodes, n)
	return id, nil
}

func (g *Graph) mustAdd(n Node) NodeID {
	id, err := g.Add(n)
	if err != nil {
		panic(err)
	}
	return id
}

// Input adds a bare identifier such as fragCoord or iTime.
func (g *Graph) Input(name string) NodeID {
	return g.mustAdd(Node{Kind: KindInput, Name: name})
}

// BaseSphere adds the signed distance to a sphere of radius 2 around the origin.
func (g *Graph) BaseSphere(p NodeID) NodeID {
	return g.mustAdd(Node{Kind: KindBaseSphere, Inputs: []NodeID{p}})
}

// Output adds the terminal assignment to fragColor.
func (g *Graph) Output(c NodeID) NodeID {
	return g.mustAdd(Node{Kind: KindOutput, Inputs: []NodeID{c}})
}

// check validates n as the node that would get id.
func (g *Graph) check(id NodeID, n Node) error {
	info, ok := kinds[n.Kind]
	if !ok {
		return fmt.Errorf("node %d: unknown kind %d", id, int(n.Kind))
	}
	if n.Kind == KindInput && !isIdentifier(n.Name) {
		return fmt.Errorf("node %d: invalid input name %q", id, n.Name)
	}
	if len(n.Inputs) != len(info.inputDims) {
		return fmt.Errorf("node %d: %s takes %d inputs, got %d", id, info.name, len(info.inputDims), len(n.Inputs))
	}
	for i, child := range n.Inputs {
		if child < 0 || child >= id || int(child) >= len(g.nodes) {
			return &RefError{Node: id, Input: i, Ref: child}
		}
		got := g.nodes[child].Kind.OutputDim()
		if got == dimNone || !info.inputDims[i].accepts(got) {
			return &DimError{Node: id, Input: i, Want: info.inputDims[i], Got: got}
		}
	}
	return nil
}

// Emit returns the GLSL text of root. The output only depends on the graph, so the
// same graph always emits byte-identical text. Add has already checked every node.
func (g *Graph) Emit(root NodeID) (string, error) {
	if _, ok := g.Node(root); !ok {
		return "", fmt.Errorf("root %d out of range", root)
	}

	// mark what root reaches, then emit in id order: children always precede parents
	reach := make([]bool, root+1)
	reach[root] = true
	stack := []NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range g.nodes[id].Inputs {
			if !reach[child] {
				reach[child] = true
				stack = append(stack, child)
			}
		}
	}

	emitted := make([]string, root+1)
	children := make([]string, 0, 4)
	for id := NodeID(0); id <= root; id++ {
		if !reach[id] {
			continue
		}
		n := &g.nodes[id]
		children = children[:0]
		for _, child := range n.Inputs {
			children = append(children, emitted[child])
		}
		emitted[id] = kinds[n.Kind].template(n, children)
	}
	return emitted[root], nil
}

// EmitFragment wraps the emission of an Output root in a main function, ready to be
// saved as a shader file. Unlike Emit, a scalar feeding the output is widened to the
// vec4 that fragColor needs.
func (g *Graph) EmitFragment(root NodeID) (string, error) {
	n, ok := g.Node(root)
	if !ok {
		return "", fmt.Errorf("root %d out of range", root)
	}
	if n.Kind != KindOutput {
		return "", fmt.Errorf("root %d is %s, want output", root, n.Kind)
	}
	child := n.Inputs[0]
	expr, err := g.Emit(child)
	if err != nil {
		return "", err
	}
	got := g.nodes[child].Kind.OutputDim()
	stmt := kinds[KindOutput].template(&n, []string{promote(KindOutput.InputDims()[0], got, expr)})

	var b strings.Builder
	b.WriteString("void main()\n{\n    ")
	b.WriteString(stmt)
	b.WriteString("\n}\n")
	return b.String(), nil
}

// DimError reports an input whose dimension does not fit its slot.
type DimError struct {
	Node  NodeID
	Input int
	Want  Dim
	Got   Dim
}

func (e *DimError) Error() string {
	return fmt.Sprintf("node %d input %d: want %v, got %v", e.Node, e.Input, e.Want, e.Got)
}

// RefError reports an input that does not name an earlier node.
type RefError struct {
	Node  NodeID
	Input int
	Ref   NodeID
}

func (e *RefError) Error() string {
	return fmt.Sprintf("node %d input %d: reference %d is not an earlier node", e.Node, e.Input, e.Ref)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
