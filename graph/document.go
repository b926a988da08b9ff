package graph

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document is the serialized form of a graph and its root.
type Document struct {
	Nodes []DocumentNode `yaml:"nodes"`
	Root  NodeID         `yaml:"root"`
}

type DocumentNode struct {
	Kind   string   `yaml:"kind"`
	Name   string   `yaml:"name,omitempty"`
	Inputs []NodeID `yaml:"inputs,omitempty,flow"`
}

// Document returns the serializable form of g rooted at root.
func (g *Graph) Document(root NodeID) Document {
	doc := Document{Root: root, Nodes: make([]DocumentNode, len(g.nodes))}
	for i, n := range g.nodes {
		doc.Nodes[i] = DocumentNode{
			Kind:   n.Kind.String(),
			Name:   n.Name,
			Inputs: append([]NodeID(nil), n.Inputs...),
		}
	}
	return doc
}

// Graph rebuilds and validates the graph described by d.
func (d Document) Graph() (*Graph, NodeID, error) {
	g := &Graph{}
	for i, dn := range d.Nodes {
		kind, err := ParseKind(dn.Kind)
		if err != nil {
			return nil, 0, fmt.Errorf("node %d: %w", i, err)
		}
		if _, err := g.Add(Node{Kind: kind, Name: dn.Name, Inputs: dn.Inputs}); err != nil {
			return nil, 0, err
		}
	}
	if _, ok := g.Node(d.Root); !ok {
		return nil, 0, fmt.Errorf("root %d out of range", d.Root)
	}
	return g, d.Root, nil
}

// Decode reads a YAML document.
func Decode(r io.Reader) (*Graph, NodeID, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, 0, fmt.Errorf("decode graph: %w", err)
	}
	return doc.Graph()
}

// Encode writes g rooted at root as YAML.
func Encode(w io.Writer, g *Graph, root NodeID) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g.Document(root)); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return enc.Close()
}
