package graph

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// MarshalJSON renders the wire format described by the service contract:
// {"nodes":[...], "edges":[...]}.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.toWire())
}

// UnmarshalJSON rebuilds a Graph from the wire format, preserving node
// insertion order and deduplicating edges exactly as a freshly built graph
// would.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var w wireFormat
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	g.nodeIdx = map[string]int{}
	g.nodes = nil
	g.edgeSeen = map[edgeKey]struct{}{}
	g.edges = nil
	for _, n := range w.Nodes {
		g.AddNode(n)
	}
	for _, e := range w.Edges {
		g.AddEdge(e.Source, e.Target, e.Type)
	}
	return nil
}

// MarshalYAML supports the yaml.v3 encoder directly, matching the teacher's
// use of yaml struct tags for its linage types.
func (g *Graph) MarshalYAML() (interface{}, error) {
	return g.toWire(), nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML-encoded graphs.
func (g *Graph) UnmarshalYAML(value *yaml.Node) error {
	var w wireFormat
	if err := value.Decode(&w); err != nil {
		return err
	}
	g.nodeIdx = map[string]int{}
	g.nodes = nil
	g.edgeSeen = map[edgeKey]struct{}{}
	g.edges = nil
	for _, n := range w.Nodes {
		g.AddNode(n)
	}
	for _, e := range w.Edges {
		g.AddEdge(e.Source, e.Target, e.Type)
	}
	return nil
}

var (
	_ yaml.Marshaler   = (*Graph)(nil)
	_ yaml.Unmarshaler = (*Graph)(nil)
)
