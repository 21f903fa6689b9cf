package state

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// LinkChange sets the cost of the link between A and B at simulated time At.
type LinkChange struct {
	At   float64 `yaml:"at" toml:"at"`
	A    NodeId  `yaml:"a" toml:"a"`
	B    NodeId  `yaml:"b" toml:"b"`
	Cost Cost    `yaml:"cost" toml:"cost"`
}

// Topology describes a network and how a simulation of it should run
type Topology struct {
	Costs       [][]Cost     `yaml:"costs" toml:"costs"`                                   // symmetric link cost matrix, inf when not adjacent
	LinkChanges []LinkChange `yaml:"link_changes,omitempty" toml:"link_changes,omitempty"` // scheduled link cost changes
	Seed        uint64       `yaml:"seed,omitempty" toml:"seed,omitempty"`                 // seed for the packet delay source
	MaxDelay    float64      `yaml:"max_delay,omitempty" toml:"max_delay,omitempty"`       // per packet delay is drawn from [0, max_delay)
	MaxEvents   int          `yaml:"max_events,omitempty" toml:"max_events,omitempty"`     // the simulation aborts after this many events

	// alternative to costs, see ParseGraph
	Nodes     int      `yaml:"nodes,omitempty" toml:"nodes,omitempty"`
	Graph     []string `yaml:"graph,omitempty" toml:"graph,omitempty"`
	GraphCost Cost     `yaml:"graph_cost,omitempty" toml:"graph_cost,omitempty"` // cost of every graph edge, defaults to 1
}

func (t *Topology) N() int {
	return len(t.Costs)
}

// Links returns a copy of the link costs of node id.
func (t *Topology) Links(id NodeId) LinkSet {
	return slices.Clone(LinkSet(t.Costs[id]))
}

// Edges returns every finite link once, with V1 < V2.
func (t *Topology) Edges() []Pair[NodeId, NodeId] {
	edges := make([]Pair[NodeId, NodeId], 0)
	for a := range t.Costs {
		for b := a + 1; b < len(t.Costs[a]); b++ {
			if !t.Costs[a][b].IsInf() {
				edges = append(edges, Pair[NodeId, NodeId]{NodeId(a), NodeId(b)})
			}
		}
	}
	SortPairs(edges)
	return edges
}

func (t *Topology) Clone() *Topology {
	c := *t
	c.Costs = make([][]Cost, len(t.Costs))
	for i, row := range t.Costs {
		c.Costs[i] = slices.Clone(row)
	}
	c.LinkChanges = slices.Clone(t.LinkChanges)
	return &c
}

// ApplyDefaults fills unset simulation parameters and normalises costs.
func (t *Topology) ApplyDefaults() {
	if t.MaxDelay == 0 {
		t.MaxDelay = DefaultMaxDelay
	}
	if t.MaxEvents == 0 {
		t.MaxEvents = DefaultMaxEvents
	}
	for _, row := range t.Costs {
		for i := range row {
			row[i] = row[i].Normalize()
		}
	}
	for i := range t.LinkChanges {
		t.LinkChanges[i].Cost = t.LinkChanges[i].Cost.Normalize()
	}
}

// DefaultTopology is the four node network
//
//	0 --1-- 1 --1-- 2 --2-- 3, plus 0 --10-- 2 and 0 --7-- 3
func DefaultTopology() *Topology {
	t := &Topology{
		Costs: [][]Cost{
			{0, 1, 10, 7},
			{1, 0, 1, INF},
			{10, 1, 0, 2},
			{7, INF, 2, 0},
		},
	}
	t.ApplyDefaults()
	return t
}

// DefaultLinkChanges raises the 0-1 link to 20 and later restores it.
func DefaultLinkChanges() []LinkChange {
	return []LinkChange{
		{At: 10000, A: 0, B: 1, Cost: 20},
		{At: 20000, A: 0, B: 1, Cost: 1},
	}
}

// DecodeTopology parses a topology in the given format, "yaml" or "toml".
func DecodeTopology(data []byte, format string) (*Topology, error) {
	t := &Topology{}
	var err error
	switch strings.ToLower(format) {
	case "toml":
		err = toml.Unmarshal(data, t)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, t)
	default:
		return nil, fmt.Errorf("unknown topology format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse topology: %w", err)
	}
	if err := t.ExpandGraph(); err != nil {
		return nil, err
	}
	t.ApplyDefaults()
	if err := TopologyValidator(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ExpandGraph fills Costs from Graph when no cost matrix was given.
func (t *Topology) ExpandGraph() error {
	if len(t.Graph) == 0 {
		return nil
	}
	if len(t.Costs) != 0 {
		return fmt.Errorf("costs and graph are mutually exclusive")
	}
	if t.Nodes <= 0 {
		return fmt.Errorf("graph requires a positive node count, got %d", t.Nodes)
	}
	cost := t.GraphCost
	if cost == 0 {
		cost = 1
	}
	costs, err := CostsFromGraph(t.Graph, t.Nodes, cost)
	if err != nil {
		return err
	}
	t.Costs = costs
	return nil
}

// LoadTopology reads a topology file, choosing the format by extension.
func LoadTopology(path string) (*Topology, error) {
	if err := PathValidator(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = "toml"
	}
	t, err := DecodeTopology(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func EncodeTopology(t *Topology) ([]byte, error) {
	return yaml.Marshal(t)
}
