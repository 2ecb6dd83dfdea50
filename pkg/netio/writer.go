package netio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-netanalyzer/pkg/analysis"
	"github.com/dd0wney/cluso-netanalyzer/pkg/metrics"
	"github.com/dd0wney/cluso-netanalyzer/pkg/stats"
)

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Filters restricts exported histograms. A zero filter keeps every bin.
type Filters struct {
	Degree          stats.Filter `json:"degree" yaml:"degree" mapstructure:"degree"`
	Distance        stats.Filter `json:"distance" yaml:"distance" mapstructure:"distance"`
	SharedNeighbors stats.Filter `json:"shared_neighbors" yaml:"shared_neighbors" mapstructure:"shared_neighbors"`
	Stress          stats.Filter `json:"stress" yaml:"stress" mapstructure:"stress"`
}

// Bin is one histogram entry.
type Bin struct {
	Value int64 `json:"value" yaml:"value"`
	Count int64 `json:"count" yaml:"count"`
}

// NodeDocument is the exported statistics of one node.
type NodeDocument struct {
	Name               string `json:"name" yaml:"name"`
	analysis.NodeStats `yaml:",inline"`
}

// ResultsDocument is the exported form of analysis.Results.
type ResultsDocument struct {
	RunID          string                   `json:"run_id" yaml:"run_id"`
	Interpretation string                   `json:"interpretation" yaml:"interpretation"`
	Betweenness    bool                     `json:"betweenness" yaml:"betweenness"`
	Network        analysis.NetworkStats    `json:"network" yaml:"network"`
	Nodes          []NodeDocument           `json:"nodes" yaml:"nodes"`
	Distributions  map[string][]Bin         `json:"distributions" yaml:"distributions"`
	ByNeighbors    map[string][]stats.Point `json:"by_neighbors" yaml:"by_neighbors"`
}

func bins(h *stats.Histogram, f stats.Filter) []Bin {
	h = f.Apply(h)
	out := make([]Bin, 0, h.Len())
	for _, v := range h.Keys() {
		out = append(out, Bin{Value: v, Count: h.Count(v)})
	}
	return out
}

// NewDocument assembles the export document. names maps node indices to
// names; nodes without a name are exported by index.
func NewDocument(res *analysis.Results, names []string, f Filters) *ResultsDocument {
	doc := &ResultsDocument{
		RunID:          res.RunID,
		Interpretation: res.Interpretation.String(),
		Betweenness:    res.Betweenness,
		Network:        res.Network,
		Nodes:          make([]NodeDocument, 0, len(res.Nodes)),
		Distributions:  make(map[string][]Bin),
		ByNeighbors:    make(map[string][]stats.Point),
	}
	for _, ns := range res.Nodes {
		name := fmt.Sprint(ns.Index)
		if ns.Index < len(names) {
			name = names[ns.Index]
		}
		doc.Nodes = append(doc.Nodes, NodeDocument{Name: name, NodeStats: ns})
	}

	doc.Distributions["degree"] = bins(res.DegreeDist, f.Degree)
	if res.InDegreeDist != nil {
		doc.Distributions["in_degree"] = bins(res.InDegreeDist, f.Degree)
		doc.Distributions["out_degree"] = bins(res.OutDegreeDist, f.Degree)
	}
	doc.Distributions["distance"] = bins(res.DistanceDist, f.Distance)
	doc.Distributions["shared_neighbors"] = bins(res.SharedNeighborsDist, f.SharedNeighbors)
	if res.StressDist != nil {
		doc.Distributions["stress"] = bins(res.StressDist, f.Stress)
	}

	points := map[string]*stats.Points{
		"clustering":   res.ClusteringByDegree,
		"topological":  res.TopologicalByDegree,
		"closeness":    res.ClosenessByDegree,
		"betweenness":  res.BetweennessByDegree,
		"connectivity": res.ConnectivityByDegree,
	}
	for name, p := range points {
		if p != nil {
			doc.ByNeighbors[name] = p.Sorted()
		}
	}
	return doc
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Write encodes doc to w and returns the number of bytes written.
func Write(w io.Writer, doc *ResultsDocument, format string) (int64, error) {
	cw := &countingWriter{w: w}
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(cw)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return cw.n, fmt.Errorf("encoding json: %w", err)
		}
	case OutputYAML:
		enc := yaml.NewEncoder(cw)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return cw.n, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return cw.n, fmt.Errorf("encoding yaml: %w", err)
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return cw.n, nil
}

// WriteFile writes doc to path, snappy framed when path ends in ".sz".
// The export is recorded in reg when it is non-nil.
func WriteFile(path string, doc *ResultsDocument, format string, reg *metrics.Registry) (err error) {
	var written int64
	if reg != nil {
		defer func() { reg.RecordExport(format, written, err) }()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(path, ".sz") {
		written, err = Write(f, doc, format)
		return err
	}

	cw := &countingWriter{w: f}
	sw := snappy.NewBufferedWriter(cw)
	if _, err = Write(sw, doc, format); err != nil {
		return err
	}
	err = sw.Close()
	written = cw.n
	return err
}
