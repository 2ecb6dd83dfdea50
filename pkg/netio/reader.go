package netio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
)

// Input formats.
const (
	FormatSIF      = "sif"
	FormatEdgeList = "edgelist"
	FormatJSON     = "json"
)

var (
	// ErrUnknownFormat is returned for an unsupported input or output format.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrSyntax is wrapped by every parse failure.
	ErrSyntax = errors.New("syntax error")
)

// Network is a named host network: node names in first-seen order and the
// raw edges between their indices.
type Network struct {
	Names []string
	Edges *network.EdgeList

	index map[string]int
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{
		Edges: network.NewEdgeList(0),
		index: make(map[string]int),
	}
}

// Node returns the index of name, adding the node if it is new.
func (n *Network) Node(name string) int {
	if i, ok := n.index[name]; ok {
		return i
	}
	i := len(n.Names)
	n.index[name] = i
	n.Names = append(n.Names, name)
	n.Edges.Nodes = len(n.Names)
	return i
}

// Lookup returns the index of name.
func (n *Network) Lookup(name string) (int, bool) {
	i, ok := n.index[name]
	return i, ok
}

// Link adds an edge between two named nodes.
func (n *Network) Link(source, target string) {
	s := n.Node(source)
	t := n.Node(target)
	n.Edges.Add(s, t)
}

// View returns the raw edge list for network.Build and network.Inspect.
func (n *Network) View() network.View { return n.Edges }

// Resolve maps node names to indices, preserving order.
func (n *Network) Resolve(names []string) ([]int, error) {
	out := make([]int, 0, len(names))
	for _, name := range names {
		i, ok := n.index[name]
		if !ok {
			return nil, fmt.Errorf("node %q not in network", name)
		}
		out = append(out, i)
	}
	return out, nil
}

func syntaxError(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, line, fmt.Sprintf(format, args...))
}

// scanLines calls fn with the fields of every non-blank, non-comment line.
func scanLines(r io.Reader, split func(string) []string, fn func(line int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := fn(line, split(text)); err != nil {
			return err
		}
	}
	return sc.Err()
}

// ReadSIF parses Cytoscape simple interaction format: "source type
// target..." per line, or a lone node name. Lines containing a tab are
// split on tabs so names may hold spaces.
func ReadSIF(r io.Reader) (*Network, error) {
	n := NewNetwork()
	err := scanLines(r, splitSIF, func(line int, f []string) error {
		switch len(f) {
		case 1:
			n.Node(f[0])
		case 2:
			return syntaxError(line, "interaction %q has no target", f[1])
		default:
			for _, target := range f[2:] {
				n.Link(f[0], target)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

func splitSIF(text string) []string {
	if strings.Contains(text, "\t") {
		parts := strings.Split(text, "\t")
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return strings.Fields(text)
}

// ReadEdgeList parses "source target" pairs separated by whitespace. A
// line with a single name declares an isolated node; "#" starts a
// comment line.
func ReadEdgeList(r io.Reader) (*Network, error) {
	n := NewNetwork()
	err := scanLines(r, strings.Fields, func(line int, f []string) error {
		switch len(f) {
		case 1:
			n.Node(f[0])
		case 2:
			n.Link(f[0], f[1])
		default:
			return syntaxError(line, "expected 1 or 2 fields, got %d", len(f))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Document is the JSON network format.
type Document struct {
	Nodes []string       `json:"nodes"`
	Edges []DocumentEdge `json:"edges"`
}

type DocumentEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// ReadJSON parses a Document. Edge endpoints missing from the node list
// are added after the listed nodes.
func ReadJSON(r io.Reader) (*Network, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	n := NewNetwork()
	for _, name := range doc.Nodes {
		if _, dup := n.Lookup(name); dup {
			return nil, fmt.Errorf("%w: node %q listed twice", ErrSyntax, name)
		}
		n.Node(name)
	}
	for i, e := range doc.Edges {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("%w: edge %d has an empty endpoint", ErrSyntax, i)
		}
		n.Link(e.Source, e.Target)
	}
	return n, nil
}

// DetectFormat picks the input format from the file extension, ignoring
// a trailing ".sz".
func DetectFormat(path string) string {
	path = strings.TrimSuffix(path, ".sz")
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sif":
		return FormatSIF
	case ".json":
		return FormatJSON
	default:
		return FormatEdgeList
	}
}

// Read parses r in the given format.
func Read(r io.Reader, format string) (*Network, error) {
	switch format {
	case FormatSIF:
		return ReadSIF(r)
	case FormatEdgeList:
		return ReadEdgeList(r)
	case FormatJSON:
		return ReadJSON(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ReadFile opens path and parses it. An empty format is detected from the
// extension; files ending in ".sz" are snappy framed.
func ReadFile(path, format string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if format == "" {
		format = DetectFormat(path)
	}
	var r io.Reader = f
	if strings.HasSuffix(path, ".sz") {
		r = snappy.NewReader(f)
	}
	n, err := Read(r, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}
