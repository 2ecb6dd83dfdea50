package netio

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-netanalyzer/pkg/analysis"
	"github.com/dd0wney/cluso-netanalyzer/pkg/metrics"
	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
	"github.com/dd0wney/cluso-netanalyzer/pkg/stats"
)

func TestReadSIF(t *testing.T) {
	input := `
# hub interactions
hub pp a b c
a pp b
lonely
`
	n, err := ReadSIF(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"hub", "a", "b", "c", "lonely"}, n.Names)
	assert.Equal(t, 5, n.Edges.NodeCount())
	assert.Equal(t, []network.Edge{
		{Source: 0, Target: 1}, {Source: 0, Target: 2}, {Source: 0, Target: 3}, {Source: 1, Target: 2},
	}, n.Edges.List)
}

func TestReadSIF_Tabs(t *testing.T) {
	n, err := ReadSIF(strings.NewReader("gene one\tpp\tgene two\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"gene one", "gene two"}, n.Names)
}

func TestReadSIF_MissingTarget(t *testing.T) {
	_, err := ReadSIF(strings.NewReader("a pp\n"))
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Error(), "line 1")
}

func TestReadEdgeList(t *testing.T) {
	n, err := ReadEdgeList(strings.NewReader("a b\nb c\n# comment\nd\nc a\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, n.Names)
	assert.Len(t, n.Edges.List, 3)

	i, ok := n.Lookup("d")
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	_, err = ReadEdgeList(strings.NewReader("a b c\n"))
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestReadJSON(t *testing.T) {
	doc := `{"nodes": ["x", "y", "z"], "edges": [{"source": "x", "target": "y"}, {"source": "y", "target": "w"}]}`
	n, err := ReadJSON(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z", "w"}, n.Names)
	assert.Equal(t, 4, n.View().NodeCount())

	tests := []string{
		`{"nodes": ["a", "a"]}`,
		`{"edges": [{"source": "a"}]}`,
		`{"vertices": []}`,
		`not json`,
	}
	for _, in := range tests {
		_, err := ReadJSON(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrSyntax, in)
	}
}

func TestResolve(t *testing.T) {
	n := NewNetwork()
	n.Link("a", "b")

	idx, err := n.Resolve([]string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, idx)

	_, err = n.Resolve([]string{"c"})
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]string{
		"net.sif":      FormatSIF,
		"net.SIF":      FormatSIF,
		"net.json":     FormatJSON,
		"net.json.sz":  FormatJSON,
		"net.txt":      FormatEdgeList,
		"net.edges.sz": FormatEdgeList,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectFormat(path), path)
	}

	_, err := Read(strings.NewReader(""), "graphml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestReadFile_Snappy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.sif.sz")
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	_, err := w.Write([]byte("a pp b c\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	n, err := ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, n.Names)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.sif"), "")
	assert.Error(t, err)
}

// analyze runs a complete analysis of the star a-(b,c,d).
func analyze(t *testing.T) (*analysis.Results, []string) {
	t.Helper()
	n, err := ReadSIF(strings.NewReader("a pp b c d\n"))
	require.NoError(t, err)
	g, err := network.Build(n.View(), network.Undirected())
	require.NoError(t, err)

	run, err := analysis.NewRun(g, analysis.DefaultConfig())
	require.NoError(t, err)
	out, err := run.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, analysis.StateCompleted, out.State)
	return out.Results, n.Names
}

func TestNewDocument(t *testing.T) {
	res, names := analyze(t)
	doc := NewDocument(res, names, Filters{Degree: stats.Filter{Min: 2}})

	require.Len(t, doc.Nodes, 4)
	assert.Equal(t, "a", doc.Nodes[0].Name)
	assert.Equal(t, 3, doc.Nodes[0].Degree)
	assert.Equal(t, "undirected+paired", doc.Interpretation)

	assert.Equal(t, []Bin{{Value: 3, Count: 1}}, doc.Distributions["degree"])
	assert.Equal(t, []Bin{{Value: 1, Count: 3}, {Value: 2, Count: 3}}, doc.Distributions["distance"])
	assert.NotContains(t, doc.Distributions, "in_degree")
	assert.Contains(t, doc.Distributions, "stress")
	assert.Contains(t, doc.ByNeighbors, "betweenness")
}

func TestWrite(t *testing.T) {
	res, names := analyze(t)
	doc := NewDocument(res, names, Filters{})

	var buf bytes.Buffer
	n, err := Write(&buf, doc, OutputJSON)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	nodes := decoded["nodes"].([]any)
	first := nodes[0].(map[string]any)
	assert.Equal(t, "a", first["name"])
	assert.EqualValues(t, 3, first["degree"], "node stats are inlined")

	buf.Reset()
	_, err = Write(&buf, doc, OutputYAML)
	require.NoError(t, err)
	var y map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &y))
	ynodes := y["nodes"].([]any)
	assert.Equal(t, 3, ynodes[0].(map[string]any)["degree"])

	_, err = Write(&buf, doc, "csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteFile(t *testing.T) {
	res, names := analyze(t)
	doc := NewDocument(res, names, Filters{})
	reg := metrics.NewRegistry()
	dir := t.TempDir()

	plain := filepath.Join(dir, "results.json")
	require.NoError(t, WriteFile(plain, doc, OutputJSON, reg))

	packed := filepath.Join(dir, "results.json.sz")
	require.NoError(t, WriteFile(packed, doc, OutputJSON, reg))

	raw, err := os.ReadFile(plain)
	require.NoError(t, err)
	f, err := os.Open(packed)
	require.NoError(t, err)
	defer f.Close()
	var unpacked bytes.Buffer
	_, err = unpacked.ReadFrom(snappy.NewReader(f))
	require.NoError(t, err)
	assert.Equal(t, raw, unpacked.Bytes())

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.ExportsTotal.WithLabelValues(OutputJSON, "success")))

	err = WriteFile(filepath.Join(dir, "missing", "out.json"), doc, OutputJSON, reg)
	assert.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.ExportsTotal.WithLabelValues(OutputJSON, "error")))
}
