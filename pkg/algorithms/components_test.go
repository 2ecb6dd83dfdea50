package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
)

func TestConnectedComponents(t *testing.T) {
	tests := []struct {
		name    string
		graph   func(t *testing.T) *network.Graph
		count   int
		largest int
	}{
		{"cycle", cycle4, 1, 4},
		{"star", star5, 1, 5},
		{"two triangles", twoTriangles, 2, 3},
		{"directed chain is weakly connected", chain3, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ConnectedComponents(tt.graph(t), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.count, c.Count)
			assert.Equal(t, tt.largest, c.Largest())
		})
	}
}

func TestConnectedComponents_Labels(t *testing.T) {
	g := build(t, network.Undirected(), 5, [2]int{3, 4}, [2]int{0, 2})
	c, err := ConnectedComponents(g, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Count)
	assert.Equal(t, []int{0, 1, 0, 2, 2}, c.Of)
	assert.Equal(t, []int{2, 1, 2}, c.Sizes)
	assert.Equal(t, 2, c.Largest())
}

func TestStrongComponents(t *testing.T) {
	// 0 -> 1 -> 2 -> 0 is a cycle, 2 -> 3 leaves it.
	g := build(t, network.Directed(), 4, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0}, [2]int{2, 3})
	c, err := StrongComponents(g, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Count)
	assert.Equal(t, c.Of[0], c.Of[1])
	assert.Equal(t, c.Of[0], c.Of[2])
	assert.NotEqual(t, c.Of[0], c.Of[3])
	assert.Equal(t, 3, c.Largest())

	weak, err := WeakComponents(g, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, weak.Count)
}

func TestStrongComponents_Chain(t *testing.T) {
	c, err := StrongComponents(chain3(t), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Count)
	assert.Equal(t, 1, c.Largest())
}

func TestStrongComponents_UndirectedFallsBack(t *testing.T) {
	c, err := StrongComponents(twoTriangles(t), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Count)
}

func TestComponents_Cancelled(t *testing.T) {
	stop := func() bool { return true }

	_, err := ConnectedComponents(cycle4(t), stop)
	assert.ErrorIs(t, err, ErrCancelled)
	_, err = StrongComponents(chain3(t), stop)
	assert.ErrorIs(t, err, ErrCancelled)
}
