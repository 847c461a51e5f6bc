package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaorut/pathkit/lattice"
)

func TestPath(t *testing.T) {
	empty := lattice.NewPath(nil, 0)
	assert.True(t, empty.Empty())
	assert.Empty(t, empty.Nodes())

	nodes := []lattice.Node{
		lattice.BosNode(nil),
		middleNodeAt("mizuho", 0, 10),
		lattice.EosNode(1, []int32{1}, 0, 42),
	}
	path := lattice.NewPath(nodes, 42)
	assert.False(t, path.Empty())
	assert.Equal(t, nodes, path.Nodes())
	assert.Equal(t, int32(42), path.Cost())
}
